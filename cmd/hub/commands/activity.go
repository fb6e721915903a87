package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/fivetwenty-io/hubapi/pkg/hub"
	"github.com/nats-io/nats.go"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// NewActivityCommand creates the activity command group.
func NewActivityCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "activity",
		Short: "Inspect recent server activity",
	}

	cmd.AddCommand(newActivityModifiedCommand())
	cmd.AddCommand(newActivityScannedCommand())
	cmd.AddCommand(newActivityWatchCommand())

	return cmd
}

func newActivityModifiedCommand() *cobra.Command {
	var (
		projectName string
		since       string
	)

	cmd := &cobra.Command{
		Use:   "modified",
		Short: "List recent audit journal events for a project",
		RunE: func(cmd *cobra.Command, args []string) error {
			period, err := parsePeriod(since)
			if err != nil {
				return err
			}

			client, err := createClient(cmd.Context())
			if err != nil {
				return err
			}

			project, err := client.Projects().FindByName(cmd.Context(), projectName)
			if err != nil {
				return err
			}

			versions, err := client.Projects().ListVersions(cmd.Context(), project, nil)
			if err != nil {
				return err
			}

			cutoff := time.Now().Add(-period)

			table := tablewriter.NewWriter(os.Stdout)
			table.Header("Version", "Action", "Object", "Trigger", "Timestamp")

			var events []hub.JournalEvent

			for i := range versions.Items {
				version := &versions.Items[i]

				projectID, versionID, ok := versionIDs(version)
				if !ok {
					continue
				}

				page, err := client.Journal().ListVersionEvents(cmd.Context(), projectID, versionID, nil)
				if err != nil {
					return fmt.Errorf("listing journal of %s: %w", version.VersionName, err)
				}

				for j := range page.Items {
					event := &page.Items[j]
					if event.Timestamp == nil || event.Timestamp.Before(cutoff) {
						continue
					}

					events = append(events, *event)

					objectName := ""
					if event.ObjectData != nil {
						objectName = event.ObjectData.Name
					}

					triggerName := ""
					if event.TriggerData != nil {
						triggerName = event.TriggerData.Name
					}

					_ = table.Append(version.VersionName, event.Action, objectName, triggerName, formatTime(event.Timestamp))
				}
			}

			if !isTableOutput() {
				return renderStructured(events)
			}

			_ = table.Render()

			return nil
		},
	}

	cmd.Flags().StringVar(&projectName, "project", "", "project name")
	cmd.Flags().StringVar(&since, "since", "7d", "look-back period, like 7d or 36h")
	_ = cmd.MarkFlagRequired("project")

	return cmd
}

func newActivityScannedCommand() *cobra.Command {
	var since string

	cmd := &cobra.Command{
		Use:   "scanned",
		Short: "List project versions scanned recently",
		RunE: func(cmd *cobra.Command, args []string) error {
			period, err := parsePeriod(since)
			if err != nil {
				return err
			}

			client, err := createClient(cmd.Context())
			if err != nil {
				return err
			}

			notifications, err := client.Notifications().ListByTypeSince(cmd.Context(), hub.NotificationTypeBomComputed, time.Now().Add(-period))
			if err != nil {
				return err
			}

			if !isTableOutput() {
				return renderStructured(notifications)
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.Header("Project", "Version", "Scanned At")

			for i := range notifications {
				notification := &notifications[i]
				if notification.Content == nil {
					continue
				}

				_ = table.Append(notification.Content.ProjectName, notification.Content.ProjectVersionName, formatTime(notification.CreatedAt))
			}

			_ = table.Render()

			return nil
		},
	}

	cmd.Flags().StringVar(&since, "since", "1d", "look-back period, like 7d or 36h")

	return cmd
}

func newActivityWatchCommand() *cobra.Command {
	var (
		natsURL  string
		subject  string
		interval time.Duration
	)

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Poll for scan notifications and publish them to NATS",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient(cmd.Context())
			if err != nil {
				return err
			}

			conn, err := nats.Connect(natsURL)
			if err != nil {
				return fmt.Errorf("connecting to NATS: %w", err)
			}
			defer conn.Close()

			ticker := time.NewTicker(interval)
			defer ticker.Stop()

			lastPoll := time.Now()

			fmt.Fprintf(os.Stderr, "Watching for scan notifications, publishing to %s\n", subject)

			for {
				select {
				case <-cmd.Context().Done():
					return nil
				case <-ticker.C:
				}

				notifications, err := client.Notifications().ListByTypeSince(cmd.Context(), hub.NotificationTypeBomComputed, lastPoll)
				if err != nil {
					fmt.Fprintf(os.Stderr, "Poll failed: %v\n", err)

					continue
				}

				lastPoll = time.Now()

				for i := range notifications {
					data, err := json.Marshal(&notifications[i])
					if err != nil {
						continue
					}

					err = conn.Publish(subject, data)
					if err != nil {
						fmt.Fprintf(os.Stderr, "Publish failed: %v\n", err)
					}
				}

				if len(notifications) > 0 {
					err = conn.Flush()
					if err != nil {
						fmt.Fprintf(os.Stderr, "Flush failed: %v\n", err)
					}
				}
			}
		},
	}

	cmd.Flags().StringVar(&natsURL, "nats-url", nats.DefaultURL, "NATS server URL")
	cmd.Flags().StringVar(&subject, "subject", "hub.scans", "NATS subject to publish to")
	cmd.Flags().DurationVar(&interval, "interval", time.Minute, "poll interval")

	return cmd
}

// versionIDs extracts the project and version ids from a version href, which
// ends in .../projects/{projectId}/versions/{versionId}.
func versionIDs(version *hub.ProjectVersion) (projectID, versionID string, ok bool) {
	if version.Meta == nil || version.Meta.Href == "" {
		return "", "", false
	}

	segments := strings.Split(strings.Trim(version.Meta.Href, "/"), "/")

	for i := 0; i+3 < len(segments); i++ {
		if segments[i] == "projects" && segments[i+2] == "versions" {
			return segments[i+1], segments[i+3], true
		}
	}

	return "", "", false
}
