package commands

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"regexp"

	"github.com/fivetwenty-io/hubapi/internal/constants"
	"github.com/fivetwenty-io/hubapi/pkg/hub"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// NewProjectsCommand creates the projects command group.
func NewProjectsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "projects",
		Short: "Work with projects",
	}

	cmd.AddCommand(newProjectsListCommand())
	cmd.AddCommand(newProjectsFindCommand())
	cmd.AddCommand(newProjectsDeleteCommand())

	return cmd
}

func newProjectsListCommand() *cobra.Command {
	var asCSV bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all projects",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient(cmd.Context())
			if err != nil {
				return err
			}

			projects, err := fetchAllProjects(cmd.Context(), client)
			if err != nil {
				return err
			}

			if asCSV {
				return writeProjectsCSV(projects)
			}

			if !isTableOutput() {
				return renderStructured(projects)
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.Header("Name", "Description", "Owner", "Created By", "Created At")

			for i := range projects {
				project := &projects[i]
				_ = table.Append(project.Name, flattenText(project.Description), project.ProjectOwner, project.CreatedBy, formatTime(project.CreatedAt))
			}

			_ = table.Render()

			return nil
		},
	}

	cmd.Flags().BoolVar(&asCSV, "csv", false, "write CSV to stdout")

	return cmd
}

func newProjectsFindCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "find NAME",
		Short: "Find a project by exact name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient(cmd.Context())
			if err != nil {
				return err
			}

			project, err := client.Projects().FindByName(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			if !isTableOutput() {
				return renderStructured(project)
			}

			fmt.Printf("Name:        %s\n", project.Name)
			fmt.Printf("Description: %s\n", flattenText(project.Description))
			fmt.Printf("Owner:       %s\n", project.ProjectOwner)
			fmt.Printf("Created:     %s by %s\n", formatTime(project.CreatedAt), project.CreatedBy)

			if project.Meta != nil {
				fmt.Printf("Href:        %s\n", project.Meta.Href)
			}

			return nil
		},
	}
}

func newProjectsDeleteCommand() *cobra.Command {
	var (
		match   string
		byAppID bool
		dryRun  bool
	)

	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete projects matching a pattern",
		Long:  "Deletes every project whose name (or application id with --by-app-id) matches the regular expression. Code locations are removed first, then all versions but one, then the project itself.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if match == "" {
				return constants.ErrMatchRequired
			}

			pattern, err := regexp.Compile(match)
			if err != nil {
				return fmt.Errorf("compiling pattern: %w", err)
			}

			client, err := createClient(cmd.Context())
			if err != nil {
				return err
			}

			projects, err := fetchAllProjects(cmd.Context(), client)
			if err != nil {
				return err
			}

			for i := range projects {
				project := &projects[i]

				matched, err := projectMatches(cmd.Context(), client, project, pattern, byAppID)
				if err != nil {
					return err
				}

				if !matched {
					continue
				}

				if dryRun {
					fmt.Printf("Would delete project %s\n", project.Name)

					continue
				}

				err = deleteProject(cmd.Context(), client, project)
				if err != nil {
					return err
				}

				fmt.Printf("Deleted project %s\n", project.Name)
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&match, "match", "", "regular expression matched against project names")
	cmd.Flags().BoolVar(&byAppID, "by-app-id", false, "match against application ids instead of names")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "print what would be deleted without deleting")

	return cmd
}

// fetchAllProjects drains every page of the project list.
func fetchAllProjects(ctx context.Context, client hub.Client) ([]hub.Project, error) {
	params := hub.NewQueryParams().WithLimit(constants.DefaultPageLimit)

	var all []hub.Project

	for offset := 0; ; {
		params.Offset = offset

		page, err := client.Projects().List(ctx, params)
		if err != nil {
			return nil, err
		}

		all = append(all, page.Items...)

		offset += len(page.Items)
		if len(page.Items) == 0 || offset >= page.TotalCount {
			return all, nil
		}
	}
}

// projectMatches applies the pattern to the project name or application id.
func projectMatches(ctx context.Context, client hub.Client, project *hub.Project, pattern *regexp.Regexp, byAppID bool) (bool, error) {
	if !byAppID {
		return pattern.MatchString(project.Name), nil
	}

	mapping, err := client.Projects().GetMapping(ctx, project)
	if err != nil {
		return false, err
	}

	if mapping == nil {
		return false, nil
	}

	return pattern.MatchString(mapping.ApplicationID), nil
}

// deleteProject removes a project and everything hanging off it. The server
// refuses to delete projects with multiple versions, so versions go first,
// and versions keep code locations alive, so those go before the versions.
func deleteProject(ctx context.Context, client hub.Client, project *hub.Project) error {
	versions, err := client.Projects().ListVersions(ctx, project, nil)
	if err != nil {
		return fmt.Errorf("listing versions of %s: %w", project.Name, err)
	}

	for i := range versions.Items {
		version := &versions.Items[i]

		locations, err := client.ProjectVersions().ListCodeLocations(ctx, version)
		if err != nil {
			return fmt.Errorf("listing code locations of %s %s: %w", project.Name, version.VersionName, err)
		}

		for j := range locations.Items {
			if locations.Items[j].Meta == nil {
				continue
			}

			err = client.CodeLocations().Delete(ctx, locations.Items[j].Meta.Href)
			if err != nil {
				return fmt.Errorf("deleting code location %s: %w", locations.Items[j].Name, err)
			}
		}
	}

	// Leave the first version for the project deletion to take with it.
	for i := 1; i < len(versions.Items); i++ {
		if versions.Items[i].Meta == nil {
			continue
		}

		err = client.ProjectVersions().Delete(ctx, versions.Items[i].Meta.Href)
		if err != nil {
			return fmt.Errorf("deleting version %s of %s: %w", versions.Items[i].VersionName, project.Name, err)
		}
	}

	if project.Meta == nil {
		return nil
	}

	err = client.Projects().Delete(ctx, project.Meta.Href)
	if err != nil {
		return fmt.Errorf("deleting project %s: %w", project.Name, err)
	}

	return nil
}

// writeProjectsCSV dumps projects as CSV to stdout.
func writeProjectsCSV(projects []hub.Project) error {
	writer := csv.NewWriter(os.Stdout)
	defer writer.Flush()

	err := writer.Write([]string{"name", "description", "href", "created_by", "created_at", "project_owner"})
	if err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}

	for i := range projects {
		project := &projects[i]

		href := ""
		if project.Meta != nil {
			href = project.Meta.Href
		}

		err = writer.Write([]string{
			project.Name,
			flattenText(project.Description),
			href,
			project.CreatedBy,
			formatTime(project.CreatedAt),
			project.ProjectOwner,
		})
		if err != nil {
			return fmt.Errorf("writing CSV row: %w", err)
		}
	}

	return nil
}
