package commands

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"

	"github.com/fivetwenty-io/hubapi/internal/constants"
	"github.com/fivetwenty-io/hubapi/pkg/hub"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// NewCopyrightsCommand creates the copyrights command group.
func NewCopyrightsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "copyrights",
		Short: "Work with origin copyright records",
	}

	cmd.AddCommand(newCopyrightsListCommand())
	cmd.AddCommand(newCopyrightsDisableCommand())

	return cmd
}

// copyrightRow is one active copyright statement with its provenance.
type copyrightRow struct {
	Component string `json:"component" yaml:"component"`
	Origin    string `json:"origin"    yaml:"origin"`
	Copyright string `json:"copyright" yaml:"copyright"`
	UpdatedBy string `json:"updatedBy" yaml:"updatedBy"`
	UpdatedAt string `json:"updatedAt" yaml:"updatedAt"`
}

func newCopyrightsListCommand() *cobra.Command {
	var (
		versionURL string
		asCSV      bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List active copyrights across a version's BoM",
		RunE: func(cmd *cobra.Command, args []string) error {
			if versionURL == "" {
				return constants.ErrVersionURLRequired
			}

			client, err := createClient(cmd.Context())
			if err != nil {
				return err
			}

			rows, err := collectCopyrights(cmd.Context(), client, versionURL)
			if err != nil {
				return err
			}

			if asCSV {
				return writeCopyrightsCSV(rows)
			}

			if !isTableOutput() {
				return renderStructured(rows)
			}

			for _, row := range rows {
				fmt.Printf("%s / %s: %s\n", row.Component, row.Origin, row.Copyright)
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&versionURL, "version-url", "", "href of the project version")
	cmd.Flags().BoolVar(&asCSV, "csv", false, "write CSV to stdout")

	return cmd
}

func newCopyrightsDisableCommand() *cobra.Command {
	var (
		versionURL   string
		onlyMultiple bool
	)

	cmd := &cobra.Command{
		Use:   "disable",
		Short: "Disable every copyright record across a version's BoM",
		Long:  "Walks every origin of the version's bill of materials, sets each copyright record inactive, and re-reads the origin to verify each write took effect. Writes that do not stick are retried a bounded number of times.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if versionURL == "" {
				return constants.ErrVersionURLRequired
			}

			client, err := createClient(cmd.Context())
			if err != nil {
				return err
			}

			var logger hub.Logger
			if viper.GetBool("verbose") {
				logger = NewCLILogger()
			}

			disabler := hub.NewCopyrightDisabler(client, logger, hub.DisableOptions{
				OnlyDisableMultiple: onlyMultiple,
			})

			stats, err := disabler.Run(cmd.Context(), versionURL)
			if err != nil {
				return err
			}

			if !isTableOutput() {
				return renderStructured(stats)
			}

			fmt.Println(stats.Summary())

			return nil
		},
	}

	cmd.Flags().StringVar(&versionURL, "version-url", "", "href of the project version")
	cmd.Flags().BoolVar(&onlyMultiple, "only-multiple", false, "leave origins with a single copyright record untouched")

	return cmd
}

// collectCopyrights walks the BoM and gathers every active copyright record.
func collectCopyrights(ctx context.Context, client hub.Client, versionURL string) ([]copyrightRow, error) {
	params := hub.NewQueryParams().
		WithSort("projectName ASC").
		WithFilter("bomInclusion", "false").
		WithFilter("bomMatchInclusion", "false").
		WithLimit(constants.DefaultPageLimit)

	var rows []copyrightRow

	for offset := 0; ; {
		params.Offset = offset

		page, err := client.ProjectVersions().ListBomComponents(ctx, versionURL, params)
		if err != nil {
			return nil, fmt.Errorf("listing BoM components: %w", err)
		}

		for i := range page.Items {
			component := &page.Items[i]

			refs, err := originRefs(ctx, client, component)
			if err != nil {
				return nil, err
			}

			for _, ref := range refs {
				records, err := client.Copyrights().ListForOrigin(ctx, ref.href)
				if err != nil {
					return nil, fmt.Errorf("listing copyrights of %s: %w", ref.name, err)
				}

				for k := range records {
					record := &records[k]
					if !record.Active {
						continue
					}

					text := record.UpdatedCopyright
					if text == "" {
						text = record.KBCopyright
					}

					rows = append(rows, copyrightRow{
						Component: component.ComponentName,
						Origin:    ref.name,
						Copyright: flattenText(text),
						UpdatedBy: record.UpdatedBy,
						UpdatedAt: formatTime(record.UpdatedAt),
					})
				}
			}
		}

		offset += len(page.Items)
		if len(page.Items) == 0 || offset >= page.TotalCount {
			return rows, nil
		}
	}
}

// originRef is one resolvable origin of a BoM component.
type originRef struct {
	name string
	href string
}

// originRefs resolves a component's origins. A component without embedded
// origins covers every origin of the component, fetched through its origins
// link.
func originRefs(ctx context.Context, client hub.Client, component *hub.BomComponent) ([]originRef, error) {
	var refs []originRef

	if len(component.Origins) == 0 {
		origins, err := client.Components().ListOrigins(ctx, component)
		if err != nil {
			return nil, fmt.Errorf("listing origins of %s: %w", component.ComponentName, err)
		}

		for i := range origins {
			origin := &origins[i]
			if origin.Meta == nil || origin.Meta.Href == "" {
				continue
			}

			refs = append(refs, originRef{name: origin.OriginName, href: origin.Meta.Href})
		}

		return refs, nil
	}

	for i := range component.Origins {
		origin := &component.Origins[i]

		href, ok := origin.Href()
		if !ok {
			continue
		}

		refs = append(refs, originRef{name: origin.Name, href: href})
	}

	return refs, nil
}

func writeCopyrightsCSV(rows []copyrightRow) error {
	writer := csv.NewWriter(os.Stdout)
	defer writer.Flush()

	err := writer.Write([]string{"component", "origin", "copyright", "updated_by", "updated_at"})
	if err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}

	for _, row := range rows {
		err = writer.Write([]string{row.Component, row.Origin, row.Copyright, row.UpdatedBy, row.UpdatedAt})
		if err != nil {
			return fmt.Errorf("writing CSV row: %w", err)
		}
	}

	return nil
}
