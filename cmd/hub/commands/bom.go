package commands

import (
	"os"
	"strings"

	"github.com/fivetwenty-io/hubapi/internal/constants"
	"github.com/fivetwenty-io/hubapi/pkg/hub"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// NewBomCommand creates the bom command group.
func NewBomCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bom",
		Short: "Work with version bills of materials",
	}

	cmd.AddCommand(newBomListCommand())

	return cmd
}

func newBomListCommand() *cobra.Command {
	var versionURL string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the BoM components of a project version",
		RunE: func(cmd *cobra.Command, args []string) error {
			if versionURL == "" {
				return constants.ErrVersionURLRequired
			}

			client, err := createClient(cmd.Context())
			if err != nil {
				return err
			}

			params := hub.NewQueryParams().
				WithSort("projectName ASC").
				WithFilter("bomInclusion", "false").
				WithFilter("bomMatchInclusion", "false").
				WithLimit(constants.DefaultPageLimit)

			var components []hub.BomComponent

			for offset := 0; ; {
				params.Offset = offset

				page, err := client.ProjectVersions().ListBomComponents(cmd.Context(), versionURL, params)
				if err != nil {
					return err
				}

				components = append(components, page.Items...)

				offset += len(page.Items)
				if len(page.Items) == 0 || offset >= page.TotalCount {
					break
				}
			}

			if !isTableOutput() {
				return renderStructured(components)
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.Header("Component", "Version", "Review", "Match Types", "Origins")

			for i := range components {
				component := &components[i]

				origins := make([]string, 0, len(component.Origins))
				for _, origin := range component.Origins {
					origins = append(origins, origin.Name)
				}

				_ = table.Append(
					component.ComponentName,
					component.ComponentVersionName,
					component.ReviewStatus,
					strings.Join(component.MatchTypes, ", "),
					strings.Join(origins, ", "),
				)
			}

			_ = table.Render()

			return nil
		},
	}

	cmd.Flags().StringVar(&versionURL, "version-url", "", "href of the project version")

	return cmd
}
