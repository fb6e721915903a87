package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// NewVersionsCommand creates the versions command group.
func NewVersionsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "versions",
		Short: "Work with project versions",
	}

	cmd.AddCommand(newVersionsListCommand())

	return cmd
}

func newVersionsListCommand() *cobra.Command {
	var showTags bool

	cmd := &cobra.Command{
		Use:   "list PROJECT",
		Short: "List the versions of a project",
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

			versions, err := client.Projects().ListVersions(cmd.Context(), project, nil)
			if err != nil {
				return err
			}

			if !isTableOutput() {
				return renderStructured(versions.Items)
			}

			if showTags {
				tags, err := client.Projects().ListTags(cmd.Context(), project)
				if err != nil {
					return err
				}

				fields, err := client.Projects().ListCustomFields(cmd.Context(), project)
				if err != nil {
					return err
				}

				names := make([]string, 0, len(tags.Items))
				for _, tag := range tags.Items {
					names = append(names, tag.Name)
				}

				fmt.Printf("Tags: %s\n", strings.Join(names, ", "))

				for _, field := range fields.Items {
					fmt.Printf("%s: %s\n", field.Label, strings.Join(field.Values, ", "))
				}

				fmt.Println()
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.Header("Version", "Phase", "Distribution", "Created At", "Href")

			for i := range versions.Items {
				version := &versions.Items[i]

				href := ""
				if version.Meta != nil {
					href = version.Meta.Href
				}

				_ = table.Append(version.VersionName, version.Phase, version.Distribution, formatTime(version.CreatedAt), href)
			}

			_ = table.Render()

			return nil
		},
	}

	cmd.Flags().BoolVar(&showTags, "tags", false, "also print project tags and custom fields")

	return cmd
}
