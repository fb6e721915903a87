package commands

import (
	"os"

	"github.com/fivetwenty-io/hubapi/pkg/hub"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// NewComponentsCommand creates the components command group.
func NewComponentsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "components",
		Short: "Search components and the KnowledgeBase",
	}

	cmd.AddCommand(newComponentsSearchCommand())
	cmd.AddCommand(newComponentsKBCommand())
	cmd.AddCommand(newComponentsSuiteCommand())

	return cmd
}

func newComponentsSearchCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "search NAME",
		Short: "Search components by name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient(cmd.Context())
			if err != nil {
				return err
			}

			results, err := client.Components().Search(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			if !isTableOutput() {
				return renderStructured(results.Items)
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.Header("Component", "Version", "Origin ID")

			for i := range results.Items {
				result := &results.Items[i]
				_ = table.Append(result.ComponentName, result.VersionName, result.OriginID)
			}

			_ = table.Render()

			return nil
		},
	}
}

func newComponentsKBCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "kb NAME",
		Short: "Autocomplete KnowledgeBase components by name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient(cmd.Context())
			if err != nil {
				return err
			}

			results, err := client.Components().AutocompleteKB(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			return renderKBComponents(results)
		},
	}
}

func newComponentsSuiteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "suite ID",
		Short: "Find KnowledgeBase components by legacy suite id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient(cmd.Context())
			if err != nil {
				return err
			}

			results, err := client.Components().FindKBBySuiteID(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			return renderKBComponents(results)
		},
	}
}

func renderKBComponents(results *hub.PagedResponse[hub.KBComponent]) error {
	if !isTableOutput() {
		return renderStructured(results.Items)
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Name", "URL", "Description")

	for i := range results.Items {
		component := &results.Items[i]
		_ = table.Append(component.Name, component.URL, flattenText(component.Description))
	}

	_ = table.Render()

	return nil
}
