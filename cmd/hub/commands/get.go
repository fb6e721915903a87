package commands

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// NewGetCommand creates the generic get command.
func NewGetCommand() *cobra.Command {
	var asList bool

	cmd := &cobra.Command{
		Use:   "get HREF",
		Short: "Fetch an arbitrary resource by href",
		Long:  "Fetches any API resource by absolute href or server-relative path and prints it. Use --list for collection endpoints.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient(cmd.Context())
			if err != nil {
				return err
			}

			// Raw resources have no table shape; default to JSON.
			if isTableOutput() {
				viper.Set("output", OutputFormatJSON)
			}

			if asList {
				page, err := client.Generic().ListByHref(cmd.Context(), args[0], nil)
				if err != nil {
					return err
				}

				return renderStructured(page)
			}

			var out map[string]interface{}

			err = client.Generic().GetByHref(cmd.Context(), args[0], &out)
			if err != nil {
				return err
			}

			return renderStructured(out)
		},
	}

	cmd.Example = "  hub get /api/current-user\n  hub get --list /api/projects"

	cmd.Flags().BoolVar(&asList, "list", false, "treat the href as a collection endpoint")

	return cmd
}
