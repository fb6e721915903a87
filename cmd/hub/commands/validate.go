package commands

import (
	"fmt"

	"github.com/fivetwenty-io/hubapi/pkg/hubclient"
	"github.com/spf13/cobra"
)

// NewValidateCommand creates the validate command.
func NewValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate the server connection and credentials",
		Long:  "Connects to the configured server and fetches the authenticated user to confirm the credentials work.",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient(cmd.Context())
			if err != nil {
				return err
			}

			user, err := hubclient.ValidateConnection(cmd.Context(), client)
			if err != nil {
				return err
			}

			fmt.Printf("Connection OK, authenticated as %s\n", user.UserName)

			return nil
		},
	}
}
