package commands

import (
	"fmt"
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// NewUsersCommand creates the users command group.
func NewUsersCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Work with user accounts",
	}

	cmd.AddCommand(newUsersListCommand())
	cmd.AddCommand(newUsersGetCommand())

	return cmd
}

func newUsersListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all users",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient(cmd.Context())
			if err != nil {
				return err
			}

			users, err := client.Users().List(cmd.Context(), nil)
			if err != nil {
				return err
			}

			if !isTableOutput() {
				return renderStructured(users.Items)
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.Header("Username", "First Name", "Last Name", "Email", "Active")

			for i := range users.Items {
				user := &users.Items[i]
				_ = table.Append(user.UserName, user.FirstName, user.LastName, user.Email, strconv.FormatBool(user.Active))
			}

			_ = table.Render()

			return nil
		},
	}
}

func newUsersGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get USERNAME",
		Short: "Show a user with their groups and roles",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient(cmd.Context())
			if err != nil {
				return err
			}

			user, err := client.Users().FindByUsername(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			groups, err := client.Users().ListUserGroups(cmd.Context(), user)
			if err != nil {
				return err
			}

			roles, err := client.Users().ListRoles(cmd.Context(), user)
			if err != nil {
				return err
			}

			if !isTableOutput() {
				return renderStructured(map[string]interface{}{
					"user":   user,
					"groups": groups.Items,
					"roles":  roles.Items,
				})
			}

			fmt.Printf("Username: %s\n", user.UserName)
			fmt.Printf("Name:     %s %s\n", user.FirstName, user.LastName)
			fmt.Printf("Email:    %s\n", user.Email)
			fmt.Printf("Active:   %t\n", user.Active)

			fmt.Println("\nGroups:")

			for i := range groups.Items {
				fmt.Printf("  %s\n", groups.Items[i].Name)
			}

			fmt.Println("\nRoles:")

			for i := range roles.Items {
				role := &roles.Items[i]
				fmt.Printf("  %s (%s)\n", role.Name, role.Scope)
			}

			return nil
		},
	}
}
