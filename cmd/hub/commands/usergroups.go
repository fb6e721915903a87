package commands

import (
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// NewUserGroupsCommand creates the user-groups command group.
func NewUserGroupsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user-groups",
		Short: "Work with user groups",
	}

	cmd.AddCommand(newUserGroupsListCommand())
	cmd.AddCommand(newUserGroupsMembersCommand())

	return cmd
}

func newUserGroupsListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all user groups",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient(cmd.Context())
			if err != nil {
				return err
			}

			groups, err := client.UserGroups().List(cmd.Context(), nil)
			if err != nil {
				return err
			}

			if !isTableOutput() {
				return renderStructured(groups.Items)
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.Header("Name", "Active", "Created From")

			for i := range groups.Items {
				group := &groups.Items[i]
				_ = table.Append(group.Name, strconv.FormatBool(group.Active), group.CreatedFrom)
			}

			_ = table.Render()

			return nil
		},
	}
}

func newUserGroupsMembersCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "members NAME",
		Short: "List the members of a user group",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient(cmd.Context())
			if err != nil {
				return err
			}

			group, err := client.UserGroups().FindByName(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			members, err := client.UserGroups().ListMembers(cmd.Context(), group)
			if err != nil {
				return err
			}

			if !isTableOutput() {
				return renderStructured(members.Items)
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.Header("Username", "Email", "Active")

			for i := range members.Items {
				member := &members.Items[i]
				_ = table.Append(member.UserName, member.Email, strconv.FormatBool(member.Active))
			}

			_ = table.Render()

			return nil
		},
	}
}
