package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/fivetwenty-io/hubapi/internal/constants"
	"github.com/fivetwenty-io/hubapi/pkg/hubclient"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"
)

// NewLoginCommand creates the login command.
func NewLoginCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "login [SERVER]",
		Short: "Authenticate against a Hub server",
		Long:  "Prompts for an API token, validates it against the server, and stores both in the config file.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			server := viper.GetString("server")
			if len(args) > 0 {
				server = args[0]
			}

			if server == "" {
				return constants.ErrNoServerConfigured
			}

			fmt.Print("API token: ")

			tokenBytes, err := term.ReadPassword(int(syscall.Stdin))

			fmt.Println()

			if err != nil {
				return fmt.Errorf("reading token: %w", err)
			}

			token := strings.TrimSpace(string(tokenBytes))
			if token == "" {
				return constants.ErrNoTokenConfigured
			}

			client, err := hubclient.NewWithAPIToken(cmd.Context(), server, token)
			if err != nil {
				return err
			}

			user, err := hubclient.ValidateConnection(cmd.Context(), client)
			if err != nil {
				return err
			}

			err = saveConfig(server, token)
			if err != nil {
				return err
			}

			fmt.Printf("Logged in to %s as %s\n", server, user.UserName)

			return nil
		},
	}
}

// saveConfig writes server and token to ~/.hub/config.yml.
func saveConfig(server, token string) error {
	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("finding home directory: %w", err)
	}

	configDir := filepath.Join(home, ".hub")

	err = os.MkdirAll(configDir, constants.ConfigDirPerm)
	if err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(map[string]string{
		"server": server,
		"token":  token,
	})
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	configPath := filepath.Join(configDir, "config.yml")

	err = os.WriteFile(configPath, data, constants.ConfigFilePerm)
	if err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
