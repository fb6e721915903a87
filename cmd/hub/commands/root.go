package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// NewRootCommand creates the hub root command.
func NewRootCommand(version, commit, date string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "hub",
		Short:         "Command line client for the Hub API",
		Long:          "hub is a command line client for the Hub API: projects, bills of materials, copyrights, users, reports, and activity.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().String("config", "", "config file (default ~/.hub/config.yml)")
	rootCmd.PersistentFlags().String("server", "", "Hub server URL")
	rootCmd.PersistentFlags().String("token", "", "Hub API token")
	rootCmd.PersistentFlags().StringP("output", "o", OutputFormatTable, "output format (json, yaml, table)")
	rootCmd.PersistentFlags().Bool("insecure", false, "skip TLS certificate verification")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose logging")

	_ = viper.BindPFlag("server", rootCmd.PersistentFlags().Lookup("server"))
	_ = viper.BindPFlag("token", rootCmd.PersistentFlags().Lookup("token"))
	_ = viper.BindPFlag("output", rootCmd.PersistentFlags().Lookup("output"))
	_ = viper.BindPFlag("insecure", rootCmd.PersistentFlags().Lookup("insecure"))
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	cobra.OnInitialize(func() {
		initConfig(rootCmd)
	})

	rootCmd.AddCommand(NewValidateCommand())
	rootCmd.AddCommand(NewLoginCommand())
	rootCmd.AddCommand(NewProjectsCommand())
	rootCmd.AddCommand(NewVersionsCommand())
	rootCmd.AddCommand(NewBomCommand())
	rootCmd.AddCommand(NewCopyrightsCommand())
	rootCmd.AddCommand(NewComponentsCommand())
	rootCmd.AddCommand(NewUsersCommand())
	rootCmd.AddCommand(NewUserGroupsCommand())
	rootCmd.AddCommand(NewActivityCommand())
	rootCmd.AddCommand(NewReportsCommand())
	rootCmd.AddCommand(NewGetCommand())
	rootCmd.AddCommand(NewVersionCommand(version, commit, date))

	return rootCmd
}

// initConfig loads the config file and environment variables.
func initConfig(rootCmd *cobra.Command) {
	configFile, _ := rootCmd.PersistentFlags().GetString("config")

	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".hub"))
			viper.SetConfigName("config")
			viper.SetConfigType("yml")
		}
	}

	viper.SetEnvPrefix("HUB")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		if viper.GetBool("verbose") {
			fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
		}
	}
}
