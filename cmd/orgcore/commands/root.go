package commands

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "orgcore",
		Short: "Inspect an org's schemas and page through its objects",
	}

	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "config file path")
	flags.String("base-url", "", "API base URL")
	flags.String("org", "", "org code")
	flags.String("client-key", "", "org client key")
	flags.String("token", "", "session bearer token")
	viper.BindPFlag("api.base_url", flags.Lookup("base-url"))
	viper.BindPFlag("api.org_code", flags.Lookup("org"))
	viper.BindPFlag("api.client_key", flags.Lookup("client-key"))
	viper.BindPFlag("api.session_token", flags.Lookup("token"))

	rootCmd.AddCommand(
		NewSchemaCommand(),
		NewListCommand(),
		NewVersionCommand(),
	)

	return rootCmd
}
