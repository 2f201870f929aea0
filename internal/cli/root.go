package cli

import (
	"github.com/spf13/cobra"

	"github.com/regstack-io/regstack/internal/logging"
)

var logLevel string

var rootCmd = &cobra.Command{
	Use:   "regstack",
	Short: "Composes managed container-registry stacks",
	Long: `Regstack turns a small, Pkl-typed registry configuration into an ordered
set of resource intents for a provisioning engine:

  • Private and public repositories
  • Encryption keys, lifecycle and access policies
  • Replication, pull-through caching, VPC endpoints
  • Signing profiles and audit trails

Regstack only composes; it never calls cloud APIs itself.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Init(logLevel)
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(composeCmd)
	rootCmd.AddCommand(graphCmd)
	rootCmd.AddCommand(versionCmd)
}
