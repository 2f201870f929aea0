package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/regstack-io/regstack/internal/stack"
)

var (
	composeRegion  string
	composeOutFile string
)

var composeCmd = &cobra.Command{
	Use:   "compose [config]",
	Short: "Compose the resource intent set",
	Long: `Builds the ordered resource intent set from the configuration and prints
it. The intents are what a provisioning engine consumes; composing the same
configuration twice always yields an identical set.`,
	RunE: runCompose,
}

func init() {
	composeCmd.Flags().StringVar(&composeRegion, "region", "", "Provider region for region-scoped intents")
	composeCmd.Flags().StringVarP(&composeOutFile, "out", "o", "", "Write the intent set to a JSON file")
}

func runCompose(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd.Context(), args)
	if err != nil {
		return err
	}

	set, err := stack.Build(stack.Env{Region: composeRegion}, cfg)
	if err != nil {
		return err
	}

	renderIntents(set)
	renderBindings(set.Bindings)

	if composeOutFile != "" {
		data, err := json.MarshalIndent(set, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal intent set: %w", err)
		}
		if err := os.WriteFile(composeOutFile, append(data, '\n'), 0644); err != nil {
			return fmt.Errorf("failed to write intent set: %w", err)
		}
		fmt.Printf("\nIntent set written to %s\n", composeOutFile)
	}

	return nil
}
