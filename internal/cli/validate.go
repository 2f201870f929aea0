package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/regstack-io/regstack/internal/stack"
)

var validateCmd = &cobra.Command{
	Use:   "validate [config]",
	Short: "Validate a registry configuration",
	Long: `Evaluates the Pkl configuration and resolves its feature toggles without
building the intent set. Enum violations and missing reuse-mode overrides
are reported here, before any resource logic runs.`,
	RunE: runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd.Context(), args)
	if err != nil {
		return err
	}

	if _, err := stack.ResolveToggles(cfg); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	for _, warning := range stack.OverrideWarnings(cfg) {
		fmt.Printf("Warning: %s\n", warning)
	}

	fmt.Println("Configuration is valid!")
	return nil
}
