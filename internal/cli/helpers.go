package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/regstack-io/regstack/internal/eval"
	"github.com/regstack-io/regstack/internal/ir"
)

// loadConfig resolves the config location from args (defaulting to
// registry.pkl in the working directory) and evaluates it.
func loadConfig(ctx context.Context, args []string) (*ir.RegistryConfig, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}
	entryPoint := "registry.pkl"

	if len(args) > 0 {
		absPath, err := filepath.Abs(args[0])
		if err != nil {
			return nil, fmt.Errorf("failed to resolve path %s: %w", args[0], err)
		}
		info, err := os.Stat(absPath)
		if err != nil {
			return nil, fmt.Errorf("failed to stat path %s: %w", args[0], err)
		}
		if info.IsDir() {
			wd = absPath
		} else {
			wd = filepath.Dir(absPath)
			entryPoint = filepath.Base(absPath)
		}
	}

	evaluator := eval.NewEvaluator(wd)
	cfg, err := evaluator.LoadRegistryConfig(ctx, entryPoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}
