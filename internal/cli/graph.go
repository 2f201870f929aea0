package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/regstack-io/regstack/internal/stack"
)

var graphRegion string

var graphCmd = &cobra.Command{
	Use:   "graph [config]",
	Short: "Output the dependency graph in DOT format",
	Long: `Generates a visual representation of the intent dependency graph in
Graphviz DOT format. Pipe the output to 'dot' to generate an image:

  regstack graph | dot -Tpng > graph.png`,
	RunE: runGraph,
}

func init() {
	graphCmd.Flags().StringVar(&graphRegion, "region", "", "Provider region for region-scoped intents")
}

func runGraph(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd.Context(), args)
	if err != nil {
		return err
	}

	set, err := stack.Build(stack.Env{Region: graphRegion}, cfg)
	if err != nil {
		return err
	}

	dag, err := stack.BuildDAG(set.Intents)
	if err != nil {
		return fmt.Errorf("failed to build graph: %w", err)
	}

	fmt.Println("digraph regstack {")
	fmt.Println("  rankdir = \"BT\";")
	fmt.Println("  node [shape = rect];")
	fmt.Println()

	for _, intent := range set.Intents {
		fmt.Printf("  %q;\n", intent.Address())
	}
	fmt.Println()

	for _, intent := range set.Intents {
		addr := intent.Address()
		for _, dep := range dag.Dependencies(addr) {
			fmt.Printf("  %q -> %q;\n", addr, dep)
		}
	}

	fmt.Println("}")
	return nil
}
