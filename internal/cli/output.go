package cli

import (
	"fmt"
	"sort"

	"github.com/regstack-io/regstack/internal/ir"
)

const (
	colorReset  = "\033[0m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
)

// renderIntents prints the composed intent set in declaration order.
func renderIntents(set *ir.IntentSet) {
	for _, intent := range set.Intents {
		fmt.Printf("\n%s  + %s {%s\n", colorGreen, intent.Address(), colorReset)

		keys := make([]string, 0, len(intent.Properties))
		for k := range intent.Properties {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Printf("%s      %s = %s%s\n", colorGreen, k, formatValue(intent.Properties[k]), colorReset)
		}

		for _, dep := range intent.DependsOn {
			fmt.Printf("%s      depends on %s%s\n", colorYellow, dep, colorReset)
		}
		if intent.Lifecycle != nil && intent.Lifecycle.PreventDestroy {
			fmt.Printf("%s      prevent destroy%s\n", colorYellow, colorReset)
		}
		fmt.Printf("%s    }%s\n", colorGreen, colorReset)
	}

	fmt.Printf("\nComposed %d intents.\n", len(set.Intents))
}

// renderBindings prints the output bindings a consumer reads after apply.
func renderBindings(b *ir.Bindings) {
	fmt.Println("\nBindings:")
	fmt.Printf("  repositoryUri       = %s\n", b.RepositoryURI)
	fmt.Printf("  publicRepositoryUri = %s\n", formatEffective(b.PublicRepositoryURI))
	fmt.Printf("  kmsKeyId            = %s\n", formatEffective(b.KmsKeyID))
	fmt.Printf("  signingProfileArn   = %s\n", formatEffective(b.SigningProfileARN))
	fmt.Printf("  vpcEndpointIds      = %v\n", b.VpcEndpointIDs)
}

func formatEffective(v ir.EffectiveValue) string {
	if !v.Present() {
		return "(absent)"
	}
	return fmt.Sprintf("%s (%s)", v.Value, v.Source)
}

// formatValue returns a human-readable representation of a property value.
func formatValue(v any) string {
	if v == nil {
		return "null"
	}
	switch val := v.(type) {
	case string:
		return fmt.Sprintf("%q", val)
	case map[string]any:
		return fmt.Sprintf("%v", val)
	default:
		return fmt.Sprintf("%v", val)
	}
}
