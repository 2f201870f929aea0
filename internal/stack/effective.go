package stack

import "github.com/regstack-io/regstack/internal/ir"

// Resolve is the single precedence rule for conditional identifiers: when
// the create toggle is off the override (possibly absent) wins; when it is
// on, the internally created handle wins and any supplied override is
// ignored. The created handle does not exist in the off branch and is never
// read there.
//
// Every cross-resource identifier reference in the builder routes through
// this function, so a consumer can never observe a handle for a resource
// that was not emitted.
func Resolve(toggleOn bool, override, created *string) ir.EffectiveValue {
	if toggleOn {
		if created == nil {
			return ir.Absent()
		}
		return ir.Created(*created)
	}
	if override == nil {
		return ir.Absent()
	}
	return ir.Override(*override)
}
