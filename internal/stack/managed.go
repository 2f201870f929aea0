package stack

import "github.com/regstack-io/regstack/internal/ir"

// ManagedResult is the outcome of planning a resource with an external
// lifecycle (customer-managed key, signing profile). In create mode Intent
// is the cardinality-1 intent to emit; in reuse mode Intent is nil and
// Effective carries the caller-supplied override.
type ManagedResult struct {
	Intent    *ir.ResourceIntent
	Effective ir.EffectiveValue
}

// PlanManaged implements the create-vs-reuse duality on top of Resolve.
//
// Create mode emits the intent produced by build and marks it
// PreventDestroy: resources created here are never implicitly destroyed
// when a later run flips the toggle to reuse. That transition is one-way;
// adopting a pre-existing resource into managed state is an explicit
// external import step. Reuse mode emits nothing and requires a non-nil
// override, otherwise it fails with MissingReferenceError.
func PlanManaged(field string, createMode bool, override *string, build func() (*ir.ResourceIntent, string)) (ManagedResult, error) {
	if createMode {
		intent, handle := build()
		if intent.Lifecycle == nil {
			intent.Lifecycle = &ir.Lifecycle{}
		}
		intent.Lifecycle.PreventDestroy = true
		return ManagedResult{
			Intent:    intent,
			Effective: Resolve(true, override, &handle),
		}, nil
	}
	if override == nil {
		return ManagedResult{}, &ir.MissingReferenceError{Field: field, Mode: "reuse"}
	}
	return ManagedResult{Effective: Resolve(false, override, nil)}, nil
}
