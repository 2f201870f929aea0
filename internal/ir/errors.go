package ir

import (
	"fmt"
	"strings"
)

// ValidationError reports a configuration field whose value is outside its
// allowed set. It is raised before any graph construction starts.
type ValidationError struct {
	Field   string
	Value   string
	Allowed []string
}

func (e *ValidationError) Error() string {
	if len(e.Allowed) == 0 {
		return fmt.Sprintf("invalid value %q for %s", e.Value, e.Field)
	}
	return fmt.Sprintf("invalid value %q for %s (allowed: %s)", e.Value, e.Field, strings.Join(e.Allowed, ", "))
}

// MissingReferenceError reports a reuse-mode resource with no override
// identifier to reference. Same fail-fast tier as ValidationError.
type MissingReferenceError struct {
	Field string
	Mode  string
}

func (e *MissingReferenceError) Error() string {
	return fmt.Sprintf("missing reference: %s is required in %s mode", e.Field, e.Mode)
}

// ProvisioningError wraps a per-intent failure reported by the external
// engine, together with the dependent addresses the failure blocked.
type ProvisioningError struct {
	Address string
	Blocked []string
	Err     error
}

func (e *ProvisioningError) Error() string {
	if len(e.Blocked) == 0 {
		return fmt.Sprintf("provisioning %s failed: %v", e.Address, e.Err)
	}
	return fmt.Sprintf("provisioning %s failed (blocking %s): %v", e.Address, strings.Join(e.Blocked, ", "), e.Err)
}

func (e *ProvisioningError) Unwrap() error {
	return e.Err
}
