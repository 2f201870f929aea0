package ir

// NamingResult holds the derived names for the stack's resources: the
// canonical environment-prefixed name, and a charset-restricted variant for
// targets with strict naming rules (signing profiles).
type NamingResult struct {
	Canonical  string
	Restricted string
}
