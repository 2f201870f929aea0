package stack

import "github.com/regstack-io/regstack/internal/ir"

// restrictedMaxLen is the name budget for targets with strict charset rules
// (signing profiles allow [A-Za-z0-9]{1,64}).
const restrictedMaxLen = 64

// Compose derives the canonical resource name: envAbbr-baseName when an
// environment abbreviation is set, baseName unchanged otherwise.
func Compose(envAbbr, baseName string) string {
	if envAbbr == "" {
		return baseName
	}
	return envAbbr + "-" + baseName
}

// ComposeRestricted strips every character outside [A-Za-z0-9] and then
// truncates to 64 characters. Strip-then-truncate, so the length budget is
// spent only on characters that survive.
func ComposeRestricted(rawName string) string {
	stripped := make([]byte, 0, len(rawName))
	for i := 0; i < len(rawName); i++ {
		c := rawName[i]
		if c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' {
			stripped = append(stripped, c)
		}
	}
	if len(stripped) > restrictedMaxLen {
		stripped = stripped[:restrictedMaxLen]
	}
	return string(stripped)
}

// ComposeNames derives both name variants for a stack. The restricted name
// is derived from the canonical one.
func ComposeNames(envAbbr, baseName string) ir.NamingResult {
	canonical := Compose(envAbbr, baseName)
	return ir.NamingResult{
		Canonical:  canonical,
		Restricted: ComposeRestricted(canonical),
	}
}
