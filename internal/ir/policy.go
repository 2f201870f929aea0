package ir

// PolicyDocument is a synthesized access-policy document. A document with
// zero statements is never constructed; callers represent that case as nil.
type PolicyDocument struct {
	Version    string            `json:"Version"`
	Statements []PolicyStatement `json:"Statement"`
}

// PolicyStatement grants Actions to Principals. Principals and Actions are
// kept sorted/fixed-order so identical inputs marshal byte-identically.
type PolicyStatement struct {
	Sid       string          `json:"Sid"`
	Effect    string          `json:"Effect"`
	Principal PolicyPrincipal `json:"Principal"`
	Actions   []string        `json:"Action"`
}

// PolicyPrincipal holds the identities a statement applies to.
type PolicyPrincipal struct {
	AWS []string `json:"AWS"`
}
