package stack

import (
	"sort"

	"github.com/regstack-io/regstack/internal/ir"
)

// AccessLevel selects the action set a policy statement grants.
type AccessLevel string

const (
	AccessReadOnly  AccessLevel = "ReadOnly"
	AccessReadWrite AccessLevel = "ReadWrite"
)

const policyVersion = "2012-10-17"

// Action lists are fixed and ordered so identical inputs produce
// byte-identical documents.
var pullActions = []string{
	"ecr:GetDownloadUrlForLayer",
	"ecr:BatchGetImage",
	"ecr:BatchCheckLayerAvailability",
}

var pushActions = []string{
	"ecr:PutImage",
	"ecr:InitiateLayerUpload",
	"ecr:UploadLayerPart",
	"ecr:CompleteLayerUpload",
}

// Synthesize builds a single-statement policy document granting the given
// principals pull access, plus push access for AccessReadWrite. An empty
// principal set yields no document at all (nil), never an empty one.
func Synthesize(principals []string, level AccessLevel) *ir.PolicyDocument {
	set := normalizePrincipals(principals)
	if len(set) == 0 {
		return nil
	}

	sid := "AllowPull"
	actions := append([]string{}, pullActions...)
	if level == AccessReadWrite {
		sid = "AllowPushPull"
		actions = append(actions, pushActions...)
	}

	return &ir.PolicyDocument{
		Version: policyVersion,
		Statements: []ir.PolicyStatement{{
			Sid:       sid,
			Effect:    "Allow",
			Principal: ir.PolicyPrincipal{AWS: set},
			Actions:   actions,
		}},
	}
}

// SynthesizeRepositoryAccess merges a read-only and a read-write principal
// set into one document. Read-write dominates: a principal in both sets
// appears only in the push-pull statement, never twice.
func SynthesizeRepositoryAccess(readOnly, readWrite []string) *ir.PolicyDocument {
	rw := normalizePrincipals(readWrite)
	rwSet := make(map[string]bool, len(rw))
	for _, p := range rw {
		rwSet[p] = true
	}

	var ro []string
	for _, p := range normalizePrincipals(readOnly) {
		if !rwSet[p] {
			ro = append(ro, p)
		}
	}

	pull := Synthesize(ro, AccessReadOnly)
	push := Synthesize(rw, AccessReadWrite)

	var statements []ir.PolicyStatement
	if pull != nil {
		statements = append(statements, pull.Statements...)
	}
	if push != nil {
		statements = append(statements, push.Statements...)
	}
	if len(statements) == 0 {
		return nil
	}
	return &ir.PolicyDocument{Version: policyVersion, Statements: statements}
}

// normalizePrincipals deduplicates and sorts so document output never
// depends on input order.
func normalizePrincipals(principals []string) []string {
	seen := make(map[string]bool, len(principals))
	var out []string
	for _, p := range principals {
		if p == "" || seen[p] {
			continue
		}
		seen[p] = true
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}
