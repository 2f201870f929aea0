package stack

import (
	"fmt"
	"sort"
	"strings"

	"github.com/regstack-io/regstack/internal/ir"
)

// refScheme prefixes identifier handles wired between intents:
// ref://<kind>/<name>/<attr>, e.g. ref://aws:KMS.Key/dev-myrepo/arn.
const refScheme = "ref://"

// Ref builds an identifier handle for an attribute of an intent. The
// external engine substitutes the materialized value after creating the
// producing resource.
func Ref(kind, name, attr string) string {
	return refScheme + kind + "/" + name + "/" + attr
}

// DAG is the dependency graph over a built intent set. It exists to enforce
// the graph invariants (acyclic, no edge to an absent node) and to give the
// engine explicit creation ordering and blocked-chain reporting.
type DAG struct {
	nodes map[string]*dagNode
	order []string
}

type dagNode struct {
	addr       string
	deps       []string // addresses this node depends on
	dependents []string // addresses depending on this node
}

// BuildDAG constructs the dependency graph from intents, resolving explicit
// DependsOn edges and implicit ref:// handles inside properties. Unlike a
// general resource graph, every edge target must exist: a reference to an
// intent that was never emitted is a composition bug, not a soft miss.
func BuildDAG(intents []*ir.ResourceIntent) (*DAG, error) {
	dag := &DAG{nodes: make(map[string]*dagNode, len(intents))}

	for _, in := range intents {
		addr := in.Address()
		if _, dup := dag.nodes[addr]; dup {
			return nil, fmt.Errorf("duplicate intent address %s", addr)
		}
		dag.nodes[addr] = &dagNode{addr: addr}
	}

	for _, in := range intents {
		node := dag.nodes[in.Address()]

		for _, dep := range in.DependsOn {
			if _, ok := dag.nodes[dep]; !ok {
				return nil, fmt.Errorf("%s depends on %s, which is not part of the intent set", in.Address(), dep)
			}
			node.deps = append(node.deps, dep)
		}

		for _, ref := range extractRefs(in.Properties) {
			depAddr, err := refToAddr(ref)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", in.Address(), err)
			}
			if _, ok := dag.nodes[depAddr]; !ok {
				return nil, fmt.Errorf("%s references %s, which is not part of the intent set", in.Address(), depAddr)
			}
			node.deps = append(node.deps, depAddr)
		}

		node.deps = dedupeSorted(node.deps)
	}

	for addr, node := range dag.nodes {
		for _, dep := range node.deps {
			dag.nodes[dep].dependents = append(dag.nodes[dep].dependents, addr)
		}
	}
	for _, node := range dag.nodes {
		node.dependents = dedupeSorted(node.dependents)
	}

	order, err := dag.topoSort()
	if err != nil {
		return nil, err
	}
	dag.order = order

	return dag, nil
}

// CreationOrder returns addresses in a deterministic dependency-respecting
// order (lexicographic among ready nodes, so re-evaluation is byte-stable).
func (d *DAG) CreationOrder() []string {
	return d.order
}

// Dependencies returns the direct dependency addresses of addr.
func (d *DAG) Dependencies(addr string) []string {
	if node, ok := d.nodes[addr]; ok {
		return node.deps
	}
	return nil
}

// TransitiveDependents returns every address downstream of addr: the chain
// that is blocked when addr fails to provision.
func (d *DAG) TransitiveDependents(addr string) []string {
	seen := make(map[string]bool)
	var visit func(string)
	visit = func(a string) {
		node, ok := d.nodes[a]
		if !ok {
			return
		}
		for _, dep := range node.dependents {
			if !seen[dep] {
				seen[dep] = true
				visit(dep)
			}
		}
	}
	visit(addr)

	out := make([]string, 0, len(seen))
	for a := range seen {
		out = append(out, a)
	}
	sort.Strings(out)
	return out
}

// NewProvisioningError builds the per-node failure report for the external
// engine: the failed address plus the dependency chain it blocked.
func (d *DAG) NewProvisioningError(addr string, err error) *ir.ProvisioningError {
	return &ir.ProvisioningError{
		Address: addr,
		Blocked: d.TransitiveDependents(addr),
		Err:     err,
	}
}

// topoSort runs Kahn's algorithm, always draining the lexicographically
// smallest ready node so the order is deterministic.
func (d *DAG) topoSort() ([]string, error) {
	inDegree := make(map[string]int, len(d.nodes))
	for addr, node := range d.nodes {
		inDegree[addr] = len(node.deps)
	}

	var ready []string
	for addr, deg := range inDegree {
		if deg == 0 {
			ready = append(ready, addr)
		}
	}
	sort.Strings(ready)

	sorted := make([]string, 0, len(d.nodes))
	for len(ready) > 0 {
		addr := ready[0]
		ready = ready[1:]
		sorted = append(sorted, addr)

		for _, dep := range d.nodes[addr].dependents {
			inDegree[dep]--
			if inDegree[dep] == 0 {
				ready = insertSorted(ready, dep)
			}
		}
	}

	if len(sorted) != len(d.nodes) {
		return nil, fmt.Errorf("dependency cycle detected in intent graph")
	}
	return sorted, nil
}

// extractRefs collects every ref:// handle in a property value tree.
func extractRefs(v any) []string {
	var refs []string
	switch val := v.(type) {
	case string:
		if strings.HasPrefix(val, refScheme) {
			refs = append(refs, val)
		}
	case map[string]any:
		for _, item := range val {
			refs = append(refs, extractRefs(item)...)
		}
	case []any:
		for _, item := range val {
			refs = append(refs, extractRefs(item)...)
		}
	case []string:
		for _, item := range val {
			refs = append(refs, extractRefs(item)...)
		}
	}
	return refs
}

// refToAddr converts ref://<kind>/<name>/<attr> to the producer address
// <kind>.<name>.
func refToAddr(ref string) (string, error) {
	path := strings.TrimPrefix(ref, refScheme)
	parts := strings.SplitN(path, "/", 3)
	if len(parts) < 3 || parts[0] == "" || parts[1] == "" || parts[2] == "" {
		return "", fmt.Errorf("malformed reference %q", ref)
	}
	return parts[0] + "." + parts[1], nil
}

func dedupeSorted(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	sort.Strings(out)
	return out
}

func insertSorted(list []string, item string) []string {
	i := sort.SearchStrings(list, item)
	list = append(list, "")
	copy(list[i+1:], list[i:])
	list[i] = item
	return list
}
