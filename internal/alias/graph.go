package alias

import (
	"fmt"
	"sort"

	"github.com/roach88/montage/internal/project"
	"github.com/roach88/montage/internal/timing"
)

// node is one clip in the dependency graph. Clips with an alias are
// identified by the alias name; unaliased clips get a synthetic
// "track#:clip#" identity so they can still depend on named clips.
type node struct {
	id      string
	clip    *project.Clip
	targets []timing.AliasRef // alias references found in the clip's intent
}

// graph is the dependency graph extracted from a project's clips.
// Nodes are stored in deterministic traversal order (track, then clip),
// which fixes both cycle reporting and resolution order.
type graph struct {
	nodes   []*node
	byID    map[string]*node
	byAlias map[string]*project.Clip
}

// buildGraph scans every clip's start/length intent for alias references
// and returns the resulting graph. Fails on duplicate alias names; all
// other validation happens in separate passes so nothing has mutated yet
// when an error is reported.
func buildGraph(p *project.Project) (*graph, error) {
	g := &graph{
		byID:    make(map[string]*node),
		byAlias: make(map[string]*project.Clip),
	}

	var dup *Error
	p.ForEachClip(func(track, clip int, c *project.Clip) {
		id := fmt.Sprintf("%d:%d", track, clip)
		if c.Alias != "" {
			if prev, exists := g.byAlias[c.Alias]; exists && dup == nil {
				dup = &Error{
					Code:    CodeDuplicateAlias,
					Message: fmt.Sprintf("alias %q is defined by more than one clip", prev.Alias),
				}
				return
			}
			g.byAlias[c.Alias] = c
			id = c.Alias
		}

		n := &node{id: id, clip: c}
		for _, v := range []timing.Value{c.Intent.Start, c.Intent.Length} {
			if ref, ok := v.Ref(); ok {
				ref.Name = project.NormalizeAlias(ref.Name)
				n.targets = append(n.targets, ref)
			}
		}
		g.nodes = append(g.nodes, n)
		g.byID[id] = n
	})
	if dup != nil {
		return nil, dup
	}
	return g, nil
}

// hasEdges reports whether any clip references an alias at all.
// An edge-free graph is the fast path: resolution is a no-op.
func (g *graph) hasEdges() bool {
	for _, n := range g.nodes {
		if len(n.targets) > 0 {
			return true
		}
	}
	return false
}

// knownAliases returns the sorted list of defined alias names,
// used to make unknown-alias errors actionable.
func (g *graph) knownAliases() []string {
	names := make([]string, 0, len(g.byAlias))
	for name := range g.byAlias {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// checkTargets verifies every referenced alias exists and that the
// referenced timing field has a numeric value to copy: a literal, or an
// alias reference that resolution order will have made numeric first.
// "auto" and "end" targets have no value until the smart resolver runs,
// so referencing them is an authoring error, not a valid chain.
func (g *graph) checkTargets() error {
	for _, n := range g.nodes {
		for _, ref := range n.targets {
			target, ok := g.byAlias[ref.Name]
			if !ok {
				return &Error{
					Code:    CodeUnknownAlias,
					Message: fmt.Sprintf("clip %q references unknown alias %q", n.id, ref.Name),
					Known:   g.knownAliases(),
				}
			}

			var v timing.Value
			switch ref.Field {
			case timing.FieldStart:
				v = target.Intent.Start
			case timing.FieldLength:
				v = target.Intent.Length
			}
			switch v.Kind() {
			case timing.KindLiteral, timing.KindAlias:
				// Numeric now, or numeric once its own reference resolves.
			default:
				return &Error{
					Code: CodeUnresolvedTarget,
					Message: fmt.Sprintf("clip %q references %s, but that value is %q and cannot be copied",
						n.id, ref, v),
				}
			}
		}
	}
	return nil
}

// checkAcyclic runs a depth-first traversal with an explicit recursion
// stack and fails on the first cycle, reporting the ordered path as
// encountered (e.g. hero -> sidekick -> hero). Nodes are visited in
// deterministic graph order, so the reported path is stable.
func (g *graph) checkAcyclic() error {
	const (
		unvisited = iota
		inStack
		done
	)
	state := make(map[string]int, len(g.nodes))
	var stack []string

	var visit func(n *node) *Error
	visit = func(n *node) *Error {
		state[n.id] = inStack
		stack = append(stack, n.id)

		for _, ref := range n.targets {
			target := g.byID[ref.Name]
			switch state[target.id] {
			case inStack:
				// Slice the stack from the first occurrence of the target
				// to produce the ordered cycle path.
				start := 0
				for i, id := range stack {
					if id == target.id {
						start = i
						break
					}
				}
				path := append(append([]string{}, stack[start:]...), target.id)
				return &Error{
					Code:    CodeCycleDetected,
					Message: "alias references form a cycle",
					Cycle:   path,
				}
			case unvisited:
				if err := visit(target); err != nil {
					return err
				}
			}
		}

		stack = stack[:len(stack)-1]
		state[n.id] = done
		return nil
	}

	for _, n := range g.nodes {
		if state[n.id] == unvisited {
			if err := visit(n); err != nil {
				return err
			}
		}
	}
	return nil
}

// evaluationOrder returns the nodes in dependency-safe order: a
// post-order traversal that places every alias target before its
// dependents. Must be called only after checkAcyclic has passed.
func (g *graph) evaluationOrder() []*node {
	visited := make(map[string]bool, len(g.nodes))
	order := make([]*node, 0, len(g.nodes))

	var visit func(n *node)
	visit = func(n *node) {
		visited[n.id] = true
		for _, ref := range n.targets {
			if target := g.byID[ref.Name]; !visited[target.id] {
				visit(target)
			}
		}
		order = append(order, n)
	}

	for _, n := range g.nodes {
		if !visited[n.id] {
			visit(n)
		}
	}
	return order
}
