// Package dag provides directed graph operations over the target registry.
// It supports cycle detection with path reporting and the post-order
// resolution that turns a requested target into an execution plan.
package dag

import (
	"github.com/crank-build/crank/internal/task"
)

// Graph is a read-only view of the dependency relationships in a registry.
// Node and edge order follow declaration order; resolution is deterministic
// for a fixed catalog.
type Graph struct {
	reg      *task.Registry
	children map[string][]string // dependency -> dependents, declared order
}

// New builds a graph over the given registry. Edges referencing names that
// are not registered are kept as declared; they surface as
// UnknownTargetError at resolution time, so declaration order in the
// catalog does not matter.
func New(reg *task.Registry) *Graph {
	g := &Graph{
		reg:      reg,
		children: make(map[string][]string),
	}
	for _, t := range reg.All() {
		for _, dep := range t.Deps {
			g.children[dep] = append(g.children[dep], t.Name)
		}
	}
	return g
}

// Parents returns the declared dependencies of name.
func (g *Graph) Parents(name string) []string {
	t, err := g.reg.Lookup(name)
	if err != nil {
		return nil
	}
	return t.Deps
}

// Children returns the targets that declare name as a dependency.
func (g *Graph) Children(name string) []string {
	return g.children[name]
}

// Roots returns targets with no dependencies, in declaration order.
func (g *Graph) Roots() []string {
	var roots []string
	for _, t := range g.reg.All() {
		if len(t.Deps) == 0 {
			roots = append(roots, t.Name)
		}
	}
	return roots
}

// Leaves returns targets nothing depends on, in declaration order.
func (g *Graph) Leaves() []string {
	var leaves []string
	for _, name := range g.reg.Names() {
		if len(g.children[name]) == 0 {
			leaves = append(leaves, name)
		}
	}
	return leaves
}

// visitState tracks DFS progress per node.
type visitState int

const (
	unvisited visitState = iota
	inProgress
	done
)

// Resolve computes the execution plan for root: a post-order topological
// walk in which every dependency precedes its dependent and each reachable
// target appears exactly once. Dependencies are visited in declared order,
// so the plan is fully determined by the catalog. Resolve performs no I/O.
//
// It fails with task.UnknownTargetError when root or any referenced
// dependency is not registered, and with CycleError when the graph has a
// cycle reachable from root.
func (g *Graph) Resolve(root string) ([]string, error) {
	if !g.reg.Has(root) {
		return nil, &task.UnknownTargetError{Name: root}
	}

	state := make(map[string]visitState)
	var stack []string // current DFS path, for cycle reporting
	var plan []string

	var visit func(name string) error
	visit = func(name string) error {
		state[name] = inProgress
		stack = append(stack, name)

		t, _ := g.reg.Lookup(name)
		for _, dep := range t.Deps {
			if !g.reg.Has(dep) {
				return &task.UnknownTargetError{Name: dep, Referrer: name}
			}
			switch state[dep] {
			case done:
				// Diamond dependencies collapse to a single execution.
			case inProgress:
				cycle := make([]string, len(stack), len(stack)+1)
				copy(cycle, stack)
				return &CycleError{Path: append(cycle, dep)}
			default:
				if err := visit(dep); err != nil {
					return err
				}
			}
		}

		stack = stack[:len(stack)-1]
		state[name] = done
		plan = append(plan, name)
		return nil
	}

	if err := visit(root); err != nil {
		return nil, err
	}
	return plan, nil
}
