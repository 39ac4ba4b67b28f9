// Package reactive evaluates a directed graph of named computations. Sources
// are values set from outside; rules compute a value from their inputs and
// are re-run whenever one of those inputs changes.
package reactive

import (
	"context"
	"errors"
	"fmt"
)

var (
	ErrDuplicateID  = errors.New("reactive: duplicate node id")
	ErrUnknownInput = errors.New("reactive: unknown input")
	ErrNotSource    = errors.New("reactive: not a source")
	ErrNoInputs     = errors.New("reactive: rule has no inputs")
)

// Func computes a rule's value. inputs are in the order the rule declared them.
type Func func(ctx context.Context, inputs []any) (any, error)

type node struct {
	id     string
	inputs []string
	fn     Func // nil for sources
}

// Graph is built once and then evaluated concurrently; it holds no values
// between evaluations.
type Graph struct {
	nodes map[string]*node
	order []*node
}

func New() *Graph {
	return &Graph{nodes: make(map[string]*node)}
}

// Source declares an externally set value.
func (g *Graph) Source(id string) error {
	return g.add(&node{id: id})
}

// Rule declares a computed value. Every input must already be declared, so
// declaration order is a valid evaluation order and cycles cannot be built.
func (g *Graph) Rule(id string, inputs []string, fn Func) error {
	if len(inputs) == 0 {
		return fmt.Errorf("%w: %s", ErrNoInputs, id)
	}
	for _, in := range inputs {
		if _, ok := g.nodes[in]; !ok {
			return fmt.Errorf("%w: %s needs %s", ErrUnknownInput, id, in)
		}
	}
	return g.add(&node{id: id, inputs: append([]string(nil), inputs...), fn: fn})
}

func (g *Graph) add(n *node) error {
	if _, ok := g.nodes[n.id]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateID, n.id)
	}
	g.nodes[n.id] = n
	g.order = append(g.order, n)
	return nil
}

// Dependents lists, in evaluation order, every rule downstream of id.
func (g *Graph) Dependents(id string) []string {
	dirty := map[string]bool{id: true}
	var out []string
	for _, n := range g.order {
		if n.fn == nil || !anyOf(n.inputs, dirty) {
			continue
		}
		dirty[n.id] = true
		out = append(out, n.id)
	}
	return out
}

// Update is the result of one evaluation pass.
type Update struct {
	// Values holds the new value of every rule that ran successfully.
	Values map[string]any
	// Errors holds the failure of every rule that ran and failed.
	Errors map[string]error
	// Skipped lists rules not run because an upstream rule failed.
	Skipped []string
	// Order lists the rules that ran, in the order they ran.
	Order []string
}

// Evaluate sets the given sources and re-runs every rule downstream of them.
// A rule reads the value its inputs produced in this pass; an input that did
// not change in this pass is read from current, which may be nil.
func (g *Graph) Evaluate(ctx context.Context, changes map[string]any, current map[string]any) (*Update, error) {
	values := make(map[string]any, len(current)+len(changes))
	for k, v := range current {
		values[k] = v
	}
	changed := make(map[string]bool, len(changes))
	for id, v := range changes {
		n, ok := g.nodes[id]
		if !ok || n.fn != nil {
			return nil, fmt.Errorf("%w: %s", ErrNotSource, id)
		}
		values[id] = v
		changed[id] = true
	}

	up := &Update{Values: map[string]any{}, Errors: map[string]error{}}
	failed := map[string]bool{}
	for _, n := range g.order {
		if n.fn == nil || !anyOf(n.inputs, changed) {
			continue
		}
		if anyOf(n.inputs, failed) {
			failed[n.id] = true
			changed[n.id] = true
			up.Skipped = append(up.Skipped, n.id)
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		args := make([]any, len(n.inputs))
		for i, in := range n.inputs {
			args[i] = values[in]
		}
		up.Order = append(up.Order, n.id)
		v, err := n.fn(ctx, args)
		if err != nil {
			failed[n.id] = true
			changed[n.id] = true
			up.Errors[n.id] = err
			continue
		}
		values[n.id] = v
		changed[n.id] = true
		up.Values[n.id] = v
	}
	return up, nil
}

func anyOf(ids []string, set map[string]bool) bool {
	for _, id := range ids {
		if set[id] {
			return true
		}
	}
	return false
}
