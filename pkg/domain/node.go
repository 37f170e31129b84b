package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Kind defines how a node is realized.
type Kind int

const (
	// KindGroup becomes a named group with a setup hook and nested content.
	KindGroup Kind = iota
	// KindCase becomes one runnable case. It is the last deferred boundary of a chain.
	KindCase
	// KindStep executes immediately inside a case (one member access of an assertion chain).
	KindStep
)

// String implements fmt.Stringer.
func (k Kind) String() string {
	switch k {
	case KindGroup:
		return "group"
	case KindCase:
		return "case"
	case KindStep:
		return "step"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Assertion entry descriptions.
const (
	DescriptionShould           = "should"
	DescriptionShouldEventually = "shouldEventually"
)

// StepFunc computes a node's result from the result of the previous node.
type StepFunc func(prev any) (any, error)

// Node is a unit of the action tree.
// The parent pointer is assigned once by NewRoot/Attach and never changes.
type Node struct {
	parent      *Node
	description string
	step        StepFunc
	children    []*Node
	kind        Kind

	args    []any
	invoked bool
}

// NewRoot creates the root of a tree. The root is always a group.
func NewRoot(description string, step StepFunc) *Node {
	return &Node{
		description: description,
		step:        step,
		kind:        KindGroup,
	}
}

// Attach creates a child of n and appends it to n's children.
func (n *Node) Attach(kind Kind, description string, step StepFunc) *Node {
	child := &Node{
		parent:      n,
		description: description,
		step:        step,
		kind:        kind,
	}
	n.children = append(n.children, child)
	return child
}

// Parent returns the owning node, or nil for the root.
func (n *Node) Parent() *Node { return n.parent }

// IsRoot reports whether n has no parent.
func (n *Node) IsRoot() bool { return n.parent == nil }

// Description returns the node's own label without arguments.
func (n *Node) Description() string { return n.description }

// Kind returns the realization variant of the node.
func (n *Node) Kind() Kind { return n.kind }

// Children returns the node's children in attachment order.
// The returned slice must not be modified.
func (n *Node) Children() []*Node { return n.children }

// Invoke records the arguments of a call on a step node.
// Only step nodes accept invocation; other kinds return ErrNotInvocable.
func (n *Node) Invoke(args ...any) error {
	if n.kind != KindStep {
		return fmt.Errorf("%w: %s node %q", ErrNotInvocable, n.kind, n.description)
	}
	n.args = args
	n.invoked = true
	return nil
}

// Invoked reports whether the node received a call, including a call without arguments.
func (n *Node) Invoked() bool { return n.invoked }

// Args returns the captured call arguments, or nil when the node was never invoked.
func (n *Node) Args() []any { return n.args }

// Label renders the description followed by the call arguments, if any were captured.
func (n *Node) Label() string {
	if !n.invoked || len(n.args) == 0 {
		return n.description
	}
	return n.description + " " + RenderArgs(n.args)
}

// Ancestors returns n followed by its parent chain up to the root, nearest first.
func (n *Node) Ancestors() []*Node {
	var ancestors []*Node
	for current := n; current != nil; current = current.parent {
		ancestors = append(ancestors, current)
	}
	return ancestors
}

// Root returns the root of the tree containing n.
func (n *Node) Root() *Node {
	current := n
	for current.parent != nil {
		current = current.parent
	}
	return current
}

// UnderAssertion reports whether n or one of its ancestors is an assertion entry.
func (n *Node) UnderAssertion() bool {
	for _, a := range n.Ancestors() {
		if a.kind == KindCase && isAssertionEntry(a.description) {
			return true
		}
	}
	return false
}

// UnderEventually reports whether n descends from a shouldEventually entry.
func (n *Node) UnderEventually() bool {
	for _, a := range n.Ancestors() {
		if a.kind == KindCase && a.description == DescriptionShouldEventually {
			return true
		}
	}
	return false
}

// Execute runs the node's step against the previous result.
func (n *Node) Execute(prev any) (any, error) {
	if n.step == nil {
		return prev, nil
	}
	return n.step(prev)
}

// IsAssertionEntry reports whether name opens an assertion chain.
func IsAssertionEntry(name string) bool { return isAssertionEntry(name) }

func isAssertionEntry(name string) bool {
	return name == DescriptionShould || name == DescriptionShouldEventually
}

// RenderArgs renders call arguments as comma separated JSON values.
// Values that cannot be encoded fall back to their %v form.
func RenderArgs(args []any) string {
	parts := make([]string, 0, len(args))
	for _, arg := range args {
		parts = append(parts, RenderValue(arg))
	}
	return strings.Join(parts, ",")
}

// RenderValue renders a single value as JSON.
func RenderValue(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(b)
}
