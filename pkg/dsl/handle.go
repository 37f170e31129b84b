package dsl

import (
	"fmt"

	"github.com/aretw0/chainspec/pkg/domain"
)

// reserved names are probed by tooling on the handle itself and never grow the tree.
var reserved = map[string]bool{
	"":            true,
	"inspect":     true,
	"String":      true,
	"GoString":    true,
	"Format":      true,
	"MarshalJSON": true,
}

// IsReserved reports whether name is an introspection member that never synthesizes a node.
func IsReserved(name string) bool { return reserved[name] }

// Handle is the public face of one node of the tree.
type Handle struct {
	node    *domain.Node
	builder *Builder
}

// Node returns the node behind the handle.
func (h *Handle) Node() *domain.Node { return h.node }

// Err returns the errors recorded by the builder so far.
func (h *Handle) Err() error { return h.builder.err }

// Resolve synthesizes the node for a member access, if interception applies.
//
// "should" and "shouldEventually" open an assertion chain with a case node.
// Any other name under an assertion chain becomes a step resolving the member
// on the previous result. Reserved names and accesses outside an assertion
// chain return false.
func (h *Handle) Resolve(name string) (*Handle, bool) {
	if IsReserved(name) {
		return nil, false
	}

	if domain.IsAssertionEntry(name) {
		h.builder.logger.Debug("creating assertion entry", "name", name, "parent", h.node.Description())
		asserter := h.builder.asserter
		child := h.node.Attach(domain.KindCase, name, func(prev any) (any, error) {
			return asserter.Expect(prev), nil
		})
		return h.child(child), true
	}

	if !h.node.UnderAssertion() {
		return nil, false
	}

	h.builder.logger.Debug("creating assertion step", "name", name, "parent", h.node.Description())
	return h.child(h.attachStep(name)), true
}

// Get accesses a property.
// Outside an assertion chain it creates a group reading the property of the subject.
func (h *Handle) Get(name string) *Handle {
	if IsReserved(name) {
		h.builder.fail(fmt.Errorf("%w: %q", domain.ErrReservedMember, name))
		return h
	}
	if child, ok := h.Resolve(name); ok {
		return child
	}

	h.builder.logger.Debug("creating property group", "name", name, "parent", h.node.Description())
	asserter := h.builder.asserter
	child := h.node.Attach(domain.KindGroup, name, func(prev any) (any, error) {
		return asserter.Member(prev, name, domain.MemberProperty)
	})
	return h.child(child)
}

// Call accesses a method and calls it with args.
// Under an assertion chain the access and the call share one step node.
// Outside, it creates a group described as name(args) that calls the method on the subject.
func (h *Handle) Call(name string, args ...any) *Handle {
	if IsReserved(name) || domain.IsAssertionEntry(name) {
		h.builder.fail(fmt.Errorf("%w: %q cannot be called", domain.ErrReservedMember, name))
		return h
	}
	if h.node.UnderAssertion() {
		child, _ := h.Resolve(name)
		return child.Invoke(args...)
	}

	description := fmt.Sprintf("%s(%s)", name, domain.RenderArgs(args))
	h.builder.logger.Debug("creating method group", "name", description, "parent", h.node.Description())
	asserter := h.builder.asserter
	child := h.node.Attach(domain.KindGroup, description, func(prev any) (any, error) {
		return callMember(asserter.Member, prev, name, args)
	})
	return h.child(child)
}

// Invoke records call arguments on the handle's step node. Nothing executes until realization.
func (h *Handle) Invoke(args ...any) *Handle {
	if err := h.node.Invoke(args...); err != nil {
		h.builder.fail(err)
	}
	return h
}

// Should opens an assertion chain on the current result.
func (h *Handle) Should() *Handle {
	child, _ := h.Resolve(domain.DescriptionShould)
	return child
}

// ShouldEventually opens an assertion chain that is retried while it fails.
func (h *Handle) ShouldEventually() *Handle {
	child, _ := h.Resolve(domain.DescriptionShouldEventually)
	return child
}

func (h *Handle) attachStep(name string) *domain.Node {
	lookup := h.builder.asserter.Member
	var step *domain.Node
	step = h.node.Attach(domain.KindStep, name, func(prev any) (any, error) {
		if step.Invoked() {
			return callMember(lookup, prev, name, step.Args())
		}
		return lookup(prev, name, domain.MemberProperty)
	})
	return step
}

func (h *Handle) child(n *domain.Node) *Handle {
	return &Handle{node: n, builder: h.builder}
}

func callMember(lookup func(any, string, domain.MemberKind) (any, error), prev any, name string, args []any) (any, error) {
	member, err := lookup(prev, name, domain.MemberFunction)
	if err != nil {
		return nil, err
	}
	fn, ok := member.(domain.Callable)
	if !ok {
		return nil, &domain.MemberError{
			Name:   name,
			Want:   domain.MemberFunction,
			Target: fmt.Sprintf("%T", prev),
			Reason: fmt.Sprintf("resolved to %T", member),
		}
	}
	return fn(args...)
}
