/*
Package dsl grows an action tree from fluent member access.

Every Handle wraps one node of the tree. Resolving a member on a handle
synthesizes a child node and returns a handle for it, so a chain grows the tree
one node per access:

	b := dsl.New("counter service", func(any) (any, error) { return svc, nil })

	b.Subject().
		Call("Fetch", "orders").
		Get("Count").
		ShouldEventually().
		Call("equal", 5)

	root, err := b.Build()

Outside an assertion chain, Get and Call create groups that navigate the
subject. After Should or ShouldEventually every access becomes a step resolved
on the assertion context; a Call right after an access is recorded on the same
node, it never creates a second one.
*/
package dsl
