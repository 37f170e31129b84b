/*
Package assertion is the default assertion engine of chainspec.

Chains are resolved by name through Member, so the builder call
Call("equal", 5) on a should chain ends up in (*Assertion).Equal. Comparison
semantics are delegated to testify's assert package, evaluated against a
collector instead of a *testing.T.
*/
package assertion
