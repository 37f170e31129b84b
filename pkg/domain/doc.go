/*
Package domain contains the action tree that chainspec builds and realizes.

It is kept pure and free of external dependencies. Every other package works on
the types declared here.

# Key Entities

  - Node: one action of the tree (Group, Case or Step), with a deferred StepFunc.
  - AssertionError / MemberError: the two failure kinds a step can produce.
  - LifecycleHooks: callbacks observing step execution and retries.
*/
package domain
