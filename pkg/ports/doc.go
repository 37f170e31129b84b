/*
Package ports defines the collaborator boundaries of the chainspec engine.

These interfaces decouple tree building and realization from the assertion
engine, the spec runner and the sources of subject values.

# Key Interfaces

  - Asserter: Supplies the assertion entry point and checked-member lookup.
  - SpecRunner: Registers groups, setup hooks and cases.
  - DelayFunc: Waits before a retry attempt and runs it.
  - SubjectSource: Produces the subject value fed into the root of a tree.
*/
package ports
