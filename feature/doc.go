// Package feature provides the process-wide feature-flag tracker.
//
// Features differ from configuration: configuration is part of a component's
// public interface, while a feature switch hides a fork between two
// implementations of the same contract. To keep call sites free of plumbing,
// feature state is asserted statically against one global tracker.
//
// The tracker is a write-once slot guarded by a three-state atomic machine.
// Exactly one registration wins; the provider's concrete state type is
// validated at registration so later unchecked reads cannot miscast. Reads
// are lock-free loads and never mutate the slot.
//
// Applications do not call the generic accessors in this package directly;
// the gen package emits typed wrappers per feature schema.
package feature
