// Package gen compiles validated schemas into Go source.
//
// For a config tree it emits, per node, an immutable snapshot type, an owned
// compact mirror, freeze/compact conversions between the two, restart
// detection over the restart-tagged subset of the subtree, and no-copy Share
// projections from every ancestor to every descendant. For a feature set it
// emits the flag enumeration, state record, defaults, builder, and typed
// wrappers over the global tracker.
//
// Validation failures are fatal and reported before any code is emitted; a
// schema that generates is a schema whose projections are unambiguous.
package gen
