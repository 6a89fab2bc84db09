// Package schema models declared configuration and feature-flag schemas.
//
// A configuration schema is a finite tree of nodes. Each node has a globally
// unique type identifier and an ordered list of fields; a field is either a
// leaf value with an opaque Go type, or an inline nested node. Nodes and
// fields can carry the first-class restart annotation and passthrough struct
// tags for the serialization collaborator.
//
// A feature schema is a flat list of named boolean flags with compiled-in
// defaults.
//
// Schemas are build-time artifacts: they are loaded from YAML, validated, and
// handed to the gen package, which emits the runtime types. Nothing in this
// package survives into the generated code.
package schema
