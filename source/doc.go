// Package source is the seam between generated snapshot types and the
// external world: a Parser decodes raw bytes into a snapshot, a DataSource
// supplies those bytes, and Snapshot ties them together to produce the first
// immutable snapshot for a fetcher to distribute.
//
// The packages source/yamlparser and source/filesource provide the common
// YAML-file pairing.
package source
