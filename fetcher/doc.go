// Package fetcher provides lock-free distribution of immutable configuration
// snapshots.
//
// Code that needs to follow configuration updates depends on a Fetcher rather
// than on a configuration struct. Implementations publish updates by swapping
// an atomic pointer to a freshly built snapshot, so readers never take a lock
// and never observe a half-applied update. Derived sub-fetchers let a
// component depend on just the slice of a larger configuration tree that it
// actually uses.
package fetcher
