package fetcher

import "sync/atomic"

// Fetcher returns the latest available snapshot of a configuration value.
//
// LatestSnapshot is a pure, non-blocking read: it always returns a complete,
// internally consistent snapshot and never a partially constructed one.
// Snapshots are immutable and shared by pointer, so requesting one is cheap
// and safe from any number of goroutines.
//
// Callers should fetch once per logical operation and hold the snapshot for
// the whole operation rather than re-fetching midway; mixing two generations
// inside one operation is non-deterministic. That discipline belongs to the
// caller, not the runtime.
//
// A Fetcher value itself is the thread-shareable handle: any implementation
// can be passed around behind this interface without exposing how updates
// are sourced.
type Fetcher[T any] interface {
	LatestSnapshot() *T
}

// Static is a Fetcher that always returns the same pre-built snapshot.
type Static[T any] struct {
	snapshot *T
}

// NewStatic creates a Fetcher pinned to a single snapshot.
func NewStatic[T any](snapshot *T) *Static[T] {
	return &Static[T]{snapshot: snapshot}
}

// LatestSnapshot returns the pinned snapshot.
func (f *Static[T]) LatestSnapshot() *T {
	return f.snapshot
}

// Func adapts a zero-argument closure into a Fetcher. The closure supplies
// whatever update strategy the caller wants: polling, push, file watching.
// It must return a complete snapshot on every call.
type Func[T any] func() *T

// LatestSnapshot invokes the closure.
func (f Func[T]) LatestSnapshot() *T {
	return f()
}

// Sub derives a Fetcher for a nested configuration from a Fetcher for its
// ancestor and a projection, typically one of the generated Share methods.
//
// The derived fetcher performs no caching: every call re-fetches the parent
// and re-applies the projection, so successive calls track successive parent
// generations in order. The projection returns a pointer already shared by
// the parent snapshot; no data is copied.
func Sub[A, B any](parent Fetcher[A], share func(*A) *B) Fetcher[B] {
	return Func[B](func() *B {
		return share(parent.LatestSnapshot())
	})
}

// Publisher is a Fetcher whose snapshot can be replaced at runtime. The
// current snapshot lives in an atomic pointer cell: Publish is a single
// lock-free pointer swap with release semantics, and LatestSnapshot is an
// acquire load, so readers that observe a new generation always observe it
// fully constructed.
type Publisher[T any] struct {
	current atomic.Pointer[T]
}

// NewPublisher creates a Publisher seeded with an initial snapshot.
func NewPublisher[T any](initial *T) *Publisher[T] {
	p := &Publisher[T]{}
	p.current.Store(initial)

	return p
}

// Publish atomically replaces the current snapshot. The previous snapshot
// stays valid for readers still holding it.
func (p *Publisher[T]) Publish(next *T) {
	p.current.Store(next)
}

// LatestSnapshot returns the most recently published snapshot.
func (p *Publisher[T]) LatestSnapshot() *T {
	return p.current.Load()
}
