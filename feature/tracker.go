package feature

import (
	"errors"
	"fmt"
	"reflect"
	"sync/atomic"

	"github.com/structconf/structconf/fetcher"
)

// ErrAlreadySet is returned when a tracker has already been registered.
// Losing a registration race is recoverable; the caller decides whether the
// second registration attempt was a bug.
var ErrAlreadySet = errors.New("tracker already set")

// ErrBadCast is returned when the registered provider's state type does not
// match the state type expected by the caller. This is an integration bug
// and should be treated as fatal even though it is returned as a value.
var ErrBadCast = errors.New("provider state type mismatch")

// ErrNoGlobalTracker is returned by checked accessors used before a tracker
// was registered. The caller supplies a fallback or propagates the condition.
var ErrNoGlobalTracker = errors.New("no tracker registered")

// Provider supplies the current feature state as an opaque value. The
// concrete type behind the value must never vary for a given provider; it is
// validated once at registration.
type Provider interface {
	CurrentState() any
}

// FetcherProvider adapts a fetcher.Fetcher into a Provider, so feature state
// can be sourced with the same atomic snapshot machinery as configuration.
type FetcherProvider[S any] struct {
	states fetcher.Fetcher[S]
}

// NewFetcherProvider creates a Provider backed by the given fetcher.
func NewFetcherProvider[S any](states fetcher.Fetcher[S]) *FetcherProvider[S] {
	return &FetcherProvider[S]{states: states}
}

// CurrentState returns the latest state snapshot.
func (p *FetcherProvider[S]) CurrentState() any {
	return *p.states.LatestSnapshot()
}

// StaticProvider creates a Provider pinned to a single state value.
func StaticProvider[S any](state S) *FetcherProvider[S] {
	return NewFetcherProvider[S](fetcher.NewStatic(&state))
}

// Tracker registration states. Transitions are forward-only: uninitialized to
// initializing to initialized, with no reset.
const (
	uninitialized uint32 = iota
	initializing
	initialized
)

// Tracker is a write-once slot holding a feature state Provider. Register is
// the only writer; reads never mutate the slot. The zero value is an
// unregistered tracker ready for use.
//
// Most applications use the process-wide tracker through RegisterGlobal and
// the accessor functions; standalone Tracker values exist so the registration
// machinery itself can be exercised in isolation.
type Tracker struct {
	state    atomic.Uint32
	provider atomic.Value
}

// Register installs p as the tracker's provider. Exactly one concurrent
// caller wins the slot via compare-and-swap; every other caller receives
// ErrAlreadySet.
//
// After publishing, the winner probes the provider once and validates the
// concrete state type against S. A mismatch yields ErrBadCast even though
// registration already completed: catching the mismatch at startup is what
// makes the unchecked accessors safe to use later.
func Register[S any](t *Tracker, p Provider) error {
	if !t.state.CompareAndSwap(uninitialized, initializing) {
		return ErrAlreadySet
	}

	t.provider.Store(p)
	t.state.Store(initialized)

	if _, ok := p.CurrentState().(S); !ok {
		return fmt.Errorf("%w: expected %v", ErrBadCast, reflect.TypeOf((*S)(nil)).Elem())
	}

	return nil
}

// State fetches the current feature state from the tracker's provider.
// It returns ErrNoGlobalTracker if no provider has been registered, and
// ErrBadCast if the provider's state type does not match S. The latter is
// unreachable when registration-time validation passed.
func State[S any](t *Tracker) (S, error) {
	var zero S

	if t.state.Load() != initialized {
		return zero, ErrNoGlobalTracker
	}

	provider, ok := t.provider.Load().(Provider)
	if !ok {
		return zero, ErrNoGlobalTracker
	}

	state, ok := provider.CurrentState().(S)
	if !ok {
		return zero, fmt.Errorf("%w: expected %v", ErrBadCast, reflect.TypeOf((*S)(nil)).Elem())
	}

	return state, nil
}

// Registered reports whether a provider has been installed.
func (t *Tracker) Registered() bool {
	return t.state.Load() == initialized
}

//nolint:gochecknoglobals // the process-wide write-once tracker slot.
var global Tracker

// RegisterGlobal installs p as the process-wide tracker. It can succeed only
// once per process; see Register for the validation contract.
func RegisterGlobal[S any](p Provider) error {
	return Register[S](&global, p)
}

// GlobalState fetches the current feature state from the process-wide
// tracker.
func GlobalState[S any]() (S, error) {
	return State[S](&global)
}

// GlobalRegistered reports whether the process-wide tracker has been set.
func GlobalRegistered() bool {
	return global.Registered()
}
