package feature

import (
	"errors"
	"testing"
)

// Enabled asserts a flag against the process-wide tracker. Generated code
// wraps this with the concrete state type, lookup, and compiled defaults.
//
// If no tracker was registered, behavior depends on the build mode: test
// binaries fall back to the flag's compiled-in default so unit tests are
// isolated from global registration order, while all other binaries panic.
// Silently applying a default in production is exactly the failure mode this
// package exists to prevent; crashing surfaces the missing registration
// before it can be deployed. Callers that want a fallback opt in explicitly
// with EnabledOr or EnabledOrDefault.
func Enabled[S, F any](flag F, lookup func(S, F) bool, fallback func(F) bool) bool {
	state, err := GlobalState[S]()
	if err != nil {
		if errors.Is(err, ErrNoGlobalTracker) && testing.Testing() {
			return fallback(flag)
		}

		panic(err)
	}

	return lookup(state, flag)
}

// EnabledOr asserts a flag, returning the provided value when no tracker was
// registered. A state type mismatch still panics; it is an integration bug,
// not a missing registration.
func EnabledOr[S, F any](flag F, lookup func(S, F) bool, fallback bool) bool {
	state, err := GlobalState[S]()
	if err != nil {
		if errors.Is(err, ErrNoGlobalTracker) {
			return fallback
		}

		panic(err)
	}

	return lookup(state, flag)
}

// EnabledOrDefault asserts a flag, returning the flag's compiled-in default
// when no tracker was registered, in every build mode. Unlike Enabled, using
// this function documents at the call site that the default can be applied.
func EnabledOrDefault[S, F any](flag F, lookup func(S, F) bool, fallback func(F) bool) bool {
	return EnabledOr[S](flag, lookup, fallback(flag))
}

// TryEnabled asserts a flag, returning ErrNoGlobalTracker when no tracker was
// registered instead of panicking.
func TryEnabled[S, F any](flag F, lookup func(S, F) bool) (bool, error) {
	state, err := GlobalState[S]()
	if err != nil {
		return false, err
	}

	return lookup(state, flag), nil
}
