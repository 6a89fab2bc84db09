// Package structconf ties the snapshot runtime into go.uber.org/fx, so an
// application can compose fetchers, derived sub-fetchers, and feature
// tracker registration the same way it composes the rest of its dependency
// graph.
package structconf

import (
	"log/slog"

	"github.com/structconf/structconf/feature"
	"github.com/structconf/structconf/fetcher"

	"go.uber.org/fx"
)

// ProvideFetcher supplies a fetcher to the Fx graph as Fetcher[T], hiding
// the concrete source implementation from consumers.
//
//nolint:ireturn // fx.Option is the standard return type for Fx modules
func ProvideFetcher[T any](f fetcher.Fetcher[T]) fx.Option {
	return fx.Provide(func() fetcher.Fetcher[T] {
		return f
	})
}

// ProvideSubFetcher derives a Fetcher[B] from the graph's Fetcher[A] using
// the given projection, typically a generated Share method. Components that
// depend only on the B slice of the configuration tree declare Fetcher[B]
// and stay decoupled from A entirely.
//
//nolint:ireturn // fx.Option is the standard return type for Fx modules
func ProvideSubFetcher[A, B any](share func(*A) *B) fx.Option {
	return fx.Provide(func(parent fetcher.Fetcher[A]) fetcher.Fetcher[B] {
		return fetcher.Sub(parent, share)
	})
}

// RegisterFeatures installs the graph's feature Provider as the process-wide
// tracker during startup. Registration is write-once; composing this option
// twice fails the second Invoke.
//
//nolint:ireturn // fx.Option is the standard return type for Fx modules
func RegisterFeatures[S any]() fx.Option {
	return fx.Invoke(func(p feature.Provider) error {
		err := feature.RegisterGlobal[S](p)
		if err != nil {
			return err
		}

		slog.Info("feature tracker registered")

		return nil
	})
}
