// Package app wires the application's services together.
package app

import (
	"fmt"

	"github.com/samber/do/v2"
	"go.opentelemetry.io/otel/trace"

	"github.com/dcapal/dcapal-web/internal/api"
	"github.com/dcapal/dcapal-web/internal/config"
	"github.com/dcapal/dcapal-web/internal/identity"
	"github.com/dcapal/dcapal-web/internal/pubsub"
	"github.com/dcapal/dcapal-web/internal/rendering"
	"github.com/dcapal/dcapal-web/internal/session"
)

// Dependencies holds the core services the screens are built from.
// It is resolved once from the injector and handed to the server.
type Dependencies struct {
	Config   config.Provider
	Bus      *pubsub.WatermillBridge
	Renderer *rendering.UniversalRenderer
	Identity *identity.Client
	API      *api.Client
	Store    *session.Store
	Gate     *session.Gate
}

// NewInjector registers every service provider. Services are built lazily
// on first use.
func NewInjector(cfg config.Provider, tracer trace.Tracer) do.Injector {
	i := do.New()

	do.ProvideValue(i, cfg)
	do.ProvideValue(i, tracer)

	do.Provide(i, func(i do.Injector) (*pubsub.WatermillBridge, error) {
		return pubsub.NewWatermillBridgeWithTracer(do.MustInvoke[trace.Tracer](i)), nil
	})
	do.Provide(i, func(i do.Injector) (*rendering.UniversalRenderer, error) {
		return rendering.NewUniversalRenderer(), nil
	})
	do.Provide(i, func(i do.Injector) (*identity.Client, error) {
		cfg := do.MustInvoke[config.Provider](i)
		bus := do.MustInvoke[*pubsub.WatermillBridge](i)
		return identity.NewClient(cfg.GetIdentityURL(), cfg.GetIdentityAnonKey(), cfg.GetHTTPTimeout(), bus), nil
	})
	do.Provide(i, func(i do.Injector) (*api.Client, error) {
		cfg := do.MustInvoke[config.Provider](i)
		return api.NewClient(cfg.GetAPIBaseURL(), cfg.GetHTTPTimeout()), nil
	})
	do.Provide(i, func(i do.Injector) (*session.Store, error) {
		cfg := do.MustInvoke[config.Provider](i)
		return session.NewStore(cfg.GetSessionName()), nil
	})
	do.Provide(i, func(i do.Injector) (*session.Gate, error) {
		return session.NewGate(do.MustInvoke[*pubsub.WatermillBridge](i)), nil
	})

	return i
}

// Resolve builds the Dependencies struct from the injector.
func Resolve(i do.Injector) (deps Dependencies, err error) {
	if deps.Config, err = do.Invoke[config.Provider](i); err != nil {
		return deps, fmt.Errorf("resolve config: %w", err)
	}
	if deps.Bus, err = do.Invoke[*pubsub.WatermillBridge](i); err != nil {
		return deps, fmt.Errorf("resolve bus: %w", err)
	}
	if deps.Renderer, err = do.Invoke[*rendering.UniversalRenderer](i); err != nil {
		return deps, fmt.Errorf("resolve renderer: %w", err)
	}
	if deps.Identity, err = do.Invoke[*identity.Client](i); err != nil {
		return deps, fmt.Errorf("resolve identity client: %w", err)
	}
	if deps.API, err = do.Invoke[*api.Client](i); err != nil {
		return deps, fmt.Errorf("resolve api client: %w", err)
	}
	if deps.Store, err = do.Invoke[*session.Store](i); err != nil {
		return deps, fmt.Errorf("resolve session store: %w", err)
	}
	if deps.Gate, err = do.Invoke[*session.Gate](i); err != nil {
		return deps, fmt.Errorf("resolve session gate: %w", err)
	}
	return deps, nil
}
