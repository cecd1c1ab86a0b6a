// Package commands implements the loftier CLI commands over the
// session store, request gateway, and route guard.
package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/cycks/loftier-cli/internal/api"
	"github.com/cycks/loftier-cli/internal/config"
	"github.com/cycks/loftier-cli/internal/gateway"
	"github.com/cycks/loftier-cli/internal/guard"
	"github.com/cycks/loftier-cli/internal/session"
)

type Globals struct {
	Debug   bool
	Version string
	Server  string
	Home    string
}

// runtime is the wired client core: storage, gateway, API clients,
// session store, and guard, assembled once per command invocation.
type runtime struct {
	store *session.Store
	guard *guard.Guard
	api   *api.Client
}

// navigator logs the full client-side navigation the session store
// performs on logout. In the CLI there is no page to replace; the next
// command re-evaluates the session from durable storage anyway.
type navigator struct{}

func (navigator) Replace(path string) {
	log.Info().Str("path", path).Msg("redirecting")
}

func newRuntime(globals *Globals) (*runtime, error) {
	setupLogging(globals.Debug)

	cfg, err := config.Load(globals.Home)
	if err != nil {
		return nil, err
	}
	if globals.Server != "" {
		cfg.Server = globals.Server
	}
	if cfg.Server == "" {
		return nil, errors.New("no server configured; pass --server, set LOFTIER_SERVER, or run `loftier configure`")
	}

	storage, err := session.NewStorage(globals.Home)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize session storage: %w", err)
	}

	gw := gateway.New(gateway.Config{
		BaseURL: cfg.BaseURL(),
		Tokens:  storage,
	})
	client := api.New(gw)
	store := session.NewStore(storage, gw, client.Auth, navigator{})
	gw.Use(gateway.SessionGuard(store))

	return &runtime{
		store: store,
		guard: guard.New(store),
		api:   client,
	}, nil
}

// restore resolves the persisted session before a command runs. Failure
// to confirm the profile is not fatal here: the store has already
// applied its policy, and the command's own guard check decides what
// the unconfirmed state means.
func (r *runtime) restore(ctx context.Context) {
	if err := r.store.Restore(ctx); err != nil {
		log.Debug().Err(err).Msg("session restore failed")
	}
}

// requireArea runs the route guard for a dashboard area and converts
// redirects into command errors carrying the guard's message.
func (r *runtime) requireArea(area string) error {
	res := r.guard.Evaluate(area, guard.RequiredRole(area))
	switch res.Decision {
	case guard.Allow:
		return nil
	case guard.RedirectLogin, guard.RedirectHome:
		return errors.New(res.Message)
	default:
		return errors.New("session restoration still pending")
	}
}

func setupLogging(debug bool) {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}).
		With().Timestamp().Logger()
}
