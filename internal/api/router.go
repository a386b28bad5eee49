// Package api exposes the game server over HTTP.
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/cory-johannsen/petsteps/internal/gameserver"
	"github.com/cory-johannsen/petsteps/internal/observability"
	"github.com/cory-johannsen/petsteps/internal/storage"
)

// maxBodyBytes bounds every request body.
const maxBodyBytes = 64 << 10

// Config holds the dependencies of the HTTP API.
type Config struct {
	Service  *gameserver.Service
	Accounts storage.AccountStore
	Logger   *zap.Logger
	// RequestTimeout bounds each request; zero disables the timeout middleware.
	RequestTimeout time.Duration
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	if c.Service == nil {
		return errors.New("game service is required")
	}
	if c.Accounts == nil {
		return errors.New("account store is required")
	}
	if c.Logger == nil {
		return errors.New("logger is required")
	}
	return nil
}

type handler struct {
	svc      *gameserver.Service
	accounts storage.AccountStore
	logger   *zap.Logger
}

// NewRouter builds the API's chi router.
//
// Postcondition: Returns a non-nil http.Handler, or an error if cfg is invalid.
func NewRouter(cfg *Config) (http.Handler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	h := &handler{svc: cfg.Service, accounts: cfg.Accounts, logger: cfg.Logger}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(observability.RequestLogger(cfg.Logger))
	r.Use(middleware.Recoverer)
	if cfg.RequestTimeout > 0 {
		r.Use(middleware.Timeout(cfg.RequestTimeout))
	}

	r.Get("/healthz", h.health)
	r.Post("/accounts", h.createAccount)
	r.Get("/opponents", h.listOpponents)

	r.Route("/me", func(r chi.Router) {
		r.Use(h.basicAuth)
		r.Get("/state", h.getState)
		r.Post("/actions", h.postAction)
		r.Post("/battles", h.postBattle)
		r.Get("/battles", h.listBattles)
	})
	return r, nil
}

type playerIDKey struct{}

// playerID returns the authenticated player of r. It is set by basicAuth.
func playerID(r *http.Request) string {
	id, _ := r.Context().Value(playerIDKey{}).(string)
	return id
}

// basicAuth authenticates the request against the account store and stores
// the account ID as the player ID.
func (h *handler) basicAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		username, password, ok := r.BasicAuth()
		if !ok {
			w.Header().Set("WWW-Authenticate", `Basic realm="petsteps"`)
			writeError(w, http.StatusUnauthorized, "authentication required")
			return
		}
		acct, err := h.accounts.Authenticate(r.Context(), username, password)
		if err != nil {
			if errors.Is(err, storage.ErrAccountNotFound) || errors.Is(err, storage.ErrInvalidCredentials) {
				w.Header().Set("WWW-Authenticate", `Basic realm="petsteps"`)
				writeError(w, http.StatusUnauthorized, "invalid credentials")
				return
			}
			h.fail(w, r, err)
			return
		}
		ctx := context.WithValue(r.Context(), playerIDKey{}, acct.ID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
