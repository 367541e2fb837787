// internal/httpserver/server.go
//
// HTTP server for deployment plumbing.
// Responsibilities:
//   - Router + middleware (request IDs, real IP, panic recovery, timeouts).
//   - Liveness: GET /health answers a plain "ok".
//   - Diagnostics: GET / (service descriptor), GET /debug/rooms (live counts).
//   - Stats: GET /stats/top (see routes_stats.go).
//
// Notes:
//   - No handler touches room state beyond the registry's counters.
//   - Start shuts the listener down gracefully when its context ends.

package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/hangman-bot/internal/stats"
)

// RoomCounter reports live rooms and seated users.
type RoomCounter interface {
	Stats() (rooms, players int)
}

// Server bundles the router with what the handlers read.
type Server struct {
	r      *chi.Mux
	rooms  RoomCounter
	ledger stats.Ledger
}

// New constructs a Server, installs middleware, and registers routes.
func New(rooms RoomCounter, ledger stats.Ledger) *Server {
	if ledger == nil {
		ledger = stats.Nop{}
	}
	s := &Server{r: chi.NewRouter(), rooms: rooms, ledger: ledger}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                 // add X-Request-ID
	s.r.Use(chimw.RealIP)                    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(chimw.Recoverer)                 // recover from panics
	s.r.Use(chimw.Timeout(10 * time.Second)) // bound handler time

	// --- liveness ---
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	// --- diagnostics ---
	s.r.Group(func(r chi.Router) {
		r.Use(jsonContentType)
		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"service":"hangman-bot","endpoints":["/health","/debug/rooms","/stats/top"]}`))
		})
		r.Get("/debug/rooms", func(w http.ResponseWriter, r *http.Request) {
			rooms, players := s.rooms.Stats()
			_ = json.NewEncoder(w).Encode(map[string]int{"rooms": rooms, "players": players})
		})
		s.mountStats(r)
	})

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "not_found", "path": r.URL.Path})
	})

	return s
}

// Start serves on addr until ctx is cancelled, then drains in-flight
// requests for up to five seconds.
func (s *Server) Start(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.r,
		ReadHeaderTimeout: 5 * time.Second,
	}
	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	log.Info().Str("addr", addr).Msg("http server listening")

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

func writeJSONError(w http.ResponseWriter, status int, code string) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": code})
}
