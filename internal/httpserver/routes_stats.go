// internal/httpserver/routes_stats.go
//
// HTTP routes for the round ledger.
//   - GET /stats/top?limit=N → players ordered by wins (default 20, max 100)
//
// Answers 503 when the bot runs without a database.

package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/hangman-bot/internal/stats"
)

const maxTopLimit = 100

// topRes is the payload of GET /stats/top.
type topRes struct {
	Top []stats.Totals `json:"top"`
}

// mountStats registers all /stats routes.
func (s *Server) mountStats(r chi.Router) {
	r.Route("/stats", func(r chi.Router) {
		r.Get("/top", s.handleTop)
	})
}

func (s *Server) handleTop(w http.ResponseWriter, r *http.Request) {
	limit := stats.DefaultLeaderboardLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			writeJSONError(w, http.StatusBadRequest, "bad_limit")
			return
		}
		limit = min(n, maxTopLimit)
	}

	rows, err := s.ledger.Leaderboard(r.Context(), limit)
	if errors.Is(err, stats.ErrDisabled) {
		writeJSONError(w, http.StatusServiceUnavailable, "stats_disabled")
		return
	}
	if err != nil {
		log.Error().Err(err).Msg("leaderboard")
		writeJSONError(w, http.StatusInternalServerError, "server_error")
		return
	}
	if rows == nil {
		rows = []stats.Totals{}
	}
	_ = json.NewEncoder(w).Encode(topRes{Top: rows})
}
