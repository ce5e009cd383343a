package handler

import (
	"context"
	"net/http"

	"github.com/verdantloop/chronogarden/internal/domain"
	"github.com/verdantloop/chronogarden/internal/engine"
	"github.com/verdantloop/chronogarden/internal/leaderboard"
)

// LeaderboardService is the slice of the leaderboard client handlers need.
type LeaderboardService interface {
	Enabled() bool
	Push(ctx context.Context, state *domain.GameState) error
	Standings(ctx context.Context) ([]leaderboard.Entry, error)
}

func HandlePushScore(eng *engine.Engine, svc LeaderboardService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !svc.Enabled() {
			respondError(w, http.StatusNotFound, "leaderboard is not configured")
			return
		}
		if err := svc.Push(r.Context(), eng.Snapshot()); err != nil {
			respondServiceError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, DataResponse{Message: "score submitted"})
	}
}

func HandleGetStandings(svc LeaderboardService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !svc.Enabled() {
			respondJSON(w, http.StatusOK, DataResponse{Data: []leaderboard.Entry{}})
			return
		}
		entries, err := svc.Standings(r.Context())
		if err != nil {
			respondServiceError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, DataResponse{Data: entries})
	}
}
