package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/verdantloop/chronogarden/internal/catalog"
	"github.com/verdantloop/chronogarden/internal/domain"
	"github.com/verdantloop/chronogarden/internal/engine"
)

// AdvisorService is the slice of the advisor client handlers need.
type AdvisorService interface {
	Enabled() bool
	Suggest(ctx context.Context, cat *catalog.Catalog, state *domain.GameState, now time.Time) (string, error)
}

// SuggestionResponse carries the advisor's text.
type SuggestionResponse struct {
	Suggestion string `json:"suggestion"`
}

func HandleGetSuggestion(eng *engine.Engine, svc AdvisorService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !svc.Enabled() {
			respondError(w, http.StatusNotFound, "advisor is not configured")
			return
		}
		suggestion, err := svc.Suggest(r.Context(), eng.Catalog(), eng.Snapshot(), time.Now())
		if err != nil {
			respondServiceError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, DataResponse{Data: SuggestionResponse{Suggestion: suggestion}})
	}
}
