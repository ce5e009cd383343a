package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/verdantloop/chronogarden/internal/domain"
)

// ResultResponse is the envelope for every engine action. Rejections are
// ordinary outcomes, so the HTTP status is 200 either way; Status carries
// the verdict and State the snapshot after the action.
type ResultResponse struct {
	Status     string            `json:"status"`
	Message    string            `json:"message,omitempty"`
	Suggestion string            `json:"suggestion,omitempty"`
	State      *domain.GameState `json:"state,omitempty"`
}

// ErrorResponse reports transport-level failures: malformed requests,
// broken collaborators, storage errors.
type ErrorResponse struct {
	Error string `json:"error"`
}

// DataResponse wraps read-model payloads.
type DataResponse struct {
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data"`
}

func newResultResponse(res domain.Result, state *domain.GameState) ResultResponse {
	return ResultResponse{
		Status:     string(res.Code),
		Message:    res.Message,
		Suggestion: res.Suggestion,
		State:      state,
	}
}

// respondJSON sends a JSON response with the given status code and payload.
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	buf := getBuffer()
	defer putBuffer(buf)

	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		slog.Error("Failed to encode JSON response", "error", err)
		return
	}
	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("Failed to write response buffer", "error", err)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// User-facing messages for transport errors.
const (
	ErrMsgInvalidRequest        = "Invalid request. Please check your inputs."
	ErrMsgInvalidRequestSummary = "Invalid request"
	ErrMsgMissingQueryParam     = "Missing required query parameter: %s"
	ErrMsgGenericServerError    = "Something went wrong"
	ErrMsgCollaboratorDown      = "A collaborator service is unavailable. Please try again later."
	ErrMsgSaveNotFound          = "No save found in that slot"
	ErrMsgInvalidSave           = "That save file is not usable"
)

// respondServiceError maps infrastructure errors onto HTTP statuses. Engine
// rejections never pass through here; they ride the 200 result envelope.
func respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrCollaboratorUnavailable):
		respondError(w, http.StatusBadGateway, ErrMsgCollaboratorDown)
	case errors.Is(err, domain.ErrSnapshotNotFound):
		respondError(w, http.StatusNotFound, ErrMsgSaveNotFound)
	case errors.Is(err, domain.ErrInvalidSnapshot):
		respondError(w, http.StatusBadRequest, err.Error())
	default:
		respondError(w, http.StatusInternalServerError, ErrMsgGenericServerError)
	}
}
