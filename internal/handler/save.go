package handler

import (
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/verdantloop/chronogarden/internal/engine"
	"github.com/verdantloop/chronogarden/internal/logger"
	"github.com/verdantloop/chronogarden/internal/persistence"
)

const maxImportBytes = 1 << 20

// HandleListSaves returns the saved slots, most recent first.
func HandleListSaves(store *persistence.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slots, err := store.Slots(r.Context())
		if err != nil {
			respondServiceError(w, err)
			return
		}
		if slots == nil {
			slots = []persistence.SlotInfo{}
		}
		respondJSON(w, http.StatusOK, DataResponse{Data: slots})
	}
}

// HandleSaveGame writes the current snapshot into the slot.
func HandleSaveGame(eng *engine.Engine, store *persistence.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slot := chi.URLParam(r, "slot")
		if err := store.Save(r.Context(), slot, eng.Snapshot()); err != nil {
			logger.FromContext(r.Context()).Error("Save failed", "slot", slot, "error", err)
			respondServiceError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, DataResponse{Message: "game saved"})
	}
}

// HandleLoadGame restores the engine from a saved slot.
func HandleLoadGame(eng *engine.Engine, store *persistence.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slot := chi.URLParam(r, "slot")
		state, err := store.Load(r.Context(), slot)
		if err != nil {
			respondServiceError(w, err)
			return
		}
		eng.Restore(state)
		respondJSON(w, http.StatusOK, DataResponse{Message: "game loaded", Data: eng.Snapshot()})
	}
}

// HandleDeleteSave removes a slot.
func HandleDeleteSave(store *persistence.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slot := chi.URLParam(r, "slot")
		if err := store.Delete(r.Context(), slot); err != nil {
			respondServiceError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, DataResponse{Message: "save deleted"})
	}
}

// HandleExportState returns the snapshot as downloadable JSON.
func HandleExportState(eng *engine.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw, err := persistence.Export(eng.Snapshot())
		if err != nil {
			respondServiceError(w, err)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Content-Disposition", `attachment; filename="chronogarden.json"`)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(raw)
	}
}

// HandleImportState replaces the running game with a validated uploaded
// snapshot. Invalid snapshots are rejected with the offending field named.
func HandleImportState(eng *engine.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw, err := io.ReadAll(io.LimitReader(r.Body, maxImportBytes))
		if err != nil {
			respondError(w, http.StatusBadRequest, ErrMsgInvalidRequest)
			return
		}
		state, err := persistence.Import(raw)
		if err != nil {
			respondServiceError(w, err)
			return
		}
		eng.Restore(state)
		respondJSON(w, http.StatusOK, DataResponse{Message: "state imported", Data: eng.Snapshot()})
	}
}
