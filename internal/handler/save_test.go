package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verdantloop/chronogarden/internal/engine"
	"github.com/verdantloop/chronogarden/internal/persistence"
)

func openTestStore(t *testing.T) *persistence.Store {
	t.Helper()
	store, err := persistence.Open(filepath.Join(t.TempDir(), "saves.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func requestWithSlot(method, slot string, body string) *http.Request {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, "/", nil)
	} else {
		req = httptest.NewRequest(method, "/", strings.NewReader(body))
	}
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("slot", slot)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	eng := newTestEngine(t)
	store := openTestStore(t)

	// Mutate, save, mutate again, load: the loaded state wins.
	require.True(t, eng.Apply(context.Background(), engine.AddEnergy{Amount: 75}).OK())

	rec := httptest.NewRecorder()
	HandleSaveGame(eng, store)(rec, requestWithSlot(http.MethodPost, "main", ""))
	require.Equal(t, http.StatusOK, rec.Code)

	require.True(t, eng.Apply(context.Background(), engine.SpendEnergy{Amount: 75}).OK())
	assert.Equal(t, 0.0, eng.Snapshot().ChronoEnergy)

	rec = httptest.NewRecorder()
	HandleLoadGame(eng, store)(rec, requestWithSlot(http.MethodPost, "main", ""))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 75.0, eng.Snapshot().ChronoEnergy)
}

func TestLoadMissingSlotIs404(t *testing.T) {
	eng := newTestEngine(t)
	store := openTestStore(t)

	rec := httptest.NewRecorder()
	HandleLoadGame(eng, store)(rec, requestWithSlot(http.MethodPost, "missing", ""))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListSavesEmpty(t *testing.T) {
	store := openTestStore(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	HandleListSaves(store)(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var out struct {
		Data []persistence.SlotInfo `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.NotNil(t, out.Data)
	assert.Empty(t, out.Data)
}

func TestExportImportRoundTrip(t *testing.T) {
	eng := newTestEngine(t)
	require.True(t, eng.Apply(context.Background(), engine.AddEnergy{Amount: 42}).OK())

	rec := httptest.NewRecorder()
	HandleExportState(eng)(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	exported := rec.Body.String()

	fresh := newTestEngine(t)
	rec = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(exported))
	HandleImportState(fresh)(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 42.0, fresh.Snapshot().ChronoEnergy)
}

func TestImportRejectsInvalidSnapshot(t *testing.T) {
	eng := newTestEngine(t)
	before := eng.Snapshot()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"playerName":""}`))
	HandleImportState(eng)(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, before, eng.Snapshot(), "failed import must not touch the running game")
}
