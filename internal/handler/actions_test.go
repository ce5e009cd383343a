package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verdantloop/chronogarden/internal/catalog"
	"github.com/verdantloop/chronogarden/internal/domain"
	"github.com/verdantloop/chronogarden/internal/engine"
	"github.com/verdantloop/chronogarden/internal/event"
)

func newTestEngine(t *testing.T) *engine.Engine {
	t.Helper()
	return engine.New(catalog.Default(), event.NewMemoryBus(), "ada", "plot")
}

func postJSON(t *testing.T, h http.HandlerFunc, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h(rec, req)
	return rec
}

func decodeResult(t *testing.T, rec *httptest.ResponseRecorder) ResultResponse {
	t.Helper()
	var out ResultResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestHandlePlantCrop(t *testing.T) {
	eng := newTestEngine(t)

	rec := postJSON(t, HandlePlantCrop(eng), `{"cropId":"tomato"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	out := decodeResult(t, rec)
	assert.Equal(t, string(domain.StatusOK), out.Status)
	require.NotNil(t, out.State)
	assert.Len(t, out.State.PlantedCrops, 1)
}

func TestHandlePlantCropRejectionIsHTTP200(t *testing.T) {
	eng := newTestEngine(t)

	rec := postJSON(t, HandlePlantCrop(eng), `{"cropId":"tomatoe"}`)
	require.Equal(t, http.StatusOK, rec.Code, "engine rejections are outcomes, not transport errors")

	out := decodeResult(t, rec)
	assert.Equal(t, string(domain.StatusNotFound), out.Status)
	assert.Equal(t, "tomato", out.Suggestion)
}

func TestHandlePlantCropMalformedBody(t *testing.T) {
	eng := newTestEngine(t)

	rec := postJSON(t, HandlePlantCrop(eng), `{not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandlePlantCropMissingField(t *testing.T) {
	eng := newTestEngine(t)

	rec := postJSON(t, HandlePlantCrop(eng), `{}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var out ValidationErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Contains(t, out.Fields, "cropid")
}

func TestHandleUnlockEra(t *testing.T) {
	eng := newTestEngine(t)

	rec := postJSON(t, HandleAddEnergy(eng), `{"amount":150}`)
	require.Equal(t, string(domain.StatusOK), decodeResult(t, rec).Status)

	rec = postJSON(t, HandleUnlockEra(eng), `{"eraId":"prehistoric"}`)
	out := decodeResult(t, rec)
	assert.Equal(t, string(domain.StatusOK), out.Status)
	assert.Equal(t, 50.0, out.State.ChronoEnergy)

	rec = postJSON(t, HandleUnlockEra(eng), `{"eraId":"prehistoric"}`)
	assert.Equal(t, string(domain.StatusAlreadyUnlocked), decodeResult(t, rec).Status)
}

func TestHandleAddEnergyRejectsNonPositive(t *testing.T) {
	eng := newTestEngine(t)

	rec := postJSON(t, HandleAddEnergy(eng), `{"amount":-5}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandlePrestigeLocked(t *testing.T) {
	eng := newTestEngine(t)

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	rec := httptest.NewRecorder()
	HandlePrestige(eng)(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, string(domain.StatusPrestigeLocked), decodeResult(t, rec).Status)
}

func TestHandleGetState(t *testing.T) {
	eng := newTestEngine(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	HandleGetState(eng)(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var out struct {
		Data domain.GameState `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Equal(t, "Ada", out.Data.PlayerName)
	assert.Equal(t, domain.EraPresent, out.Data.CurrentEra)
}

func TestHandleGetCatalog(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	HandleGetCatalog(catalog.Default())(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var out struct {
		Data CatalogView `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.NotEmpty(t, out.Data.Eras)
	assert.NotEmpty(t, out.Data.Crops)
}
