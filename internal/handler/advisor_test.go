package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verdantloop/chronogarden/internal/catalog"
	"github.com/verdantloop/chronogarden/internal/domain"
)

type fakeAdvisor struct {
	enabled    bool
	suggestion string
	err        error
}

func (f *fakeAdvisor) Enabled() bool { return f.enabled }

func (f *fakeAdvisor) Suggest(context.Context, *catalog.Catalog, *domain.GameState, time.Time) (string, error) {
	return f.suggestion, f.err
}

func TestHandleGetSuggestion(t *testing.T) {
	eng := newTestEngine(t)
	svc := &fakeAdvisor{enabled: true, suggestion: "Water the tomatoes."}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	HandleGetSuggestion(eng, svc)(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var out struct {
		Data SuggestionResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Equal(t, "Water the tomatoes.", out.Data.Suggestion)
}

func TestHandleGetSuggestionCollaboratorDown(t *testing.T) {
	eng := newTestEngine(t)
	svc := &fakeAdvisor{enabled: true, err: domain.ErrCollaboratorUnavailable}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	HandleGetSuggestion(eng, svc)(rec, req)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestHandleGetSuggestionDisabled(t *testing.T) {
	eng := newTestEngine(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	HandleGetSuggestion(eng, &fakeAdvisor{enabled: false})(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
