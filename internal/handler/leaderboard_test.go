package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verdantloop/chronogarden/internal/domain"
	"github.com/verdantloop/chronogarden/internal/leaderboard"
)

type fakeLeaderboard struct {
	enabled   bool
	pushErr   error
	pushed    []*domain.GameState
	standings []leaderboard.Entry
	listErr   error
}

func (f *fakeLeaderboard) Enabled() bool { return f.enabled }

func (f *fakeLeaderboard) Push(_ context.Context, state *domain.GameState) error {
	if f.pushErr != nil {
		return f.pushErr
	}
	f.pushed = append(f.pushed, state)
	return nil
}

func (f *fakeLeaderboard) Standings(context.Context) ([]leaderboard.Entry, error) {
	return f.standings, f.listErr
}

func TestHandlePushScore(t *testing.T) {
	eng := newTestEngine(t)
	svc := &fakeLeaderboard{enabled: true}

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	rec := httptest.NewRecorder()
	HandlePushScore(eng, svc)(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, svc.pushed, 1)
	assert.Equal(t, "Ada", svc.pushed[0].PlayerName)
}

func TestHandlePushScoreCollaboratorDown(t *testing.T) {
	eng := newTestEngine(t)
	svc := &fakeLeaderboard{enabled: true, pushErr: domain.ErrCollaboratorUnavailable}

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	rec := httptest.NewRecorder()
	HandlePushScore(eng, svc)(rec, req)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestHandleGetStandings(t *testing.T) {
	svc := &fakeLeaderboard{enabled: true, standings: []leaderboard.Entry{
		{Rank: 1, Name: "Bea", TotalCropsHarvested: 200},
	}}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	HandleGetStandings(svc)(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var out struct {
		Data []leaderboard.Entry `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	require.Len(t, out.Data, 1)
	assert.Equal(t, "Bea", out.Data[0].Name)
}

func TestHandlePushScoreDisabled(t *testing.T) {
	eng := newTestEngine(t)

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	rec := httptest.NewRecorder()
	HandlePushScore(eng, &fakeLeaderboard{enabled: false})(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
