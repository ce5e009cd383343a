// Package leaderboard pushes garden scores to the shared community
// leaderboard service and reads back the ranked standings. The collaborator
// is optional; every failure is reported, never fatal.
package leaderboard

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/verdantloop/chronogarden/internal/domain"
	"github.com/verdantloop/chronogarden/internal/logger"
	"github.com/verdantloop/chronogarden/internal/metrics"
)

const (
	scoresPath     = "/api/scores"
	requestTimeout = 5 * time.Second

	cacheSize = 8
	cacheTTL  = 30 * time.Second
	cacheKey  = "standings"
)

// Entry is one row of the ranked standings.
type Entry struct {
	Rank                    int     `json:"rank,omitempty"`
	PlayerID                string  `json:"playerId"`
	Name                    string  `json:"name"`
	TotalCropsHarvested     int     `json:"totalCropsHarvested"`
	PrestigeCount           int     `json:"prestigeCount"`
	TotalChronoEnergyEarned float64 `json:"totalChronoEnergyEarned"`
}

// Client talks to the leaderboard service. Standings reads go through a
// short-lived cache so the UI can poll without hammering the collaborator.
type Client struct {
	baseURL  string
	playerID string
	http     *http.Client
	cache    *expirable.LRU[string, []Entry]
}

// NewClient creates a leaderboard client. playerID identifies this garden
// across pushes; it stays stable for the lifetime of the save.
func NewClient(baseURL, playerID string) *Client {
	return &Client{
		baseURL:  baseURL,
		playerID: playerID,
		http:     &http.Client{Timeout: requestTimeout},
		cache:    expirable.NewLRU[string, []Entry](cacheSize, nil, cacheTTL),
	}
}

// Enabled reports whether a leaderboard URL is configured.
func (c *Client) Enabled() bool { return c.baseURL != "" }

// Push submits the garden's lifetime score. The cached standings are
// invalidated so the next read reflects the new entry.
func (c *Client) Push(ctx context.Context, state *domain.GameState) error {
	log := logger.FromContext(ctx)

	entry := Entry{
		PlayerID:                c.playerID,
		Name:                    state.PlayerName,
		TotalCropsHarvested:     state.TotalCropsHarvested,
		PrestigeCount:           state.PrestigeCount,
		TotalChronoEnergyEarned: state.TotalChronoEnergyEarned,
	}
	body, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to encode score: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+scoresPath, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build score request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		metrics.CollaboratorRequests.WithLabelValues("leaderboard", "error").Inc()
		return fmt.Errorf("%w: %v", domain.ErrCollaboratorUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		metrics.CollaboratorRequests.WithLabelValues("leaderboard", "error").Inc()
		return fmt.Errorf("%w: leaderboard returned %d", domain.ErrCollaboratorUnavailable, resp.StatusCode)
	}

	metrics.CollaboratorRequests.WithLabelValues("leaderboard", "ok").Inc()
	c.cache.Remove(cacheKey)
	log.Debug("Pushed leaderboard score", "player_id", c.playerID, "crops", entry.TotalCropsHarvested)
	return nil
}

// Standings returns the ranked entries, newest push first by total crops
// harvested. Results are cached briefly.
func (c *Client) Standings(ctx context.Context) ([]Entry, error) {
	if cached, ok := c.cache.Get(cacheKey); ok {
		return cached, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+scoresPath, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build standings request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		metrics.CollaboratorRequests.WithLabelValues("leaderboard", "error").Inc()
		return nil, fmt.Errorf("%w: %v", domain.ErrCollaboratorUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		metrics.CollaboratorRequests.WithLabelValues("leaderboard", "error").Inc()
		return nil, fmt.Errorf("%w: leaderboard returned %d", domain.ErrCollaboratorUnavailable, resp.StatusCode)
	}

	var entries []Entry
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		metrics.CollaboratorRequests.WithLabelValues("leaderboard", "error").Inc()
		return nil, fmt.Errorf("failed to decode standings: %w", err)
	}

	metrics.CollaboratorRequests.WithLabelValues("leaderboard", "ok").Inc()
	c.cache.Add(cacheKey, entries)
	return entries, nil
}
