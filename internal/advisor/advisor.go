// Package advisor asks the remote garden advisor for a suggestion. The
// request carries human-readable summaries of the garden rather than raw
// state, so the advisor service stays decoupled from our snapshot schema.
package advisor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/verdantloop/chronogarden/internal/catalog"
	"github.com/verdantloop/chronogarden/internal/domain"
	"github.com/verdantloop/chronogarden/internal/growth"
	"github.com/verdantloop/chronogarden/internal/logger"
	"github.com/verdantloop/chronogarden/internal/metrics"
)

const (
	advicePath     = "/api/advice"
	requestTimeout = 8 * time.Second
)

// Request is the advisor wire format.
type Request struct {
	CropHealthText       string `json:"cropHealthText"`
	AutomationConfigText string `json:"automationConfigText"`
	EraID                string `json:"eraId"`
}

// Response is the advisor's reply.
type Response struct {
	SuggestionText string `json:"suggestionText"`
}

// Client talks to the advisor service.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: requestTimeout},
	}
}

// Enabled reports whether an advisor URL is configured.
func (c *Client) Enabled() bool { return c.baseURL != "" }

// Suggest summarizes the garden, asks the advisor, and returns its
// suggestion text. Failures are reported; the garden keeps running.
func (c *Client) Suggest(ctx context.Context, cat *catalog.Catalog, state *domain.GameState, now time.Time) (string, error) {
	log := logger.FromContext(ctx)

	payload := Request{
		CropHealthText:       CropHealthText(cat, state, now),
		AutomationConfigText: AutomationConfigText(cat, state),
		EraID:                state.CurrentEra,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to encode advice request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+advicePath, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build advice request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		metrics.CollaboratorRequests.WithLabelValues("advisor", "error").Inc()
		return "", fmt.Errorf("%w: %v", domain.ErrCollaboratorUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		metrics.CollaboratorRequests.WithLabelValues("advisor", "error").Inc()
		return "", fmt.Errorf("%w: advisor returned %d", domain.ErrCollaboratorUnavailable, resp.StatusCode)
	}

	var out Response
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		metrics.CollaboratorRequests.WithLabelValues("advisor", "error").Inc()
		return "", fmt.Errorf("failed to decode advice: %w", err)
	}

	metrics.CollaboratorRequests.WithLabelValues("advisor", "ok").Inc()
	log.Debug("Received advisor suggestion", "era", state.CurrentEra)
	return out.SuggestionText, nil
}

// CropHealthText renders the planted crops with maturity percentages, plus
// soil and weather, as one readable line per item.
func CropHealthText(cat *catalog.Catalog, state *domain.GameState, now time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Soil quality %.0f/100, weather %s.", state.SoilQuality, state.CurrentWeather)

	if len(state.PlantedCrops) == 0 {
		b.WriteString(" No crops planted.")
		return b.String()
	}
	for _, planted := range state.PlantedCrops {
		name := planted.CropID
		maturity := 1.0
		if crop := cat.Crop(planted.CropID); crop != nil {
			name = crop.Name
			maturity = growth.Maturity(planted.PlantedAt, crop.GrowthSecs, now)
		}
		fmt.Fprintf(&b, " %s at %.0f%% maturity.", name, maturity*100)
	}
	return b.String()
}

// AutomationConfigText renders the installed automation rules.
func AutomationConfigText(cat *catalog.Catalog, state *domain.GameState) string {
	if len(state.AutomationRules) == 0 {
		return "No automation installed."
	}
	parts := make([]string, 0, len(state.AutomationRules))
	for _, inst := range state.AutomationRules {
		name := inst.RuleID
		if rule := cat.AutomationRule(inst.RuleID); rule != nil {
			name = rule.Name
		}
		parts = append(parts, name)
	}
	return "Installed: " + strings.Join(parts, ", ") + "."
}
