// Package market publishes seed and resource listings to the shared trading
// post. Listings are optimistic: the engine debits the goods before the
// remote publish, and a failed publish is reported without rolling back.
package market

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/verdantloop/chronogarden/internal/domain"
	"github.com/verdantloop/chronogarden/internal/logger"
	"github.com/verdantloop/chronogarden/internal/metrics"
)

const (
	listingsPath   = "/api/listings"
	requestTimeout = 5 * time.Second
)

// Listing is a posted offer on the trading post.
type Listing struct {
	ListingID string    `json:"listingId"`
	PlayerID  string    `json:"playerId"`
	ItemType  string    `json:"itemType"`
	ItemID    string    `json:"itemId"`
	Quantity  float64   `json:"quantity"`
	Price     float64   `json:"price"`
	CreatedAt time.Time `json:"createdAt"`
}

// Client talks to the market service.
type Client struct {
	baseURL  string
	playerID string
	http     *http.Client
}

func NewClient(baseURL, playerID string) *Client {
	return &Client{
		baseURL:  baseURL,
		playerID: playerID,
		http:     &http.Client{Timeout: requestTimeout},
	}
}

// Enabled reports whether a market URL is configured.
func (c *Client) Enabled() bool { return c.baseURL != "" }

// Publish posts a listing the engine has already debited. Callers surface
// the error to the player; the goods stay spent either way.
func (c *Client) Publish(ctx context.Context, listing Listing) error {
	log := logger.FromContext(ctx)

	listing.PlayerID = c.playerID
	body, err := json.Marshal(listing)
	if err != nil {
		return fmt.Errorf("failed to encode listing: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+listingsPath, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build listing request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		metrics.CollaboratorRequests.WithLabelValues("market", "error").Inc()
		return fmt.Errorf("%w: %v", domain.ErrCollaboratorUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		metrics.CollaboratorRequests.WithLabelValues("market", "error").Inc()
		return fmt.Errorf("%w: market returned %d", domain.ErrCollaboratorUnavailable, resp.StatusCode)
	}

	metrics.CollaboratorRequests.WithLabelValues("market", "ok").Inc()
	log.Debug("Published listing", "listing_id", listing.ListingID, "item", listing.ItemID)
	return nil
}

// Open returns the currently open listings across all gardens.
func (c *Client) Open(ctx context.Context) ([]Listing, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+listingsPath, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build listings request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		metrics.CollaboratorRequests.WithLabelValues("market", "error").Inc()
		return nil, fmt.Errorf("%w: %v", domain.ErrCollaboratorUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		metrics.CollaboratorRequests.WithLabelValues("market", "error").Inc()
		return nil, fmt.Errorf("%w: market returned %d", domain.ErrCollaboratorUnavailable, resp.StatusCode)
	}

	var listings []Listing
	if err := json.NewDecoder(resp.Body).Decode(&listings); err != nil {
		metrics.CollaboratorRequests.WithLabelValues("market", "error").Inc()
		return nil, fmt.Errorf("failed to decode listings: %w", err)
	}

	metrics.CollaboratorRequests.WithLabelValues("market", "ok").Inc()
	return listings, nil
}
