package market

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verdantloop/chronogarden/internal/domain"
)

func TestPublish(t *testing.T) {
	var got Listing
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, listingsPath, r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "garden-1")
	err := c.Publish(context.Background(), Listing{
		ListingID: "lst-1",
		ItemType:  "seed",
		ItemID:    "tomato",
		Quantity:  3,
		Price:     12,
		CreatedAt: time.Now(),
	})
	require.NoError(t, err)

	assert.Equal(t, "lst-1", got.ListingID)
	assert.Equal(t, "garden-1", got.PlayerID, "client stamps its own player id")
	assert.Equal(t, "tomato", got.ItemID)
	assert.Equal(t, 3.0, got.Quantity)
}

func TestPublishFailureIsCollaboratorError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "garden-1")
	err := c.Publish(context.Background(), Listing{ListingID: "lst-1"})
	assert.ErrorIs(t, err, domain.ErrCollaboratorUnavailable)
}

func TestOpen(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		json.NewEncoder(w).Encode([]Listing{
			{ListingID: "lst-9", PlayerID: "garden-2", ItemType: "resource", ItemID: "grain", Quantity: 10, Price: 4},
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "garden-1")
	listings, err := c.Open(context.Background())
	require.NoError(t, err)
	require.Len(t, listings, 1)
	assert.Equal(t, "grain", listings[0].ItemID)
}

func TestOpenUnreachable(t *testing.T) {
	c := NewClient("http://127.0.0.1:1", "garden-1")
	_, err := c.Open(context.Background())
	assert.ErrorIs(t, err, domain.ErrCollaboratorUnavailable)
}
