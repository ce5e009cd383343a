package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verdantloop/chronogarden/internal/domain"
	"github.com/verdantloop/chronogarden/internal/market"
)

type fakeMarket struct {
	enabled    bool
	publishErr error
	openErr    error
	published  []market.Listing
	open       []market.Listing
}

func (f *fakeMarket) Enabled() bool { return f.enabled }

func (f *fakeMarket) Publish(_ context.Context, listing market.Listing) error {
	if f.publishErr != nil {
		return f.publishErr
	}
	f.published = append(f.published, listing)
	return nil
}

func (f *fakeMarket) Open(context.Context) ([]market.Listing, error) {
	return f.open, f.openErr
}

func decodeListing(t *testing.T, rec *httptest.ResponseRecorder) CreateListingResponse {
	t.Helper()
	var out CreateListingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestHandleCreateListing(t *testing.T) {
	eng := newTestEngine(t)
	svc := &fakeMarket{enabled: true}

	rec := postJSON(t, HandleCreateListing(eng, svc), `{"itemType":"seed","itemId":"seeds","quantity":3,"price":10}`)
	require.Equal(t, http.StatusOK, rec.Code)

	out := decodeListing(t, rec)
	assert.Equal(t, string(domain.StatusOK), out.Status)
	assert.NotEmpty(t, out.ListingID)
	assert.True(t, out.Published)
	assert.Equal(t, 7.0, out.State.Resources[domain.ResourceSeeds], "seeds debited locally")
	require.Len(t, svc.published, 1)
	assert.Equal(t, out.ListingID, svc.published[0].ListingID)
}

func TestHandleCreateListingCannotAfford(t *testing.T) {
	eng := newTestEngine(t)
	svc := &fakeMarket{enabled: true}

	rec := postJSON(t, HandleCreateListing(eng, svc), `{"itemType":"seed","itemId":"seeds","quantity":99,"price":10}`)
	require.Equal(t, http.StatusOK, rec.Code)

	out := decodeListing(t, rec)
	assert.Equal(t, string(domain.StatusCannotAfford), out.Status)
	assert.Empty(t, out.ListingID)
	assert.Empty(t, svc.published, "rejected listings never reach the remote")
}

func TestHandleCreateListingPublishFailureKeepsDebit(t *testing.T) {
	eng := newTestEngine(t)
	svc := &fakeMarket{enabled: true, publishErr: errors.New("market down")}

	rec := postJSON(t, HandleCreateListing(eng, svc), `{"itemType":"seed","itemId":"seeds","quantity":3,"price":10}`)
	require.Equal(t, http.StatusOK, rec.Code)

	out := decodeListing(t, rec)
	assert.Equal(t, string(domain.StatusOK), out.Status)
	assert.False(t, out.Published)
	assert.Contains(t, out.Message, "unreachable")
	assert.Equal(t, 7.0, eng.Snapshot().Resources[domain.ResourceSeeds], "optimistic debit stands")
}

func TestHandleCreateListingInvalidType(t *testing.T) {
	eng := newTestEngine(t)

	rec := postJSON(t, HandleCreateListing(eng, &fakeMarket{enabled: true}),
		`{"itemType":"crop","itemId":"tomato","quantity":1,"price":1}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleGetListings(t *testing.T) {
	svc := &fakeMarket{enabled: true, open: []market.Listing{{ListingID: "lst-1", ItemID: "grain"}}}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	HandleGetListings(svc)(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var out struct {
		Data []market.Listing `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	require.Len(t, out.Data, 1)
	assert.Equal(t, "grain", out.Data[0].ItemID)
}

func TestHandleGetListingsCollaboratorDown(t *testing.T) {
	svc := &fakeMarket{enabled: true, openErr: domain.ErrCollaboratorUnavailable}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	HandleGetListings(svc)(rec, req)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestHandleGetListingsDisabled(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	HandleGetListings(&fakeMarket{enabled: false})(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var out struct {
		Data []market.Listing `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Empty(t, out.Data)
}
