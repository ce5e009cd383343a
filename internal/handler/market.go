package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/verdantloop/chronogarden/internal/engine"
	"github.com/verdantloop/chronogarden/internal/logger"
	"github.com/verdantloop/chronogarden/internal/market"
)

// MarketService is the slice of the market client handlers need.
type MarketService interface {
	Enabled() bool
	Publish(ctx context.Context, listing market.Listing) error
	Open(ctx context.Context) ([]market.Listing, error)
}

type CreateListingRequest struct {
	ItemType string  `json:"itemType" validate:"required,oneof=seed resource"`
	ItemID   string  `json:"itemId" validate:"required"`
	Quantity float64 `json:"quantity" validate:"gt=0"`
	Price    float64 `json:"price" validate:"gt=0"`
}

// CreateListingResponse extends the result envelope with the listing id and
// the publish outcome. The debit is optimistic: a failed remote publish does
// not refund the goods.
type CreateListingResponse struct {
	ResultResponse
	ListingID string `json:"listingId,omitempty"`
	Published bool   `json:"published"`
}

func HandleCreateListing(eng *engine.Engine, svc MarketService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req CreateListingRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Create listing"); err != nil {
			return
		}

		listingID := uuid.NewString()
		res := eng.Apply(r.Context(), engine.CreateListing{
			ListingID: listingID,
			ItemType:  req.ItemType,
			ItemID:    req.ItemID,
			Quantity:  req.Quantity,
			Price:     req.Price,
		})
		out := CreateListingResponse{ResultResponse: newResultResponse(res, eng.Snapshot())}
		if !res.OK() {
			respondJSON(w, http.StatusOK, out)
			return
		}
		out.ListingID = listingID

		if svc.Enabled() {
			err := svc.Publish(r.Context(), market.Listing{
				ListingID: listingID,
				ItemType:  req.ItemType,
				ItemID:    req.ItemID,
				Quantity:  req.Quantity,
				Price:     req.Price,
				CreatedAt: time.Now().UTC(),
			})
			if err != nil {
				// Goods stay spent; the player is told the post failed.
				log.Warn("Listing publish failed", "listing_id", listingID, "error", err)
				out.Message = "Listing created locally but the market is unreachable"
				respondJSON(w, http.StatusOK, out)
				return
			}
			out.Published = true
		}

		respondJSON(w, http.StatusOK, out)
	}
}

func HandleGetListings(svc MarketService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !svc.Enabled() {
			respondJSON(w, http.StatusOK, DataResponse{Data: []market.Listing{}})
			return
		}
		listings, err := svc.Open(r.Context())
		if err != nil {
			respondServiceError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, DataResponse{Data: listings})
	}
}
