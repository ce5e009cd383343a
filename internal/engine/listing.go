package engine

import (
	"fmt"
	"time"

	"github.com/verdantloop/chronogarden/internal/domain"
	"github.com/verdantloop/chronogarden/internal/event"
	"github.com/verdantloop/chronogarden/internal/ledger"
)

// Market listing item types.
const (
	ListingTypeSeed     = "seed"
	ListingTypeResource = "resource"
)

// createListing debits the listed goods locally at listing time. The debit is
// optimistic: the market adapter performs the remote write afterwards and a
// remote failure does not roll this back.
func (e *Engine) createListing(work *domain.GameState, a CreateListing, now time.Time) (domain.Result, []event.Event) {
	if a.Quantity <= 0 {
		return domain.Rejected(domain.StatusNoEffect, domain.ErrMsgInvalidAmount), nil
	}

	var resourceID string
	switch a.ItemType {
	case ListingTypeSeed:
		resourceID = domain.ResourceSeeds
	case ListingTypeResource:
		resourceID = a.ItemID
	default:
		return domain.Rejected(domain.StatusNotFound, fmt.Sprintf("unknown item type %q", a.ItemType)), nil
	}

	if err := ledger.Debit(work.Resources, resourceID, a.Quantity); err != nil {
		return domain.Rejected(domain.StatusCannotAfford, err.Error()), nil
	}

	return domain.Accepted, []event.Event{{
		Version: event.EventSchemaVersion,
		Type:    event.ListingCreated,
		Payload: event.ListingCreatedPayloadV1{
			ListingID: a.ListingID,
			ItemType:  a.ItemType,
			ItemID:    a.ItemID,
			Quantity:  a.Quantity,
			Price:     a.Price,
			Timestamp: now.Unix(),
		},
	}}
}
