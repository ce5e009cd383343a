// Package ledger owns every mutation of a resource map. Quantities are never
// negative: a debit that cannot be covered in full is rejected whole, and a
// multi-resource cost is checked atomically before any part of it is applied.
package ledger

import (
	"fmt"

	"github.com/verdantloop/chronogarden/internal/domain"
)

// Credit increases the balance of a resource. Amount must be positive.
func Credit(resources domain.ResourceMap, resourceID string, amount float64) error {
	if amount <= 0 {
		return fmt.Errorf("%w: credit %s %.3f", domain.ErrInvalidAmount, resourceID, amount)
	}
	resources[resourceID] += amount
	return nil
}

// Debit decreases the balance of a resource. It fails with
// ErrInsufficientResource and leaves the map untouched when the balance does
// not cover the full amount.
func Debit(resources domain.ResourceMap, resourceID string, amount float64) error {
	if amount <= 0 {
		return fmt.Errorf("%w: debit %s %.3f", domain.ErrInvalidAmount, resourceID, amount)
	}
	if resources[resourceID] < amount {
		return fmt.Errorf("%w: %s (have %.3f, need %.3f)",
			domain.ErrInsufficientResource, resourceID, resources[resourceID], amount)
	}
	resources[resourceID] -= amount
	return nil
}

// CanAfford reports whether every entry of the cost map is simultaneously
// covered by current balances.
func CanAfford(resources domain.ResourceMap, cost map[string]float64) bool {
	for resourceID, amount := range cost {
		if resources[resourceID] < amount {
			return false
		}
	}
	return true
}

// DebitAll applies a multi-resource cost as one unit: it checks affordability
// first and only then debits, so a partially affordable cost never touches
// the map.
func DebitAll(resources domain.ResourceMap, cost map[string]float64) error {
	if !CanAfford(resources, cost) {
		return fmt.Errorf("%w: cost %v", domain.ErrInsufficientResource, cost)
	}
	for resourceID, amount := range cost {
		if amount > 0 {
			resources[resourceID] -= amount
		}
	}
	return nil
}

// CreditAll adds every entry of a yield map. Zero or negative entries are
// skipped rather than rejected; yields come from the catalog, not callers.
func CreditAll(resources domain.ResourceMap, yield map[string]float64) {
	for resourceID, amount := range yield {
		if amount > 0 {
			resources[resourceID] += amount
		}
	}
}
