package engine

import (
	"fmt"

	"github.com/verdantloop/chronogarden/internal/domain"
	"github.com/verdantloop/chronogarden/internal/event"
)

func (e *Engine) setEra(work *domain.GameState, a SetEra) (domain.Result, []event.Event) {
	if e.cat.Era(a.EraID) == nil {
		res := domain.Rejected(domain.StatusNotFound, fmt.Sprintf("%s: %q", domain.ErrMsgEraNotFound, a.EraID))
		res.Suggestion = e.cat.NearestEraID(a.EraID)
		return res, nil
	}
	if !work.EraUnlocked(a.EraID) {
		return domain.Rejected(domain.StatusEraLocked, fmt.Sprintf("era %q is locked", a.EraID)), nil
	}
	if work.CurrentEra == a.EraID {
		return domain.Rejected(domain.StatusNoEffect, "already in that era"), nil
	}
	work.CurrentEra = a.EraID
	return domain.Accepted, []event.Event{{
		Version: event.EventSchemaVersion,
		Type:    event.EraChanged,
		Payload: event.EraUnlockedPayloadV1{EraID: a.EraID},
	}}
}

func (e *Engine) unlockEra(work *domain.GameState, a UnlockEra) (domain.Result, []event.Event) {
	era := e.cat.Era(a.EraID)
	if era == nil {
		res := domain.Rejected(domain.StatusNotFound, fmt.Sprintf("%s: %q", domain.ErrMsgEraNotFound, a.EraID))
		res.Suggestion = e.cat.NearestEraID(a.EraID)
		return res, nil
	}
	if work.EraUnlocked(a.EraID) {
		return domain.Rejected(domain.StatusAlreadyUnlocked, fmt.Sprintf("era %q is already unlocked", a.EraID)), nil
	}
	if work.ChronoEnergy < era.UnlockCost {
		return domain.Rejected(domain.StatusCannotAfford,
			fmt.Sprintf("need %.0f chrono-energy, have %.0f", era.UnlockCost, work.ChronoEnergy)), nil
	}

	work.ChronoEnergy -= era.UnlockCost
	work.UnlockedEras = append(work.UnlockedEras, a.EraID)
	work.UnlockedLore = append(work.UnlockedLore, era.LoreEntries...)
	work.SynergyStats[domain.StatErasUnlocked] = float64(len(work.UnlockedEras))

	return domain.Accepted, []event.Event{event.NewEraUnlockedEvent(a.EraID, era.UnlockCost)}
}

func (e *Engine) addEnergy(work *domain.GameState, a AddEnergy) (domain.Result, []event.Event) {
	if a.Amount <= 0 {
		return domain.Rejected(domain.StatusNoEffect, domain.ErrMsgInvalidAmount), nil
	}
	work.ChronoEnergy += a.Amount
	work.TotalChronoEnergyEarned += a.Amount
	work.SynergyStats[domain.StatEnergyEarned] = work.TotalChronoEnergyEarned
	return domain.Accepted, []event.Event{{
		Version: event.EventSchemaVersion,
		Type:    event.EnergyEarned,
		Payload: event.EnergyPayloadV1{Amount: a.Amount, Balance: work.ChronoEnergy},
	}}
}

// spendEnergy clamps at zero instead of rejecting. This soft floor is
// intentional and distinct from the ledger's hard rejection: chrono-energy is
// treated as a meta-currency whose sinks tolerate overdraw.
func (e *Engine) spendEnergy(work *domain.GameState, a SpendEnergy) (domain.Result, []event.Event) {
	if a.Amount <= 0 {
		return domain.Rejected(domain.StatusNoEffect, domain.ErrMsgInvalidAmount), nil
	}
	work.ChronoEnergy -= a.Amount
	if work.ChronoEnergy < 0 {
		work.ChronoEnergy = 0
	}
	return domain.Accepted, nil
}

// updateResource is the raw additive escape hatch for callers that have
// already validated affordability. It still floors at zero so the ledger's
// non-negativity invariant cannot be broken from outside.
func (e *Engine) updateResource(work *domain.GameState, a UpdateResource) (domain.Result, []event.Event) {
	if a.ResourceID == "" || a.Delta == 0 {
		return domain.Rejected(domain.StatusNoEffect, "nothing to update"), nil
	}
	next := work.Resources[a.ResourceID] + a.Delta
	if next < 0 {
		next = 0
	}
	work.Resources[a.ResourceID] = next
	return domain.Accepted, nil
}

func (e *Engine) setNames(work *domain.GameState, a SetNames) (domain.Result, []event.Event) {
	if a.PlayerName == "" && a.GardenName == "" {
		return domain.Rejected(domain.StatusNoEffect, "no names given"), nil
	}
	if a.PlayerName != "" {
		work.PlayerName = NormalizeName(a.PlayerName)
	}
	if a.GardenName != "" {
		work.GardenName = NormalizeName(a.GardenName)
	}
	return domain.Accepted, nil
}
