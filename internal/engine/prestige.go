package engine

import (
	"github.com/verdantloop/chronogarden/internal/domain"
	"github.com/verdantloop/chronogarden/internal/event"
	"github.com/verdantloop/chronogarden/internal/metrics"
)

// prestigeReset performs the soft reset. The new snapshot is the initial one
// with a fixed set of carry-overs: rare seeds, permanent upgrade levels,
// completed goal flags (completion is one-way, rewards are never re-granted),
// lifetime totals, display names, and prestigeCount+1. Everything else, the
// ledger included, reverts to its starting value, so nothing can leak across
// a run boundary.
func (e *Engine) prestigeReset(work *domain.GameState) (domain.Result, []event.Event) {
	if !work.EraUnlocked(domain.EraFuture) {
		return domain.Rejected(domain.StatusPrestigeLocked, "unlock the future era first"), nil
	}

	fresh := InitialState(work.PlayerName, work.GardenName)
	fresh.RareSeeds = append([]string(nil), work.RareSeeds...)
	for id, level := range work.PermanentUpgradeLevels {
		fresh.PermanentUpgradeLevels[id] = level
	}
	for id, status := range work.GoalStatus {
		if status.Completed {
			fresh.GoalStatus[id] = domain.GoalStatus{Progress: status.Progress, Completed: true}
		}
	}
	fresh.PrestigeCount = work.PrestigeCount + 1
	fresh.TotalCropsHarvested = work.TotalCropsHarvested
	fresh.TotalChronoEnergyEarned = work.TotalChronoEnergyEarned

	// Re-seed the stat counters that track carried lifetime values; per-era
	// and per-run counters start over.
	fresh.SynergyStats[domain.StatCropsHarvested] = float64(fresh.TotalCropsHarvested)
	fresh.SynergyStats[domain.StatEnergyEarned] = fresh.TotalChronoEnergyEarned
	fresh.SynergyStats[domain.StatPrestigeCount] = float64(fresh.PrestigeCount)
	fresh.SynergyStats[domain.StatRareSeeds] = float64(len(fresh.RareSeeds))

	*work = *fresh

	metrics.Prestiges.Inc()

	return domain.Accepted, []event.Event{
		event.NewPrestigeEvent(work.PrestigeCount, len(work.RareSeeds)),
	}
}
