package engine

import (
	"github.com/verdantloop/chronogarden/internal/domain"
	"github.com/verdantloop/chronogarden/internal/event"
	"github.com/verdantloop/chronogarden/internal/ledger"
)

// statValue resolves a tracked statistic. The running counters in
// SynergyStats are the single source; goals re-derive progress from them on
// every evaluation instead of keeping independent tallies.
func statValue(work *domain.GameState, stat string) float64 {
	switch stat {
	case domain.StatPrestigeCount:
		return float64(work.PrestigeCount)
	case domain.StatRareSeeds:
		return float64(len(work.RareSeeds))
	case domain.StatQuestsDone:
		return float64(len(work.CompletedQuests))
	case domain.StatErasUnlocked:
		return float64(len(work.UnlockedEras))
	default:
		return work.SynergyStats[stat]
	}
}

// evaluateGoals recomputes every goal's progress and grants rewards for
// fresh completions. Completion is one-way: an already-completed goal is
// skipped outright, so evaluating twice can never double-credit.
func (e *Engine) evaluateGoals(work *domain.GameState) []event.Event {
	var events []event.Event

	for _, goal := range e.cat.Goals {
		status := work.GoalStatus[goal.ID]
		if status.Completed {
			continue
		}

		status.Progress = statValue(work, goal.Stat)
		if status.Progress >= goal.Target {
			status.Completed = true
			e.grantGoalReward(work, goal)
			events = append(events, event.Event{
				Version: event.EventSchemaVersion,
				Type:    event.GoalCompleted,
				Payload: event.GoalCompletedPayloadV1{GoalID: goal.ID, RewardKind: string(goal.Reward.Kind)},
			})
		}
		work.GoalStatus[goal.ID] = status
	}

	return events
}

func (e *Engine) grantGoalReward(work *domain.GameState, goal domain.Goal) {
	switch goal.Reward.Kind {
	case domain.RewardEnergy:
		work.ChronoEnergy += goal.Reward.Amount
		work.TotalChronoEnergyEarned += goal.Reward.Amount
		work.SynergyStats[domain.StatEnergyEarned] = work.TotalChronoEnergyEarned
	case domain.RewardRareSeed:
		e.grantRareSeed(work)
	case domain.RewardResource:
		if goal.Reward.Resource != "" && goal.Reward.Amount > 0 {
			ledger.CreditAll(work.Resources, map[string]float64{goal.Reward.Resource: goal.Reward.Amount})
		}
	}
}

// grantRareSeed draws uniformly from catalog-eligible crops not yet owned.
// When everything eligible is owned the reward quietly degrades to nothing;
// the goal still completes.
func (e *Engine) grantRareSeed(work *domain.GameState) {
	var pool []string
	for _, id := range e.cat.RareEligibleCrops() {
		if !work.HasRareSeed(id) {
			pool = append(pool, id)
		}
	}
	if len(pool) == 0 {
		return
	}
	pick := int(e.rnd() * float64(len(pool)))
	if pick >= len(pool) {
		pick = len(pool) - 1
	}
	work.RareSeeds = append(work.RareSeeds, pool[pick])
	work.SynergyStats[domain.StatRareSeeds] = float64(len(work.RareSeeds))
}

// SynergyLevel computes a synergy's effect level from current stats:
// floor(stat/threshold) capped at MaxLevels. Pure; calling it twice with
// unchanged stats yields identical results.
func SynergyLevel(syn domain.Synergy, state *domain.GameState) int {
	if syn.Threshold <= 0 {
		return 0
	}
	level := int(statValue(state, syn.Stat) / syn.Threshold)
	if syn.MaxLevels > 0 && level > syn.MaxLevels {
		level = syn.MaxLevels
	}
	return level
}

// SynergyEffect is the effect magnitude: level * effectPerLevel.
func SynergyEffect(syn domain.Synergy, state *domain.GameState) float64 {
	return float64(SynergyLevel(syn, state)) * syn.EffectPerLevel
}

// SynergyReport is a read-model row for the synergy display.
type SynergyReport struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Level  int     `json:"level"`
	Effect float64 `json:"effect"`
}

// Synergies evaluates every catalog synergy against the current state.
func (e *Engine) Synergies() []SynergyReport {
	state := e.Snapshot()
	out := make([]SynergyReport, 0, len(e.cat.Synergies))
	for _, syn := range e.cat.Synergies {
		out = append(out, SynergyReport{
			ID:     syn.ID,
			Name:   syn.Name,
			Level:  SynergyLevel(syn, state),
			Effect: SynergyEffect(syn, state),
		})
	}
	return out
}
