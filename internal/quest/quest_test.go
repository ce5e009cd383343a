package quest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/verdantloop/chronogarden/internal/catalog"
	"github.com/verdantloop/chronogarden/internal/domain"
	"github.com/verdantloop/chronogarden/internal/event"
)

func harvestEvent(cropID, eraID, weather string) event.Event {
	return event.NewCropHarvestedEvent("inst-1", cropID, eraID, weather, map[string]float64{cropID: 1})
}

func TestMatches(t *testing.T) {
	tests := []struct {
		name string
		cond domain.QuestCondition
		ev   event.Event
		want bool
	}{
		{"crop match", domain.QuestCondition{CropID: "tomato"}, harvestEvent("tomato", "present", ""), true},
		{"crop mismatch", domain.QuestCondition{CropID: "tomato"}, harvestEvent("wheat", "medieval", ""), false},
		{"era match", domain.QuestCondition{EraID: "prehistoric"}, harvestEvent("giant_fern", "prehistoric", ""), true},
		{"weather required and present", domain.QuestCondition{CropID: "wheat", Weather: "rain"}, harvestEvent("wheat", "medieval", "rain"), true},
		{"weather required and absent", domain.QuestCondition{CropID: "wheat", Weather: "rain"}, harvestEvent("wheat", "medieval", "sunny"), false},
		{"empty condition matches any harvest", domain.QuestCondition{}, harvestEvent("carrot", "present", ""), true},
		{"non-harvest event never matches", domain.QuestCondition{}, event.NewEraUnlockedEvent("medieval", 250), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Matches(tt.cond, tt.ev))
		})
	}
}

func TestExpired(t *testing.T) {
	start := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	spec := &domain.Quest{ID: "q", DurationMinutes: 30}
	active := &domain.ActiveQuest{QuestID: "q", Status: domain.QuestActive, StartedAt: start}

	assert.False(t, Expired(active, spec, start.Add(29*time.Minute)))
	assert.False(t, Expired(active, spec, start.Add(30*time.Minute)))
	assert.True(t, Expired(active, spec, start.Add(31*time.Minute)))

	// No duration means no expiry.
	timeless := &domain.Quest{ID: "q2"}
	assert.False(t, Expired(active, timeless, start.Add(100*time.Hour)))

	// Completed quests do not expire.
	done := &domain.ActiveQuest{QuestID: "q", Status: domain.QuestCompleted, StartedAt: start}
	assert.False(t, Expired(done, spec, start.Add(time.Hour)))
}

func TestEligibleVisitors(t *testing.T) {
	cat := catalog.Default()
	state := &domain.GameState{CurrentEra: domain.EraPresent}

	eligible := EligibleVisitors(cat, state)
	ids := make([]string, 0, len(eligible))
	for _, v := range eligible {
		ids = append(ids, v.ID)
	}
	assert.Contains(t, ids, "traveler_elara")
	assert.NotContains(t, ids, "monk_aldric") // medieval-bound

	// A visitor with every quest completed is no longer eligible.
	state.CompletedQuests = []string{"tomato_tithe", "fern_offering"}
	for _, v := range EligibleVisitors(cat, state) {
		assert.NotEqual(t, "traveler_elara", v.ID)
	}
}

func TestCanDismiss(t *testing.T) {
	cat := catalog.Default()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	state := &domain.GameState{CurrentEra: domain.EraPresent}
	assert.False(t, CanDismiss(cat, state, now), "no visitor present")

	state.CurrentVisitor = "traveler_elara"
	assert.True(t, CanDismiss(cat, state, now), "visitor without active quest")

	state.Quest = &domain.ActiveQuest{
		VisitorID: "traveler_elara", QuestID: "tomato_tithe",
		Status: domain.QuestActive, StartedAt: now,
	}
	assert.False(t, CanDismiss(cat, state, now.Add(time.Minute)), "active quest blocks dismissal")

	// Past the 30 minute limit the quest is expired so dismissal unblocks.
	assert.True(t, CanDismiss(cat, state, now.Add(31*time.Minute)))

	state.Quest.Status = domain.QuestCompleted
	assert.True(t, CanDismiss(cat, state, now.Add(time.Minute)))
}
