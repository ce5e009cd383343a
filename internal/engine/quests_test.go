package engine

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verdantloop/chronogarden/internal/domain"
)

// seqRand replays a fixed sequence, then repeats the last value.
func seqRand(values ...float64) func() float64 {
	i := 0
	return func() float64 {
		v := values[i]
		if i < len(values)-1 {
			i++
		}
		return v
	}
}

func TestVisitorSpawn(t *testing.T) {
	// First draw 0.1 beats the present era's 0.25 chance, second draw 0
	// picks the first eligible visitor.
	e, _ := newTestEngine(t, WithRand(seqRand(0.1, 0)))
	ctx := context.Background()

	res := e.Apply(ctx, CheckVisitorSpawn{})
	require.True(t, res.OK())
	assert.Equal(t, "traveler_elara", e.Snapshot().CurrentVisitor)

	// A second check while someone is here is rejected outright.
	res = e.Apply(ctx, CheckVisitorSpawn{})
	assert.Equal(t, domain.StatusVisitorPresent, res.Code)
}

func TestVisitorSpawnMissesRoll(t *testing.T) {
	e, _ := newTestEngine(t, WithRand(seqRand(0.9)))

	res := e.Apply(context.Background(), CheckVisitorSpawn{})
	assert.Equal(t, domain.StatusNoEffect, res.Code)
	assert.Empty(t, e.Snapshot().CurrentVisitor)
}

func spawnElara(t *testing.T, e *Engine) {
	t.Helper()
	snap := e.Snapshot()
	snap.CurrentVisitor = "traveler_elara"
	e.Restore(snap)
}

func TestAcceptQuest(t *testing.T) {
	e, _ := newTestEngine(t)
	ctx := context.Background()

	// Nobody around yet.
	res := e.Apply(ctx, AcceptQuest{VisitorID: "traveler_elara", QuestID: "tomato_tithe"})
	assert.Equal(t, domain.StatusNotFound, res.Code)

	spawnElara(t, e)

	res = e.Apply(ctx, AcceptQuest{VisitorID: "traveler_elara", QuestID: "tomato_tithe"})
	require.True(t, res.OK())
	quest := e.Snapshot().Quest
	require.NotNil(t, quest)
	assert.Equal(t, "tomato_tithe", quest.QuestID)
	assert.Equal(t, domain.QuestActive, quest.Status)

	// Only one quest at a time.
	res = e.Apply(ctx, AcceptQuest{VisitorID: "traveler_elara", QuestID: "fern_offering"})
	assert.Equal(t, domain.StatusQuestActive, res.Code)
	assert.Equal(t, "tomato_tithe", e.Snapshot().Quest.QuestID)
}

func TestAcceptQuestNotOffered(t *testing.T) {
	e, _ := newTestEngine(t)
	spawnElara(t, e)

	res := e.Apply(context.Background(), AcceptQuest{VisitorID: "traveler_elara", QuestID: "rainy_day_wheat"})
	assert.Equal(t, domain.StatusNotFound, res.Code)
}

func harvestTomato(t *testing.T, e *Engine, clock *fakeClock) {
	t.Helper()
	ctx := context.Background()
	require.True(t, e.Apply(ctx, PlantCrop{CropID: "tomato"}).OK())
	clock.Advance(time.Minute)
	crops := e.Snapshot().PlantedCrops
	instance := crops[len(crops)-1].InstanceID
	require.True(t, e.Apply(ctx, HarvestCrop{InstanceID: instance}).OK())
}

func TestQuestProgressAndCompletion(t *testing.T) {
	e, clock := newTestEngine(t)
	ctx := context.Background()
	spawnElara(t, e)

	require.True(t, e.Apply(ctx, AcceptQuest{VisitorID: "traveler_elara", QuestID: "tomato_tithe"}).OK())

	for i := 0; i < 4; i++ {
		harvestTomato(t, e, clock)
	}
	state := e.Snapshot()
	assert.Equal(t, 4, state.Quest.Progress)
	assert.Equal(t, domain.QuestActive, state.Quest.Status)

	energyBefore := state.ChronoEnergy
	harvestTomato(t, e, clock)

	state = e.Snapshot()
	assert.Equal(t, domain.QuestCompleted, state.Quest.Status)
	assert.Contains(t, state.CompletedQuests, "tomato_tithe")
	assert.Equal(t, energyBefore+25, state.ChronoEnergy)

	// Completed quests cannot be accepted again.
	res := e.Apply(ctx, AcceptQuest{VisitorID: "traveler_elara", QuestID: "tomato_tithe"})
	assert.Equal(t, domain.StatusQuestDone, res.Code)
}

func TestQuestExpiry(t *testing.T) {
	e, clock := newTestEngine(t)
	ctx := context.Background()
	spawnElara(t, e)

	require.True(t, e.Apply(ctx, AcceptQuest{VisitorID: "traveler_elara", QuestID: "tomato_tithe"}).OK())

	// Dismissal is blocked while the quest is live.
	res := e.Apply(ctx, DismissVisitor{})
	assert.Equal(t, domain.StatusVisitorBusy, res.Code)

	// Past the 30 minute window the quest fails on the next evaluation and
	// the slot opens up again.
	clock.Advance(31 * time.Minute)
	require.True(t, e.Apply(ctx, Tick{}).OK())
	assert.Equal(t, domain.QuestFailed, e.Snapshot().Quest.Status)

	// A failed quest is not done; it can be retried.
	res = e.Apply(ctx, AcceptQuest{VisitorID: "traveler_elara", QuestID: "tomato_tithe"})
	require.True(t, res.OK())
	assert.Equal(t, domain.QuestActive, e.Snapshot().Quest.Status)
}

func TestDismissVisitor(t *testing.T) {
	e, _ := newTestEngine(t)
	ctx := context.Background()

	res := e.Apply(ctx, DismissVisitor{})
	assert.Equal(t, domain.StatusNotFound, res.Code)

	spawnElara(t, e)
	res = e.Apply(ctx, DismissVisitor{})
	require.True(t, res.OK())
	state := e.Snapshot()
	assert.Empty(t, state.CurrentVisitor)
	assert.Nil(t, state.Quest)
}

func TestQuestConditionFiltersCrop(t *testing.T) {
	e, clock := newTestEngine(t)
	ctx := context.Background()
	spawnElara(t, e)

	require.True(t, e.Apply(ctx, AcceptQuest{VisitorID: "traveler_elara", QuestID: "tomato_tithe"}).OK())

	// Carrots do not count toward a tomato quest.
	require.True(t, e.Apply(ctx, PlantCrop{CropID: "carrot"}).OK())
	clock.Advance(time.Minute)
	instance := e.Snapshot().PlantedCrops[0].InstanceID
	require.True(t, e.Apply(ctx, HarvestCrop{InstanceID: instance}).OK())

	assert.Equal(t, 0, e.Snapshot().Quest.Progress)
}
