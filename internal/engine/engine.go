// Package engine is the progression state machine. It owns the single
// authoritative GameState snapshot and applies one Action at a time, each
// producing a complete new snapshot from the previous one. Invalid actions
// are no-ops reported through result codes; nothing in here is fatal.
package engine

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/verdantloop/chronogarden/internal/catalog"
	"github.com/verdantloop/chronogarden/internal/domain"
	"github.com/verdantloop/chronogarden/internal/event"
	"github.com/verdantloop/chronogarden/internal/logger"
	"github.com/verdantloop/chronogarden/internal/metrics"
)

// Tunables for soil quality. Planting and automation wear the soil down; the
// periodic tick lets it recover.
const (
	SoilCostPlant      = 2.0
	SoilCostAutomation = 5.0
	SoilRecoveryRate   = 1.0
	SoilMax            = 100.0
)

// Starter balances for a fresh garden.
var initialResources = domain.ResourceMap{
	domain.ResourceSeeds: 10,
	domain.ResourceWater: 50,
}

// Engine applies actions to the game state. It is safe for concurrent use;
// actions are serialized so each one observes the complete result of the
// previous one and no partial application is ever visible.
type Engine struct {
	cat *catalog.Catalog
	bus event.Bus

	mu    sync.Mutex
	state *domain.GameState

	now func() time.Time
	rnd func() float64
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock injects the time source. Tests supply a fixed or stepped clock.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithRand injects the random source used for visitor spawns and rare seed
// draws. Tests supply a fixed sequence.
func WithRand(rnd func() float64) Option {
	return func(e *Engine) { e.rnd = rnd }
}

// New creates an engine starting from a fresh initial snapshot.
func New(cat *catalog.Catalog, bus event.Bus, playerName, gardenName string, opts ...Option) *Engine {
	return NewFromSnapshot(cat, bus, InitialState(playerName, gardenName), opts...)
}

// NewFromSnapshot creates an engine resuming from a previously persisted
// snapshot. The snapshot is cloned; the caller's copy is not retained.
func NewFromSnapshot(cat *catalog.Catalog, bus event.Bus, state *domain.GameState, opts ...Option) *Engine {
	e := &Engine{
		cat:   cat,
		bus:   bus,
		state: state.Clone(),
		now:   time.Now,
		rnd:   rand.Float64,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// InitialState builds the fixed starting snapshot: Present era unlocked,
// starter resources, zero everything else.
func InitialState(playerName, gardenName string) *domain.GameState {
	return &domain.GameState{
		PlayerName:             NormalizeName(playerName),
		GardenName:             NormalizeName(gardenName),
		CurrentEra:             domain.EraPresent,
		UnlockedEras:           []string{domain.EraPresent},
		Resources:              initialResources.Clone(),
		PlantedCrops:           []domain.PlantedCrop{},
		SoilQuality:            SoilMax,
		CurrentWeather:         "sunny",
		UpgradeLevels:          map[string]int{},
		PermanentUpgradeLevels: map[string]int{},
		GoalStatus:             map[string]domain.GoalStatus{},
		SynergyStats:           map[string]float64{},
	}
}

// Snapshot returns an independent copy of the current state.
func (e *Engine) Snapshot() *domain.GameState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.Clone()
}

// Catalog exposes the content set the engine runs against.
func (e *Engine) Catalog() *catalog.Catalog { return e.cat }

// Restore replaces the current state with a validated imported snapshot.
func (e *Engine) Restore(state *domain.GameState) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.state = state.Clone()
}

// Apply runs one action against the current state. On success the engine
// swaps in the new snapshot and publishes the transition's gameplay events;
// on rejection the state is untouched and the result says why.
func (e *Engine) Apply(ctx context.Context, action Action) domain.Result {
	log := logger.FromContext(ctx)

	e.mu.Lock()
	work := e.state.Clone()
	now := e.now()

	res, events := e.dispatch(work, action, now)
	if res.OK() {
		// Quest and goal evaluation run inside the same transition so their
		// rewards land in the snapshot the caller observes.
		events = append(events, e.evaluateQuest(work, events, now)...)
		events = append(events, e.evaluateGoals(work)...)
		e.state = work
	}
	e.mu.Unlock()

	metrics.ActionsApplied.WithLabelValues(action.Name(), string(res.Code)).Inc()

	if !res.OK() {
		log.Debug("Action rejected", "action", action.Name(), "code", res.Code, "message", res.Message)
		return res
	}

	for _, ev := range events {
		if err := e.bus.Publish(ctx, ev); err != nil {
			log.Error("Failed to publish event", "event_type", ev.Type, "error", err)
		}
	}
	if err := e.bus.Publish(ctx, event.Event{Version: event.EventSchemaVersion, Type: event.StateChanged}); err != nil {
		log.Error("Failed to publish state change", "error", err)
	}

	return res
}

func (e *Engine) dispatch(work *domain.GameState, action Action, now time.Time) (domain.Result, []event.Event) {
	switch a := action.(type) {
	case SetEra:
		return e.setEra(work, a)
	case UnlockEra:
		return e.unlockEra(work, a)
	case AddEnergy:
		return e.addEnergy(work, a)
	case SpendEnergy:
		return e.spendEnergy(work, a)
	case UpdateResource:
		return e.updateResource(work, a)
	case PlantCrop:
		return e.plantCrop(work, a, now)
	case HarvestCrop:
		return e.harvestCrop(work, a, now)
	case AddAutomation:
		return e.addAutomation(work, a, now)
	case RemoveAutomation:
		return e.removeAutomation(work, a)
	case PurchaseUpgrade:
		return e.purchaseUpgrade(work, a)
	case PurchasePermanentUpgrade:
		return e.purchasePermanentUpgrade(work, a)
	case PrestigeReset:
		return e.prestigeReset(work)
	case AcceptQuest:
		return e.acceptQuest(work, a, now)
	case DismissVisitor:
		return e.dismissVisitor(work, now)
	case CheckVisitorSpawn:
		return e.checkVisitorSpawn(work)
	case SetWeather:
		work.CurrentWeather = a.Weather
		return domain.Accepted, nil
	case SetNames:
		return e.setNames(work, a)
	case CreateListing:
		return e.createListing(work, a, now)
	case Tick:
		return e.tick(work)
	default:
		return domain.Rejected(domain.StatusNotFound, "unknown action"), nil
	}
}

// tick applies pull-based upkeep: soil recovery toward the cap. Quest expiry
// is evaluated by the shared post-dispatch pass.
func (e *Engine) tick(work *domain.GameState) (domain.Result, []event.Event) {
	if work.SoilQuality < SoilMax {
		work.SoilQuality += SoilRecoveryRate
		if work.SoilQuality > SoilMax {
			work.SoilQuality = SoilMax
		}
	}
	return domain.Accepted, nil
}
