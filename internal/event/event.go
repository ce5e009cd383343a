package event

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// EventSchemaVersion is stamped on every event for forward compatibility.
const EventSchemaVersion = "1.0"

// Type represents the type of an event
type Type string

// Gameplay event types. The engine publishes one of these for every applied
// action that changes tracked state; the quest subsystem and outward adapters
// subscribe instead of being hardwired into the handlers.
const (
	CropPlanted       Type = "crop.planted"
	CropHarvested     Type = "crop.harvested"
	EraUnlocked       Type = "era.unlocked"
	EraChanged        Type = "era.changed"
	EnergyEarned      Type = "energy.earned"
	AutomationAdded   Type = "automation.added"
	AutomationRemoved Type = "automation.removed"
	UpgradePurchased  Type = "upgrade.purchased"
	GoalCompleted     Type = "goal.completed"
	PrestigeCompleted Type = "prestige.completed"
	VisitorArrived    Type = "visitor.arrived"
	QuestAccepted     Type = "quest.accepted"
	QuestCompleted    Type = "quest.completed"
	QuestFailed       Type = "quest.failed"
	ListingCreated    Type = "market.listing_created"
	StateChanged      Type = "state.changed"
)

// Event represents a single gameplay occurrence.
type Event struct {
	Version string      `json:"version"`
	Type    Type        `json:"type"`
	Payload interface{} `json:"payload"`
}

// Typed event payloads

// CropPlantedPayloadV1 is the typed payload for planting events
type CropPlantedPayloadV1 struct {
	InstanceID string `json:"instance_id"`
	CropID     string `json:"crop_id"`
	EraID      string `json:"era_id"`
	PlantedAt  int64  `json:"planted_at"`
}

// CropHarvestedPayloadV1 is the typed payload for harvest events
type CropHarvestedPayloadV1 struct {
	InstanceID string             `json:"instance_id"`
	CropID     string             `json:"crop_id"`
	EraID      string             `json:"era_id"`
	Weather    string             `json:"weather,omitempty"`
	Yield      map[string]float64 `json:"yield"`
}

// EraUnlockedPayloadV1 is the typed payload for era unlock events
type EraUnlockedPayloadV1 struct {
	EraID       string  `json:"era_id"`
	EnergySpent float64 `json:"energy_spent"`
}

// EnergyPayloadV1 is the typed payload for chrono-energy changes
type EnergyPayloadV1 struct {
	Amount  float64 `json:"amount"`
	Balance float64 `json:"balance"`
}

// GoalCompletedPayloadV1 is the typed payload for goal completion events
type GoalCompletedPayloadV1 struct {
	GoalID     string `json:"goal_id"`
	RewardKind string `json:"reward_kind"`
}

// PrestigeCompletedPayloadV1 is the typed payload for prestige events
type PrestigeCompletedPayloadV1 struct {
	PrestigeCount int `json:"prestige_count"`
	RareSeedsKept int `json:"rare_seeds_kept"`
}

// QuestPayloadV1 is the typed payload for quest lifecycle events
type QuestPayloadV1 struct {
	VisitorID string `json:"visitor_id"`
	QuestID   string `json:"quest_id"`
	Progress  int    `json:"progress,omitempty"`
}

// VisitorArrivedPayloadV1 is the typed payload for visitor spawn events
type VisitorArrivedPayloadV1 struct {
	VisitorID string `json:"visitor_id"`
	EraID     string `json:"era_id"`
}

// ListingCreatedPayloadV1 is the typed payload for market listing events
type ListingCreatedPayloadV1 struct {
	ListingID string  `json:"listing_id"`
	ItemType  string  `json:"item_type"`
	ItemID    string  `json:"item_id"`
	Quantity  float64 `json:"quantity"`
	Price     float64 `json:"price"`
	Timestamp int64   `json:"timestamp"`
}

// Type-safe event constructors

// NewCropHarvestedEvent creates a harvest event with a typed payload.
func NewCropHarvestedEvent(instanceID, cropID, eraID, weather string, yield map[string]float64) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    CropHarvested,
		Payload: CropHarvestedPayloadV1{
			InstanceID: instanceID,
			CropID:     cropID,
			EraID:      eraID,
			Weather:    weather,
			Yield:      yield,
		},
	}
}

// NewCropPlantedEvent creates a planting event with a typed payload.
func NewCropPlantedEvent(instanceID, cropID, eraID string, plantedAt time.Time) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    CropPlanted,
		Payload: CropPlantedPayloadV1{
			InstanceID: instanceID,
			CropID:     cropID,
			EraID:      eraID,
			PlantedAt:  plantedAt.Unix(),
		},
	}
}

// NewEraUnlockedEvent creates an era unlock event with a typed payload.
func NewEraUnlockedEvent(eraID string, energySpent float64) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    EraUnlocked,
		Payload: EraUnlockedPayloadV1{EraID: eraID, EnergySpent: energySpent},
	}
}

// NewPrestigeEvent creates a prestige completion event with a typed payload.
func NewPrestigeEvent(prestigeCount, rareSeedsKept int) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    PrestigeCompleted,
		Payload: PrestigeCompletedPayloadV1{
			PrestigeCount: prestigeCount,
			RareSeedsKept: rareSeedsKept,
		},
	}
}

// Handler is a function that handles an event
type Handler func(ctx context.Context, event Event) error

// Bus defines the interface for an event bus
type Bus interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType Type, handler Handler)
}

// MemoryBus is an in-memory implementation of the Event Bus
type MemoryBus struct {
	handlers map[Type][]Handler
	mu       sync.RWMutex
}

// NewMemoryBus creates a new MemoryBus
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{
		handlers: make(map[Type][]Handler),
	}
}

// Publish publishes an event to all subscribers synchronously, in
// subscription order. Handler errors are collected, not short-circuited.
func (b *MemoryBus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	handlers, ok := b.handlers[event.Type]
	b.mu.RUnlock()

	if !ok {
		return nil
	}

	var errs []error
	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("%d handler error(s) for %s: %v", len(errs), event.Type, errs)
	}

	return nil
}

// Subscribe subscribes a handler to an event type
func (b *MemoryBus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
}
