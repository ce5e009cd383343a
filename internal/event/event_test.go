package event

import (
	"context"
	"errors"
	"testing"
)

func TestMemoryBus_PublishSubscribe(t *testing.T) {
	bus := NewMemoryBus()
	handled := false

	bus.Subscribe(CropHarvested, func(ctx context.Context, ev Event) error {
		if ev.Type != CropHarvested {
			t.Errorf("Expected event type %s, got %s", CropHarvested, ev.Type)
		}
		payload, err := DecodePayload[CropHarvestedPayloadV1](ev.Payload)
		if err != nil {
			t.Fatalf("DecodePayload failed: %v", err)
		}
		if payload.CropID != "tomato" {
			t.Errorf("Expected crop tomato, got %s", payload.CropID)
		}
		handled = true
		return nil
	})

	ev := NewCropHarvestedEvent("inst-1", "tomato", "present", "sunny", map[string]float64{"tomatoes": 3})
	if err := bus.Publish(context.Background(), ev); err != nil {
		t.Errorf("Publish returned error: %v", err)
	}

	if !handled {
		t.Error("Handler was not called")
	}
}

func TestMemoryBus_PublishMultipleHandlers(t *testing.T) {
	bus := NewMemoryBus()
	count := 0

	handler := func(ctx context.Context, ev Event) error {
		count++
		return nil
	}

	bus.Subscribe(EraUnlocked, handler)
	bus.Subscribe(EraUnlocked, handler)

	err := bus.Publish(context.Background(), NewEraUnlockedEvent("prehistoric", 100))
	if err != nil {
		t.Errorf("Publish returned error: %v", err)
	}

	if count != 2 {
		t.Errorf("Expected 2 handlers to be called, got %d", count)
	}
}

func TestMemoryBus_PublishNoSubscribers(t *testing.T) {
	bus := NewMemoryBus()

	if err := bus.Publish(context.Background(), NewPrestigeEvent(1, 2)); err != nil {
		t.Errorf("Publish with no subscribers should be nil, got %v", err)
	}
}

func TestMemoryBus_PublishError(t *testing.T) {
	bus := NewMemoryBus()

	bus.Subscribe(QuestCompleted, func(ctx context.Context, ev Event) error {
		return errors.New("handler error")
	})

	err := bus.Publish(context.Background(), Event{Version: EventSchemaVersion, Type: QuestCompleted})
	if err == nil {
		t.Error("Expected error from Publish, got nil")
	}
}

func TestDecodePayloadJSONFallback(t *testing.T) {
	// Simulate a payload that went through serialization.
	raw := map[string]interface{}{
		"era_id":       "medieval",
		"energy_spent": 250.0,
	}

	payload, err := DecodePayload[EraUnlockedPayloadV1](raw)
	if err != nil {
		t.Fatalf("DecodePayload failed: %v", err)
	}
	if payload.EraID != "medieval" || payload.EnergySpent != 250 {
		t.Errorf("Unexpected payload: %+v", payload)
	}
}
