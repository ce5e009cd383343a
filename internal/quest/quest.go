// Package quest holds the visitor-quest rules: which gameplay events advance
// a quest, when an active quest expires, and which visitors are eligible to
// appear. Everything here is a pure function over state, catalog, and events;
// the progression engine calls in and owns all mutation.
package quest

import (
	"time"

	"github.com/verdantloop/chronogarden/internal/catalog"
	"github.com/verdantloop/chronogarden/internal/domain"
	"github.com/verdantloop/chronogarden/internal/event"
)

// Matches reports whether a harvest event satisfies a quest condition. Empty
// condition fields match anything; a weather requirement only matches the
// weather recorded on the event.
func Matches(cond domain.QuestCondition, ev event.Event) bool {
	if ev.Type != event.CropHarvested {
		return false
	}
	payload, err := event.DecodePayload[event.CropHarvestedPayloadV1](ev.Payload)
	if err != nil {
		return false
	}
	if cond.CropID != "" && cond.CropID != payload.CropID {
		return false
	}
	if cond.EraID != "" && cond.EraID != payload.EraID {
		return false
	}
	if cond.Weather != "" && cond.Weather != payload.Weather {
		return false
	}
	return true
}

// Expired reports whether an active quest has outlived its time limit at now.
// Quests without a duration never expire, and only active quests can expire.
func Expired(active *domain.ActiveQuest, spec *domain.Quest, now time.Time) bool {
	if active == nil || spec == nil {
		return false
	}
	if active.Status != domain.QuestActive || spec.DurationMinutes <= 0 {
		return false
	}
	deadline := active.StartedAt.Add(time.Duration(spec.DurationMinutes) * time.Minute)
	return now.After(deadline)
}

// RemainingQuests returns the visitor's quests that have not been completed.
func RemainingQuests(cat *catalog.Catalog, state *domain.GameState, visitorID string) []string {
	visitor := cat.Visitor(visitorID)
	if visitor == nil {
		return nil
	}
	var out []string
	for _, qid := range visitor.Quests {
		if !state.QuestDone(qid) {
			out = append(out, qid)
		}
	}
	return out
}

// EligibleVisitors returns visitors that may arrive in the current era and
// still have at least one uncompleted quest to offer.
func EligibleVisitors(cat *catalog.Catalog, state *domain.GameState) []domain.Visitor {
	var out []domain.Visitor
	for _, v := range cat.VisitorsForEra(state.CurrentEra) {
		if len(RemainingQuests(cat, state, v.ID)) > 0 {
			out = append(out, v)
		}
	}
	return out
}

// CanDismiss reports whether the current visitor may be sent away. An active,
// un-expired quest blocks dismissal; a completed or failed quest, or a
// visitor with nothing left to offer, does not.
func CanDismiss(cat *catalog.Catalog, state *domain.GameState, now time.Time) bool {
	if state.CurrentVisitor == "" {
		return false
	}
	if state.Quest == nil {
		return true
	}
	switch state.Quest.Status {
	case domain.QuestCompleted, domain.QuestFailed:
		return true
	}
	if Expired(state.Quest, cat.Quest(state.Quest.QuestID), now) {
		return true
	}
	return len(RemainingQuests(cat, state, state.CurrentVisitor)) == 0
}
