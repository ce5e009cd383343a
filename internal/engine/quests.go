package engine

import (
	"fmt"
	"time"

	"github.com/verdantloop/chronogarden/internal/domain"
	"github.com/verdantloop/chronogarden/internal/event"
	"github.com/verdantloop/chronogarden/internal/ledger"
	"github.com/verdantloop/chronogarden/internal/quest"
)

func (e *Engine) acceptQuest(work *domain.GameState, a AcceptQuest, now time.Time) (domain.Result, []event.Event) {
	// Expiry is pull-based: settle a stale timer before judging "active".
	e.expireQuest(work, now)

	if work.Quest != nil && work.Quest.Status == domain.QuestActive {
		return domain.Rejected(domain.StatusQuestActive, "another quest is already active"), nil
	}
	if work.CurrentVisitor == "" || work.CurrentVisitor != a.VisitorID {
		return domain.Rejected(domain.StatusNotFound, fmt.Sprintf("visitor %q is not here", a.VisitorID)), nil
	}
	visitor := e.cat.Visitor(a.VisitorID)
	spec := e.cat.Quest(a.QuestID)
	if visitor == nil || spec == nil {
		return domain.Rejected(domain.StatusNotFound, domain.ErrMsgQuestNotFound), nil
	}
	offered := false
	for _, qid := range visitor.Quests {
		if qid == a.QuestID {
			offered = true
			break
		}
	}
	if !offered {
		return domain.Rejected(domain.StatusNotFound,
			fmt.Sprintf("%s does not offer %q", visitor.Name, a.QuestID)), nil
	}
	if work.QuestDone(a.QuestID) {
		return domain.Rejected(domain.StatusQuestDone, fmt.Sprintf("quest %q was already completed", a.QuestID)), nil
	}

	work.Quest = &domain.ActiveQuest{
		VisitorID: a.VisitorID,
		QuestID:   a.QuestID,
		Status:    domain.QuestActive,
		Progress:  0,
		StartedAt: now,
	}

	return domain.Accepted, []event.Event{{
		Version: event.EventSchemaVersion,
		Type:    event.QuestAccepted,
		Payload: event.QuestPayloadV1{VisitorID: a.VisitorID, QuestID: a.QuestID},
	}}
}

func (e *Engine) dismissVisitor(work *domain.GameState, now time.Time) (domain.Result, []event.Event) {
	if work.CurrentVisitor == "" {
		return domain.Rejected(domain.StatusNotFound, "no visitor present"), nil
	}
	e.expireQuest(work, now)
	if !quest.CanDismiss(e.cat, work, now) {
		return domain.Rejected(domain.StatusVisitorBusy, "finish or fail the active quest first"), nil
	}
	work.CurrentVisitor = ""
	work.Quest = nil
	return domain.Accepted, nil
}

func (e *Engine) checkVisitorSpawn(work *domain.GameState) (domain.Result, []event.Event) {
	if work.CurrentVisitor != "" {
		return domain.Rejected(domain.StatusVisitorPresent, "a visitor is already here"), nil
	}
	era := e.cat.Era(work.CurrentEra)
	if era == nil || era.VisitorChance <= 0 {
		return domain.Rejected(domain.StatusNoEffect, "no visitors come to this era"), nil
	}
	eligible := quest.EligibleVisitors(e.cat, work)
	if len(eligible) == 0 {
		return domain.Rejected(domain.StatusNoEffect, "no eligible visitors"), nil
	}
	if e.rnd() >= era.VisitorChance {
		return domain.Rejected(domain.StatusNoEffect, "nobody came"), nil
	}

	pick := int(e.rnd() * float64(len(eligible)))
	if pick >= len(eligible) {
		pick = len(eligible) - 1
	}
	work.CurrentVisitor = eligible[pick].ID

	return domain.Accepted, []event.Event{{
		Version: event.EventSchemaVersion,
		Type:    event.VisitorArrived,
		Payload: event.VisitorArrivedPayloadV1{VisitorID: work.CurrentVisitor, EraID: work.CurrentEra},
	}}
}

// expireQuest fails an active quest whose deadline has passed. Quests time
// out only when evaluated against now, never proactively.
func (e *Engine) expireQuest(work *domain.GameState, now time.Time) []event.Event {
	if work.Quest == nil || work.Quest.Status != domain.QuestActive {
		return nil
	}
	if !quest.Expired(work.Quest, e.cat.Quest(work.Quest.QuestID), now) {
		return nil
	}
	work.Quest.Status = domain.QuestFailed
	return []event.Event{{
		Version: event.EventSchemaVersion,
		Type:    event.QuestFailed,
		Payload: event.QuestPayloadV1{
			VisitorID: work.Quest.VisitorID,
			QuestID:   work.Quest.QuestID,
			Progress:  work.Quest.Progress,
		},
	}}
}

// evaluateQuest advances the active quest from the transition's gameplay
// events. The quest subsystem subscribes to the event stream rather than
// being wired into each mutating handler.
func (e *Engine) evaluateQuest(work *domain.GameState, events []event.Event, now time.Time) []event.Event {
	var out []event.Event
	out = append(out, e.expireQuest(work, now)...)

	if work.Quest == nil || work.Quest.Status != domain.QuestActive {
		return out
	}
	spec := e.cat.Quest(work.Quest.QuestID)
	if spec == nil {
		return out
	}

	for _, ev := range events {
		if !quest.Matches(spec.Condition, ev) {
			continue
		}
		work.Quest.Progress++
		if work.Quest.Progress < spec.TargetAmount {
			continue
		}

		work.Quest.Status = domain.QuestCompleted
		work.CompletedQuests = append(work.CompletedQuests, spec.ID)
		work.SynergyStats[domain.StatQuestsDone] = float64(len(work.CompletedQuests))

		if spec.RewardEnergy > 0 {
			work.ChronoEnergy += spec.RewardEnergy
			work.TotalChronoEnergyEarned += spec.RewardEnergy
			work.SynergyStats[domain.StatEnergyEarned] = work.TotalChronoEnergyEarned
		}
		ledger.CreditAll(work.Resources, spec.RewardResources)

		out = append(out, event.Event{
			Version: event.EventSchemaVersion,
			Type:    event.QuestCompleted,
			Payload: event.QuestPayloadV1{
				VisitorID: work.Quest.VisitorID,
				QuestID:   spec.ID,
				Progress:  work.Quest.Progress,
			},
		})
		break
	}

	return out
}
