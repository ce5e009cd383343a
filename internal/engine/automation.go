package engine

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/verdantloop/chronogarden/internal/domain"
	"github.com/verdantloop/chronogarden/internal/event"
	"github.com/verdantloop/chronogarden/internal/ledger"
)

func (e *Engine) addAutomation(work *domain.GameState, a AddAutomation, now time.Time) (domain.Result, []event.Event) {
	rule := e.cat.AutomationRule(a.RuleID)
	if rule == nil {
		return domain.Rejected(domain.StatusNotFound, fmt.Sprintf("no automation rule %q", a.RuleID)), nil
	}
	if err := ledger.DebitAll(work.Resources, rule.Cost); err != nil {
		return domain.Rejected(domain.StatusCannotAfford, err.Error()), nil
	}

	// Instance id keeps the template id visible so several copies of the
	// same rule remain tellable apart in logs and saves.
	instance := domain.AutomationInstance{
		InstanceID:  rule.ID + "-" + uuid.NewString(),
		RuleID:      rule.ID,
		Name:        rule.Name,
		Description: rule.Description,
		Effect:      rule.Effect,
		AddedAt:     now,
	}
	work.AutomationRules = append(work.AutomationRules, instance)

	work.SoilQuality -= SoilCostAutomation
	if work.SoilQuality < 0 {
		work.SoilQuality = 0
	}

	return domain.Accepted, []event.Event{{
		Version: event.EventSchemaVersion,
		Type:    event.AutomationAdded,
		Payload: map[string]interface{}{"instance_id": instance.InstanceID, "rule_id": rule.ID},
	}}
}

func (e *Engine) removeAutomation(work *domain.GameState, a RemoveAutomation) (domain.Result, []event.Event) {
	for i := range work.AutomationRules {
		if work.AutomationRules[i].InstanceID == a.InstanceID {
			work.AutomationRules = append(work.AutomationRules[:i], work.AutomationRules[i+1:]...)
			return domain.Accepted, []event.Event{{
				Version: event.EventSchemaVersion,
				Type:    event.AutomationRemoved,
				Payload: map[string]interface{}{"instance_id": a.InstanceID},
			}}
		}
	}
	return domain.Rejected(domain.StatusNotFound, "no such automation instance"), nil
}
