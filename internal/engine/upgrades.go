package engine

import (
	"fmt"

	"github.com/verdantloop/chronogarden/internal/domain"
	"github.com/verdantloop/chronogarden/internal/event"
	"github.com/verdantloop/chronogarden/internal/ledger"
)

// purchaseUpgrade is a single atomic check-and-apply: affordability and level
// cap are verified against the working copy and the debit happens in the same
// transition, so no caller can apply a debit it never checked.
func (e *Engine) purchaseUpgrade(work *domain.GameState, a PurchaseUpgrade) (domain.Result, []event.Event) {
	up := e.cat.Upgrade(a.UpgradeID)
	if up == nil {
		return domain.Rejected(domain.StatusNotFound, fmt.Sprintf("%s: %q", domain.ErrMsgUpgradeNotFound, a.UpgradeID)), nil
	}

	level := work.UpgradeLevels[up.ID]
	if level >= up.MaxLevel {
		return domain.Rejected(domain.StatusMaxLevel, fmt.Sprintf("%q is already at max level %d", up.ID, up.MaxLevel)), nil
	}

	cost := up.CostAt(level)
	if err := ledger.DebitAll(work.Resources, cost); err != nil {
		return domain.Rejected(domain.StatusCannotAfford, err.Error()), nil
	}
	work.UpgradeLevels[up.ID] = level + 1

	return domain.Accepted, []event.Event{{
		Version: event.EventSchemaVersion,
		Type:    event.UpgradePurchased,
		Payload: map[string]interface{}{"upgrade_id": up.ID, "level": level + 1, "permanent": false},
	}}
}

// purchasePermanentUpgrade additionally charges scaled chrono-energy and
// gates on owned rare seed count. Rare seeds are a requirement, not a
// consumable: spending them would let a purchase shrink the prestige
// carry-over, which nothing else in the game can do.
func (e *Engine) purchasePermanentUpgrade(work *domain.GameState, a PurchasePermanentUpgrade) (domain.Result, []event.Event) {
	up := e.cat.PermanentUpgrade(a.UpgradeID)
	if up == nil {
		return domain.Rejected(domain.StatusNotFound, fmt.Sprintf("%s: %q", domain.ErrMsgUpgradeNotFound, a.UpgradeID)), nil
	}

	level := work.PermanentUpgradeLevels[up.ID]
	if level >= up.MaxLevel {
		return domain.Rejected(domain.StatusMaxLevel, fmt.Sprintf("%q is already at max level %d", up.ID, up.MaxLevel)), nil
	}

	energyCost := up.EnergyCost
	for i := 0; i < level; i++ {
		energyCost *= up.CostFactor
	}
	if work.ChronoEnergy < energyCost {
		return domain.Rejected(domain.StatusCannotAfford,
			fmt.Sprintf("need %.0f chrono-energy, have %.0f", energyCost, work.ChronoEnergy)), nil
	}
	if len(work.RareSeeds) < up.RareSeedsRequired {
		return domain.Rejected(domain.StatusCannotAfford,
			fmt.Sprintf("need %d rare seeds, have %d", up.RareSeedsRequired, len(work.RareSeeds))), nil
	}
	if err := ledger.DebitAll(work.Resources, up.CostAt(level)); err != nil {
		return domain.Rejected(domain.StatusCannotAfford, err.Error()), nil
	}

	work.ChronoEnergy -= energyCost
	work.PermanentUpgradeLevels[up.ID] = level + 1

	return domain.Accepted, []event.Event{{
		Version: event.EventSchemaVersion,
		Type:    event.UpgradePurchased,
		Payload: map[string]interface{}{"upgrade_id": up.ID, "level": level + 1, "permanent": true},
	}}
}
