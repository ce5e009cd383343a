// Package catalog holds the immutable game content: eras, crops, automation
// rules, upgrades, synergies, goals, and visitors. It is loaded once at
// startup and never mutated afterwards; the engine reads it for every rule.
package catalog

import (
	"github.com/agnivade/levenshtein"

	"github.com/verdantloop/chronogarden/internal/domain"
)

// Catalog is the full content set with lookup indexes.
type Catalog struct {
	Eras              []domain.Era
	Crops             []domain.Crop
	AutomationRules   []domain.AutomationRule
	Upgrades          []domain.Upgrade
	PermanentUpgrades []domain.PermanentUpgrade
	Synergies         []domain.Synergy
	Goals             []domain.Goal
	Visitors          []domain.Visitor
	Quests            []domain.Quest

	eraIndex     map[string]*domain.Era
	cropIndex    map[string]*domain.Crop
	ruleIndex    map[string]*domain.AutomationRule
	upgradeIndex map[string]*domain.Upgrade
	permIndex    map[string]*domain.PermanentUpgrade
	visitorIndex map[string]*domain.Visitor
	questIndex   map[string]*domain.Quest
}

func (c *Catalog) buildIndexes() {
	c.eraIndex = make(map[string]*domain.Era, len(c.Eras))
	for i := range c.Eras {
		c.eraIndex[c.Eras[i].ID] = &c.Eras[i]
	}
	c.cropIndex = make(map[string]*domain.Crop, len(c.Crops))
	for i := range c.Crops {
		c.cropIndex[c.Crops[i].ID] = &c.Crops[i]
	}
	c.ruleIndex = make(map[string]*domain.AutomationRule, len(c.AutomationRules))
	for i := range c.AutomationRules {
		c.ruleIndex[c.AutomationRules[i].ID] = &c.AutomationRules[i]
	}
	c.upgradeIndex = make(map[string]*domain.Upgrade, len(c.Upgrades))
	for i := range c.Upgrades {
		c.upgradeIndex[c.Upgrades[i].ID] = &c.Upgrades[i]
	}
	c.permIndex = make(map[string]*domain.PermanentUpgrade, len(c.PermanentUpgrades))
	for i := range c.PermanentUpgrades {
		c.permIndex[c.PermanentUpgrades[i].ID] = &c.PermanentUpgrades[i]
	}
	c.visitorIndex = make(map[string]*domain.Visitor, len(c.Visitors))
	for i := range c.Visitors {
		c.visitorIndex[c.Visitors[i].ID] = &c.Visitors[i]
	}
	c.questIndex = make(map[string]*domain.Quest, len(c.Quests))
	for i := range c.Quests {
		c.questIndex[c.Quests[i].ID] = &c.Quests[i]
	}
}

// Era returns the era by id, or nil.
func (c *Catalog) Era(id string) *domain.Era { return c.eraIndex[id] }

// Crop returns the crop by id, or nil.
func (c *Catalog) Crop(id string) *domain.Crop { return c.cropIndex[id] }

// AutomationRule returns the automation template by id, or nil.
func (c *Catalog) AutomationRule(id string) *domain.AutomationRule { return c.ruleIndex[id] }

// Upgrade returns the upgrade by id, or nil.
func (c *Catalog) Upgrade(id string) *domain.Upgrade { return c.upgradeIndex[id] }

// PermanentUpgrade returns the permanent upgrade by id, or nil.
func (c *Catalog) PermanentUpgrade(id string) *domain.PermanentUpgrade { return c.permIndex[id] }

// Visitor returns the visitor by id, or nil.
func (c *Catalog) Visitor(id string) *domain.Visitor { return c.visitorIndex[id] }

// Quest returns the quest by id, or nil.
func (c *Catalog) Quest(id string) *domain.Quest { return c.questIndex[id] }

// RareEligibleCrops returns the ids of crops that goal rewards may grant as
// rare seeds, in catalog order so a seeded random draw is reproducible.
func (c *Catalog) RareEligibleCrops() []string {
	var ids []string
	for _, crop := range c.Crops {
		if crop.RareEligible {
			ids = append(ids, crop.ID)
		}
	}
	return ids
}

// VisitorsForEra returns visitors that may arrive in the given era. A visitor
// with an empty era may arrive anywhere.
func (c *Catalog) VisitorsForEra(eraID string) []domain.Visitor {
	var out []domain.Visitor
	for _, v := range c.Visitors {
		if v.EraID == "" || v.EraID == eraID {
			out = append(out, v)
		}
	}
	return out
}

// maxSuggestionDistance bounds how far a fuzzy id match may be before it is
// considered noise rather than a typo.
const maxSuggestionDistance = 3

// NearestCropID returns the closest known crop id to the given input, or ""
// when nothing is within a plausible typo distance.
func (c *Catalog) NearestCropID(id string) string {
	return nearest(id, c.cropKeys())
}

// NearestEraID returns the closest known era id to the given input, or "".
func (c *Catalog) NearestEraID(id string) string {
	keys := make([]string, 0, len(c.Eras))
	for _, era := range c.Eras {
		keys = append(keys, era.ID)
	}
	return nearest(id, keys)
}

func (c *Catalog) cropKeys() []string {
	keys := make([]string, 0, len(c.Crops))
	for _, crop := range c.Crops {
		keys = append(keys, crop.ID)
	}
	return keys
}

func nearest(input string, candidates []string) string {
	best := ""
	bestDist := maxSuggestionDistance + 1
	for _, cand := range candidates {
		dist := levenshtein.ComputeDistance(input, cand)
		if dist < bestDist {
			best = cand
			bestDist = dist
		}
	}
	return best
}
