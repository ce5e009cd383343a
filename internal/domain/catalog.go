package domain

// Well-known identifiers. The catalog is data-driven, but a few ids are
// structural: the starting era, the prestige-gating era, and the resource
// keys the engine itself credits.
const (
	EraPresent = "present"
	EraFuture  = "future"

	ResourceSeeds = "seeds"
	ResourceWater = "water"
)

// Era is one unlockable time period. Eras form a fixed ordered set; the
// Present era is always unlocked at game start.
type Era struct {
	ID          string   `yaml:"id" json:"id" validate:"required"`
	Name        string   `yaml:"name" json:"name" validate:"required"`
	UnlockCost  float64  `yaml:"unlock_cost" json:"unlockCost" validate:"gte=0"`
	Crops       []string `yaml:"crops" json:"crops"`
	Resources   []string `yaml:"resources" json:"resources"`
	LoreEntries []string `yaml:"lore_entries" json:"loreEntries,omitempty"`
	// SpecialMechanic is display-only flavor text; it has no engine effect.
	SpecialMechanic string `yaml:"special_mechanic" json:"specialMechanic,omitempty"`
	// VisitorChance is the per-check probability of a visitor arriving while
	// this era is current, in [0,1].
	VisitorChance float64 `yaml:"visitor_chance" json:"visitorChance" validate:"gte=0,lte=1"`
}

// Crop is a plantable catalog entry. A crop belongs to exactly one era.
type Crop struct {
	ID           string             `yaml:"id" json:"id" validate:"required"`
	Name         string             `yaml:"name" json:"name" validate:"required"`
	EraID        string             `yaml:"era" json:"era" validate:"required"`
	GrowthSecs   float64            `yaml:"growth_seconds" json:"growthSeconds" validate:"gt=0"`
	Yield        map[string]float64 `yaml:"yield" json:"yield" validate:"required,min=1"`
	Requires     map[string]float64 `yaml:"requires" json:"requires,omitempty"`
	UnlockCost   float64            `yaml:"unlock_cost" json:"unlockCost,omitempty"`
	RareEligible bool               `yaml:"rare_eligible" json:"rareEligible,omitempty"`
}

// AutomationRule is a purchasable automation template. Purchased copies get a
// fresh instance id so several of the same rule can coexist.
type AutomationRule struct {
	ID          string             `yaml:"id" json:"id" validate:"required"`
	Name        string             `yaml:"name" json:"name" validate:"required"`
	Description string             `yaml:"description" json:"description"`
	Effect      string             `yaml:"effect" json:"effect"`
	Cost        map[string]float64 `yaml:"cost" json:"cost"`
}

// Upgrade is a leveled purchase. Cost at level n is BaseCost scaled by
// CostFactor^n per resource; effect magnitude is level * EffectPerLevel.
// Costs are monotonically non-decreasing by convention (CostFactor >= 1),
// which the engine does not enforce.
type Upgrade struct {
	ID             string             `yaml:"id" json:"id" validate:"required"`
	Name           string             `yaml:"name" json:"name" validate:"required"`
	Description    string             `yaml:"description" json:"description"`
	MaxLevel       int                `yaml:"max_level" json:"maxLevel" validate:"gt=0"`
	BaseCost       map[string]float64 `yaml:"base_cost" json:"baseCost" validate:"required"`
	CostFactor     float64            `yaml:"cost_factor" json:"costFactor" validate:"gte=1"`
	EffectPerLevel float64            `yaml:"effect_per_level" json:"effectPerLevel"`
}

// CostAt returns the full cost map for purchasing the next level from the
// given current level.
func (u Upgrade) CostAt(level int) map[string]float64 {
	factor := 1.0
	for i := 0; i < level; i++ {
		factor *= u.CostFactor
	}
	cost := make(map[string]float64, len(u.BaseCost))
	for res, amount := range u.BaseCost {
		cost[res] = amount * factor
	}
	return cost
}

// PermanentUpgrade is an upgrade whose level survives prestige. On top of the
// resource cost curve it charges chrono-energy and requires a minimum rare
// seed count per level.
type PermanentUpgrade struct {
	Upgrade           `yaml:",inline"`
	EnergyCost        float64 `yaml:"energy_cost" json:"energyCost" validate:"gte=0"`
	RareSeedsRequired int     `yaml:"rare_seeds_required" json:"rareSeedsRequired" validate:"gte=0"`
}

// Synergy is a passive bonus derived purely from a cumulative statistic:
// level = floor(stat/Threshold) capped at MaxLevels (0 = uncapped), magnitude
// = level * EffectPerLevel. There is no purchase step.
type Synergy struct {
	ID             string  `yaml:"id" json:"id" validate:"required"`
	Name           string  `yaml:"name" json:"name" validate:"required"`
	Stat           string  `yaml:"stat" json:"stat" validate:"required"`
	Threshold      float64 `yaml:"threshold" json:"threshold" validate:"gt=0"`
	MaxLevels      int     `yaml:"max_levels" json:"maxLevels" validate:"gte=0"`
	EffectPerLevel float64 `yaml:"effect_per_level" json:"effectPerLevel"`
}

// GoalRewardKind enumerates the reward shapes a goal can grant.
type GoalRewardKind string

const (
	RewardEnergy   GoalRewardKind = "energy"
	RewardRareSeed GoalRewardKind = "rare_seed"
	RewardResource GoalRewardKind = "resource"
)

// GoalReward is granted exactly once when a goal completes.
type GoalReward struct {
	Kind     GoalRewardKind `yaml:"kind" json:"kind" validate:"required,oneof=energy rare_seed resource"`
	Amount   float64        `yaml:"amount" json:"amount"`
	Resource string         `yaml:"resource" json:"resource,omitempty"`
}

// Goal tracks a named statistic toward a target. Progress is re-derived from
// the bound stat on every evaluation rather than stored per goal.
type Goal struct {
	ID     string     `yaml:"id" json:"id" validate:"required"`
	Name   string     `yaml:"name" json:"name" validate:"required"`
	Stat   string     `yaml:"stat" json:"stat" validate:"required"`
	Target float64    `yaml:"target" json:"target" validate:"gt=0"`
	Reward GoalReward `yaml:"reward" json:"reward"`
}

// QuestCondition describes the gameplay event that advances a quest. Weather
// is optional; empty matches any weather.
type QuestCondition struct {
	CropID  string `yaml:"crop" json:"crop,omitempty"`
	EraID   string `yaml:"era" json:"era,omitempty"`
	Weather string `yaml:"weather" json:"weather,omitempty"`
}

// Quest is a visitor request. DurationMinutes of zero means no time limit.
type Quest struct {
	ID              string             `yaml:"id" json:"id" validate:"required"`
	Name            string             `yaml:"name" json:"name" validate:"required"`
	Description     string             `yaml:"description" json:"description"`
	Condition       QuestCondition     `yaml:"condition" json:"condition"`
	TargetAmount    int                `yaml:"target_amount" json:"targetAmount" validate:"gt=0"`
	DurationMinutes int                `yaml:"duration_minutes" json:"durationMinutes" validate:"gte=0"`
	RewardEnergy    float64            `yaml:"reward_energy" json:"rewardEnergy" validate:"gte=0"`
	RewardResources map[string]float64 `yaml:"reward_resources" json:"rewardResources,omitempty"`
}

// Visitor is an NPC that may arrive and offer quests.
type Visitor struct {
	ID       string   `yaml:"id" json:"id" validate:"required"`
	Name     string   `yaml:"name" json:"name" validate:"required"`
	Greeting string   `yaml:"greeting" json:"greeting"`
	EraID    string   `yaml:"era" json:"era,omitempty"`
	Quests   []string `yaml:"quests" json:"quests" validate:"min=1"`
}
