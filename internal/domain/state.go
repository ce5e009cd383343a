package domain

import "time"

// ResourceMap maps a resource identifier to a non-negative quantity. The
// ledger package owns all mutation rules; handlers never write it directly.
type ResourceMap map[string]float64

// Clone returns an independent copy.
func (m ResourceMap) Clone() ResourceMap {
	out := make(ResourceMap, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// Tracked statistic keys. Synergies and goals bind to these by name.
const (
	StatCropsHarvested = "crops_harvested"
	StatEnergyEarned   = "energy_earned"
	StatPrestigeCount  = "prestige_count"
	StatRareSeeds      = "rare_seeds"
	StatQuestsDone     = "quests_completed"
	StatErasUnlocked   = "eras_unlocked"
)

// StatCropsHarvestedIn is the per-era harvest counter key.
func StatCropsHarvestedIn(eraID string) string {
	return StatCropsHarvested + ":" + eraID
}

// PlantedCrop is a live planting. Maturity is never stored; it is recomputed
// from PlantedAt against a supplied now (see the growth package).
type PlantedCrop struct {
	InstanceID string    `json:"instanceId"`
	CropID     string    `json:"cropId"`
	EraID      string    `json:"eraId"`
	PlantedAt  time.Time `json:"plantedAt"`
}

// AutomationInstance is a purchased copy of a catalog AutomationRule.
type AutomationInstance struct {
	InstanceID  string    `json:"instanceId"`
	RuleID      string    `json:"ruleId"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Effect      string    `json:"effect"`
	AddedAt     time.Time `json:"addedAt"`
}

// GoalStatus is the per-goal progress record. Completed is one-way; the
// reward is granted exactly once, at the transition.
type GoalStatus struct {
	Progress  float64 `json:"progress"`
	Completed bool    `json:"completed"`
}

// QuestStatus is the lifecycle state of the active quest.
type QuestStatus string

const (
	QuestActive    QuestStatus = "active"
	QuestCompleted QuestStatus = "completed"
	QuestFailed    QuestStatus = "failed"
)

// ActiveQuest is the single in-flight visitor quest. At most one exists.
type ActiveQuest struct {
	VisitorID string      `json:"visitorId"`
	QuestID   string      `json:"questId"`
	Status    QuestStatus `json:"status"`
	Progress  int         `json:"progress"`
	StartedAt time.Time   `json:"startedAt"`
}

// GameState is the root snapshot owned exclusively by the progression engine.
// Every action produces a fresh snapshot; nothing outside the engine mutates
// one after publication.
type GameState struct {
	PlayerName string `json:"playerName" validate:"required"`
	GardenName string `json:"gardenName" validate:"required"`

	CurrentEra   string   `json:"currentEra" validate:"required"`
	UnlockedEras []string `json:"unlockedEras" validate:"min=1"`

	ChronoEnergy float64     `json:"chronoEnergy"`
	Resources    ResourceMap `json:"resources"`

	PlantedCrops    []PlantedCrop        `json:"plantedCrops" validate:"required"`
	AutomationRules []AutomationInstance `json:"automationRules"`

	// UnlockedCrops holds crops whose one-time unlock cost has been paid.
	// Crops without an unlock cost never appear here.
	UnlockedCrops []string `json:"unlockedCrops"`

	RareSeeds   []string `json:"rareSeeds"`
	SoilQuality float64  `json:"soilQuality"`

	UpgradeLevels          map[string]int `json:"upgradeLevels"`
	PermanentUpgradeLevels map[string]int `json:"permanentUpgradeLevels"`

	GoalStatus   map[string]GoalStatus `json:"goalStatus"`
	SynergyStats map[string]float64    `json:"synergyStats"`

	UnlockedLore []string `json:"unlockedLore"`

	CurrentWeather string `json:"currentWeather"`

	CurrentVisitor  string       `json:"currentVisitor,omitempty"`
	Quest           *ActiveQuest `json:"activeQuest,omitempty"`
	CompletedQuests []string     `json:"completedQuests"`

	PrestigeCount int `json:"prestigeCount"`

	TotalCropsHarvested     int     `json:"totalCropsHarvested"`
	TotalChronoEnergyEarned float64 `json:"totalChronoEnergyEarned"`
}

// EraUnlocked reports whether the era id is in the unlocked set.
func (s *GameState) EraUnlocked(eraID string) bool {
	for _, id := range s.UnlockedEras {
		if id == eraID {
			return true
		}
	}
	return false
}

// CropUnlocked reports whether the crop's one-time unlock cost has been paid.
func (s *GameState) CropUnlocked(cropID string) bool {
	for _, id := range s.UnlockedCrops {
		if id == cropID {
			return true
		}
	}
	return false
}

// HasRareSeed reports whether the crop id is an owned rare seed.
func (s *GameState) HasRareSeed(cropID string) bool {
	for _, id := range s.RareSeeds {
		if id == cropID {
			return true
		}
	}
	return false
}

// QuestDone reports whether the quest id has already been completed.
func (s *GameState) QuestDone(questID string) bool {
	for _, id := range s.CompletedQuests {
		if id == questID {
			return true
		}
	}
	return false
}

// Clone makes a deep copy. The engine clones before every mutation so a
// rejected action can discard its scratch copy and a published snapshot
// never aliases live state.
func (s *GameState) Clone() *GameState {
	out := *s
	out.UnlockedEras = append([]string(nil), s.UnlockedEras...)
	out.Resources = s.Resources.Clone()
	out.PlantedCrops = append([]PlantedCrop(nil), s.PlantedCrops...)
	out.AutomationRules = append([]AutomationInstance(nil), s.AutomationRules...)
	out.UnlockedCrops = append([]string(nil), s.UnlockedCrops...)
	out.RareSeeds = append([]string(nil), s.RareSeeds...)
	out.UnlockedLore = append([]string(nil), s.UnlockedLore...)
	out.CompletedQuests = append([]string(nil), s.CompletedQuests...)

	out.UpgradeLevels = make(map[string]int, len(s.UpgradeLevels))
	for k, v := range s.UpgradeLevels {
		out.UpgradeLevels[k] = v
	}
	out.PermanentUpgradeLevels = make(map[string]int, len(s.PermanentUpgradeLevels))
	for k, v := range s.PermanentUpgradeLevels {
		out.PermanentUpgradeLevels[k] = v
	}
	out.GoalStatus = make(map[string]GoalStatus, len(s.GoalStatus))
	for k, v := range s.GoalStatus {
		out.GoalStatus[k] = v
	}
	out.SynergyStats = make(map[string]float64, len(s.SynergyStats))
	for k, v := range s.SynergyStats {
		out.SynergyStats[k] = v
	}
	if s.Quest != nil {
		q := *s.Quest
		out.Quest = &q
	}
	return &out
}
