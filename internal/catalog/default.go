package catalog

import "github.com/verdantloop/chronogarden/internal/domain"

// Default returns the built-in content set. The serve command prefers the
// YAML files under configs/catalog; tests and the CLI fall back to this so
// the engine always has a complete, validated catalog to run against.
func Default() *Catalog {
	cat := &Catalog{
		Eras: []domain.Era{
			{
				ID: domain.EraPresent, Name: "Present", UnlockCost: 0,
				Crops:         []string{"tomato", "carrot"},
				Resources:     []string{"seeds", "water", "tomatoes", "carrots"},
				VisitorChance: 0.25,
			},
			{
				ID: "prehistoric", Name: "Prehistoric", UnlockCost: 100,
				Crops:           []string{"giant_fern", "dino_root"},
				Resources:       []string{"spores", "amber"},
				SpecialMechanic: "Volcanic ash doubles soil recovery",
				LoreEntries:     []string{"lore_first_garden"},
				VisitorChance:   0.15,
			},
			{
				ID: "medieval", Name: "Medieval", UnlockCost: 250,
				Crops:           []string{"wheat", "healing_herb"},
				Resources:       []string{"grain", "herbs"},
				SpecialMechanic: "Monastery gardens attract more visitors",
				LoreEntries:     []string{"lore_monastery"},
				VisitorChance:   0.3,
			},
			{
				ID: domain.EraFuture, Name: "Future", UnlockCost: 600,
				Crops:           []string{"synthcorn", "chrono_blossom"},
				Resources:       []string{"biomass", "chrono_pollen"},
				SpecialMechanic: "Hydroponic towers need no soil",
				LoreEntries:     []string{"lore_time_loop"},
				VisitorChance:   0.2,
			},
		},
		Crops: []domain.Crop{
			{
				ID: "tomato", Name: "Tomato", EraID: domain.EraPresent, GrowthSecs: 60,
				Yield:    map[string]float64{"tomatoes": 3, domain.ResourceSeeds: 1},
				Requires: map[string]float64{domain.ResourceSeeds: 1, domain.ResourceWater: 5},
			},
			{
				ID: "carrot", Name: "Carrot", EraID: domain.EraPresent, GrowthSecs: 45,
				Yield:    map[string]float64{"carrots": 2},
				Requires: map[string]float64{domain.ResourceSeeds: 1, domain.ResourceWater: 3},
			},
			{
				ID: "giant_fern", Name: "Giant Fern", EraID: "prehistoric", GrowthSecs: 90,
				Yield:    map[string]float64{"spores": 4},
				Requires: map[string]float64{domain.ResourceSeeds: 2, domain.ResourceWater: 8},
			},
			{
				ID: "dino_root", Name: "Dino Root", EraID: "prehistoric", GrowthSecs: 150,
				Yield:        map[string]float64{"amber": 1, "spores": 2},
				Requires:     map[string]float64{domain.ResourceSeeds: 3, domain.ResourceWater: 10},
				UnlockCost:   40,
				RareEligible: true,
			},
			{
				ID: "wheat", Name: "Wheat", EraID: "medieval", GrowthSecs: 75,
				Yield:    map[string]float64{"grain": 5},
				Requires: map[string]float64{domain.ResourceSeeds: 2, domain.ResourceWater: 6},
			},
			{
				ID: "healing_herb", Name: "Healing Herb", EraID: "medieval", GrowthSecs: 120,
				Yield:        map[string]float64{"herbs": 2},
				Requires:     map[string]float64{domain.ResourceSeeds: 1, domain.ResourceWater: 4},
				UnlockCost:   60,
				RareEligible: true,
			},
			{
				ID: "synthcorn", Name: "Synthcorn", EraID: domain.EraFuture, GrowthSecs: 50,
				Yield:    map[string]float64{"biomass": 6},
				Requires: map[string]float64{domain.ResourceSeeds: 2, domain.ResourceWater: 2},
			},
			{
				ID: "chrono_blossom", Name: "Chrono Blossom", EraID: domain.EraFuture, GrowthSecs: 300,
				Yield:        map[string]float64{"chrono_pollen": 1},
				Requires:     map[string]float64{domain.ResourceSeeds: 5, domain.ResourceWater: 12},
				UnlockCost:   150,
				RareEligible: true,
			},
		},
		AutomationRules: []domain.AutomationRule{
			{
				ID: "auto_waterer", Name: "Auto-Waterer",
				Description: "Waters nearby plots on a drip schedule",
				Effect:      "watering",
				Cost:        map[string]float64{"tomatoes": 10},
			},
			{
				ID: "seed_spreader", Name: "Seed Spreader",
				Description: "Scatters seeds across empty plots",
				Effect:      "planting",
				Cost:        map[string]float64{"carrots": 8, domain.ResourceSeeds: 5},
			},
			{
				ID: "harvest_drone", Name: "Harvest Drone",
				Description: "Collects mature crops while you are away",
				Effect:      "harvesting",
				Cost:        map[string]float64{"biomass": 12},
			},
		},
		Upgrades: []domain.Upgrade{
			{
				ID: "watering_can", Name: "Bigger Watering Can",
				Description:    "Each level stretches water further",
				MaxLevel:       5,
				BaseCost:       map[string]float64{"tomatoes": 5},
				CostFactor:     2,
				EffectPerLevel: 0.1,
			},
			{
				ID: "greenhouse", Name: "Greenhouse Panels",
				Description:    "Shields crops from rough weather",
				MaxLevel:       3,
				BaseCost:       map[string]float64{"grain": 10, "herbs": 2},
				CostFactor:     3,
				EffectPerLevel: 0.15,
			},
		},
		PermanentUpgrades: []domain.PermanentUpgrade{
			{
				Upgrade: domain.Upgrade{
					ID: "time_mastery", Name: "Time Mastery",
					Description:    "Crops everywhere grow a little faster, forever",
					MaxLevel:       10,
					BaseCost:       map[string]float64{},
					CostFactor:     1.5,
					EffectPerLevel: 0.05,
				},
				EnergyCost:        50,
				RareSeedsRequired: 1,
			},
			{
				Upgrade: domain.Upgrade{
					ID: "deep_roots", Name: "Deep Roots",
					Description:    "Soil quality decays more slowly, forever",
					MaxLevel:       5,
					BaseCost:       map[string]float64{},
					CostFactor:     2,
					EffectPerLevel: 0.1,
				},
				EnergyCost:        80,
				RareSeedsRequired: 2,
			},
		},
		Synergies: []domain.Synergy{
			{
				ID: "green_thumb", Name: "Green Thumb",
				Stat: domain.StatCropsHarvested, Threshold: 10,
				MaxLevels: 10, EffectPerLevel: 0.05,
			},
			{
				ID: "echoes_of_time", Name: "Echoes of Time",
				Stat: domain.StatPrestigeCount, Threshold: 1,
				MaxLevels: 0, EffectPerLevel: 0.1,
			},
			{
				ID: "seed_hoard", Name: "Seed Hoard",
				Stat: domain.StatRareSeeds, Threshold: 2,
				MaxLevels: 5, EffectPerLevel: 0.08,
			},
		},
		Goals: []domain.Goal{
			{
				ID: "first_harvest", Name: "First Harvest",
				Stat: domain.StatCropsHarvested, Target: 1,
				Reward: domain.GoalReward{Kind: domain.RewardEnergy, Amount: 10},
			},
			{
				ID: "market_gardener", Name: "Market Gardener",
				Stat: domain.StatCropsHarvested, Target: 50,
				Reward: domain.GoalReward{Kind: domain.RewardRareSeed},
			},
			{
				ID: "well_stocked", Name: "Well Stocked",
				Stat: domain.StatCropsHarvested, Target: 20,
				Reward: domain.GoalReward{Kind: domain.RewardResource, Resource: domain.ResourceWater, Amount: 100},
			},
			{
				ID: "timeworn", Name: "Timeworn",
				Stat: domain.StatPrestigeCount, Target: 1,
				Reward: domain.GoalReward{Kind: domain.RewardEnergy, Amount: 200},
			},
			{
				ID: "collector", Name: "Collector",
				Stat: domain.StatRareSeeds, Target: 3,
				Reward: domain.GoalReward{Kind: domain.RewardEnergy, Amount: 150},
			},
		},
		Quests: []domain.Quest{
			{
				ID: "tomato_tithe", Name: "Tomato Tithe",
				Description:  "Harvest five tomatoes for the traveler",
				Condition:    domain.QuestCondition{CropID: "tomato"},
				TargetAmount: 5, DurationMinutes: 30,
				RewardEnergy: 25,
			},
			{
				ID: "rainy_day_wheat", Name: "Rainy Day Wheat",
				Description:  "Harvest wheat while it rains",
				Condition:    domain.QuestCondition{CropID: "wheat", Weather: "rain"},
				TargetAmount: 3, DurationMinutes: 60,
				RewardEnergy:    40,
				RewardResources: map[string]float64{"grain": 10},
			},
			{
				ID: "fern_offering", Name: "Fern Offering",
				Description:  "Gather ferns from the deep past",
				Condition:    domain.QuestCondition{EraID: "prehistoric"},
				TargetAmount: 4,
				RewardEnergy: 35,
			},
		},
		Visitors: []domain.Visitor{
			{
				ID: "traveler_elara", Name: "Elara the Traveler",
				Greeting: "The timelines brought me to your garden.",
				Quests:   []string{"tomato_tithe", "fern_offering"},
			},
			{
				ID: "monk_aldric", Name: "Brother Aldric",
				Greeting: "The abbey kitchens run low.",
				EraID:    "medieval",
				Quests:   []string{"rainy_day_wheat"},
			},
		},
	}

	cat.buildIndexes()
	return cat
}
