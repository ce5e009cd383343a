package catalog

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/verdantloop/chronogarden/internal/config"
	"github.com/verdantloop/chronogarden/internal/domain"
)

// File shapes for the YAML content under configs/catalog.

type erasFile struct {
	Eras []domain.Era `yaml:"eras"`
}

type cropsFile struct {
	Crops []domain.Crop `yaml:"crops"`
}

type automationFile struct {
	Rules []domain.AutomationRule `yaml:"rules"`
}

type upgradesFile struct {
	Upgrades          []domain.Upgrade          `yaml:"upgrades"`
	PermanentUpgrades []domain.PermanentUpgrade `yaml:"permanent_upgrades"`
}

type synergiesFile struct {
	Synergies []domain.Synergy `yaml:"synergies"`
}

type goalsFile struct {
	Goals []domain.Goal `yaml:"goals"`
}

type visitorsFile struct {
	Visitors []domain.Visitor `yaml:"visitors"`
	Quests   []domain.Quest   `yaml:"quests"`
}

// Load reads and validates the full catalog from the given directory. Any
// missing file, malformed YAML, failed struct validation, or dangling
// cross-reference aborts the load; a partial catalog is never returned.
func Load(dir string) (*Catalog, error) {
	cat := &Catalog{}

	var eras erasFile
	if err := readYAML(filepath.Join(dir, config.CatalogFileEras), &eras); err != nil {
		return nil, err
	}
	cat.Eras = eras.Eras

	var crops cropsFile
	if err := readYAML(filepath.Join(dir, config.CatalogFileCrops), &crops); err != nil {
		return nil, err
	}
	cat.Crops = crops.Crops

	var automation automationFile
	if err := readYAML(filepath.Join(dir, config.CatalogFileAutomation), &automation); err != nil {
		return nil, err
	}
	cat.AutomationRules = automation.Rules

	var upgrades upgradesFile
	if err := readYAML(filepath.Join(dir, config.CatalogFileUpgrades), &upgrades); err != nil {
		return nil, err
	}
	cat.Upgrades = upgrades.Upgrades
	cat.PermanentUpgrades = upgrades.PermanentUpgrades

	var synergies synergiesFile
	if err := readYAML(filepath.Join(dir, config.CatalogFileSynergies), &synergies); err != nil {
		return nil, err
	}
	cat.Synergies = synergies.Synergies

	var goals goalsFile
	if err := readYAML(filepath.Join(dir, config.CatalogFileGoals), &goals); err != nil {
		return nil, err
	}
	cat.Goals = goals.Goals

	var visitors visitorsFile
	if err := readYAML(filepath.Join(dir, config.CatalogFileVisitors), &visitors); err != nil {
		return nil, err
	}
	cat.Visitors = visitors.Visitors
	cat.Quests = visitors.Quests

	if err := Validate(cat); err != nil {
		return nil, err
	}
	cat.buildIndexes()
	return cat, nil
}

func readYAML(path string, out interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read catalog file: %w", err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%w: %s: %v", domain.ErrInvalidCatalog, filepath.Base(path), err)
	}
	return nil
}

// Validate checks struct constraints and cross-references of a catalog.
func Validate(cat *Catalog) error {
	v := validator.New()

	check := func(kind string, s interface{}) error {
		if err := v.Struct(s); err != nil {
			return fmt.Errorf("%w: %s: %v", domain.ErrInvalidCatalog, kind, err)
		}
		return nil
	}

	eraIDs := make(map[string]bool, len(cat.Eras))
	for _, era := range cat.Eras {
		if err := check("era "+era.ID, era); err != nil {
			return err
		}
		if eraIDs[era.ID] {
			return fmt.Errorf("%w: duplicate era id %q", domain.ErrInvalidCatalog, era.ID)
		}
		eraIDs[era.ID] = true
	}
	if !eraIDs[domain.EraPresent] {
		return fmt.Errorf("%w: missing the %q era", domain.ErrInvalidCatalog, domain.EraPresent)
	}
	if !eraIDs[domain.EraFuture] {
		return fmt.Errorf("%w: missing the %q era (prestige gate)", domain.ErrInvalidCatalog, domain.EraFuture)
	}

	for _, crop := range cat.Crops {
		if err := check("crop "+crop.ID, crop); err != nil {
			return err
		}
		if !eraIDs[crop.EraID] {
			return fmt.Errorf("%w: crop %q references unknown era %q",
				domain.ErrInvalidCatalog, crop.ID, crop.EraID)
		}
	}

	for _, rule := range cat.AutomationRules {
		if err := check("automation rule "+rule.ID, rule); err != nil {
			return err
		}
	}
	for _, up := range cat.Upgrades {
		if err := check("upgrade "+up.ID, up); err != nil {
			return err
		}
	}
	for _, up := range cat.PermanentUpgrades {
		if err := check("permanent upgrade "+up.ID, up); err != nil {
			return err
		}
	}
	for _, syn := range cat.Synergies {
		if err := check("synergy "+syn.ID, syn); err != nil {
			return err
		}
	}
	for _, goal := range cat.Goals {
		if err := check("goal "+goal.ID, goal); err != nil {
			return err
		}
	}

	questIDs := make(map[string]bool, len(cat.Quests))
	for _, q := range cat.Quests {
		if err := check("quest "+q.ID, q); err != nil {
			return err
		}
		questIDs[q.ID] = true
	}
	for _, vis := range cat.Visitors {
		if err := check("visitor "+vis.ID, vis); err != nil {
			return err
		}
		if vis.EraID != "" && !eraIDs[vis.EraID] {
			return fmt.Errorf("%w: visitor %q references unknown era %q",
				domain.ErrInvalidCatalog, vis.ID, vis.EraID)
		}
		for _, qid := range vis.Quests {
			if !questIDs[qid] {
				return fmt.Errorf("%w: visitor %q references unknown quest %q",
					domain.ErrInvalidCatalog, vis.ID, qid)
			}
		}
	}

	return nil
}
