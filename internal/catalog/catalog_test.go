package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verdantloop/chronogarden/internal/config"
	"github.com/verdantloop/chronogarden/internal/domain"
)

func TestDefaultIsValid(t *testing.T) {
	cat := Default()
	require.NoError(t, Validate(cat))

	assert.NotNil(t, cat.Era(domain.EraPresent))
	assert.NotNil(t, cat.Era(domain.EraFuture))
	assert.NotNil(t, cat.Crop("tomato"))
	assert.Nil(t, cat.Crop("does_not_exist"))
}

func TestLookups(t *testing.T) {
	cat := Default()

	tomato := cat.Crop("tomato")
	require.NotNil(t, tomato)
	assert.Equal(t, domain.EraPresent, tomato.EraID)
	assert.Equal(t, 3.0, tomato.Yield["tomatoes"])

	rare := cat.RareEligibleCrops()
	assert.Contains(t, rare, "chrono_blossom")
	assert.NotContains(t, rare, "tomato")
}

func TestVisitorsForEra(t *testing.T) {
	cat := Default()

	medieval := cat.VisitorsForEra("medieval")
	ids := make([]string, 0, len(medieval))
	for _, v := range medieval {
		ids = append(ids, v.ID)
	}
	// Era-bound visitor plus the era-agnostic traveler.
	assert.Contains(t, ids, "monk_aldric")
	assert.Contains(t, ids, "traveler_elara")

	present := cat.VisitorsForEra(domain.EraPresent)
	for _, v := range present {
		assert.NotEqual(t, "monk_aldric", v.ID)
	}
}

func TestNearestIDs(t *testing.T) {
	cat := Default()

	assert.Equal(t, "tomato", cat.NearestCropID("tomatoe"))
	assert.Equal(t, "wheat", cat.NearestCropID("weat"))
	assert.Equal(t, "", cat.NearestCropID("xyzzyplugh"))
	assert.Equal(t, "medieval", cat.NearestEraID("medeval"))
}

func TestUpgradeCostCurve(t *testing.T) {
	up := domain.Upgrade{
		ID: "u", Name: "u", MaxLevel: 5,
		BaseCost:   map[string]float64{"tomatoes": 5},
		CostFactor: 2,
	}

	assert.Equal(t, 5.0, up.CostAt(0)["tomatoes"])
	assert.Equal(t, 10.0, up.CostAt(1)["tomatoes"])
	assert.Equal(t, 40.0, up.CostAt(3)["tomatoes"])
}

func TestValidateRejectsDanglingReferences(t *testing.T) {
	cat := Default()
	cat.Crops = append(cat.Crops, domain.Crop{
		ID: "ghost", Name: "Ghost", EraID: "atlantis", GrowthSecs: 10,
		Yield: map[string]float64{"mist": 1},
	})

	err := Validate(cat)
	require.ErrorIs(t, err, domain.ErrInvalidCatalog)
	assert.Contains(t, err.Error(), "atlantis")
}

func TestLoadShippedCatalog(t *testing.T) {
	cat, err := Load(filepath.Join("..", "..", "configs", "catalog"))
	require.NoError(t, err)

	def := Default()
	assert.Equal(t, def.Eras, cat.Eras)
	assert.Equal(t, def.Crops, cat.Crops)
	assert.Equal(t, def.AutomationRules, cat.AutomationRules)
	assert.Equal(t, def.Upgrades, cat.Upgrades)
	assert.Equal(t, def.PermanentUpgrades, cat.PermanentUpgrades)
	assert.Equal(t, def.Synergies, cat.Synergies)
	assert.Equal(t, def.Goals, cat.Goals)
	assert.Equal(t, def.Quests, cat.Quests)
	assert.Equal(t, def.Visitors, cat.Visitors)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(t.TempDir())
	require.Error(t, err)
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, config.CatalogFileEras), []byte("eras: ["), 0o644))

	_, err := Load(dir)
	require.ErrorIs(t, err, domain.ErrInvalidCatalog)
}
