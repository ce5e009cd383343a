package persistence

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verdantloop/chronogarden/internal/domain"
	"github.com/verdantloop/chronogarden/internal/engine"
)

func TestExportImportRoundTrip(t *testing.T) {
	state := engine.InitialState("Ada", "North Plot")
	state.ChronoEnergy = 55

	raw, err := Export(state)
	require.NoError(t, err)

	imported, err := Import(raw)
	require.NoError(t, err)
	assert.Equal(t, "Ada", imported.PlayerName)
	assert.Equal(t, 55.0, imported.ChronoEnergy)
}

func TestImportRejectsMalformedJSON(t *testing.T) {
	_, err := Import([]byte("{not json"))
	assert.ErrorIs(t, err, domain.ErrInvalidSnapshot)
}

func TestImportRejectsMissingPlayerName(t *testing.T) {
	state := engine.InitialState("Ada", "Plot")
	state.PlayerName = ""
	raw, err := Export(state)
	require.NoError(t, err)

	_, err = Import(raw)
	require.ErrorIs(t, err, domain.ErrInvalidSnapshot)
	assert.Contains(t, err.Error(), "PlayerName")
}

func TestImportRejectsMissingCropList(t *testing.T) {
	_, err := Import([]byte(`{
		"playerName": "Ada",
		"gardenName": "Plot",
		"currentEra": "present",
		"unlockedEras": ["present"]
	}`))
	require.ErrorIs(t, err, domain.ErrInvalidSnapshot)
	assert.Contains(t, err.Error(), "PlantedCrops")
}

func TestImportRejectsLockedCurrentEra(t *testing.T) {
	state := engine.InitialState("Ada", "Plot")
	state.CurrentEra = "medieval"
	raw, err := Export(state)
	require.NoError(t, err)

	_, err = Import(raw)
	require.ErrorIs(t, err, domain.ErrInvalidSnapshot)
	assert.Contains(t, err.Error(), "not unlocked")
}

func TestImportFillsOptionalMaps(t *testing.T) {
	imported, err := Import([]byte(`{
		"playerName": "Ada",
		"gardenName": "Plot",
		"currentEra": "present",
		"unlockedEras": ["present"],
		"plantedCrops": []
	}`))
	require.NoError(t, err)
	assert.NotNil(t, imported.Resources)
	assert.NotNil(t, imported.UpgradeLevels)
	assert.NotNil(t, imported.PermanentUpgradeLevels)
	assert.NotNil(t, imported.GoalStatus)
	assert.NotNil(t, imported.SynergyStats)
}
