package engine

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/verdantloop/chronogarden/internal/domain"
	"github.com/verdantloop/chronogarden/internal/event"
	"github.com/verdantloop/chronogarden/internal/growth"
	"github.com/verdantloop/chronogarden/internal/ledger"
	"github.com/verdantloop/chronogarden/internal/metrics"
)

func (e *Engine) plantCrop(work *domain.GameState, a PlantCrop, now time.Time) (domain.Result, []event.Event) {
	crop := e.cat.Crop(a.CropID)
	if crop == nil {
		res := domain.Rejected(domain.StatusNotFound, fmt.Sprintf("%s: %q", domain.ErrMsgCropNotFound, a.CropID))
		res.Suggestion = e.cat.NearestCropID(a.CropID)
		return res, nil
	}
	eraID := a.EraID
	if eraID == "" {
		eraID = work.CurrentEra
	}
	if !work.EraUnlocked(eraID) {
		return domain.Rejected(domain.StatusEraLocked, fmt.Sprintf("era %q is locked", eraID)), nil
	}
	// A crop grows in its home era, or anywhere once owned as a rare seed.
	if crop.EraID != eraID && !work.HasRareSeed(crop.ID) {
		return domain.Rejected(domain.StatusEraLocked,
			fmt.Sprintf("crop %q belongs to era %q", crop.ID, crop.EraID)), nil
	}

	needsUnlock := crop.UnlockCost > 0 && !work.CropUnlocked(crop.ID) && !work.HasRareSeed(crop.ID)
	if needsUnlock && work.ChronoEnergy < crop.UnlockCost {
		return domain.Rejected(domain.StatusCannotAfford,
			fmt.Sprintf("unlocking %q needs %.0f chrono-energy", crop.ID, crop.UnlockCost)), nil
	}
	if err := ledger.DebitAll(work.Resources, crop.Requires); err != nil {
		return domain.Rejected(domain.StatusCannotAfford, err.Error()), nil
	}
	if needsUnlock {
		work.ChronoEnergy -= crop.UnlockCost
		work.UnlockedCrops = append(work.UnlockedCrops, crop.ID)
	}

	planted := domain.PlantedCrop{
		InstanceID: uuid.NewString(),
		CropID:     crop.ID,
		EraID:      eraID,
		PlantedAt:  now,
	}
	work.PlantedCrops = append(work.PlantedCrops, planted)

	work.SoilQuality -= SoilCostPlant
	if work.SoilQuality < 0 {
		work.SoilQuality = 0
	}

	return domain.Accepted, []event.Event{
		event.NewCropPlantedEvent(planted.InstanceID, planted.CropID, planted.EraID, now),
	}
}

func (e *Engine) harvestCrop(work *domain.GameState, a HarvestCrop, now time.Time) (domain.Result, []event.Event) {
	idx := -1
	for i := range work.PlantedCrops {
		if work.PlantedCrops[i].InstanceID == a.InstanceID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return domain.Rejected(domain.StatusNotFound, "no such planting"), nil
	}
	planted := work.PlantedCrops[idx]

	crop := e.cat.Crop(planted.CropID)
	if crop == nil {
		// Orphaned planting; the catalog changed underneath a save.
		return domain.Rejected(domain.StatusNotFound,
			fmt.Sprintf("%s: %q", domain.ErrMsgCropNotFound, planted.CropID)), nil
	}
	if !growth.Mature(planted.PlantedAt, crop.GrowthSecs, now) {
		m := growth.Maturity(planted.PlantedAt, crop.GrowthSecs, now)
		return domain.Rejected(domain.StatusNotMature,
			fmt.Sprintf("%q is %.0f%% grown", crop.ID, m*100)), nil
	}

	ledger.CreditAll(work.Resources, crop.Yield)
	work.PlantedCrops = append(work.PlantedCrops[:idx], work.PlantedCrops[idx+1:]...)

	work.TotalCropsHarvested++
	work.SynergyStats[domain.StatCropsHarvested] = float64(work.TotalCropsHarvested)
	work.SynergyStats[domain.StatCropsHarvestedIn(planted.EraID)]++

	metrics.CropsHarvested.WithLabelValues(crop.ID).Inc()

	return domain.Accepted, []event.Event{
		event.NewCropHarvestedEvent(planted.InstanceID, crop.ID, planted.EraID, work.CurrentWeather, crop.Yield),
	}
}
