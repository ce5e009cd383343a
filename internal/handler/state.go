package handler

import (
	"net/http"
	"time"

	"github.com/verdantloop/chronogarden/internal/catalog"
	"github.com/verdantloop/chronogarden/internal/domain"
	"github.com/verdantloop/chronogarden/internal/engine"
	"github.com/verdantloop/chronogarden/internal/growth"
)

// HandleGetState returns the current snapshot.
func HandleGetState(eng *engine.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, DataResponse{Data: eng.Snapshot()})
	}
}

// CropView is a planted crop with its live maturity for display.
type CropView struct {
	domain.PlantedCrop
	Maturity float64 `json:"maturity"`
	Mature   bool    `json:"mature"`
}

// HandleGetCrops returns planted crops with maturity computed at request
// time.
func HandleGetCrops(eng *engine.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		state := eng.Snapshot()
		cat := eng.Catalog()
		now := time.Now()

		views := make([]CropView, 0, len(state.PlantedCrops))
		for _, planted := range state.PlantedCrops {
			view := CropView{PlantedCrop: planted, Maturity: 1, Mature: true}
			if crop := cat.Crop(planted.CropID); crop != nil {
				view.Maturity = growth.Maturity(planted.PlantedAt, crop.GrowthSecs, now)
				view.Mature = view.Maturity >= 1
			}
			views = append(views, view)
		}
		respondJSON(w, http.StatusOK, DataResponse{Data: views})
	}
}

// HandleGetSynergies returns the evaluated synergy levels.
func HandleGetSynergies(eng *engine.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, DataResponse{Data: eng.Synergies()})
	}
}

// CatalogView is the static content set for UI display.
type CatalogView struct {
	Eras              []domain.Era              `json:"eras"`
	Crops             []domain.Crop             `json:"crops"`
	AutomationRules   []domain.AutomationRule   `json:"automationRules"`
	Upgrades          []domain.Upgrade          `json:"upgrades"`
	PermanentUpgrades []domain.PermanentUpgrade `json:"permanentUpgrades"`
	Synergies         []domain.Synergy          `json:"synergies"`
	Goals             []domain.Goal             `json:"goals"`
}

// HandleGetCatalog returns the content catalog.
func HandleGetCatalog(cat *catalog.Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, DataResponse{Data: CatalogView{
			Eras:              cat.Eras,
			Crops:             cat.Crops,
			AutomationRules:   cat.AutomationRules,
			Upgrades:          cat.Upgrades,
			PermanentUpgrades: cat.PermanentUpgrades,
			Synergies:         cat.Synergies,
			Goals:             cat.Goals,
		}})
	}
}
