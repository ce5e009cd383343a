package handler

import (
	"net/http"

	"github.com/verdantloop/chronogarden/internal/engine"
)

// applyAction runs an engine action and writes the result envelope with the
// resulting snapshot. Engine rejections come back as 200s; the envelope
// status carries the verdict.
func applyAction(w http.ResponseWriter, r *http.Request, eng *engine.Engine, action engine.Action) {
	res := eng.Apply(r.Context(), action)
	respondJSON(w, http.StatusOK, newResultResponse(res, eng.Snapshot()))
}

// PlantCropRequest plants one crop. EraID defaults to the current era.
type PlantCropRequest struct {
	CropID string `json:"cropId" validate:"required"`
	EraID  string `json:"eraId"`
}

func HandlePlantCrop(eng *engine.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req PlantCropRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Plant crop"); err != nil {
			return
		}
		applyAction(w, r, eng, engine.PlantCrop{CropID: req.CropID, EraID: req.EraID})
	}
}

type HarvestCropRequest struct {
	InstanceID string `json:"instanceId" validate:"required"`
}

func HandleHarvestCrop(eng *engine.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req HarvestCropRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Harvest crop"); err != nil {
			return
		}
		applyAction(w, r, eng, engine.HarvestCrop{InstanceID: req.InstanceID})
	}
}

type EraRequest struct {
	EraID string `json:"eraId" validate:"required"`
}

func HandleSetEra(eng *engine.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req EraRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Set era"); err != nil {
			return
		}
		applyAction(w, r, eng, engine.SetEra{EraID: req.EraID})
	}
}

func HandleUnlockEra(eng *engine.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req EraRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Unlock era"); err != nil {
			return
		}
		applyAction(w, r, eng, engine.UnlockEra{EraID: req.EraID})
	}
}

type EnergyRequest struct {
	Amount float64 `json:"amount" validate:"gt=0"`
}

func HandleAddEnergy(eng *engine.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req EnergyRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Add energy"); err != nil {
			return
		}
		applyAction(w, r, eng, engine.AddEnergy{Amount: req.Amount})
	}
}

func HandleSpendEnergy(eng *engine.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req EnergyRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Spend energy"); err != nil {
			return
		}
		applyAction(w, r, eng, engine.SpendEnergy{Amount: req.Amount})
	}
}

type UpdateResourceRequest struct {
	ResourceID string  `json:"resourceId" validate:"required"`
	Delta      float64 `json:"delta"`
}

func HandleUpdateResource(eng *engine.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req UpdateResourceRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Update resource"); err != nil {
			return
		}
		applyAction(w, r, eng, engine.UpdateResource{ResourceID: req.ResourceID, Delta: req.Delta})
	}
}

type AddAutomationRequest struct {
	RuleID string `json:"ruleId" validate:"required"`
}

func HandleAddAutomation(eng *engine.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req AddAutomationRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Add automation"); err != nil {
			return
		}
		applyAction(w, r, eng, engine.AddAutomation{RuleID: req.RuleID})
	}
}

type RemoveAutomationRequest struct {
	InstanceID string `json:"instanceId" validate:"required"`
}

func HandleRemoveAutomation(eng *engine.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req RemoveAutomationRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Remove automation"); err != nil {
			return
		}
		applyAction(w, r, eng, engine.RemoveAutomation{InstanceID: req.InstanceID})
	}
}

type UpgradeRequest struct {
	UpgradeID string `json:"upgradeId" validate:"required"`
}

func HandlePurchaseUpgrade(eng *engine.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req UpgradeRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Purchase upgrade"); err != nil {
			return
		}
		applyAction(w, r, eng, engine.PurchaseUpgrade{UpgradeID: req.UpgradeID})
	}
}

func HandlePurchasePermanentUpgrade(eng *engine.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req UpgradeRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Purchase permanent upgrade"); err != nil {
			return
		}
		applyAction(w, r, eng, engine.PurchasePermanentUpgrade{UpgradeID: req.UpgradeID})
	}
}

func HandlePrestige(eng *engine.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		applyAction(w, r, eng, engine.PrestigeReset{})
	}
}

type SetWeatherRequest struct {
	Weather string `json:"weather" validate:"required"`
}

func HandleSetWeather(eng *engine.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req SetWeatherRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Set weather"); err != nil {
			return
		}
		applyAction(w, r, eng, engine.SetWeather{Weather: req.Weather})
	}
}

type SetNamesRequest struct {
	PlayerName string `json:"playerName" validate:"required,max=64"`
	GardenName string `json:"gardenName" validate:"required,max=64"`
}

func HandleSetNames(eng *engine.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req SetNamesRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Set names"); err != nil {
			return
		}
		applyAction(w, r, eng, engine.SetNames{PlayerName: req.PlayerName, GardenName: req.GardenName})
	}
}
