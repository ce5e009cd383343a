package persistence

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/verdantloop/chronogarden/internal/domain"
)

var validate = validator.New()

// Export renders a snapshot as indented JSON for backups and hand editing.
func Export(state *domain.GameState) ([]byte, error) {
	return json.MarshalIndent(state, "", "  ")
}

// Import parses and validates a JSON snapshot. Imported state must name the
// player and garden, carry a current era, and include the planted crop list
// (empty is fine, absent is not); anything less is rejected with a message
// naming the missing field.
func Import(raw []byte) (*domain.GameState, error) {
	var state domain.GameState
	if err := json.Unmarshal(raw, &state); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidSnapshot, err)
	}
	if err := Validate(&state); err != nil {
		return nil, err
	}
	normalize(&state)
	return &state, nil
}

// Validate checks a snapshot's structural invariants.
func Validate(state *domain.GameState) error {
	if err := validate.Struct(state); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			f := verrs[0]
			return fmt.Errorf("%w: field %s failed %q", domain.ErrInvalidSnapshot, f.Field(), f.Tag())
		}
		return fmt.Errorf("%w: %v", domain.ErrInvalidSnapshot, err)
	}
	if !state.EraUnlocked(state.CurrentEra) {
		return fmt.Errorf("%w: current era %q is not unlocked", domain.ErrInvalidSnapshot, state.CurrentEra)
	}
	return nil
}

// normalize fills in the optional maps so the engine never sees nil.
func normalize(state *domain.GameState) {
	if state.Resources == nil {
		state.Resources = domain.ResourceMap{}
	}
	if state.UpgradeLevels == nil {
		state.UpgradeLevels = map[string]int{}
	}
	if state.PermanentUpgradeLevels == nil {
		state.PermanentUpgradeLevels = map[string]int{}
	}
	if state.GoalStatus == nil {
		state.GoalStatus = map[string]domain.GoalStatus{}
	}
	if state.SynergyStats == nil {
		state.SynergyStats = map[string]float64{}
	}
}
