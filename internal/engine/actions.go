package engine

// Action is one discrete trigger applied to the game state. Every external
// input, player command or timed driver alike, is expressed as an Action and
// handled as a single transition.
type Action interface {
	// Name identifies the action for logging and metrics.
	Name() string
}

// SetEra switches the current era. Rejected unless the era is unlocked.
type SetEra struct {
	EraID string
}

// UnlockEra spends chrono-energy to unlock an era.
type UnlockEra struct {
	EraID string
}

// AddEnergy credits chrono-energy unconditionally.
type AddEnergy struct {
	Amount float64
}

// SpendEnergy deducts chrono-energy, clamping at zero rather than rejecting.
// The soft floor is deliberate and distinct from ledger debits, which reject.
type SpendEnergy struct {
	Amount float64
}

// UpdateResource applies a raw additive delta to one resource. It performs no
// affordability check; callers that have not pre-validated should use the
// purchase actions instead. The balance still floors at zero.
type UpdateResource struct {
	ResourceID string
	Delta      float64
}

// PlantCrop plants one crop instance in an era plot, atomically debiting the
// crop's requirement map (and its one-time unlock cost, if any).
type PlantCrop struct {
	CropID string
	EraID  string
}

// HarvestCrop harvests a mature planted instance, crediting its yield.
type HarvestCrop struct {
	InstanceID string
}

// AddAutomation purchases an automation rule instance, atomically debiting
// the template cost and a fixed soil-quality toll.
type AddAutomation struct {
	RuleID string
}

// RemoveAutomation removes a purchased automation instance.
type RemoveAutomation struct {
	InstanceID string
}

// PurchaseUpgrade buys the next level of a regular upgrade.
type PurchaseUpgrade struct {
	UpgradeID string
}

// PurchasePermanentUpgrade buys the next level of a permanent upgrade; it
// charges chrono-energy and gates on owned rare seed count.
type PurchasePermanentUpgrade struct {
	UpgradeID string
}

// PrestigeReset performs the soft reset. Rejected until the designated
// advanced era has been unlocked.
type PrestigeReset struct{}

// AcceptQuest starts a quest offered by the present visitor.
type AcceptQuest struct {
	VisitorID string
	QuestID   string
}

// DismissVisitor sends the current visitor away. An active, un-expired quest
// blocks dismissal.
type DismissVisitor struct{}

// CheckVisitorSpawn is the periodic external trigger that may make a visitor
// arrive, subject to catalog probability for the current era.
type CheckVisitorSpawn struct{}

// SetWeather records the ambient weather used by quest trigger conditions.
type SetWeather struct {
	Weather string
}

// SetNames updates the display names carried across prestige.
type SetNames struct {
	PlayerName string
	GardenName string
}

// CreateListing locally debits the listed goods at the moment a market
// listing is created. The remote write is the market adapter's concern.
type CreateListing struct {
	ListingID string
	ItemType  string // "seed" or "resource"
	ItemID    string
	Quantity  float64
	Price     float64
}

// Tick is the periodic upkeep trigger: soil recovery and quest expiry.
type Tick struct{}

func (SetEra) Name() string                   { return "set_era" }
func (UnlockEra) Name() string                { return "unlock_era" }
func (AddEnergy) Name() string                { return "add_energy" }
func (SpendEnergy) Name() string              { return "spend_energy" }
func (UpdateResource) Name() string           { return "update_resource" }
func (PlantCrop) Name() string                { return "plant_crop" }
func (HarvestCrop) Name() string              { return "harvest_crop" }
func (AddAutomation) Name() string            { return "add_automation" }
func (RemoveAutomation) Name() string         { return "remove_automation" }
func (PurchaseUpgrade) Name() string          { return "purchase_upgrade" }
func (PurchasePermanentUpgrade) Name() string { return "purchase_permanent_upgrade" }
func (PrestigeReset) Name() string            { return "prestige_reset" }
func (AcceptQuest) Name() string              { return "accept_quest" }
func (DismissVisitor) Name() string           { return "dismiss_visitor" }
func (CheckVisitorSpawn) Name() string        { return "check_visitor_spawn" }
func (SetWeather) Name() string               { return "set_weather" }
func (SetNames) Name() string                 { return "set_names" }
func (CreateListing) Name() string            { return "create_listing" }
func (Tick) Name() string                     { return "tick" }
