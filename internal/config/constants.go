package config

const (
	// Default locations for on-disk assets
	DefaultCatalogDir = "configs/catalog"
	DefaultSaveDBPath = "chronogarden.db"

	// Catalog content file names within CatalogDir
	CatalogFileEras       = "eras.yaml"
	CatalogFileCrops      = "crops.yaml"
	CatalogFileAutomation = "automation.yaml"
	CatalogFileUpgrades   = "upgrades.yaml"
	CatalogFileSynergies  = "synergies.yaml"
	CatalogFileGoals      = "goals.yaml"
	CatalogFileVisitors   = "visitors.yaml"
)
