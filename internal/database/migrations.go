package database

import (
	"fmt"

	"landscout/server/internal/models"
)

func (d *Database) RunMigrations() error {
	if err := d.db.AutoMigrate(&models.Parcel{}, &models.SavedSearch{}); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}

	// Index on coordinates for map viewport queries
	if err := d.db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_parcels_coordinates
		ON parcels(latitude, longitude);
	`).Error; err != nil {
		return fmt.Errorf("failed to create coordinate index: %w", err)
	}

	return nil
}

// SeedIfEmpty inserts parcels only when the store has none.
func (d *Database) SeedIfEmpty(parcels []models.Parcel) (bool, error) {
	count, err := d.CountParcels()
	if err != nil {
		return false, err
	}
	if count > 0 {
		return false, nil
	}

	if err := d.InsertParcels(parcels); err != nil {
		return false, err
	}
	d.logger.WithField("count", len(parcels)).Info("Seeded parcel store")
	return true, nil
}
