package database

import (
	"errors"
	"fmt"

	"landscout/server/internal/models"

	"github.com/mattn/go-sqlite3"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("record already exists")
)

type Database struct {
	db     *gorm.DB
	logger *logrus.Logger
}

func NewDatabase(dbPath string, logger *logrus.Logger) (*Database, error) {
	if logger == nil {
		logger = logrus.New()
	}

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Enable foreign keys
	if err := db.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	return &Database{db: db, logger: logger}, nil
}

// GetAllParcels returns every parcel in insertion order.
func (d *Database) GetAllParcels() ([]models.Parcel, error) {
	var parcels []models.Parcel
	if err := d.db.Order("rowid").Find(&parcels).Error; err != nil {
		return nil, fmt.Errorf("failed to query parcels: %w", err)
	}
	return parcels, nil
}

func (d *Database) GetParcelByID(id string) (*models.Parcel, error) {
	var p models.Parcel
	err := d.db.Where("id = ?", id).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query parcel %s: %w", id, err)
	}
	return &p, nil
}

func (d *Database) CountParcels() (int64, error) {
	var count int64
	if err := d.db.Model(&models.Parcel{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count parcels: %w", err)
	}
	return count, nil
}

// Columns a re-import overwrites. Coordinates are handled separately.
var upsertColumns = []string{
	"address", "city", "state", "zip", "county", "msa", "price", "acres", "zoning",
	"description", "images", "features", "financials", "parcel_data", "updated_at",
}

// keepPosition keeps the stored coordinate when the incoming row has no position,
// so a re-import does not undo the geocoding backfill.
func keepPosition(column string) clause.Assignment {
	return clause.Assignment{
		Column: clause.Column{Name: column},
		Value: gorm.Expr(fmt.Sprintf(
			"CASE WHEN excluded.latitude = 0 AND excluded.longitude = 0 THEN parcels.%[1]s ELSE excluded.%[1]s END",
			column,
		)),
	}
}

// UpsertParcels inserts a batch of parcels, replacing rows that share an ID.
func UpsertParcels(tx *gorm.DB, parcels []*models.Parcel) error {
	if len(parcels) == 0 {
		return nil
	}

	updates := clause.AssignmentColumns(upsertColumns)
	updates = append(updates, keepPosition("latitude"), keepPosition("longitude"))
	return tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: updates,
	}).Create(&parcels).Error
}

// InsertParcels upserts parcels in a single transaction.
func (d *Database) InsertParcels(parcels []models.Parcel) error {
	batch := make([]*models.Parcel, len(parcels))
	for i := range parcels {
		batch[i] = &parcels[i]
	}

	err := d.db.Transaction(func(tx *gorm.DB) error {
		return UpsertParcels(tx, batch)
	})
	if err != nil {
		return fmt.Errorf("failed to insert parcels: %w", err)
	}
	return nil
}

// SaveSearch stores a named search. Names are unique.
func (d *Database) SaveSearch(search *models.SavedSearch) error {
	err := d.db.Create(search).Error
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
			return fmt.Errorf("saved search %q: %w", search.Name, ErrDuplicate)
		}
		return fmt.Errorf("failed to save search: %w", err)
	}
	return nil
}

// GetSavedSearches returns saved searches, newest first.
func (d *Database) GetSavedSearches() ([]models.SavedSearch, error) {
	searches := []models.SavedSearch{}
	if err := d.db.Order("created_at DESC").Find(&searches).Error; err != nil {
		return nil, fmt.Errorf("failed to query saved searches: %w", err)
	}
	return searches, nil
}

func (d *Database) DeleteSavedSearch(id string) error {
	result := d.db.Where("id = ?", id).Delete(&models.SavedSearch{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete saved search: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ParcelsMissingCoordinates returns parcels that have an address but no position.
func (d *Database) ParcelsMissingCoordinates() ([]models.Parcel, error) {
	var parcels []models.Parcel
	err := d.db.Where("latitude = 0 AND longitude = 0 AND address <> ''").
		Order("rowid").
		Find(&parcels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query parcels without coordinates: %w", err)
	}
	return parcels, nil
}

func (d *Database) UpdateCoordinates(id string, lat, lng float64) error {
	res := d.db.Model(&models.Parcel{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"latitude": lat, "longitude": lng})
	if res.Error != nil {
		return fmt.Errorf("failed to update coordinates for %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (d *Database) GetDB() *gorm.DB {
	return d.db
}

func (d *Database) Close() error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
