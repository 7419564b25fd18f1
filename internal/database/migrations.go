package database

import (
	"fmt"

	"gorm.io/gorm"
)

func (d *Database) RunMigrations() error {
	_, err := d.db.Exec(`
		CREATE TABLE IF NOT EXISTS buildings (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT,
			address TEXT,
			total_area REAL NOT NULL DEFAULT 0,
			unit_count INTEGER NOT NULL DEFAULT 0,
			acquisition_price REAL NOT NULL DEFAULT 0,
			rental_income REAL NOT NULL DEFAULT 0,
			premises REAL NOT NULL DEFAULT 0,
			district_heating REAL NOT NULL DEFAULT 0,
			insurance REAL NOT NULL DEFAULT 0,
			property_tax REAL NOT NULL DEFAULT 0,
			waste_collection REAL NOT NULL DEFAULT 0,
			water REAL NOT NULL DEFAULT 0,
			sundries REAL NOT NULL DEFAULT 0,
			internet REAL NOT NULL DEFAULT 0,
			owners_association REAL NOT NULL DEFAULT 0,
			administration REAL NOT NULL DEFAULT 0,
			accounting REAL NOT NULL DEFAULT 0,
			caretaker REAL NOT NULL DEFAULT 0,
			exterior_maintenance REAL NOT NULL DEFAULT 0,
			other REAL NOT NULL DEFAULT 0,
			total_costs REAL NOT NULL DEFAULT 0,
			comment TEXT DEFAULT '',
			latitude REAL,
			longitude REAL,
			geocoding_attempted INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME,
			updated_at DATETIME
		);
	`)
	if err != nil {
		return fmt.Errorf("failed to create buildings table: %w", err)
	}

	// Create spatial index on coordinates
	_, err = d.db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_buildings_coordinates
		ON buildings(latitude, longitude);
	`)
	if err != nil {
		return fmt.Errorf("failed to create coordinates index: %w", err)
	}

	return MigrateSchema(d.gorm)
}

// MigrateSchema creates the tables owned by the ORM models.
func MigrateSchema(db *gorm.DB) error {
	if err := db.AutoMigrate(&financeDefaultsRow{}, &financeOverrideRow{}); err != nil {
		return fmt.Errorf("failed to migrate finance settings: %w", err)
	}
	return nil
}
