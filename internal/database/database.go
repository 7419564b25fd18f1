package database

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"estates/server/internal/models"
)

// ErrNotFound is returned when a building does not exist.
var ErrNotFound = errors.New("building not found")

type Database struct {
	db   *sql.DB
	gorm *gorm.DB
}

func NewDatabase(dbPath string) (*Database, error) {
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}
	// SQLite allows one writer; a single connection also keeps :memory: databases alive.
	db.SetMaxOpenConns(1)

	// Enable foreign keys
	_, err = db.Exec("PRAGMA foreign_keys = ON")
	if err != nil {
		db.Close()
		return nil, err
	}

	gdb, err := gorm.Open(&sqlite.Dialector{Conn: db}, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to open gorm session: %w", err)
	}

	return &Database{db: db, gorm: gdb}, nil
}

// NewTestDB opens a migrated in-memory database.
func NewTestDB() (*Database, error) {
	d, err := NewDatabase(":memory:")
	if err != nil {
		return nil, err
	}
	if err := d.RunMigrations(); err != nil {
		d.Close()
		return nil, err
	}
	return d, nil
}

func (d *Database) Close() error {
	return d.db.Close()
}

// GetDB returns the underlying database connection
func (d *Database) GetDB() *sql.DB {
	return d.db
}

// Gorm returns the ORM session sharing the same connection.
func (d *Database) Gorm() *gorm.DB {
	return d.gorm
}

const buildingColumns = `
	id, name, address, total_area, unit_count, acquisition_price, rental_income,
	premises, district_heating, insurance, property_tax, waste_collection, water,
	sundries, internet, owners_association, administration, accounting, caretaker,
	exterior_maintenance, other, total_costs, comment, latitude, longitude,
	created_at, updated_at`

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanBuilding(s scanner) (models.Building, error) {
	var b models.Building
	var name, address, comment sql.NullString
	var latitude, longitude sql.NullFloat64
	var createdAt, updatedAt sql.NullTime

	err := s.Scan(
		&b.ID,
		&name,
		&address,
		&b.TotalArea,
		&b.UnitCount,
		&b.AcquisitionPrice,
		&b.RentalIncome,
		&b.Costs.Premises,
		&b.Costs.DistrictHeating,
		&b.Costs.Insurance,
		&b.Costs.PropertyTax,
		&b.Costs.WasteCollection,
		&b.Costs.Water,
		&b.Costs.Sundries,
		&b.Costs.Internet,
		&b.Costs.OwnersAssociation,
		&b.Costs.Administration,
		&b.Costs.Accounting,
		&b.Costs.Caretaker,
		&b.Costs.ExteriorMaintenance,
		&b.Costs.Other,
		&b.TotalCosts,
		&comment,
		&latitude,
		&longitude,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return b, err
	}

	b.Name = name.String
	b.Address = address.String
	b.Comment = comment.String
	if latitude.Valid {
		lat := latitude.Float64
		b.Latitude = &lat
	}
	if longitude.Valid {
		lon := longitude.Float64
		b.Longitude = &lon
	}
	if createdAt.Valid {
		b.CreatedAt = createdAt.Time
	}
	if updatedAt.Valid {
		b.UpdatedAt = updatedAt.Time
	}
	return b, nil
}

func buildingArgs(b *models.Building) []interface{} {
	return []interface{}{
		b.Name,
		b.Address,
		b.TotalArea,
		b.UnitCount,
		b.AcquisitionPrice,
		b.RentalIncome,
		b.Costs.Premises,
		b.Costs.DistrictHeating,
		b.Costs.Insurance,
		b.Costs.PropertyTax,
		b.Costs.WasteCollection,
		b.Costs.Water,
		b.Costs.Sundries,
		b.Costs.Internet,
		b.Costs.OwnersAssociation,
		b.Costs.Administration,
		b.Costs.Accounting,
		b.Costs.Caretaker,
		b.Costs.ExteriorMaintenance,
		b.Costs.Other,
		b.TotalCosts,
		b.Comment,
	}
}

func (d *Database) GetAllBuildings() ([]models.Building, error) {
	rows, err := d.db.Query(`SELECT ` + buildingColumns + ` FROM buildings ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query buildings: %w", err)
	}
	defer rows.Close()

	buildings := []models.Building{}
	for rows.Next() {
		b, err := scanBuilding(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan building: %w", err)
		}
		buildings = append(buildings, b)
	}
	return buildings, rows.Err()
}

// GetBuildingsByID returns the requested buildings in the order of ids, skipping unknown ids.
// A repeated id yields the building once per occurrence.
func (d *Database) GetBuildingsByID(ids []int64) ([]models.Building, error) {
	if len(ids) == 0 {
		return []models.Building{}, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
	args := make([]interface{}, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	rows, err := d.db.Query(`SELECT `+buildingColumns+` FROM buildings WHERE id IN (`+placeholders+`)`, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query buildings: %w", err)
	}
	defer rows.Close()

	byID := make(map[int64]models.Building, len(ids))
	for rows.Next() {
		b, err := scanBuilding(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan building: %w", err)
		}
		byID[b.ID] = b
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	buildings := make([]models.Building, 0, len(ids))
	for _, id := range ids {
		if b, ok := byID[id]; ok {
			buildings = append(buildings, b)
		}
	}
	return buildings, nil
}

func (d *Database) GetBuilding(id int64) (*models.Building, error) {
	row := d.db.QueryRow(`SELECT `+buildingColumns+` FROM buildings WHERE id = ?`, id)
	b, err := scanBuilding(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get building %d: %w", id, err)
	}
	return &b, nil
}

// CreateBuilding inserts b and fills in its id and timestamps.
func (d *Database) CreateBuilding(b *models.Building) error {
	now := time.Now().UTC()
	b.FillTotalCosts()

	args := append(buildingArgs(b), now, now)
	res, err := d.db.Exec(`
		INSERT INTO buildings (
			name, address, total_area, unit_count, acquisition_price, rental_income,
			premises, district_heating, insurance, property_tax, waste_collection, water,
			sundries, internet, owners_association, administration, accounting, caretaker,
			exterior_maintenance, other, total_costs, comment, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, args...)
	if err != nil {
		return fmt.Errorf("failed to insert building: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read building id: %w", err)
	}
	b.ID = id
	b.CreatedAt = now
	b.UpdatedAt = now
	return nil
}

// UpdateBuilding overwrites every editable field of building b.ID.
// Coordinates are reset when the address changes so the building gets geocoded again.
func (d *Database) UpdateBuilding(b *models.Building) error {
	current, err := d.GetBuilding(b.ID)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	b.FillTotalCosts()
	b.CreatedAt = current.CreatedAt
	b.UpdatedAt = now
	addressChanged := current.Address != b.Address
	if addressChanged {
		b.Latitude, b.Longitude = nil, nil
	} else {
		b.Latitude, b.Longitude = current.Latitude, current.Longitude
	}

	args := append(buildingArgs(b),
		nullableFloat(b.Latitude),
		nullableFloat(b.Longitude),
		addressChanged,
		now,
		b.ID,
	)
	_, err = d.db.Exec(`
		UPDATE buildings SET
			name = ?, address = ?, total_area = ?, unit_count = ?, acquisition_price = ?, rental_income = ?,
			premises = ?, district_heating = ?, insurance = ?, property_tax = ?, waste_collection = ?, water = ?,
			sundries = ?, internet = ?, owners_association = ?, administration = ?, accounting = ?, caretaker = ?,
			exterior_maintenance = ?, other = ?, total_costs = ?, comment = ?,
			latitude = ?, longitude = ?,
			geocoding_attempted = CASE WHEN ? THEN 0 ELSE geocoding_attempted END,
			updated_at = ?
		WHERE id = ?
	`, args...)
	if err != nil {
		return fmt.Errorf("failed to update building %d: %w", b.ID, err)
	}
	return nil
}

func (d *Database) DeleteBuilding(id int64) error {
	res, err := d.db.Exec(`DELETE FROM buildings WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete building %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return d.DeleteFinanceOverride(id)
}

func nullableFloat(v *float64) interface{} {
	if v == nil {
		return nil
	}
	return *v
}
