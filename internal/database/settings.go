package database

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"estates/server/internal/finance"
)

const defaultsRowID = 1

type financeDefaultsRow struct {
	ID          uint    `gorm:"primaryKey"`
	RatePct     float64 `gorm:"column:rate_pct"`
	LeveragePct float64 `gorm:"column:leverage_pct"`
	UpdatedAt   time.Time
}

func (financeDefaultsRow) TableName() string { return "finance_defaults" }

type financeOverrideRow struct {
	BuildingID  int64    `gorm:"column:building_id;primaryKey;autoIncrement:false"`
	RatePct     *float64 `gorm:"column:rate_pct"`
	LeveragePct *float64 `gorm:"column:leverage_pct"`
	UpdatedAt   time.Time
}

func (financeOverrideRow) TableName() string { return "finance_overrides" }

// GetFinanceSettings loads the stored defaults and overrides.
// fallback is used as the defaults until they have been saved once.
func (d *Database) GetFinanceSettings(fallback finance.Financing) (finance.Settings, error) {
	settings := finance.NewSettings(fallback)

	var defaults financeDefaultsRow
	err := d.gorm.First(&defaults, defaultsRowID).Error
	switch {
	case err == nil:
		settings.Defaults = finance.Financing{RatePct: defaults.RatePct, LeveragePct: defaults.LeveragePct}
	case errors.Is(err, gorm.ErrRecordNotFound):
	default:
		return settings, fmt.Errorf("failed to load finance defaults: %w", err)
	}

	var overrides []financeOverrideRow
	if err := d.gorm.Find(&overrides).Error; err != nil {
		return settings, fmt.Errorf("failed to load finance overrides: %w", err)
	}
	for _, o := range overrides {
		settings.Overrides[o.BuildingID] = finance.Override{RatePct: o.RatePct, LeveragePct: o.LeveragePct}
	}
	return settings, nil
}

// SetFinanceDefaults stores the global financing defaults.
func (d *Database) SetFinanceDefaults(f finance.Financing) error {
	row := financeDefaultsRow{ID: defaultsRowID, RatePct: f.RatePct, LeveragePct: f.LeveragePct}
	err := d.gorm.Clauses(clause.OnConflict{UpdateAll: true}).Create(&row).Error
	if err != nil {
		return fmt.Errorf("failed to save finance defaults: %w", err)
	}
	return nil
}

// GetFinanceOverride returns the override of one building, if any.
func (d *Database) GetFinanceOverride(buildingID int64) (finance.Override, bool, error) {
	var row financeOverrideRow
	err := d.gorm.Where("building_id = ?", buildingID).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return finance.Override{}, false, nil
	}
	if err != nil {
		return finance.Override{}, false, fmt.Errorf("failed to load finance override: %w", err)
	}
	return finance.Override{RatePct: row.RatePct, LeveragePct: row.LeveragePct}, true, nil
}

// SetFinanceOverride replaces the override of a building. An empty override is deleted.
func (d *Database) SetFinanceOverride(buildingID int64, o finance.Override) error {
	if o.Empty() {
		return d.DeleteFinanceOverride(buildingID)
	}
	row := financeOverrideRow{BuildingID: buildingID, RatePct: o.RatePct, LeveragePct: o.LeveragePct}
	err := d.gorm.Clauses(clause.OnConflict{UpdateAll: true}).Create(&row).Error
	if err != nil {
		return fmt.Errorf("failed to save finance override: %w", err)
	}
	return nil
}

func (d *Database) DeleteFinanceOverride(buildingID int64) error {
	err := d.gorm.Where("building_id = ?", buildingID).Delete(&financeOverrideRow{}).Error
	if err != nil {
		return fmt.Errorf("failed to delete finance override: %w", err)
	}
	return nil
}
