package database

import (
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"estates/server/internal/models"
)

// UpsertBuildings writes an import batch inside tx. Buildings with an id replace the
// stored row, the others are inserted and receive their new id.
func UpsertBuildings(tx *gorm.DB, batch []*models.Building) error {
	now := time.Now().UTC()
	for _, b := range batch {
		b.FillTotalCosts()
		if b.CreatedAt.IsZero() {
			b.CreatedAt = now
		}
		b.UpdatedAt = now

		err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).Create(b).Error
		if err != nil {
			return fmt.Errorf("failed to upsert building %q: %w", b.Name, err)
		}

		if !b.HasCoordinates() {
			err := tx.Exec(`UPDATE buildings SET geocoding_attempted = 0 WHERE id = ?`, b.ID).Error
			if err != nil {
				return fmt.Errorf("failed to reset geocoding of building %d: %w", b.ID, err)
			}
		}
	}
	return nil
}
