package database

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// AddressGeocoder resolves a free-form address to coordinates.
type AddressGeocoder interface {
	GeocodeAddress(address string) (float64, float64, error)
}

type pendingGeocode struct {
	id      int64
	address string
}

// UpdateMissingCoordinates geocodes every building that has an address but no coordinates
// and has not been tried before. Failed lookups are marked so they are not retried.
func (d *Database) UpdateMissingCoordinates(geocoder AddressGeocoder, logger *logrus.Logger) error {
	rows, err := d.db.Query(`
		SELECT id, address
		FROM buildings
		WHERE (latitude IS NULL OR longitude IS NULL)
		AND geocoding_attempted = 0
		AND address IS NOT NULL AND TRIM(address) != ''
	`)
	if err != nil {
		return fmt.Errorf("failed to query buildings: %w", err)
	}

	var pending []pendingGeocode
	for rows.Next() {
		var p pendingGeocode
		if err := rows.Scan(&p.id, &p.address); err != nil {
			rows.Close()
			return fmt.Errorf("failed to scan building: %w", err)
		}
		pending = append(pending, p)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	if len(pending) == 0 {
		logger.Debug("No buildings need geocoding")
		return nil
	}
	logger.WithField("count", len(pending)).Info("Geocoding buildings without coordinates")

	var processed, failed int
	for _, p := range pending {
		lat, lon, err := geocoder.GeocodeAddress(p.address)
		if err != nil {
			logger.WithError(err).WithField("building_id", p.id).Warn("Failed to geocode building")
			if _, err := d.db.Exec(`UPDATE buildings SET geocoding_attempted = 1 WHERE id = ?`, p.id); err != nil {
				return fmt.Errorf("failed to mark building %d: %w", p.id, err)
			}
			failed++
			continue
		}

		_, err = d.db.Exec(`
			UPDATE buildings
			SET latitude = ?, longitude = ?, geocoding_attempted = 1
			WHERE id = ?
		`, lat, lon, p.id)
		if err != nil {
			return fmt.Errorf("failed to update coordinates of building %d: %w", p.id, err)
		}
		processed++
	}

	logger.WithFields(logrus.Fields{
		"processed": processed,
		"failed":    failed,
	}).Info("Geocoding finished")
	return nil
}
