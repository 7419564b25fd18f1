package geometry

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"estates/server/internal/finance"
	"estates/server/internal/models"
)

// MapBuilding is a building together with the metrics shown on its map marker.
type MapBuilding struct {
	Building models.Building
	Metrics  finance.Metrics
}

// BuildingFeatures turns geocoded buildings into a GeoJSON FeatureCollection.
// Buildings without coordinates are skipped. The collection carries the bounding box of its points.
func BuildingFeatures(items []MapBuilding) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()

	var points orb.MultiPoint
	for _, item := range items {
		b := item.Building
		if !b.HasCoordinates() {
			continue
		}

		point := orb.Point{*b.Longitude, *b.Latitude}
		points = append(points, point)

		f := geojson.NewFeature(point)
		f.ID = b.ID
		f.Properties["id"] = b.ID
		f.Properties["name"] = b.Name
		f.Properties["address"] = b.Address
		f.Properties["acquisition_price"] = b.AcquisitionPrice
		f.Properties["cash_flow"] = item.Metrics.CashFlow
		if item.Metrics.CashOnCash != nil {
			f.Properties["cash_on_cash"] = *item.Metrics.CashOnCash
		} else {
			f.Properties["cash_on_cash"] = nil
		}
		fc.Append(f)
	}

	if len(points) > 0 {
		fc.BBox = geojson.NewBBox(points.Bound())
	}
	return fc
}
