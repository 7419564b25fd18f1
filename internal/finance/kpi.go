package finance

import (
	"math"

	"estates/server/internal/models"
)

// KPIs are the comparison ratios shown next to the metrics.
// Every ratio is nil when its divisor is zero.
type KPIs struct {
	NetYield     *float64 `json:"net_yield"`
	GrossYield   *float64 `json:"gross_yield"`
	CostRatio    *float64 `json:"cost_ratio"`
	RentPerArea  *float64 `json:"rent_per_area"`
	CostsPerArea *float64 `json:"costs_per_area"`
	RentPerUnit  *float64 `json:"rent_per_unit"`
}

// CalculateKPIs computes yields, cost ratio and per-area / per-unit figures.
func CalculateKPIs(b models.Building) KPIs {
	profit := b.RentalIncome - b.TotalCosts
	return KPIs{
		NetYield:     percentOf(profit, b.AcquisitionPrice),
		GrossYield:   percentOf(b.RentalIncome, b.AcquisitionPrice),
		CostRatio:    percentOf(b.TotalCosts, b.RentalIncome),
		RentPerArea:  roundedRatio(b.RentalIncome, b.TotalArea),
		CostsPerArea: roundedRatio(b.TotalCosts, b.TotalArea),
		RentPerUnit:  roundedRatio(b.RentalIncome, float64(b.UnitCount)),
	}
}

func percentOf(v, of float64) *float64 {
	if of == 0 {
		return nil
	}
	r := v / of * 100
	return &r
}

func roundedRatio(v, per float64) *float64 {
	if per == 0 {
		return nil
	}
	r := math.Round(v / per)
	return &r
}
