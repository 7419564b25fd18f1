package finance

import (
	"math"

	"estates/server/internal/models"
)

// Default grid axes, matching the scenario tables the analysis screen shows.
const (
	DefaultRateMin      = 3.0
	DefaultRateMax      = 8.0
	DefaultRateStep     = 0.5
	DefaultLeverageMin  = 60.0
	DefaultLeverageMax  = 85.0
	DefaultLeverageStep = 5.0
)

// Grid is a rate x leverage sensitivity matrix for one building.
// CashFlow[i][j] and CashOnCash[i][j] belong to RateValues[i] and LeverageValues[j].
type Grid struct {
	RateValues           []float64    `json:"rate_values"`
	LeverageValues       []float64    `json:"leverage_values"`
	ProfitBeforeInterest float64      `json:"profit_before_interest"`
	CashFlow             [][]float64  `json:"cash_flow"`
	CashOnCash           [][]*float64 `json:"cash_on_cash"`
}

// Snap is a grid cell picked by Lookup, along with the axis values it actually sits on.
type Snap struct {
	CashFlow     float64  `json:"cash_flow"`
	CashOnCash   *float64 `json:"cash_on_cash"`
	UsedRate     float64  `json:"used_rate"`
	UsedLeverage float64  `json:"used_leverage"`
}

// Axis returns min, min+step, ... up to and including max.
// A non-positive step or max < min gives an empty axis.
func Axis(min, max, step float64) []float64 {
	if step <= 0 || max < min {
		return []float64{}
	}
	n := int(math.Floor((max-min)/step+1e-9)) + 1
	values := make([]float64, n)
	for i := range values {
		values[i] = math.Round((min+float64(i)*step)*1e6) / 1e6
	}
	return values
}

// DefaultRateAxis is 3% to 8% in half-point steps.
func DefaultRateAxis() []float64 {
	return Axis(DefaultRateMin, DefaultRateMax, DefaultRateStep)
}

// DefaultLeverageAxis is 60% to 85% in five-point steps.
func DefaultLeverageAxis() []float64 {
	return Axis(DefaultLeverageMin, DefaultLeverageMax, DefaultLeverageStep)
}

// BuildGrid evaluates the building at every rate/leverage combination.
func BuildGrid(b models.Building, rates, leverages []float64) *Grid {
	profit := b.RentalIncome - b.TotalCosts
	g := &Grid{
		RateValues:           append([]float64{}, rates...),
		LeverageValues:       append([]float64{}, leverages...),
		ProfitBeforeInterest: profit,
		CashFlow:             make([][]float64, len(rates)),
		CashOnCash:           make([][]*float64, len(rates)),
	}
	for i, rate := range rates {
		g.CashFlow[i] = make([]float64, len(leverages))
		g.CashOnCash[i] = make([]*float64, len(leverages))
		for j, leverage := range leverages {
			m := compute(b.AcquisitionPrice, profit, rate, leverage)
			g.CashFlow[i][j] = m.CashFlow
			g.CashOnCash[i][j] = m.CashOnCash
		}
	}
	return g
}

// Lookup returns the cell nearest to the requested rate and leverage.
// It reports false when the grid is nil, an axis is empty or the matrices are too small.
func (g *Grid) Lookup(ratePct, leveragePct float64) (Snap, bool) {
	if g == nil {
		return Snap{}, false
	}
	ri := nearestIndex(g.RateValues, ratePct)
	li := nearestIndex(g.LeverageValues, leveragePct)
	if ri < 0 || li < 0 {
		return Snap{}, false
	}
	if ri >= len(g.CashFlow) || li >= len(g.CashFlow[ri]) {
		return Snap{}, false
	}

	snap := Snap{
		CashFlow:     g.CashFlow[ri][li],
		UsedRate:     g.RateValues[ri],
		UsedLeverage: g.LeverageValues[li],
	}
	if ri < len(g.CashOnCash) && li < len(g.CashOnCash[ri]) {
		snap.CashOnCash = g.CashOnCash[ri][li]
	}
	return snap, true
}

// nearestIndex scans left to right; on equal distance the earlier index is kept.
func nearestIndex(axis []float64, v float64) int {
	if len(axis) == 0 {
		return -1
	}
	best := 0
	bestDiff := math.Abs(axis[0] - v)
	for i := 1; i < len(axis); i++ {
		if d := math.Abs(axis[i] - v); d < bestDiff {
			best, bestDiff = i, d
		}
	}
	return best
}
