package finance

import (
	"iter"
	"math"

	"estates/server/internal/models"
)

// Bounds on the projection horizon.
const (
	MinProjectionYears = 1
	MaxProjectionYears = 60
)

// ProjectionParams configures a multi-year projection. All rates are in percent.
type ProjectionParams struct {
	LeveragePct  float64 `json:"leverage_pct"`
	InflationPct float64 `json:"inflation_pct"`
	RatePct      float64 `json:"rate_pct"`
	Years        int     `json:"years"`
}

// ProjectionYear is one year of a projection.
type ProjectionYear struct {
	Year                 int     `json:"year"`
	RentalIncome         float64 `json:"rental_income"`
	TotalCosts           float64 `json:"total_costs"`
	ProfitBeforeInterest float64 `json:"profit_before_interest"`
	InterestExpense      float64 `json:"interest_expense"`
	CashFlow             float64 `json:"cash_flow"`
}

// Projection inflates income and costs year over year while interest stays fixed.
// Each year is computed on its own, so the sequence can be evaluated lazily and restarted.
type Projection struct {
	income    float64
	costs     float64
	inflation float64
	interest  float64
	years     int
}

// NewProjection prepares a projection; Years is clamped to [1, 60].
func NewProjection(b models.Building, p ProjectionParams) Projection {
	loan := b.AcquisitionPrice * (p.LeveragePct / 100)
	return Projection{
		income:    b.RentalIncome,
		costs:     b.TotalCosts,
		inflation: p.InflationPct / 100,
		interest:  loan * (p.RatePct / 100),
		years:     clampYears(p.Years),
	}
}

func clampYears(years int) int {
	if years < MinProjectionYears {
		return MinProjectionYears
	}
	if years > MaxProjectionYears {
		return MaxProjectionYears
	}
	return years
}

// ProjectionYears converts a loosely given horizon to a year count in [1, 60].
// It clamps before converting, so huge or negative inputs never overflow an int.
func ProjectionYears(v float64) int {
	if math.IsNaN(v) || v < MinProjectionYears {
		return MinProjectionYears
	}
	if v > MaxProjectionYears {
		return MaxProjectionYears
	}
	return int(v)
}

// Len is the number of projected years.
func (p Projection) Len() int {
	return p.years
}

// At returns year i (1-based). Year 1 carries the unescalated figures.
func (p Projection) At(year int) (ProjectionYear, bool) {
	if year < 1 || year > p.years {
		return ProjectionYear{}, false
	}
	factor := math.Pow(1+p.inflation, float64(year-1))
	income := p.income * factor
	costs := p.costs * factor
	profit := income - costs
	return ProjectionYear{
		Year:                 year,
		RentalIncome:         income,
		TotalCosts:           costs,
		ProfitBeforeInterest: profit,
		InterestExpense:      p.interest,
		CashFlow:             profit - p.interest,
	}, true
}

// All yields every year in order.
func (p Projection) All() iter.Seq[ProjectionYear] {
	return func(yield func(ProjectionYear) bool) {
		for i := 1; i <= p.years; i++ {
			y, _ := p.At(i)
			if !yield(y) {
				return
			}
		}
	}
}

// Years materializes the whole projection.
func (p Projection) Years() []ProjectionYear {
	out := make([]ProjectionYear, 0, p.years)
	for y := range p.All() {
		out = append(out, y)
	}
	return out
}
