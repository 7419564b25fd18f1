package finance

import "estates/server/internal/models"

// Metrics are the figures derived from a building and its financing.
// CashOnCash is nil when the down payment is zero or negative.
type Metrics struct {
	RatePct              float64  `json:"rate_pct"`
	LeveragePct          float64  `json:"leverage_pct"`
	LoanAmount           float64  `json:"loan_amount"`
	DownPayment          float64  `json:"down_payment"`
	AnnualInterest       float64  `json:"annual_interest"`
	ProfitBeforeInterest float64  `json:"profit_before_interest"`
	CashFlow             float64  `json:"cash_flow"`
	CashOnCash           *float64 `json:"cash_on_cash"`
}

// Calculate derives the metrics of a building under the given financing.
func Calculate(b models.Building, f Financing) Metrics {
	return compute(b.AcquisitionPrice, b.RentalIncome-b.TotalCosts, f.RatePct, f.LeveragePct)
}

// Stress recomputes the metrics directly for an arbitrary rate and leverage.
// Unlike Grid.Lookup it never snaps, so a 400% rate yields the true cash flow.
func Stress(b models.Building, ratePct, leveragePct float64) Metrics {
	return Calculate(b, Financing{RatePct: ratePct, LeveragePct: leveragePct})
}

func compute(price, profitBeforeInterest, ratePct, leveragePct float64) Metrics {
	loan := price * (leveragePct / 100)
	downPayment := price - loan
	interest := loan * (ratePct / 100)
	cashFlow := profitBeforeInterest - interest

	return Metrics{
		RatePct:              ratePct,
		LeveragePct:          leveragePct,
		LoanAmount:           loan,
		DownPayment:          downPayment,
		AnnualInterest:       interest,
		ProfitBeforeInterest: profitBeforeInterest,
		CashFlow:             cashFlow,
		CashOnCash:           cashOnCash(cashFlow, downPayment),
	}
}

func cashOnCash(cashFlow, downPayment float64) *float64 {
	if downPayment <= 0 {
		return nil
	}
	v := cashFlow / downPayment * 100
	return &v
}
