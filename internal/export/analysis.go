package export

import (
	"strings"

	"estates/server/internal/finance"
	"estates/server/internal/models"
)

// Column is one building in the comparison, with everything derived from it.
type Column struct {
	Building  models.Building   `json:"building"`
	Financing finance.Financing `json:"financing"`
	Metrics   finance.Metrics   `json:"metrics"`
	KPIs      finance.KPIs      `json:"kpis"`
	Files     []string          `json:"files"`
}

// NewColumn evaluates a building under its resolved financing.
func NewColumn(b models.Building, f finance.Financing, files []string) Column {
	if files == nil {
		files = []string{}
	}
	return Column{
		Building:  b,
		Financing: f,
		Metrics:   finance.Calculate(b, f),
		KPIs:      finance.CalculateKPIs(b),
		Files:     files,
	}
}

// Row is one labelled line of the comparison table.
type Row struct {
	Label     string
	Values    []string
	Highlight bool
}

type rowSpec struct {
	label     string
	highlight bool
	value     func(c Column) string
}

func analysisRows() []rowSpec {
	specs := []rowSpec{
		{label: "Total area", value: func(c Column) string { return FormatArea(c.Building.TotalArea) }},
		{label: "Units", value: func(c Column) string { return FormatCount(c.Building.UnitCount) }},
		{label: "Acquisition price", value: func(c Column) string { return FormatAmount(c.Building.AcquisitionPrice) }},
		{label: "Rental income", value: func(c Column) string { return FormatAmount(c.Building.RentalIncome) }},
	}

	for i, line := range (models.CostItems{}).Lines() {
		i := i
		specs = append(specs, rowSpec{
			label: line.Label,
			value: func(c Column) string { return FormatAmount(c.Building.Costs.Lines()[i].Amount) },
		})
	}

	return append(specs,
		rowSpec{label: "Total costs", highlight: true, value: func(c Column) string { return FormatAmount(c.Building.TotalCosts) }},
		rowSpec{label: "Profit before interest", highlight: true, value: func(c Column) string { return FormatAmount(c.Metrics.ProfitBeforeInterest) }},
		rowSpec{label: "Annual interest expense", value: func(c Column) string { return FormatAmount(c.Metrics.AnnualInterest) }},
		rowSpec{label: "Cash flow after interest", highlight: true, value: func(c Column) string { return FormatAmount(c.Metrics.CashFlow) }},
		rowSpec{label: "Cash-on-cash return", value: func(c Column) string { return FormatPercent(c.Metrics.CashOnCash) }},
		rowSpec{label: "Net yield", value: func(c Column) string { return FormatPercent(c.KPIs.NetYield) }},
		rowSpec{label: "Gross yield", value: func(c Column) string { return FormatPercent(c.KPIs.GrossYield) }},
		rowSpec{label: "Cost ratio", value: func(c Column) string { return FormatPercent(c.KPIs.CostRatio) }},
		rowSpec{label: "Rent per m²", value: func(c Column) string { return FormatOptionalAmount(c.KPIs.RentPerArea) }},
		rowSpec{label: "Costs per m²", value: func(c Column) string { return FormatOptionalAmount(c.KPIs.CostsPerArea) }},
		rowSpec{label: "Rent per unit", value: func(c Column) string { return FormatOptionalAmount(c.KPIs.RentPerUnit) }},
		rowSpec{label: "Down payment", value: func(c Column) string { return FormatAmount(c.Metrics.DownPayment) }},
		rowSpec{label: "Loan amount", value: func(c Column) string { return FormatAmount(c.Metrics.LoanAmount) }},
		rowSpec{label: "Leverage", value: func(c Column) string { return PlainPercent(c.Financing.LeveragePct) }},
		rowSpec{label: "Interest rate (APR)", value: func(c Column) string { return PlainPercent(c.Financing.RatePct) }},
		rowSpec{label: "Comment", value: func(c Column) string { return c.Building.Comment }},
		rowSpec{label: "Documents", value: func(c Column) string { return strings.Join(c.Files, ", ") }},
	)
}

// Rows lays the comparison out as one row per figure and one value per building.
func Rows(columns []Column) []Row {
	specs := analysisRows()
	rows := make([]Row, len(specs))
	for i, spec := range specs {
		values := make([]string, len(columns))
		for j, c := range columns {
			values[j] = spec.value(c)
		}
		rows[i] = Row{Label: spec.label, Values: values, Highlight: spec.highlight}
	}
	return rows
}
