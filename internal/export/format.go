package export

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// NotApplicable is printed wherever a ratio has no defined value.
const NotApplicable = "—"

// Currency of every amount in the export.
const Currency = money.DKK

// FormatAmount renders v as a DKK amount, rounded to øre.
func FormatAmount(v float64) string {
	minor := decimal.NewFromFloat(v).Round(2).Shift(2).IntPart()
	return money.New(minor, Currency).Display()
}

// FormatWholeAmount renders v as a DKK amount rounded to whole kroner.
func FormatWholeAmount(v float64) string {
	return FormatAmount(decimal.NewFromFloat(v).Round(0).InexactFloat64())
}

// FormatPercent renders a ratio with two decimals, or NotApplicable when p is nil.
func FormatPercent(p *float64) string {
	if p == nil {
		return NotApplicable
	}
	return PlainPercent(*p)
}

// PlainPercent renders a percentage that is always defined, such as an input rate.
func PlainPercent(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2) + " %"
}

// FormatOptionalAmount is FormatWholeAmount for per-area and per-unit figures.
func FormatOptionalAmount(p *float64) string {
	if p == nil {
		return NotApplicable
	}
	return FormatWholeAmount(*p)
}

// FormatArea renders a floor area in square metres.
func FormatArea(v float64) string {
	return strings.TrimSuffix(strings.TrimRight(strconv.FormatFloat(v, 'f', 2, 64), "0"), ".") + " m²"
}

// FormatCount renders a unit count.
func FormatCount(n int) string {
	return fmt.Sprintf("%d", n)
}
