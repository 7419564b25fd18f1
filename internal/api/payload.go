package api

import (
	"fmt"
	"strings"

	"estates/server/internal/finance"
	"estates/server/internal/models"
)

func stringValue(v interface{}) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(s)
	default:
		return strings.TrimSpace(fmt.Sprint(s))
	}
}

// applyBuildingPayload copies the fields present in payload onto b.
// Numbers are coerced leniently; unknown keys are ignored. When a cost item changes
// value without an explicit total, the total is recomputed from the items.
func applyBuildingPayload(b *models.Building, payload map[string]interface{}) {
	previousCosts := b.Costs
	for key, v := range payload {
		switch key {
		case "name":
			b.Name = stringValue(v)
		case "address":
			b.Address = stringValue(v)
		case "comment":
			b.Comment = stringValue(v)
		case "total_area":
			b.TotalArea = finance.ParseNumericOrZero(v)
		case "unit_count":
			b.UnitCount = finance.ParseIntOrZero(v)
		case "acquisition_price":
			b.AcquisitionPrice = finance.ParseNumericOrZero(v)
		case "rental_income":
			b.RentalIncome = finance.ParseNumericOrZero(v)
		case "total_costs":
			b.TotalCosts = finance.ParseNumericOrZero(v)
		case "costs":
			costs, ok := v.(map[string]interface{})
			if !ok {
				continue
			}
			for name, amount := range costs {
				b.Costs.Set(name, finance.ParseNumericOrZero(amount))
			}
		default:
			// Cost items may also be sent flat, next to the other fields.
			b.Costs.Set(key, finance.ParseNumericOrZero(v))
		}
	}

	if _, ok := payload["total_costs"]; b.Costs != previousCosts && !ok {
		b.TotalCosts = 0
	}
	b.FillTotalCosts()
}

// optionalNumber returns nil for a missing or null value and the coerced number otherwise.
func optionalNumber(payload map[string]interface{}, key string) *float64 {
	v, ok := payload[key]
	if !ok || v == nil {
		return nil
	}
	n := finance.ParseNumericOrZero(v)
	return &n
}
