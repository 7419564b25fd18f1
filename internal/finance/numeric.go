package finance

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// ParseNumericOrZero converts loosely typed input into a float64.
// Missing, non-numeric, NaN and infinite values all become 0; it never fails.
func ParseNumericOrZero(v interface{}) float64 {
	var f float64
	switch n := v.(type) {
	case nil:
		return 0
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int32:
		f = float64(n)
	case int64:
		f = float64(n)
	case uint:
		f = float64(n)
	case uint32:
		f = float64(n)
	case uint64:
		f = float64(n)
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return 0
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0
		}
		f = parsed
	default:
		return 0
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// ParseIntOrZero is ParseNumericOrZero truncated to an int.
func ParseIntOrZero(v interface{}) int {
	return int(ParseNumericOrZero(v))
}
