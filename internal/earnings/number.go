package earnings

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Number coerces a loosely typed numeric value to float64. Anything that is
// not a finite number, or a string holding one, becomes 0.
func Number(v any) float64 {
	switch n := v.(type) {
	case nil:
		return 0
	case float64:
		return finite(n)
	case float32:
		return finite(float64(n))
	case int:
		return float64(n)
	case int32:
		return float64(n)
	case int64:
		return float64(n)
	case uint:
		return float64(n)
	case uint32:
		return float64(n)
	case uint64:
		return float64(n)
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0
		}
		return finite(f)
	case string:
		return parseNumber(n)
	default:
		return 0
	}
}

// Count coerces v like Number and truncates toward zero.
func Count(v any) int {
	return int(math.Trunc(Number(v)))
}

func parseNumber(raw string) float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0
	}
	// "12,50" is how amounts are typed in pt-BR forms.
	if strings.Contains(raw, ",") && !strings.Contains(raw, ".") {
		raw = strings.Replace(raw, ",", ".", 1)
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0
	}
	return finite(f)
}

func finite(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}
