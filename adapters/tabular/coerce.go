package tabular

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"biascope/domain/table"
)

// ParseCell deterministically coerces a raw string cell into a typed value.
// Numeric parsing is tried first; anything else becomes categorical.
// Empty and NaN-like cells become missing.
func ParseCell(raw string) table.Value {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return table.NewMissingValue()
	}
	switch strings.ToLower(trimmed) {
	case "na", "n/a", "nan", "null":
		return table.NewMissingValue()
	}

	if n, err := strconv.ParseFloat(trimmed, 64); err == nil {
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return table.NewMissingValue()
		}
		return table.NewNumericValue(n)
	}

	return table.NewCategoricalValue(trimmed)
}

// CoerceAny converts a decoded JSON scalar into a typed value. Booleans map
// to 0/1 so boolean targets behave like already-encoded labels.
func CoerceAny(raw interface{}) table.Value {
	switch v := raw.(type) {
	case nil:
		return table.NewMissingValue()
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return table.NewMissingValue()
		}
		return table.NewNumericValue(v)
	case int:
		return table.NewNumericValue(float64(v))
	case int64:
		return table.NewNumericValue(float64(v))
	case bool:
		if v {
			return table.NewNumericValue(1)
		}
		return table.NewNumericValue(0)
	case string:
		return ParseCell(v)
	default:
		return ParseCell(fmt.Sprintf("%v", v))
	}
}
