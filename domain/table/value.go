package table

import (
	"fmt"
	"strconv"
)

// Value represents a typed cell value with deterministic coercion
type Value struct {
	Type       ValueType `json:"type"`
	NumericVal float64   `json:"numeric_val,omitempty"`
	StringVal  string    `json:"string_val,omitempty"`
	IsMissing  bool      `json:"is_missing"`
}

// ValueType defines the storage type for cell values
type ValueType string

const (
	ValueTypeNumeric     ValueType = "numeric"
	ValueTypeCategorical ValueType = "categorical"
	ValueTypeMissing     ValueType = "missing"
)

// NewNumericValue creates a numeric value
func NewNumericValue(n float64) Value {
	return Value{Type: ValueTypeNumeric, NumericVal: n}
}

// NewCategoricalValue creates a categorical value
func NewCategoricalValue(s string) Value {
	if s == "" {
		return NewMissingValue()
	}
	return Value{Type: ValueTypeCategorical, StringVal: s}
}

// NewMissingValue creates a missing value
func NewMissingValue() Value {
	return Value{Type: ValueTypeMissing, IsMissing: true}
}

// IsNumeric reports whether the value holds a number
func (v Value) IsNumeric() bool {
	return v.Type == ValueTypeNumeric
}

// Float returns the numeric payload and whether one is present
func (v Value) Float() (float64, bool) {
	if v.Type != ValueTypeNumeric {
		return 0, false
	}
	return v.NumericVal, true
}

// Label returns the canonical string form used as a group key.
// Numeric labels are formatted with the shortest round-trippable
// representation so 1 and 1.0 collapse to the same group.
func (v Value) Label() string {
	switch v.Type {
	case ValueTypeNumeric:
		return strconv.FormatFloat(v.NumericVal, 'g', -1, 64)
	case ValueTypeCategorical:
		return v.StringVal
	default:
		return ""
	}
}

// String returns a human-readable representation
func (v Value) String() string {
	if v.IsMissing {
		return "<missing>"
	}
	return fmt.Sprintf("%s(%s)", v.Type, v.Label())
}
