package table

import (
	"biascope/domain/core"
)

// Row maps a column name to its cell value
type Row map[string]Value

// Table is an in-memory dataset: ordered column headers plus data rows.
// Column order is significant for deterministic iteration; rows own their
// values, so a deep copy fully detaches a table from its origin.
type Table struct {
	Headers []string `json:"headers"`
	Rows    []Row    `json:"rows"`
}

// New creates an empty table with the given column headers
func New(headers []string) *Table {
	h := make([]string, len(headers))
	copy(h, headers)
	return &Table{Headers: h}
}

// Append adds a data row to the table
func (t *Table) Append(row Row) {
	t.Rows = append(t.Rows, row)
}

// RowCount returns the number of data rows
func (t *Table) RowCount() int {
	return len(t.Rows)
}

// ColumnCount returns the number of columns
func (t *Table) ColumnCount() int {
	return len(t.Headers)
}

// HasColumn checks whether a column exists
func (t *Table) HasColumn(name string) bool {
	for _, h := range t.Headers {
		if h == name {
			return true
		}
	}
	return false
}

// Column returns all values of a column in row order
func (t *Table) Column(name string) ([]Value, error) {
	if !t.HasColumn(name) {
		return nil, core.NewColumnNotFoundError(name)
	}
	values := make([]Value, 0, len(t.Rows))
	for _, row := range t.Rows {
		v, ok := row[name]
		if !ok {
			v = NewMissingValue()
		}
		values = append(values, v)
	}
	return values, nil
}

// Clone returns a deep copy of the table. Analyses coerce columns on the
// copy so the caller-held table is never mutated.
func (t *Table) Clone() *Table {
	clone := New(t.Headers)
	clone.Rows = make([]Row, 0, len(t.Rows))
	for _, row := range t.Rows {
		dup := make(Row, len(row))
		for k, v := range row {
			dup[k] = v
		}
		clone.Rows = append(clone.Rows, dup)
	}
	return clone
}

// IsNumericColumn reports whether a column can be used for arithmetic as-is:
// at least one observable value and no categorical values.
func (t *Table) IsNumericColumn(name string) (bool, error) {
	values, err := t.Column(name)
	if err != nil {
		return false, err
	}
	observed := false
	for _, v := range values {
		switch v.Type {
		case ValueTypeCategorical:
			return false, nil
		case ValueTypeNumeric:
			observed = true
		}
	}
	return observed, nil
}

// Factorize replaces a column's observable values with integer codes
// assigned in first-seen order, mirroring a stable factorization. Missing
// values stay missing. The returned mapping records label -> code.
func (t *Table) Factorize(name string) (map[string]int, error) {
	if !t.HasColumn(name) {
		return nil, core.NewColumnNotFoundError(name)
	}
	codes := make(map[string]int)
	next := 0
	for _, row := range t.Rows {
		v, ok := row[name]
		if !ok || v.IsMissing {
			row[name] = NewMissingValue()
			continue
		}
		label := v.Label()
		code, seen := codes[label]
		if !seen {
			code = next
			codes[label] = code
			next++
		}
		row[name] = NewNumericValue(float64(code))
	}
	return codes, nil
}
