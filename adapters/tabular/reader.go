package tabular

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"biascope/domain/core"
	"biascope/domain/table"
	"biascope/internal"
	"biascope/ports"
)

// Reader loads CSV and Excel files into in-memory tables
type Reader struct {
	log *internal.Logger
}

// NewReader creates a new table reader
func NewReader(log *internal.Logger) *Reader {
	if log == nil {
		log = internal.DefaultLogger
	}
	return &Reader{log: log}
}

var _ ports.TableReaderPort = (*Reader)(nil)

// ReadTable reads a data file into a table based on its extension
func (r *Reader) ReadTable(path string) (*table.Table, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("data file not found: %s", path)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return r.readCSV(path)
	case ".xlsx", ".xls":
		return r.readExcel(path)
	default:
		return nil, fmt.Errorf("%w: %s", core.ErrUnsupportedFile, filepath.Ext(path))
	}
}

func (r *Reader) readCSV(path string) (*table.Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV file: %w", err)
	}
	r.log.Debug("read %d raw rows from %s", len(rows), path)

	return r.buildTable(rows)
}

func (r *Reader) readExcel(path string) (*table.Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("Excel file has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}
	r.log.Debug("read %d raw rows from %s sheet %q", len(rows), path, sheets[0])

	return r.buildTable(rows)
}

// buildTable converts raw string rows into a typed table. The first row is
// the header; every cell goes through deterministic coercion.
func (r *Reader) buildTable(rows [][]string) (*table.Table, error) {
	if len(rows) < 2 {
		return nil, core.NewValidationError("file", "must have a header row and at least one data row")
	}

	headers := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		h = strings.TrimSpace(h)
		if h == "" {
			h = fmt.Sprintf("column_%d", i+1)
		}
		headers[i] = h
	}

	tbl := table.New(headers)
	for _, raw := range rows[1:] {
		row := make(table.Row, len(headers))
		for i, name := range headers {
			if i < len(raw) {
				row[name] = ParseCell(raw[i])
			} else {
				row[name] = table.NewMissingValue()
			}
		}
		tbl.Append(row)
	}
	return tbl, nil
}
