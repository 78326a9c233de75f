package ports

import (
	"biascope/domain/table"
)

// TableReaderPort loads a tabular file into an in-memory table
type TableReaderPort interface {
	ReadTable(path string) (*table.Table, error)
}
