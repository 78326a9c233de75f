package catalog

import (
	"time"

	"biascope/domain/core"
)

// DatasetStatus represents the processing state of an uploaded dataset
type DatasetStatus string

const (
	StatusProcessing DatasetStatus = "processing"
	StatusReady      DatasetStatus = "ready"
	StatusFailed     DatasetStatus = "failed"
)

// Dataset is the registry entry for an uploaded dataset. Only metadata is
// stored here; the table itself lives in memory for the session and analysis
// reports are never persisted.
type Dataset struct {
	ID               core.DatasetID `json:"id" db:"id"`
	OriginalFilename string         `json:"original_filename" db:"original_filename"`
	FilePath         string         `json:"file_path,omitempty" db:"file_path"`
	FileSize         int64          `json:"file_size" db:"file_size"`

	RowCount    int      `json:"row_count" db:"row_count"`
	ColumnCount int      `json:"column_count" db:"column_count"`
	Columns     []string `json:"columns" db:"-"`

	Status       DatasetStatus `json:"status" db:"status"`
	ErrorMessage string        `json:"error_message,omitempty" db:"error_message"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// NewDataset creates a registry entry for a freshly uploaded file
func NewDataset(originalFilename string) *Dataset {
	now := time.Now()
	return &Dataset{
		ID:               core.DatasetID(core.NewID()),
		OriginalFilename: originalFilename,
		Status:           StatusProcessing,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}

// IsReady returns true if the dataset can be analyzed
func (d *Dataset) IsReady() bool {
	return d.Status == StatusReady
}

// MarkReady records successful ingestion
func (d *Dataset) MarkReady(rows, columns int, columnNames []string) {
	d.RowCount = rows
	d.ColumnCount = columns
	d.Columns = columnNames
	d.Status = StatusReady
	d.ErrorMessage = ""
	d.UpdatedAt = time.Now()
}

// MarkFailed records an ingestion failure
func (d *Dataset) MarkFailed(err error) {
	d.Status = StatusFailed
	d.ErrorMessage = err.Error()
	d.UpdatedAt = time.Now()
}
