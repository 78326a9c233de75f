package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"biascope/domain/catalog"
	"biascope/domain/core"
	"biascope/ports"
)

const schema = `
CREATE TABLE IF NOT EXISTS datasets (
	id TEXT PRIMARY KEY,
	original_filename TEXT NOT NULL,
	file_path TEXT NOT NULL DEFAULT '',
	file_size BIGINT NOT NULL DEFAULT 0,
	row_count INTEGER NOT NULL DEFAULT 0,
	column_count INTEGER NOT NULL DEFAULT 0,
	columns JSONB NOT NULL DEFAULT '[]',
	status TEXT NOT NULL,
	error_message TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
)`

// catalogRepository implements the dataset registry on postgres
type catalogRepository struct {
	db *sqlx.DB
}

// NewCatalogRepository creates a postgres-backed dataset registry and
// ensures its schema exists.
func NewCatalogRepository(db *sqlx.DB) (ports.DatasetStorePort, error) {
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("failed to ensure datasets schema: %w", err)
	}
	return &catalogRepository{db: db}, nil
}

// Create inserts a new dataset into the registry
func (r *catalogRepository) Create(ctx context.Context, ds *catalog.Dataset) error {
	columnsJSON, err := json.Marshal(ds.Columns)
	if err != nil {
		return fmt.Errorf("failed to marshal columns: %w", err)
	}

	query := `INSERT INTO datasets (
		id, original_filename, file_path, file_size, row_count, column_count,
		columns, status, error_message, created_at, updated_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err = r.db.ExecContext(ctx, query,
		ds.ID, ds.OriginalFilename, ds.FilePath, ds.FileSize, ds.RowCount, ds.ColumnCount,
		columnsJSON, ds.Status, ds.ErrorMessage, ds.CreatedAt, ds.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create dataset: %w", err)
	}
	return nil
}

// Update replaces a dataset's registry entry
func (r *catalogRepository) Update(ctx context.Context, ds *catalog.Dataset) error {
	columnsJSON, err := json.Marshal(ds.Columns)
	if err != nil {
		return fmt.Errorf("failed to marshal columns: %w", err)
	}

	query := `UPDATE datasets SET
		original_filename = $2, file_path = $3, file_size = $4, row_count = $5,
		column_count = $6, columns = $7, status = $8, error_message = $9, updated_at = $10
	WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query,
		ds.ID, ds.OriginalFilename, ds.FilePath, ds.FileSize, ds.RowCount,
		ds.ColumnCount, columnsJSON, ds.Status, ds.ErrorMessage, ds.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update dataset: %w", err)
	}
	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		return core.ErrDatasetNotFound
	}
	return nil
}

// GetByID retrieves a dataset by its ID
func (r *catalogRepository) GetByID(ctx context.Context, id core.DatasetID) (*catalog.Dataset, error) {
	query := `SELECT id, original_filename, file_path, file_size, row_count,
		column_count, columns, status, error_message, created_at, updated_at
	FROM datasets WHERE id = $1`

	var ds catalog.Dataset
	var columnsJSON []byte
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&ds.ID, &ds.OriginalFilename, &ds.FilePath, &ds.FileSize, &ds.RowCount,
		&ds.ColumnCount, &columnsJSON, &ds.Status, &ds.ErrorMessage, &ds.CreatedAt, &ds.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, core.ErrDatasetNotFound
		}
		return nil, fmt.Errorf("failed to get dataset: %w", err)
	}

	if len(columnsJSON) > 0 {
		if err := json.Unmarshal(columnsJSON, &ds.Columns); err != nil {
			return nil, fmt.Errorf("failed to unmarshal columns: %w", err)
		}
	}
	return &ds, nil
}

// List returns all datasets, newest first
func (r *catalogRepository) List(ctx context.Context) ([]*catalog.Dataset, error) {
	query := `SELECT id, original_filename, file_path, file_size, row_count,
		column_count, columns, status, error_message, created_at, updated_at
	FROM datasets ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list datasets: %w", err)
	}
	defer rows.Close()

	var out []*catalog.Dataset
	for rows.Next() {
		var ds catalog.Dataset
		var columnsJSON []byte
		if err := rows.Scan(
			&ds.ID, &ds.OriginalFilename, &ds.FilePath, &ds.FileSize, &ds.RowCount,
			&ds.ColumnCount, &columnsJSON, &ds.Status, &ds.ErrorMessage, &ds.CreatedAt, &ds.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan dataset: %w", err)
		}
		if len(columnsJSON) > 0 {
			if err := json.Unmarshal(columnsJSON, &ds.Columns); err != nil {
				return nil, fmt.Errorf("failed to unmarshal columns: %w", err)
			}
		}
		out = append(out, &ds)
	}
	return out, rows.Err()
}

// Delete removes a dataset from the registry
func (r *catalogRepository) Delete(ctx context.Context, id core.DatasetID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM datasets WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete dataset: %w", err)
	}
	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		return core.ErrDatasetNotFound
	}
	return nil
}
