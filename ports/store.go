package ports

import (
	"context"

	"biascope/domain/catalog"
	"biascope/domain/core"
)

// DatasetStorePort persists dataset registry metadata
type DatasetStorePort interface {
	Create(ctx context.Context, ds *catalog.Dataset) error
	Update(ctx context.Context, ds *catalog.Dataset) error
	GetByID(ctx context.Context, id core.DatasetID) (*catalog.Dataset, error)
	List(ctx context.Context) ([]*catalog.Dataset, error)
	Delete(ctx context.Context, id core.DatasetID) error
}
