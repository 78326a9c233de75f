package memory

import (
	"context"
	"sort"
	"sync"

	"biascope/domain/catalog"
	"biascope/domain/core"
	"biascope/ports"
)

// CatalogStore is the in-memory dataset registry used when no DATABASE_URL
// is configured. Entries live for the process lifetime only.
type CatalogStore struct {
	mu       sync.RWMutex
	datasets map[core.DatasetID]*catalog.Dataset
}

// NewCatalogStore creates an empty in-memory registry
func NewCatalogStore() *CatalogStore {
	return &CatalogStore{datasets: make(map[core.DatasetID]*catalog.Dataset)}
}

var _ ports.DatasetStorePort = (*CatalogStore)(nil)

// Create registers a dataset
func (s *CatalogStore) Create(_ context.Context, ds *catalog.Dataset) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *ds
	s.datasets[ds.ID] = &copied
	return nil
}

// Update replaces a dataset's registry entry
func (s *CatalogStore) Update(_ context.Context, ds *catalog.Dataset) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.datasets[ds.ID]; !ok {
		return core.ErrDatasetNotFound
	}
	copied := *ds
	s.datasets[ds.ID] = &copied
	return nil
}

// GetByID retrieves a dataset by its ID
func (s *CatalogStore) GetByID(_ context.Context, id core.DatasetID) (*catalog.Dataset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ds, ok := s.datasets[id]
	if !ok {
		return nil, core.ErrDatasetNotFound
	}
	copied := *ds
	return &copied, nil
}

// List returns all datasets, newest first
func (s *CatalogStore) List(_ context.Context) ([]*catalog.Dataset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*catalog.Dataset, 0, len(s.datasets))
	for _, ds := range s.datasets {
		copied := *ds
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// Delete removes a dataset from the registry
func (s *CatalogStore) Delete(_ context.Context, id core.DatasetID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.datasets[id]; !ok {
		return core.ErrDatasetNotFound
	}
	delete(s.datasets, id)
	return nil
}
