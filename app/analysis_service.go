package app

import (
	"context"
	"sync"

	"biascope/domain/bias"
	"biascope/domain/catalog"
	"biascope/domain/core"
	"biascope/domain/table"
	"biascope/internal"
	"biascope/internal/errors"
	"biascope/internal/profiling"
	"biascope/ports"
)

// AnalysisResult bundles everything the presentation layer renders for one
// analysis run: the report, the corrective-action guidance derived from its
// flags, and the per-column overview profiles.
type AnalysisResult struct {
	Report   *bias.Report              `json:"report"`
	Advice   []bias.Advice             `json:"advice"`
	Profiles []profiling.ColumnProfile `json:"profiles"`
}

// AnalysisService orchestrates ingestion, registry bookkeeping and bias
// analysis. Loaded tables are cached in memory per dataset; the registry
// persists metadata only, reports are never stored.
type AnalysisService struct {
	store    ports.DatasetStorePort
	reader   ports.TableReaderPort
	analyzer ports.BiasAnalyzerPort
	profiler *profiling.Profiler
	log      *internal.Logger

	mu     sync.RWMutex
	tables map[core.DatasetID]*table.Table
}

// NewAnalysisService wires the service's collaborators
func NewAnalysisService(
	store ports.DatasetStorePort,
	reader ports.TableReaderPort,
	analyzer ports.BiasAnalyzerPort,
	profiler *profiling.Profiler,
	log *internal.Logger,
) *AnalysisService {
	if log == nil {
		log = internal.DefaultLogger
	}
	return &AnalysisService{
		store:    store,
		reader:   reader,
		analyzer: analyzer,
		profiler: profiler,
		log:      log,
		tables:   make(map[core.DatasetID]*table.Table),
	}
}

// RegisterFile ingests an uploaded data file: reads it into a table,
// registers the dataset, and caches the table for later analyses.
func (s *AnalysisService) RegisterFile(ctx context.Context, path, originalFilename string, size int64) (*catalog.Dataset, error) {
	ds := catalog.NewDataset(originalFilename)
	ds.FilePath = path
	ds.FileSize = size

	if err := s.store.Create(ctx, ds); err != nil {
		return nil, errors.Wrap(err, "failed to register dataset")
	}

	tbl, err := s.reader.ReadTable(path)
	if err != nil {
		ds.MarkFailed(err)
		if updateErr := s.store.Update(ctx, ds); updateErr != nil {
			s.log.Error("failed to record ingestion failure for %s: %v", ds.ID, updateErr)
		}
		return nil, errors.Wrap(err, "failed to read dataset file")
	}

	ds.MarkReady(tbl.RowCount(), tbl.ColumnCount(), tbl.Headers)
	if err := s.store.Update(ctx, ds); err != nil {
		return nil, errors.Wrap(err, "failed to update dataset registry")
	}

	s.mu.Lock()
	s.tables[ds.ID] = tbl
	s.mu.Unlock()

	s.log.Info("dataset %s registered: %s (%d rows, %d columns)",
		ds.ID, originalFilename, tbl.RowCount(), tbl.ColumnCount())
	return ds, nil
}

// Dataset returns a dataset's registry entry
func (s *AnalysisService) Dataset(ctx context.Context, id core.DatasetID) (*catalog.Dataset, error) {
	return s.store.GetByID(ctx, id)
}

// ListDatasets returns all registered datasets, newest first
func (s *AnalysisService) ListDatasets(ctx context.Context) ([]*catalog.Dataset, error) {
	return s.store.List(ctx)
}

// DeleteDataset removes a dataset from the registry and drops its cached table
func (s *AnalysisService) DeleteDataset(ctx context.Context, id core.DatasetID) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	s.mu.Lock()
	delete(s.tables, id)
	s.mu.Unlock()
	return nil
}

// TableFor returns the cached table for a dataset, re-reading the source
// file when the cache is cold (e.g. after a restart with a postgres registry).
func (s *AnalysisService) TableFor(ctx context.Context, id core.DatasetID) (*table.Table, error) {
	s.mu.RLock()
	tbl, ok := s.tables[id]
	s.mu.RUnlock()
	if ok {
		return tbl, nil
	}

	ds, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ds.FilePath == "" {
		return nil, core.ErrDatasetNotFound
	}
	tbl, err = s.reader.ReadTable(ds.FilePath)
	if err != nil {
		return nil, errors.Wrap(err, "failed to reload dataset file")
	}

	s.mu.Lock()
	s.tables[id] = tbl
	s.mu.Unlock()
	return tbl, nil
}

// Analyze runs the bias analysis for a registered dataset
func (s *AnalysisService) Analyze(ctx context.Context, id core.DatasetID, sensitiveColumn, targetColumn string) (*AnalysisResult, error) {
	tbl, err := s.TableFor(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.AnalyzeTable(ctx, tbl, sensitiveColumn, targetColumn)
}

// AnalyzeTable runs the bias analysis over an already-loaded table. The
// sensitive and target selections must name different columns; the core
// analyzer itself does not re-validate that.
func (s *AnalysisService) AnalyzeTable(ctx context.Context, tbl *table.Table, sensitiveColumn, targetColumn string) (*AnalysisResult, error) {
	if sensitiveColumn == targetColumn {
		return nil, core.NewValidationError("columns", "sensitive and target must differ")
	}

	report, err := s.analyzer.Analyze(tbl, sensitiveColumn, targetColumn)
	if err != nil {
		if core.IsInvalidInputError(err) {
			// Surfaced as-is so callers can prompt for a valid selection
			return nil, err
		}
		return nil, errors.Wrap(err, "analysis failed")
	}

	profiles, err := s.profiler.ProfileTable(ctx, tbl)
	if err != nil {
		return nil, errors.Wrap(err, "column profiling failed")
	}

	s.log.Info("analysis complete: sensitive=%s target=%s risk=%s",
		sensitiveColumn, targetColumn, report.RiskLevel)
	return &AnalysisResult{
		Report:   report,
		Advice:   bias.BuildAdvice(report),
		Profiles: profiles,
	}, nil
}
