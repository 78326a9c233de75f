package profiling

import (
	"context"
	"sync"

	"golang.org/x/sync/semaphore"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"biascope/domain/core"
	"biascope/domain/table"
)

// ColumnProfile holds per-column summary statistics for the dataset
// overview panel.
type ColumnProfile struct {
	Name         string  `json:"name"`
	Type         string  `json:"type"` // "numeric", "categorical" or "empty"
	SampleSize   int     `json:"sample_size"`
	MissingCount int     `json:"missing_count"`
	MissingRate  float64 `json:"missing_rate"`
	Cardinality  int     `json:"cardinality"`

	// Populated for numeric columns only
	Mean     float64 `json:"mean,omitempty"`
	Variance float64 `json:"variance,omitempty"`
	Min      float64 `json:"min,omitempty"`
	Max      float64 `json:"max,omitempty"`
}

// Profiler computes column profiles with bounded concurrency
type Profiler struct {
	sem *semaphore.Weighted
}

// NewProfiler creates a profiler allowing the given number of concurrent
// column computations.
func NewProfiler(maxConcurrent int64) *Profiler {
	if maxConcurrent < 1 {
		maxConcurrent = 1
	}
	return &Profiler{sem: semaphore.NewWeighted(maxConcurrent)}
}

// ProfileTable profiles every column of the table. Column order in the
// result matches the table's header order.
func (p *Profiler) ProfileTable(ctx context.Context, tbl *table.Table) ([]ColumnProfile, error) {
	if tbl == nil || tbl.RowCount() == 0 {
		return nil, core.ErrEmptyDataset
	}

	profiles := make([]ColumnProfile, len(tbl.Headers))
	var wg sync.WaitGroup
	errCh := make(chan error, len(tbl.Headers))

	for i, name := range tbl.Headers {
		if err := p.sem.Acquire(ctx, 1); err != nil {
			return nil, err
		}
		wg.Add(1)
		go func(idx int, column string) {
			defer wg.Done()
			defer p.sem.Release(1)
			profile, err := p.profileColumn(tbl, column)
			if err != nil {
				errCh <- err
				return
			}
			profiles[idx] = profile
		}(i, name)
	}

	wg.Wait()
	close(errCh)
	if err := <-errCh; err != nil {
		return nil, err
	}
	return profiles, nil
}

func (p *Profiler) profileColumn(tbl *table.Table, name string) (ColumnProfile, error) {
	values, err := tbl.Column(name)
	if err != nil {
		return ColumnProfile{}, err
	}

	profile := ColumnProfile{Name: name, SampleSize: len(values)}
	distinct := make(map[string]struct{})
	var numerics []float64
	categorical := false

	for _, v := range values {
		if v.IsMissing {
			profile.MissingCount++
			continue
		}
		distinct[v.Label()] = struct{}{}
		if n, ok := v.Float(); ok {
			numerics = append(numerics, n)
		} else {
			categorical = true
		}
	}

	profile.Cardinality = len(distinct)
	profile.MissingRate = float64(profile.MissingCount) / float64(len(values))

	switch {
	case profile.Cardinality == 0:
		profile.Type = "empty"
	case categorical:
		profile.Type = "categorical"
	default:
		profile.Type = "numeric"
		profile.Mean = stat.Mean(numerics, nil)
		if len(numerics) > 1 {
			profile.Variance = stat.Variance(numerics, nil)
		}
		profile.Min = floats.Min(numerics)
		profile.Max = floats.Max(numerics)
	}
	return profile, nil
}
