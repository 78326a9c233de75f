package fairness

import (
	"fmt"

	"github.com/montanaflynn/stats"

	"biascope/domain/bias"
	"biascope/domain/core"
	"biascope/domain/table"
	"biascope/ports"
)

// Analyzer computes group-fairness diagnostics for one sensitive/target
// column pair. It is stateless; repeated calls over the same inputs
// produce identical reports.
type Analyzer struct{}

// NewAnalyzer creates a new bias analyzer
func NewAnalyzer() *Analyzer {
	return &Analyzer{}
}

var _ ports.BiasAnalyzerPort = (*Analyzer)(nil)

// Analyze validates the selections, normalizes the target column on a
// working copy of the table, and derives representation, label and fairness
// statistics plus the overall risk level. The caller's table is never
// mutated. Rows with a missing value in either selected column are excluded
// from all group statistics.
func (a *Analyzer) Analyze(tbl *table.Table, sensitiveColumn, targetColumn string) (*bias.Report, error) {
	if tbl == nil || tbl.RowCount() == 0 {
		return nil, core.ErrEmptyDataset
	}
	if !tbl.HasColumn(sensitiveColumn) {
		return nil, core.NewColumnNotFoundError(sensitiveColumn)
	}
	if !tbl.HasColumn(targetColumn) {
		return nil, core.NewColumnNotFoundError(targetColumn)
	}

	work := tbl.Clone()

	numeric, err := work.IsNumericColumn(targetColumn)
	if err != nil {
		return nil, err
	}
	encoded := false
	if !numeric {
		// Stable factorization: codes follow first-seen order, so the
		// resulting means are only meaningful relative to each other.
		if _, err := work.Factorize(targetColumn); err != nil {
			return nil, err
		}
		encoded = true
	}

	groups, targetsByGroup, observed, err := a.pairColumns(work, sensitiveColumn, targetColumn)
	if err != nil {
		return nil, err
	}

	report := &bias.Report{
		SensitiveColumn:  sensitiveColumn,
		TargetColumn:     targetColumn,
		TargetEncoded:    encoded,
		RowCount:         tbl.RowCount(),
		ColumnCount:      tbl.ColumnCount(),
		Groups:           groups,
		GroupProportions: make(map[string]float64, len(groups)),
		GroupTargetMeans: make(map[string]float64, len(groups)),
	}

	// Representation: normalized group frequencies and the dominant group.
	// Strict comparison keeps the first-seen group on proportion ties.
	for _, g := range groups {
		proportion := float64(len(targetsByGroup[g])) / float64(observed)
		report.GroupProportions[g] = proportion
		if proportion > report.DominantRatio {
			report.DominantRatio = proportion
			report.DominantGroup = g
		}
	}

	// Label: per-group arithmetic means of the (possibly encoded) target
	means := make([]float64, 0, len(groups))
	for _, g := range groups {
		mean, err := stats.Mean(targetsByGroup[g])
		if err != nil {
			return nil, fmt.Errorf("group %q mean: %w", g, err)
		}
		report.GroupTargetMeans[g] = mean
		means = append(means, mean)
	}

	maxMean, err := stats.Max(means)
	if err != nil {
		return nil, fmt.Errorf("group means max: %w", err)
	}
	minMean, err := stats.Min(means)
	if err != nil {
		return nil, fmt.Errorf("group means min: %w", err)
	}

	report.StatisticalParityDifference = maxMean - minMean
	if maxMean > 0 {
		report.DisparateImpactRatio = minMean / maxMean
	} else {
		// No disparity signal available; defined as 1.0 rather than an error
		report.DisparateImpactRatio = 1.0
	}

	report.RepresentationFlag = report.DominantRatio > bias.DominantShareThreshold
	report.LabelFlag = report.StatisticalParityDifference > bias.MeanSpreadThreshold
	report.FairnessFlag = report.StatisticalParityDifference > bias.ParityThreshold ||
		report.DisparateImpactRatio < bias.DisparateImpactThreshold
	report.RiskLevel = bias.RiskFromFlagCount(report.FlagCount())

	return report, nil
}

// pairColumns walks the rows once, collecting target observations per
// sensitive group in first-seen group order.
func (a *Analyzer) pairColumns(work *table.Table, sensitiveColumn, targetColumn string) ([]string, map[string][]float64, int, error) {
	var groups []string
	targetsByGroup := make(map[string][]float64)
	observed := 0
	sensitiveSeen := false

	for _, row := range work.Rows {
		sv, ok := row[sensitiveColumn]
		if !ok || sv.IsMissing {
			continue
		}
		sensitiveSeen = true
		tv, ok := row[targetColumn]
		if !ok || tv.IsMissing {
			continue
		}
		t, ok := tv.Float()
		if !ok {
			return nil, nil, 0, fmt.Errorf("target column %q: unexpected non-numeric value after normalization", targetColumn)
		}
		label := sv.Label()
		if _, seen := targetsByGroup[label]; !seen {
			groups = append(groups, label)
		}
		targetsByGroup[label] = append(targetsByGroup[label], t)
		observed++
	}

	if !sensitiveSeen {
		return nil, nil, 0, core.ErrNoGroups
	}
	if observed == 0 {
		return nil, nil, 0, core.ErrNoObservations
	}
	return groups, targetsByGroup, observed, nil
}
