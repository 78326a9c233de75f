package ports

import (
	"biascope/domain/bias"
	"biascope/domain/table"
)

// BiasAnalyzerPort turns a table plus two column selections into a bias
// report. Implementations must be stateless and must not mutate the table.
type BiasAnalyzerPort interface {
	Analyze(tbl *table.Table, sensitiveColumn, targetColumn string) (*bias.Report, error)
}
