package profiling

import (
	"context"
	"math"
	"testing"

	"biascope/domain/core"
	"biascope/domain/table"
)

func fixtureTable() *table.Table {
	tbl := table.New([]string{"group", "score"})
	for i, g := range []string{"A", "B", "A", "C"} {
		row := table.Row{"group": table.NewCategoricalValue(g)}
		if i == 3 {
			row["score"] = table.NewMissingValue()
		} else {
			row["score"] = table.NewNumericValue(float64(i + 1))
		}
		tbl.Append(row)
	}
	return tbl
}

func TestProfileTable(t *testing.T) {
	profiles, err := NewProfiler(2).ProfileTable(context.Background(), fixtureTable())
	if err != nil {
		t.Fatalf("ProfileTable failed: %v", err)
	}
	if len(profiles) != 2 {
		t.Fatalf("expected 2 profiles, got %d", len(profiles))
	}

	group := profiles[0]
	if group.Name != "group" {
		t.Errorf("profile order should match header order, got %s first", group.Name)
	}
	if group.Type != "categorical" {
		t.Errorf("group column should be categorical, got %s", group.Type)
	}
	if group.Cardinality != 3 {
		t.Errorf("group cardinality should be 3, got %d", group.Cardinality)
	}

	score := profiles[1]
	if score.Type != "numeric" {
		t.Errorf("score column should be numeric, got %s", score.Type)
	}
	if score.MissingCount != 1 {
		t.Errorf("score should have 1 missing value, got %d", score.MissingCount)
	}
	if math.Abs(score.Mean-2.0) > 1e-12 {
		t.Errorf("score mean should be 2.0 over observed values, got %f", score.Mean)
	}
	if score.Min != 1 || score.Max != 3 {
		t.Errorf("score range should be [1,3], got [%f,%f]", score.Min, score.Max)
	}
	if math.Abs(score.MissingRate-0.25) > 1e-12 {
		t.Errorf("score missing rate should be 0.25, got %f", score.MissingRate)
	}
}

func TestProfileTable_EmptyTable(t *testing.T) {
	_, err := NewProfiler(2).ProfileTable(context.Background(), table.New([]string{"a"}))
	if !core.IsInvalidInputError(err) {
		t.Errorf("empty table should be invalid input, got %v", err)
	}
}

func TestProfileTable_SingleValueColumnHasZeroVariance(t *testing.T) {
	tbl := table.New([]string{"n"})
	tbl.Append(table.Row{"n": table.NewNumericValue(7)})

	profiles, err := NewProfiler(1).ProfileTable(context.Background(), tbl)
	if err != nil {
		t.Fatalf("ProfileTable failed: %v", err)
	}
	if profiles[0].Variance != 0 {
		t.Errorf("single observation should report zero variance, got %f", profiles[0].Variance)
	}
}
