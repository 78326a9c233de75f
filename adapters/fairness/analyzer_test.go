package fairness

import (
	"math"
	"reflect"
	"testing"

	"biascope/domain/bias"
	"biascope/domain/core"
	"biascope/domain/table"
)

// buildTable constructs a two-column table from parallel value slices
func buildTable(t *testing.T, sensitive []string, target []table.Value) *table.Table {
	t.Helper()
	if len(sensitive) != len(target) {
		t.Fatalf("mismatched fixture lengths: %d vs %d", len(sensitive), len(target))
	}
	tbl := table.New([]string{"group", "outcome"})
	for i := range sensitive {
		tbl.Append(table.Row{
			"group":   table.NewCategoricalValue(sensitive[i]),
			"outcome": target[i],
		})
	}
	return tbl
}

// binaryOutcomes returns n outcomes of which ones are 1 and the rest 0
func binaryOutcomes(n, ones int) []table.Value {
	out := make([]table.Value, n)
	for i := 0; i < n; i++ {
		if i < ones {
			out[i] = table.NewNumericValue(1)
		} else {
			out[i] = table.NewNumericValue(0)
		}
	}
	return out
}

func TestAnalyze_SkewedDataset(t *testing.T) {
	// 100 rows: group A 80 rows with mean 0.9, group B 20 rows with mean 0.5
	sensitive := make([]string, 0, 100)
	target := make([]table.Value, 0, 100)
	for _, v := range binaryOutcomes(80, 72) {
		sensitive = append(sensitive, "A")
		target = append(target, v)
	}
	for _, v := range binaryOutcomes(20, 10) {
		sensitive = append(sensitive, "B")
		target = append(target, v)
	}
	tbl := buildTable(t, sensitive, target)

	report, err := NewAnalyzer().Analyze(tbl, "group", "outcome")
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	if report.RowCount != 100 || report.ColumnCount != 2 {
		t.Errorf("size metrics wrong: %d rows, %d columns", report.RowCount, report.ColumnCount)
	}
	if report.TargetEncoded {
		t.Error("numeric target should not be encoded")
	}
	if report.DominantGroup != "A" {
		t.Errorf("dominant group should be A, got %s", report.DominantGroup)
	}
	if math.Abs(report.DominantRatio-0.8) > 1e-12 {
		t.Errorf("dominant ratio should be 0.8, got %f", report.DominantRatio)
	}
	if !report.RepresentationFlag {
		t.Error("representation flag should trigger at 0.8 > 0.7")
	}
	if math.Abs(report.StatisticalParityDifference-0.4) > 1e-12 {
		t.Errorf("SPD should be 0.4, got %f", report.StatisticalParityDifference)
	}
	if !report.LabelFlag {
		t.Error("label flag should trigger at spread 0.4 > 0.2")
	}
	if math.Abs(report.DisparateImpactRatio-0.5/0.9) > 1e-12 {
		t.Errorf("DI should be %f, got %f", 0.5/0.9, report.DisparateImpactRatio)
	}
	if !report.FairnessFlag {
		t.Error("fairness flag should trigger")
	}
	if report.RiskLevel != bias.RiskHigh {
		t.Errorf("risk should be HIGH, got %s", report.RiskLevel)
	}
}

func TestAnalyze_BalancedDataset(t *testing.T) {
	sensitive := make([]string, 0, 40)
	target := make([]table.Value, 0, 40)
	for i := 0; i < 40; i++ {
		group := "A"
		if i%2 == 1 {
			group = "B"
		}
		sensitive = append(sensitive, group)
		// Equal means per group: alternate 0/1 within each group
		target = append(target, table.NewNumericValue(float64((i/2)%2)))
	}
	tbl := buildTable(t, sensitive, target)

	report, err := NewAnalyzer().Analyze(tbl, "group", "outcome")
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	if report.RepresentationFlag || report.LabelFlag || report.FairnessFlag {
		t.Errorf("no flags should trigger, got rep=%v label=%v fairness=%v",
			report.RepresentationFlag, report.LabelFlag, report.FairnessFlag)
	}
	if report.RiskLevel != bias.RiskLow {
		t.Errorf("risk should be LOW, got %s", report.RiskLevel)
	}
	if report.StatisticalParityDifference != 0 {
		t.Errorf("SPD should be exactly 0, got %f", report.StatisticalParityDifference)
	}
	if report.DisparateImpactRatio != 1.0 {
		t.Errorf("DI should be exactly 1.0, got %f", report.DisparateImpactRatio)
	}
}

func TestAnalyze_CategoricalTargetEncoding(t *testing.T) {
	// "yes" appears first so it gets code 0, "no" gets code 1
	tbl := buildTable(t,
		[]string{"A", "A", "B", "B"},
		[]table.Value{
			table.NewCategoricalValue("yes"),
			table.NewCategoricalValue("no"),
			table.NewCategoricalValue("no"),
			table.NewCategoricalValue("no"),
		})

	report, err := NewAnalyzer().Analyze(tbl, "group", "outcome")
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	if !report.TargetEncoded {
		t.Error("categorical target should be encoded")
	}
	// Group A: codes 0 and 1, mean 0.5; group B: codes 1 and 1, mean 1.0
	if math.Abs(report.GroupTargetMeans["A"]-0.5) > 1e-12 {
		t.Errorf("group A mean should be 0.5 on codes, got %f", report.GroupTargetMeans["A"])
	}
	if math.Abs(report.GroupTargetMeans["B"]-1.0) > 1e-12 {
		t.Errorf("group B mean should be 1.0 on codes, got %f", report.GroupTargetMeans["B"])
	}
}

func TestAnalyze_EncodingDoesNotMutateCaller(t *testing.T) {
	tbl := buildTable(t,
		[]string{"A", "B"},
		[]table.Value{
			table.NewCategoricalValue("yes"),
			table.NewCategoricalValue("no"),
		})

	if _, err := NewAnalyzer().Analyze(tbl, "group", "outcome"); err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	for i, row := range tbl.Rows {
		if row["outcome"].Type != table.ValueTypeCategorical {
			t.Errorf("row %d: caller's target column was mutated to %s", i, row["outcome"].Type)
		}
	}
}

func TestAnalyze_InvalidInput(t *testing.T) {
	analyzer := NewAnalyzer()

	if _, err := analyzer.Analyze(table.New([]string{"group", "outcome"}), "group", "outcome"); err == nil {
		t.Error("empty dataset should fail")
	} else if !core.IsInvalidInputError(err) {
		t.Errorf("empty dataset error should be invalid input, got %v", err)
	}

	tbl := buildTable(t, []string{"A"}, binaryOutcomes(1, 1))
	if _, err := analyzer.Analyze(tbl, "missing", "outcome"); err == nil {
		t.Error("unknown sensitive column should fail")
	} else if !core.IsInvalidInputError(err) {
		t.Errorf("unknown column error should be invalid input, got %v", err)
	}
	if _, err := analyzer.Analyze(tbl, "group", "missing"); err == nil {
		t.Error("unknown target column should fail")
	}

	// Sensitive column entirely missing has zero distinct values
	blank := table.New([]string{"group", "outcome"})
	blank.Append(table.Row{"group": table.NewMissingValue(), "outcome": table.NewNumericValue(1)})
	if _, err := analyzer.Analyze(blank, "group", "outcome"); err == nil {
		t.Error("sensitive column with no distinct values should fail")
	} else if !core.IsInvalidInputError(err) {
		t.Errorf("no-groups error should be invalid input, got %v", err)
	}
}

func TestAnalyze_ZeroMeansYieldUnitDisparateImpact(t *testing.T) {
	tbl := buildTable(t, []string{"A", "A", "B", "B"}, binaryOutcomes(4, 0))

	report, err := NewAnalyzer().Analyze(tbl, "group", "outcome")
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if report.DisparateImpactRatio != 1.0 {
		t.Errorf("DI must be exactly 1.0 when the max group mean is 0, got %f", report.DisparateImpactRatio)
	}
}

func TestAnalyze_ProportionsSumToOne(t *testing.T) {
	tbl := buildTable(t,
		[]string{"A", "B", "C", "A", "B", "A", "C"},
		binaryOutcomes(7, 3))

	report, err := NewAnalyzer().Analyze(tbl, "group", "outcome")
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	sum := 0.0
	maxProportion := 0.0
	for _, p := range report.GroupProportions {
		sum += p
		if p > maxProportion {
			maxProportion = p
		}
	}
	if math.Abs(sum-1.0) > 1e-9 {
		t.Errorf("proportions should sum to 1.0, got %.12f", sum)
	}
	if report.GroupProportions[report.DominantGroup] != maxProportion {
		t.Errorf("dominant group proportion %f is not the maximum %f",
			report.GroupProportions[report.DominantGroup], maxProportion)
	}
	if report.StatisticalParityDifference < 0 {
		t.Errorf("SPD must be non-negative, got %f", report.StatisticalParityDifference)
	}
}

func TestAnalyze_Deterministic(t *testing.T) {
	tbl := buildTable(t,
		[]string{"B", "A", "B", "A", "C"},
		[]table.Value{
			table.NewCategoricalValue("no"),
			table.NewCategoricalValue("yes"),
			table.NewCategoricalValue("yes"),
			table.NewCategoricalValue("no"),
			table.NewCategoricalValue("yes"),
		})

	analyzer := NewAnalyzer()
	first, err := analyzer.Analyze(tbl, "group", "outcome")
	if err != nil {
		t.Fatalf("first Analyze failed: %v", err)
	}
	second, err := analyzer.Analyze(tbl, "group", "outcome")
	if err != nil {
		t.Fatalf("second Analyze failed: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Errorf("re-running the analysis must yield identical reports:\n%+v\nvs\n%+v", first, second)
	}
	// First-seen order is preserved for groups
	want := []string{"B", "A", "C"}
	if !reflect.DeepEqual(first.Groups, want) {
		t.Errorf("groups should follow first-seen order %v, got %v", want, first.Groups)
	}
}

func TestAnalyze_DominantTieBreaksToFirstSeen(t *testing.T) {
	tbl := buildTable(t, []string{"B", "A", "B", "A"}, binaryOutcomes(4, 2))

	report, err := NewAnalyzer().Analyze(tbl, "group", "outcome")
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if report.DominantGroup != "B" {
		t.Errorf("tie should break to first-seen group B, got %s", report.DominantGroup)
	}
}
