package bias

import (
	"strings"
	"testing"
)

func TestRiskFromFlagCount(t *testing.T) {
	cases := []struct {
		count int
		want  RiskLevel
	}{
		{0, RiskLow},
		{1, RiskModerate},
		{2, RiskHigh},
		{3, RiskHigh},
	}
	for _, tc := range cases {
		if got := RiskFromFlagCount(tc.count); got != tc.want {
			t.Errorf("RiskFromFlagCount(%d) = %s, want %s", tc.count, got, tc.want)
		}
	}
}

func TestRiskMonotonicity(t *testing.T) {
	rank := map[RiskLevel]int{RiskLow: 0, RiskModerate: 1, RiskHigh: 2}

	// Flipping any single flag from false to true never decreases the level
	for flags := 0; flags < 8; flags++ {
		count := 0
		for bit := 0; bit < 3; bit++ {
			if flags&(1<<bit) != 0 {
				count++
			}
		}
		for bit := 0; bit < 3; bit++ {
			if flags&(1<<bit) != 0 {
				continue
			}
			before := RiskFromFlagCount(count)
			after := RiskFromFlagCount(count + 1)
			if rank[after] < rank[before] {
				t.Errorf("flipping a flag decreased risk: %s -> %s", before, after)
			}
		}
	}
}

func TestFlagCount(t *testing.T) {
	r := &Report{RepresentationFlag: true, FairnessFlag: true}
	if r.FlagCount() != 2 {
		t.Errorf("FlagCount = %d, want 2", r.FlagCount())
	}
}

func TestBuildAdvice_WarningContent(t *testing.T) {
	r := &Report{
		SensitiveColumn:             "gender",
		TargetColumn:                "hired",
		RowCount:                    100,
		DominantGroup:               "male",
		DominantRatio:               0.8,
		StatisticalParityDifference: 0.4,
		DisparateImpactRatio:        0.56,
		RepresentationFlag:          true,
		LabelFlag:                   true,
		FairnessFlag:                true,
	}

	advice := BuildAdvice(r)
	if len(advice) != 3 {
		t.Fatalf("expected 3 advice blocks, got %d", len(advice))
	}
	for _, a := range advice {
		if a.Severity != SeverityWarning {
			t.Errorf("%s advice should be a warning", a.Kind)
		}
	}

	rep := advice[0]
	if !strings.Contains(rep.Body, "80 / 100") {
		t.Errorf("representation advice should estimate affected rows, got:\n%s", rep.Body)
	}
	if !strings.Contains(rep.Body, "male") {
		t.Errorf("representation advice should name the dominant group")
	}
	if !strings.Contains(advice[2].Body, "0.40") {
		t.Errorf("fairness advice should include the SPD, got:\n%s", advice[2].Body)
	}
}

func TestBuildAdvice_AllClear(t *testing.T) {
	r := &Report{SensitiveColumn: "gender", TargetColumn: "hired"}
	for _, a := range BuildAdvice(r) {
		if a.Severity != SeverityOK {
			t.Errorf("%s advice should be all-clear when no flag is set", a.Kind)
		}
	}
}
