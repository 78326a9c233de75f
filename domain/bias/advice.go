package bias

import "fmt"

// Severity distinguishes warning guidance from all-clear confirmations
type Severity string

const (
	SeverityWarning Severity = "warning"
	SeverityOK      Severity = "ok"
)

// Advice is one templated corrective-action block. Body is Markdown and is
// rendered by the presentation layer.
type Advice struct {
	Kind     string   `json:"kind"`
	Severity Severity `json:"severity"`
	Title    string   `json:"title"`
	Body     string   `json:"body"`
}

// BuildAdvice produces the three corrective-action blocks keyed off the
// report's representation, label and fairness flags.
func BuildAdvice(r *Report) []Advice {
	return []Advice{
		representationAdvice(r),
		labelAdvice(r),
		fairnessAdvice(r),
	}
}

func representationAdvice(r *Report) Advice {
	if !r.RepresentationFlag {
		return Advice{
			Kind:     "representation",
			Severity: SeverityOK,
			Title:    "Representation",
			Body:     fmt.Sprintf("No major representation imbalance detected in `%s`.", r.SensitiveColumn),
		}
	}
	affected := int(r.DominantRatio * float64(r.RowCount))
	return Advice{
		Kind:     "representation",
		Severity: SeverityWarning,
		Title:    "Representation Bias Identified",
		Body: fmt.Sprintf(`- **Column:** `+"`%s`"+`
- **Dominant category:** `+"`%s`"+`
- **Approx. affected rows:** %d / %d

**Corrective Actions:**

1. Collect additional samples for minority categories.
2. Apply random undersampling on dominant rows.
3. Use stratified sampling during train-test split.`,
			r.SensitiveColumn, r.DominantGroup, affected, r.RowCount),
	}
}

func labelAdvice(r *Report) Advice {
	if !r.LabelFlag {
		return Advice{
			Kind:     "label",
			Severity: SeverityOK,
			Title:    "Label Distribution",
			Body:     fmt.Sprintf("Target distribution in `%s` is consistent.", r.TargetColumn),
		}
	}
	return Advice{
		Kind:     "label",
		Severity: SeverityWarning,
		Title:    "Label Bias Detected",
		Body: fmt.Sprintf(`- **Target column:** `+"`%s`"+`
- **Issue:** Outcome disparity across `+"`%s`"+` groups.

**Corrective Actions:**

1. Review labeling criteria.
2. Normalize decision rules.
3. Re-label affected samples.`,
			r.TargetColumn, r.SensitiveColumn),
	}
}

func fairnessAdvice(r *Report) Advice {
	if !r.FairnessFlag {
		return Advice{
			Kind:     "fairness",
			Severity: SeverityOK,
			Title:    "Fairness Metrics",
			Body:     "Fairness metrics are within acceptable limits.",
		}
	}
	return Advice{
		Kind:     "fairness",
		Severity: SeverityWarning,
		Title:    "Fairness Risk Observed",
		Body: fmt.Sprintf(`- **SPD:** `+"`%.2f`"+`
- **DI:** `+"`%.2f`"+`

**Corrective Actions:**

1. Avoid using `+"`%s`"+` as model input.
2. Balance dataset before training.
3. Validate fairness post-training.`,
			r.StatisticalParityDifference, r.DisparateImpactRatio, r.SensitiveColumn),
	}
}
