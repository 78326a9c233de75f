package bias

// Fixed policy thresholds for flag evaluation. These are behavioral
// constants, not configuration.
const (
	DominantShareThreshold   = 0.7
	MeanSpreadThreshold      = 0.2
	ParityThreshold          = 0.1
	DisparateImpactThreshold = 0.8
)

// RiskLevel classifies overall dataset bias risk
type RiskLevel string

const (
	RiskLow      RiskLevel = "LOW"
	RiskModerate RiskLevel = "MODERATE"
	RiskHigh     RiskLevel = "HIGH"
)

// Report is the structured outcome of a single bias analysis. It is
// created fresh per analysis and carries no mutable state afterwards.
type Report struct {
	SensitiveColumn string `json:"sensitive_column"`
	TargetColumn    string `json:"target_column"`

	// TargetEncoded is true when the target column was non-numeric and
	// had to be factorized to integer codes before averaging.
	TargetEncoded bool `json:"target_encoded"`

	RowCount    int `json:"row_count"`
	ColumnCount int `json:"column_count"`

	// Groups lists the sensitive column's distinct values in first-seen
	// order; GroupProportions and GroupTargetMeans are keyed by these.
	Groups           []string           `json:"groups"`
	GroupProportions map[string]float64 `json:"group_proportions"`
	GroupTargetMeans map[string]float64 `json:"group_target_means"`

	DominantGroup string  `json:"dominant_group"`
	DominantRatio float64 `json:"dominant_ratio"`

	StatisticalParityDifference float64 `json:"statistical_parity_difference"`
	DisparateImpactRatio        float64 `json:"disparate_impact_ratio"`

	RepresentationFlag bool `json:"representation_flag"`
	LabelFlag          bool `json:"label_flag"`
	FairnessFlag       bool `json:"fairness_flag"`

	RiskLevel RiskLevel `json:"risk_level"`
}

// FlagCount returns the number of triggered bias indicators
func (r *Report) FlagCount() int {
	count := 0
	for _, flag := range []bool{r.RepresentationFlag, r.LabelFlag, r.FairnessFlag} {
		if flag {
			count++
		}
	}
	return count
}

// RiskFromFlagCount maps the number of triggered indicators onto the
// three-level scale: 0 is LOW, 1 is MODERATE, anything more is HIGH.
func RiskFromFlagCount(count int) RiskLevel {
	switch {
	case count == 0:
		return RiskLow
	case count == 1:
		return RiskModerate
	default:
		return RiskHigh
	}
}

// Headline returns the banner text for a risk level
func (l RiskLevel) Headline() string {
	switch l {
	case RiskLow:
		return "LOW RISK: Dataset is largely balanced."
	case RiskModerate:
		return "MODERATE RISK: Bias indicators detected."
	default:
		return "HIGH RISK: Dataset correction required."
	}
}
