package abspl

import "fmt"

// AnomalyKind classifies a non-fatal irregularity found while parsing.
type AnomalyKind string

const (
	// AnomalyHeaderValue marks a recognised header label whose value is not numeric.
	AnomalyHeaderValue AnomalyKind = "header_value"
	// AnomalyRow marks a data row with fewer than four tokens or a non-numeric token.
	AnomalyRow AnomalyKind = "row"
	// AnomalyMissingSentinel marks an export without a dashed separator line.
	AnomalyMissingSentinel AnomalyKind = "missing_sentinel"
)

// Anomaly describes something the parser skipped. Line is 1-based; zero when
// the anomaly concerns the whole document.
type Anomaly struct {
	Kind   AnomalyKind `json:"kind"`
	Line   int         `json:"line,omitempty"`
	Detail string      `json:"detail"`
}

func (a Anomaly) String() string {
	if a.Line > 0 {
		return fmt.Sprintf("line %d: %s: %s", a.Line, a.Kind, a.Detail)
	}
	return fmt.Sprintf("%s: %s", a.Kind, a.Detail)
}
