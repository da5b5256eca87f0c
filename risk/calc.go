package risk

import (
	"fmt"
	"math"
)

// Progress returns done/target clamped to [0, 1]. The target must be
// strictly positive.
func Progress(done, target float64) (float64, error) {
	if !(target > 0) {
		return 0, fmt.Errorf("%w: target must be positive, got %g", ErrConfig, target)
	}
	return math.Max(0, math.Min(done/target, 1)), nil
}

// Severity is a display hint for a progress ratio.
type Severity string

const (
	Low    Severity = "LOW"
	Medium Severity = "MEDIUM"
	High   Severity = "HIGH"
)

// Classify maps a ratio to LOW (< 0.5), MEDIUM ([0.5, 0.8)) or HIGH (>= 0.8).
func Classify(ratio float64) Severity {
	switch {
	case ratio >= 0.8:
		return High
	case ratio >= 0.5:
		return Medium
	default:
		return Low
	}
}
