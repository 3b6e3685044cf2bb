// Package statistics computes confidence bounds for pass rates.
package statistics

import "math"

// DefaultConfidenceLevel is used by reports when no level is given.
const DefaultConfidenceLevel = 0.95

// ConfidenceInterval bounds a proportion at a confidence level.
type ConfidenceInterval struct {
	Lower           float64 `json:"lower"`
	Upper           float64 `json:"upper"`
	Rate            float64 `json:"rate"`
	ConfidenceLevel float64 `json:"confidence_level"`
	Samples         int     `json:"samples"`
}

// PassRateCI returns the Wilson score interval for passed successes out of
// total cases. confidenceLevel should be in (0, 1), e.g. 0.95. With no
// cases the interval is [0, 1].
func PassRateCI(passed, total int, confidenceLevel float64) ConfidenceInterval {
	ci := ConfidenceInterval{Lower: 0, Upper: 1, ConfidenceLevel: confidenceLevel, Samples: total}
	if total <= 0 {
		return ci
	}
	passed = min(max(passed, 0), total)

	n := float64(total)
	p := float64(passed) / n
	z := zScore(confidenceLevel)
	z2 := z * z

	denom := 1 + z2/n
	center := (p + z2/(2*n)) / denom
	margin := z * math.Sqrt(p*(1-p)/n+z2/(4*n*n)) / denom

	ci.Rate = p
	ci.Lower = math.Max(0, center-margin)
	ci.Upper = math.Min(1, center+margin)
	return ci
}

// zScore is the two-sided standard normal quantile for level.
func zScore(level float64) float64 {
	if level <= 0 || level >= 1 {
		level = DefaultConfidenceLevel
	}
	return math.Sqrt2 * math.Erfinv(level)
}

// Width returns Upper - Lower.
func (ci ConfidenceInterval) Width() float64 {
	return ci.Upper - ci.Lower
}
