// Package scoring holds the pure score functions: per-analyte sub-scores,
// the liver fibrosis formulas and the composite indices. Every function is
// total. A nil result means absent: a required input was missing or outside
// the formula's domain.
package scoring

import "math"

// Weighted is one (score, weight) pair of a composite.
type Weighted struct {
	Score  *float64
	Weight float64
}

// W builds a Weighted pair.
func W(score *float64, weight float64) Weighted {
	return Weighted{Score: score, Weight: weight}
}

// WeightedAverage averages the pairs whose score is present and whose weight
// is positive. Missing pairs shrink the denominator instead of pulling the
// average toward zero. It returns nil when no pair remains.
func WeightedAverage(parts ...Weighted) *float64 {
	var sum, weights float64
	for _, p := range parts {
		if p.Score == nil || !(p.Weight > 0) || !finite(*p.Score) {
			continue
		}
		sum += *p.Score * p.Weight
		weights += p.Weight
	}
	if weights <= 0 {
		return nil
	}
	return num(sum / weights)
}

// Clamp limits x to [lo, hi].
func Clamp(x, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, x))
}

func clamp100(x float64) float64 {
	return Clamp(x, 0, 100)
}

func num(v float64) *float64 {
	return &v
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// present reports whether every value is non-nil and finite.
func present(vs ...*float64) bool {
	for _, v := range vs {
		if v == nil || !finite(*v) {
			return false
		}
	}
	return true
}

// positive reports whether every value is present and strictly positive.
func positive(vs ...*float64) bool {
	for _, v := range vs {
		if v == nil || !finite(*v) || *v <= 0 {
			return false
		}
	}
	return true
}
