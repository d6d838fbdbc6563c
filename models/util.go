package models

import (
	"fmt"
	"math"
)

// validateSamples checks that x and y pair up one to one and hold only finite values
func validateSamples(x, y []float64) error {
	if len(x) != len(y) {
		return fmt.Errorf("x has %d samples and y has %d samples, %w", len(x), len(y), ErrLengthMismatch)
	}
	for i := 0; i < len(x); i++ {
		if !isFinite(x[i]) {
			return fmt.Errorf("x[%d]=%g, %w", i, x[i], ErrNonFiniteInput)
		}
		if !isFinite(y[i]) {
			return fmt.Errorf("y[%d]=%g, %w", i, y[i], ErrNonFiniteInput)
		}
	}
	return nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func countDistinct(x []float64) int {
	seen := make(map[float64]struct{}, len(x))
	for _, v := range x {
		seen[v] = struct{}{}
	}
	return len(seen)
}

// formatTerm renders a coefficient and its power of x for model equations
func formatTerm(c float64, power int, first bool) string {
	sign := "+"
	if c < 0 {
		sign = "-"
		c = -c
	}

	var term string
	switch power {
	case 0:
		term = fmt.Sprintf("%.4g", c)
	case 1:
		term = fmt.Sprintf("%.4g*x", c)
	default:
		term = fmt.Sprintf("%.4g*x^%d", c, power)
	}

	if first {
		if sign == "-" {
			return "-" + term
		}
		return term
	}
	return fmt.Sprintf(" %s %s", sign, term)
}
