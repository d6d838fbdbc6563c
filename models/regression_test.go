package models

import (
	"testing"

	"github.com/sajari/regression"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFitPolynomialMatchesMultipleRegression(t *testing.T) {
	// dataset from the quadratic fitting exercise
	x := []float64{4.0, 4.2, 4.5, 4.7, 5.1, 5.5, 5.9, 6.3, 6.8, 7.1}
	y := []float64{102.56, 130.11, 113.18, 142.05, 167.53, 195.14, 224.87, 256.73, 299.5, 326.72}

	r := new(regression.Regression)
	r.SetObserved("y")
	r.SetVar(0, "x")
	r.SetVar(1, "x^2")
	for i := range x {
		r.Train(regression.DataPoint(y[i], []float64{x[i], x[i] * x[i]}))
	}
	require.Nil(t, r.Run())
	t.Logf("Regression formula:\n%v\n", r.Formula)

	// intercept first, then the coefficient of each variable
	libCoef := r.GetCoeffs()
	expected := []float64{libCoef[2], libCoef[1], libCoef[0]}

	coef, err := FitPolynomial(x, y, 2)
	require.Nil(t, err)
	assert.InDeltaSlice(t, expected, coef, 1e-6)
}
