package models

import (
	"fmt"
	"math"
)

// FitExponential fits y = b*e^(a*x) by taking the natural log of y and fitting a straight line
// through (x, ln y). The slope becomes a and e^intercept becomes b.
//
// This is a linearized approximation: the squared residuals are minimized in log space, not on the
// original y scale, so noisy data weighs small y values more heavily than a true nonlinear least
// squares fit would.
func FitExponential(x, y []float64) (float64, float64, error) {
	if err := validateSamples(x, y); err != nil {
		return 0, 0, err
	}

	lnY := make([]float64, len(y))
	for i, v := range y {
		if v <= 0 {
			return 0, 0, fmt.Errorf("y[%d]=%g is not strictly positive, %w", i, v, ErrDomain)
		}
		lnY[i] = math.Log(v)
	}

	coef, err := FitPolynomial(x, lnY, 1)
	if err != nil {
		return 0, 0, fmt.Errorf("unable to fit log-linear exponential, %w", err)
	}
	return coef[0], math.Exp(coef[1]), nil
}

// EvaluateExponential computes b*e^(a*x) for every x. Overflow and NaN propagate following IEEE-754.
func EvaluateExponential(a, b float64, x []float64) []float64 {
	y := make([]float64, len(x))
	for i, xi := range x {
		y[i] = b * math.Exp(a*xi)
	}
	return y
}

// ExponentialRegression fits y = b*e^(a*x) through a log-linear least squares fit
type ExponentialRegression struct {
	a       float64
	b       float64
	trained bool
}

// NewExponentialRegression initializes an exponential model ready for fitting
func NewExponentialRegression() *ExponentialRegression {
	return &ExponentialRegression{}
}

// NewExponentialRegressionFromParams initializes an already trained exponential model
func NewExponentialRegressionFromParams(a, b float64) *ExponentialRegression {
	return &ExponentialRegression{
		a:       a,
		b:       b,
		trained: true,
	}
}

// Fit the model according to the given training data. Every y must be strictly positive.
func (e *ExponentialRegression) Fit(x, y []float64) error {
	a, b, err := FitExponential(x, y)
	if err != nil {
		return err
	}
	e.a = a
	e.b = b
	e.trained = true
	return nil
}

// Predict evaluates the fitted exponential at each x
func (e *ExponentialRegression) Predict(x []float64) ([]float64, error) {
	if !e.trained {
		return nil, ErrUntrainedModel
	}
	return EvaluateExponential(e.a, e.b, x), nil
}

// Params returns the rate a and scale b of y = b*e^(a*x)
func (e *ExponentialRegression) Params() (float64, float64) {
	return e.a, e.b
}

// Coef returns the parameters as [a, b], or nil if the model has not been fit
func (e *ExponentialRegression) Coef() []float64 {
	if !e.trained {
		return nil
	}
	return []float64{e.a, e.b}
}

// Equation returns a string representation of the fitted exponential, e.g. y ~ 3*e^(0.5*x)
func (e *ExponentialRegression) Equation() string {
	if !e.trained {
		return "y ~ ?"
	}
	return fmt.Sprintf("y ~ %.4g*e^(%.4g*x)", e.b, e.a)
}
