// Package models is a collection of least squares curve models. Every model can be fit on a set of
// (x, y) samples and then evaluated at arbitrary x values.
package models

// Model is the fit and evaluate capability shared by the polynomial and exponential curves
type Model interface {
	Fit(x, y []float64) error
	Predict(x []float64) ([]float64, error)
	Coef() []float64
	Equation() string
}
