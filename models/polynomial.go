package models

import (
	"errors"
	"fmt"
	"strings"

	mat_ "github.com/aouyang1/go-curvefit/mat"
)

// FitPolynomial computes the least squares coefficients of a polynomial of the given degree through
// the (x, y) samples. Coefficients are returned in descending power order, c[0]*x^degree + ... +
// c[degree]. The system is solved by QR factorization of the Vandermonde matrix rather than through
// the normal equations.
func FitPolynomial(x, y []float64, degree int) ([]float64, error) {
	if degree < 0 {
		return nil, fmt.Errorf("got degree %d, %w", degree, ErrNegativeDegree)
	}
	if err := validateSamples(x, y); err != nil {
		return nil, err
	}
	if len(x) < degree+1 {
		return nil, fmt.Errorf("degree %d needs at least %d samples, but got %d, %w", degree, degree+1, len(x), ErrInsufficientData)
	}
	if distinct := countDistinct(x); distinct < degree+1 {
		return nil, fmt.Errorf("degree %d needs at least %d distinct x values, but got %d, %w", degree, degree+1, distinct, ErrSingularSystem)
	}

	v, err := mat_.Vandermonde(x, degree)
	if err != nil {
		return nil, err
	}

	coef, err := mat_.SolveLeastSquares(v, y)
	if err != nil {
		if errors.Is(err, mat_.ErrRankDeficient) {
			return nil, fmt.Errorf("unable to fit degree %d polynomial, %w, %w", degree, ErrSingularSystem, err)
		}
		return nil, fmt.Errorf("unable to fit degree %d polynomial, %w", degree, err)
	}
	return coef, nil
}

// EvaluatePolynomial evaluates the polynomial with descending power coefficients at every x using
// Horner's method. Overflow and NaN propagate following IEEE-754.
func EvaluatePolynomial(coef, x []float64) []float64 {
	y := make([]float64, len(x))
	if len(coef) == 0 {
		return y
	}
	for i, xi := range x {
		acc := coef[0]
		for _, c := range coef[1:] {
			acc = acc*xi + c
		}
		y[i] = acc
	}
	return y
}

// PolynomialOptions represents input options to fit a polynomial regression
type PolynomialOptions struct {
	// Degree is the highest power of x in the fitted polynomial
	Degree int `json:"degree"`
}

// Validate runs basic validation on polynomial options
func (p *PolynomialOptions) Validate() (*PolynomialOptions, error) {
	if p == nil {
		p = NewDefaultPolynomialOptions()
	}
	if p.Degree < 0 {
		return nil, fmt.Errorf("got degree %d, %w", p.Degree, ErrNegativeDegree)
	}
	return p, nil
}

// NewDefaultPolynomialOptions returns a straight line fit
func NewDefaultPolynomialOptions() *PolynomialOptions {
	return &PolynomialOptions{
		Degree: 1,
	}
}

// PolynomialRegression fits y = c[0]*x^d + ... + c[d] by least squares
type PolynomialRegression struct {
	opt  *PolynomialOptions
	coef []float64
}

// NewPolynomialRegression initializes a polynomial model ready for fitting
func NewPolynomialRegression(opt *PolynomialOptions) (*PolynomialRegression, error) {
	opt, err := opt.Validate()
	if err != nil {
		return nil, err
	}
	return &PolynomialRegression{
		opt: opt,
	}, nil
}

// NewPolynomialRegressionFromCoef initializes an already trained polynomial model from descending
// power coefficients
func NewPolynomialRegressionFromCoef(coef []float64) (*PolynomialRegression, error) {
	if len(coef) == 0 {
		return nil, fmt.Errorf("polynomial needs at least one coefficient, %w", ErrCoefLen)
	}
	c := make([]float64, len(coef))
	copy(c, coef)
	return &PolynomialRegression{
		opt:  &PolynomialOptions{Degree: len(coef) - 1},
		coef: c,
	}, nil
}

// Fit the model according to the given training data
func (p *PolynomialRegression) Fit(x, y []float64) error {
	if p.opt == nil {
		return ErrNoOptions
	}
	coef, err := FitPolynomial(x, y, p.opt.Degree)
	if err != nil {
		return err
	}
	p.coef = coef
	return nil
}

// Predict evaluates the fitted polynomial at each x
func (p *PolynomialRegression) Predict(x []float64) ([]float64, error) {
	if len(p.coef) == 0 {
		return nil, ErrUntrainedModel
	}
	return EvaluatePolynomial(p.coef, x), nil
}

// Degree returns the highest power of the polynomial
func (p *PolynomialRegression) Degree() int {
	if p.opt == nil {
		return 0
	}
	return p.opt.Degree
}

// Coef returns a copy of the trained coefficients in descending power order
func (p *PolynomialRegression) Coef() []float64 {
	c := make([]float64, len(p.coef))
	copy(c, p.coef)
	return c
}

// Equation returns a string representation of the fitted polynomial, e.g. y ~ 2*x^2 - 3*x + 1
func (p *PolynomialRegression) Equation() string {
	if len(p.coef) == 0 {
		return "y ~ ?"
	}

	var sb strings.Builder
	sb.WriteString("y ~ ")
	degree := len(p.coef) - 1
	for i, c := range p.coef {
		sb.WriteString(formatTerm(c, degree-i, i == 0))
	}
	return sb.String()
}
