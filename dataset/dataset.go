// Package dataset holds paired (x, y) samples used to fit curves
package dataset

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/floats"
)

var (
	ErrNoSamples          = errors.New("no samples")
	ErrDatasetLenMismatch = errors.New("x has a different length than y")
	ErrInvalidSpan        = errors.New("span needs at least one point")
)

// Dataset represents paired samples where X[i] is always observed with Y[i].
// Both must be of the same length.
type Dataset struct {
	X []float64 `json:"x"`
	Y []float64 `json:"y"`
}

// New returns a Dataset holding copies of the x and y slices so later changes by the caller
// are not seen by a fit.
func New(x, y []float64) (*Dataset, error) {
	if len(x) != len(y) {
		return nil, fmt.Errorf(
			"x has length of %d, but y has a length of %d, %w",
			len(x), len(y), ErrDatasetLenMismatch,
		)
	}
	if len(y) == 0 {
		return nil, ErrNoSamples
	}

	xSeries := make([]float64, len(x))
	ySeries := make([]float64, len(y))
	copy(xSeries, x)
	copy(ySeries, y)
	return &Dataset{
		X: xSeries,
		Y: ySeries,
	}, nil
}

// Len returns the number of samples
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.X)
}

// Copy returns a deep copy of the dataset
func (d *Dataset) Copy() *Dataset {
	xSeries := make([]float64, len(d.X))
	ySeries := make([]float64, len(d.Y))
	copy(xSeries, d.X)
	copy(ySeries, d.Y)
	return &Dataset{
		X: xSeries,
		Y: ySeries,
	}
}

// Range returns the smallest and largest x
func (d *Dataset) Range() (float64, float64) {
	if d.Len() == 0 {
		return 0, 0
	}
	return floats.Min(d.X), floats.Max(d.X)
}

// Span returns n evenly spaced x values from the smallest to the largest sample x inclusive.
// A single point span sits at the smallest x.
func (d *Dataset) Span(n int) ([]float64, error) {
	if d.Len() == 0 {
		return nil, ErrNoSamples
	}
	lo, hi := d.Range()
	return Span(lo, hi, n)
}

// Span returns n evenly spaced values from lo to hi inclusive
func Span(lo, hi float64, n int) ([]float64, error) {
	if n < 1 {
		return nil, fmt.Errorf("got %d points, %w", n, ErrInvalidSpan)
	}
	if n == 1 {
		return []float64{lo}, nil
	}
	return floats.Span(make([]float64, n), lo, hi), nil
}
