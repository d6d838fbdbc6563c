// Package stats computes goodness of fit scores between observed and predicted values
package stats

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

var (
	ErrLengthMismatch = errors.New("predicted and observed have different lengths")
	ErrEmptySeries    = errors.New("no values to score")
)

// Scores tracks the fit scores
type Scores struct {
	SSE  float64 `json:"sum_squared_error"`
	MSE  float64 `json:"mean_squared_error"`
	RMSE float64 `json:"root_mean_squared_error"`
	R2   float64 `json:"r_squared"`
}

// NewScores calculates the fit scores given the observed and predicted input slice values
func NewScores(observed, predicted []float64) (*Scores, error) {
	sse, err := SquaredError(observed, predicted)
	if err != nil {
		return nil, fmt.Errorf("unable to compute sum of squared error, %w", err)
	}
	rs, err := RSquared(observed, predicted)
	if err != nil {
		return nil, fmt.Errorf("unable to compute r-squared, %w", err)
	}

	mse := sse / float64(len(observed))
	return &Scores{
		SSE:  sse,
		MSE:  mse,
		RMSE: math.Sqrt(mse),
		R2:   rs,
	}, nil
}

func checkLengths(observed, predicted []float64) error {
	if len(predicted) != len(observed) {
		return fmt.Errorf("expected %d, but got %d, %w", len(observed), len(predicted), ErrLengthMismatch)
	}
	if len(observed) == 0 {
		return ErrEmptySeries
	}
	return nil
}

// SquaredError computes the sum of squared residuals, sum((yhat-y)^2). A score of 0 means an
// exact fit. NaN or Inf predictions are not skipped and propagate into the result.
func SquaredError(observed, predicted []float64) (float64, error) {
	if err := checkLengths(observed, predicted); err != nil {
		return 0, err
	}

	return sumSquaredDiff(predicted, observed), nil
}

// MSE computes the mean squared error, the sum of squared residuals divided by the sample count
func MSE(observed, predicted []float64) (float64, error) {
	sse, err := SquaredError(observed, predicted)
	if err != nil {
		return 0, err
	}
	return sse / float64(len(observed)), nil
}

// constantFitTol is the largest residual, relative to the constant observed value, still counted
// as an exact fit of a constant series
const constantFitTol = 1e-9

// RSquared computes the coefficient of determination where 1.0 means perfect fit. A constant
// observed series has no variance to explain, so it scores 1.0 when matched to within rounding
// and 0.0 otherwise.
func RSquared(observed, predicted []float64) (float64, error) {
	if err := checkLengths(observed, predicted); err != nil {
		return 0, err
	}

	if floats.Min(observed) == floats.Max(observed) {
		sse := sumSquaredDiff(predicted, observed)
		scale := constantFitTol * math.Max(math.Abs(observed[0]), 1)
		if sse <= float64(len(observed))*scale*scale {
			return 1.0, nil
		}
		return 0.0, nil
	}
	return stat.RSquaredFrom(predicted, observed, nil), nil
}

// Residuals returns observed minus predicted for every sample
func Residuals(observed, predicted []float64) ([]float64, error) {
	if len(predicted) != len(observed) {
		return nil, fmt.Errorf("expected %d, but got %d, %w", len(observed), len(predicted), ErrLengthMismatch)
	}
	res := make([]float64, len(observed))
	for i := range observed {
		res[i] = observed[i] - predicted[i]
	}
	return res, nil
}
