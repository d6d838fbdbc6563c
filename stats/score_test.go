package stats

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSquaredError(t *testing.T) {
	testData := map[string]struct {
		observed  []float64
		predicted []float64
		expected  float64
		err       error
	}{
		"exact":           {[]float64{1, 2, 3}, []float64{1, 2, 3}, 0, nil},
		"single residual": {[]float64{1, 2, 3}, []float64{1, 2, 5}, 4, nil},
		"mixed signs":     {[]float64{0, 0, 0}, []float64{-1, 2, -3}, 14, nil},
		"length mismatch": {[]float64{1, 2, 3}, []float64{1, 2}, 0, ErrLengthMismatch},
		"empty":           {[]float64{}, []float64{}, 0, ErrEmptySeries},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			sse, err := SquaredError(td.observed, td.predicted)
			if td.err != nil {
				require.ErrorIs(t, err, td.err)
				return
			}
			require.Nil(t, err)
			assert.Equal(t, td.expected, sse)
		})
	}
}

func TestSquaredErrorPropagatesNaN(t *testing.T) {
	sse, err := SquaredError([]float64{1, 2}, []float64{1, math.NaN()})
	require.Nil(t, err)
	assert.True(t, math.IsNaN(sse))
}

func TestMSE(t *testing.T) {
	mse, err := MSE([]float64{0, 0, 0, 0}, []float64{1, -1, 1, -1})
	require.Nil(t, err)
	assert.Equal(t, 1.0, mse)

	_, err = MSE([]float64{0}, nil)
	assert.ErrorIs(t, err, ErrLengthMismatch)
}

func TestRSquared(t *testing.T) {
	testData := map[string]struct {
		observed  []float64
		predicted []float64
		expected  float64
	}{
		"perfect":        {[]float64{1, 2, 3}, []float64{1, 2, 3}, 1.0},
		"mean predictor": {[]float64{1, 2, 3}, []float64{2, 2, 2}, 0.0},
		"constant exact": {[]float64{4, 4, 4}, []float64{4, 4, 4}, 1.0},
		"constant inexact": {
			[]float64{0.3, 0.3, 0.3, 0.3},
			[]float64{0.3 + 1e-16, 0.3, 0.3 - 5e-17, 0.3 + 1e-16},
			1.0,
		},
		"constant missed": {[]float64{4, 4, 4}, []float64{3, 4, 5}, 0.0},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			r2, err := RSquared(td.observed, td.predicted)
			require.Nil(t, err)
			assert.InDelta(t, td.expected, r2, 1e-12)
		})
	}
}

func TestRSquaredConstantFitIsFinite(t *testing.T) {
	observed := []float64{7.7, 7.7, 7.7}
	for _, predicted := range [][]float64{
		{7.7, 7.7 + 1e-15, 7.7},
		{7.7, 7.7, 100},
		{math.Nextafter(7.7, 8), 7.7, 7.7},
	} {
		r2, err := RSquared(observed, predicted)
		require.Nil(t, err)
		assert.False(t, math.IsInf(r2, 0) || math.IsNaN(r2), "predicted %v", predicted)
	}
}

func TestNewScores(t *testing.T) {
	scores, err := NewScores([]float64{1, 2, 3, 4}, []float64{1, 2, 3, 6})
	require.Nil(t, err)
	assert.Equal(t, 4.0, scores.SSE)
	assert.Equal(t, 1.0, scores.MSE)
	assert.Equal(t, 1.0, scores.RMSE)
	assert.InDelta(t, 0.2, scores.R2, 1e-12)

	_, err = NewScores([]float64{1, 2, 3}, []float64{1, 2})
	assert.ErrorIs(t, err, ErrLengthMismatch)
}

func TestResiduals(t *testing.T) {
	res, err := Residuals([]float64{1, 2, 3}, []float64{0, 2, 4})
	require.Nil(t, err)
	assert.Equal(t, []float64{1, 0, -1}, res)

	_, err = Residuals([]float64{1}, []float64{})
	assert.ErrorIs(t, err, ErrLengthMismatch)
}
