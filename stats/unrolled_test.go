package stats

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/floats"
)

func TestSumSquaredDiff(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	for _, n := range []int{0, 1, 3, 4, 5, 8, 11, 1000} {
		a := make([]float64, n)
		b := make([]float64, n)
		for i := range a {
			a[i] = rng.NormFloat64() * 10
			b[i] = rng.NormFloat64() * 10
		}

		expected := math.Pow(floats.Distance(a, b, 2), 2)
		assert.InDelta(t, expected, sumSquaredDiff(a, b), 1e-9*math.Max(1, expected), "length %d", n)
	}
}

func BenchmarkSumSquaredDiff(b *testing.B) {
	x := make([]float64, 10000)
	y := make([]float64, 10000)
	for i := range x {
		x[i] = float64(i)
		y[i] = float64(i) + 0.5
	}

	for b.Loop() {
		sumSquaredDiff(x, y)
	}
}
