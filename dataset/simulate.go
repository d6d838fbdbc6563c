package dataset

import (
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/floats"
)

// GenerateX returns n x values starting at start spaced by step
func GenerateX(n int, start, step float64) []float64 {
	x := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		x = append(x, start+step*float64(i))
	}
	return x
}

type Series []float64

func (s Series) Add(src Series) Series {
	floats.Add(s, src)
	return s
}

// GeneratePolynomialY evaluates the descending power coefficients at every x
func GeneratePolynomialY(x []float64, coef ...float64) Series {
	y := make([]float64, 0, len(x))
	for _, xi := range x {
		var acc float64
		for _, c := range coef {
			acc = acc*xi + c
		}
		y = append(y, acc)
	}
	return Series(y)
}

// GenerateExponentialY computes b*e^(a*x) at every x
func GenerateExponentialY(x []float64, a, b float64) Series {
	y := make([]float64, 0, len(x))
	for _, xi := range x {
		y = append(y, b*math.Exp(a*xi))
	}
	return Series(y)
}

// GenerateNoise returns normally distributed noise with the given standard deviation. The
// seed makes the series reproducible across runs.
func GenerateNoise(n int, stddev float64, seed uint64) Series {
	r := rand.New(rand.NewPCG(seed, seed))
	y := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		y = append(y, r.NormFloat64()*stddev)
	}
	return Series(y)
}
