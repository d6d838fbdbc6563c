// Package mat holds the small amount of linear algebra the curve fitters need on top of gonum:
// building polynomial design matrices and solving least squares systems by QR factorization.
package mat

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// machineEpsilon is the spacing between 1.0 and the next float64
const machineEpsilon = 0x1p-52

var (
	ErrNegativeDegree  = errors.New("negative degree not allowed")
	ErrNoRows          = errors.New("no rows in input")
	ErrRowMismatch     = errors.New("row size mismatch")
	ErrUnderdetermined = errors.New("fewer rows than columns")
	ErrRankDeficient   = errors.New("matrix is rank deficient")
)

// Vandermonde builds the design matrix for a polynomial of the given degree. Row i holds
// x[i]^degree, x[i]^(degree-1), ..., 1 so that the columns line up with coefficients stored in
// descending power order.
func Vandermonde(x []float64, degree int) (*mat.Dense, error) {
	if degree < 0 {
		return nil, fmt.Errorf("got degree %d, %w", degree, ErrNegativeDegree)
	}
	if len(x) == 0 {
		return nil, ErrNoRows
	}

	m, n := len(x), degree+1
	data := make([]float64, m*n)
	for i, xi := range x {
		p := 1.0
		for j := n - 1; j >= 0; j-- {
			data[i*n+j] = p
			p *= xi
		}
	}
	return mat.NewDense(m, n, data), nil
}

// SolveLeastSquares returns the vector c minimizing ||a*c - b||^2. The columns of a are
// normalized to unit length before the QR factorization and the solution is scaled back
// afterwards, which keeps widely scaled polynomial columns from inflating the condition number.
// A rank deficient or numerically singular system returns ErrRankDeficient.
func SolveLeastSquares(a mat.Matrix, b []float64) ([]float64, error) {
	m, n := a.Dims()
	if len(b) != m {
		return nil, fmt.Errorf("matrix has %d rows and target has %d rows, %w", m, len(b), ErrRowMismatch)
	}
	if m < n {
		return nil, fmt.Errorf("matrix has %d rows and %d columns, %w", m, n, ErrUnderdetermined)
	}

	scaled := mat.DenseCopyOf(a)
	norms := make([]float64, n)
	col := make([]float64, m)
	for j := 0; j < n; j++ {
		mat.Col(col, j, scaled)
		norms[j] = floats.Norm(col, 2)
		if norms[j] == 0 {
			return nil, fmt.Errorf("column %d is all zeros, %w", j, ErrRankDeficient)
		}
		floats.Scale(1.0/norms[j], col)
		scaled.SetCol(j, col)
	}

	target := make([]float64, m)
	copy(target, b)

	qr := new(mat.QR)
	qr.Factorize(scaled)

	if rank := diagonalRank(qr, m, n); rank < n {
		return nil, fmt.Errorf("rank %d with %d columns, %w", rank, n, ErrRankDeficient)
	}

	var c mat.VecDense
	if err := qr.SolveVecTo(&c, false, mat.NewVecDense(m, target)); err != nil {
		var cond mat.Condition
		if errors.As(err, &cond) {
			return nil, fmt.Errorf("%w, %w", ErrRankDeficient, err)
		}
		return nil, err
	}

	coef := make([]float64, n)
	for j := range coef {
		coef[j] = c.AtVec(j) / norms[j]
	}
	if floats.HasNaN(coef) {
		return nil, fmt.Errorf("solution contains NaN, %w", ErrRankDeficient)
	}
	return coef, nil
}

// diagonalRank counts the diagonal entries of R that are distinguishable from zero relative to the
// largest one, using the max(m, n)*eps cutoff that LAPACK style least squares drivers default to.
func diagonalRank(qr *mat.QR, m, n int) int {
	r := new(mat.Dense)
	qr.RTo(r)

	diag := make([]float64, n)
	for j := 0; j < n; j++ {
		diag[j] = math.Abs(r.At(j, j))
	}
	tol := float64(max(m, n)) * machineEpsilon * floats.Max(diag)

	var rank int
	for _, d := range diag {
		if d > tol {
			rank++
		}
	}
	return rank
}
