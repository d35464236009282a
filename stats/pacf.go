package stats

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
)

var ErrIllConditioned = errors.New("ill-conditioned sample autocorrelation sequence")

// SPACF computes the sample partial autocorrelation from a (k x m) sample
// autocorrelation matrix as produced by SACF, returning a matrix of the
// same shape. For each column and each order i = 1..k the Yule-Walker
// system is solved against the unit-diagonal Toeplitz matrix built from
// the sample autocorrelations, and the last solution component is the
// partial autocorrelation at lag i. Each order is solved independently. A
// singular or near-singular system is reported as ErrIllConditioned.
func SPACF(acf mat.Matrix) (*mat.Dense, error) {
	k, m := acf.Dims()
	if k == 0 {
		return nil, ErrNonPositiveLag
	}

	out := mat.NewDense(k, m, nil)
	r := make([]float64, k)
	for j := 0; j < m; j++ {
		mat.Col(r, j, acf)

		for i := 1; i <= k; i++ {
			toep := mat.NewSymDense(i, nil)
			for a := 0; a < i; a++ {
				toep.SetSym(a, a, 1.0)
				for b := a + 1; b < i; b++ {
					toep.SetSym(a, b, r[b-a-1])
				}
			}

			rhs := mat.NewVecDense(i, r[:i])
			var phi mat.VecDense
			if err := phi.SolveVec(toep, rhs); err != nil {
				return nil, fmt.Errorf("order %d of column %d, %w", i, j, ErrIllConditioned)
			}
			out.Set(i-1, j, phi.AtVec(i-1))
		}
	}
	return out, nil
}
