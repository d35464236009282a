// Package stats computes sample autocorrelation and partial
// autocorrelation matrices used both to validate simulator output and as
// classifier input features.
package stats

import (
	"errors"
	"fmt"
	"log/slog"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

var (
	ErrNonPositiveLag = errors.New("lag count must be positive")
	ErrConstantSeries = errors.New("series has zero variance")
)

// SACF computes the sample autocorrelation of every column of an (n x m)
// matrix of series at lags 1 through k, returning a (k x m) matrix. The
// autocovariance at each lag is the shifted inner product of the centered
// series over the valid overlap, normalized by n and by the population
// variance. A lag count of at least the series length is allowed but
// produces zero correlations at the out-of-range lags and logs a
// diagnostic warning. A zero-variance column is an error.
func SACF(x mat.Matrix, k int) (*mat.Dense, error) {
	if k <= 0 {
		return nil, ErrNonPositiveLag
	}
	n, m := x.Dims()
	if k >= n {
		slog.Warn("lag count is at least the series length", "lags", k, "length", n)
	}

	out := mat.NewDense(k, m, nil)
	centered := make([]float64, n)
	for j := 0; j < m; j++ {
		mat.Col(centered, j, x)
		floats.AddConst(-stat.Mean(centered, nil), centered)

		variance := floats.Dot(centered, centered) / float64(n)
		if variance == 0 {
			return nil, fmt.Errorf("column %d, %w", j, ErrConstantSeries)
		}

		for lag := 1; lag <= k; lag++ {
			if lag >= n {
				continue
			}
			cov := floats.Dot(centered[:n-lag], centered[lag:]) / float64(n)
			out.Set(lag-1, j, cov/variance)
		}
	}
	return out, nil
}
