// Package timeseries provides the series type shared by the simulator,
// mixture generator and estimator along with the differencing and
// integration operators used to add or remove unit roots.
package timeseries

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

var (
	ErrNegativeOrder  = errors.New("negative differencing order")
	ErrSeriesTooShort = errors.New("series length must exceed differencing order")
)

// Series is an ordered sequence of observations. Consumers treat a Series
// as read-only; operators return new slices.
type Series []float64

func (s Series) Copy() Series {
	c := make(Series, len(s))
	copy(c, s)
	return c
}

func (s Series) Mean() float64 {
	return stat.Mean(s, nil)
}

// Variance returns the population variance, normalizing by the series
// length rather than length-1.
func (s Series) Variance() float64 {
	if len(s) == 0 {
		return 0.0
	}
	mu := s.Mean()
	centered := make([]float64, len(s))
	copy(centered, s)
	floats.AddConst(-mu, centered)
	return floats.Dot(centered, centered) / float64(len(s))
}

// Diff removes d unit roots by applying the first difference d times. Each
// application shortens the series by one element, so the result has
// len(s)-d points.
func (s Series) Diff(d int) (Series, error) {
	if d < 0 {
		return nil, ErrNegativeOrder
	}
	if len(s) <= d {
		return nil, fmt.Errorf("length %d with differencing order %d, %w", len(s), d, ErrSeriesTooShort)
	}

	cur := s.Copy()
	for i := 0; i < d; i++ {
		next := make(Series, len(cur)-1)
		for j := 0; j < len(next); j++ {
			next[j] = cur[j+1] - cur[j]
		}
		cur = next
	}
	return cur, nil
}

// Integrate is the left inverse of Diff. Each application prepends an
// implicit zero initial value and cumulatively sums, lengthening the
// series by one element. Integrating the result of Diff recovers the
// original series up to the constant offset fixed by the zero initial
// condition.
func (s Series) Integrate(d int) Series {
	cur := s.Copy()
	for i := 0; i < d; i++ {
		next := make(Series, len(cur)+1)
		for j, v := range cur {
			next[j+1] = next[j] + v
		}
		cur = next
	}
	return cur
}

// DiffCols applies Diff independently to every column of a matrix of
// series sharing an index axis, returning an (n-d)xm matrix.
func DiffCols(x mat.Matrix, d int) (*mat.Dense, error) {
	n, m := x.Dims()
	if d < 0 {
		return nil, ErrNegativeOrder
	}
	if n <= d {
		return nil, fmt.Errorf("%d rows with differencing order %d, %w", n, d, ErrSeriesTooShort)
	}

	out := mat.NewDense(n-d, m, nil)
	col := make([]float64, n)
	for j := 0; j < m; j++ {
		mat.Col(col, j, x)
		diffed, err := Series(col).Diff(d)
		if err != nil {
			return nil, fmt.Errorf("column %d, %w", j, err)
		}
		out.SetCol(j, diffed)
	}
	return out, nil
}
