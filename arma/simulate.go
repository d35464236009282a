package arma

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/arimalab/go-arimasim/timeseries"
)

var ErrNegativeSigma = errors.New("negative noise standard deviation")

// Simulate draws a series of length n from the ARIMA process
//
//	z_t = sum(phi_i*z_{t-i}) + a_t + sum(theta_j*a_{t-j}) + mu
//
// with a_t ~ N(0, sigma) i.i.d. innovations from rng. The ARMA path is
// generated recursively with truncated lag windows near the start, the
// first max(p,q)+burn values are discarded to wash out the zero initial
// conditions, and the retained tail is integrated d times to introduce
// unit roots. Each integration lengthens the series by one, so n-d ARMA
// points are simulated and the returned series always has exactly n
// elements. The caller is responsible for phi and theta being admissible.
func Simulate(rng *rand.Rand, phi, theta []float64, d int, mu, sigma float64, n, burn int) (timeseries.Series, error) {
	if d < 0 || burn < 0 {
		return nil, timeseries.ErrNegativeOrder
	}
	if sigma < 0 {
		return nil, ErrNegativeSigma
	}
	if n <= d {
		return nil, fmt.Errorf("length %d with %d unit roots, %w", n, d, timeseries.ErrSeriesTooShort)
	}

	p := len(phi)
	q := len(theta)
	lag := max(p, q)
	total := (n - d) + lag + burn

	a := make([]float64, total)
	for i := range a {
		a[i] = rng.NormFloat64() * sigma
	}

	z := make([]float64, total)
	for t := 0; t < total; t++ {
		v := mu + a[t]
		for i := 1; i <= p && t-i >= 0; i++ {
			v += phi[i-1] * z[t-i]
		}
		for j := 1; j <= q && t-j >= 0; j++ {
			v += theta[j-1] * a[t-j]
		}
		z[t] = v
	}

	return timeseries.Series(z[lag+burn:]).Integrate(d), nil
}
