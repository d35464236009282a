// Package arma provides the ARMA coefficient constraint check, admissible
// coefficient sampling, and the stochastic ARMA/ARIMA simulator.
package arma

import (
	"errors"
	"math"
	"math/rand/v2"
)

// MaxOrder is the largest AR or MA order supported by the exact
// admissibility test. Option validation rejects anything larger.
const MaxOrder = 2

// DefaultMaxDraw bounds rejection sampling for admissible coefficients.
const DefaultMaxDraw = 1000

var (
	ErrOrderTooLarge    = errors.New("model order exceeds supported maximum")
	ErrNegativeModelOrd = errors.New("negative model order")
	ErrNoAdmissibleDraw = errors.New("no admissible candidate found within the draw limit")
)

// Coefficients holds the AR and MA coefficients of one ARMA model,
// indexed from lag 1 upward.
type Coefficients struct {
	AR []float64 `json:"ar"`
	MA []float64 `json:"ma"`
}

// Admissible reports whether all roots of 1 - c1*z - c2*z^2 = 0 lie
// strictly outside the unit circle, which is the stationarity condition
// for AR coefficients and the invertibility condition for MA
// coefficients. The closed form covers orders up to two; c2 is taken as
// zero for a single coefficient and an empty vector is vacuously
// admissible. Longer vectors are outside the supported range and report
// false.
func Admissible(coef []float64) bool {
	var c1, c2 float64
	switch len(coef) {
	case 0:
		return true
	case 1:
		c1 = coef[0]
	case 2:
		c1, c2 = coef[0], coef[1]
	default:
		return false
	}
	return c2+c1 < 1 && c2-c1 < 1 && math.Abs(c2) < 1
}

// DrawAdmissible samples a coefficient vector uniformly from [-1,1]^order,
// rejecting draws until the admissibility condition holds. Sampling is
// capped at maxDraw attempts and fails with ErrNoAdmissibleDraw on
// exhaustion. A zero order yields a nil vector without consuming the
// random stream.
func DrawAdmissible(rng *rand.Rand, order, maxDraw int) ([]float64, error) {
	if order < 0 {
		return nil, ErrNegativeModelOrd
	}
	if order > MaxOrder {
		return nil, ErrOrderTooLarge
	}
	if order == 0 {
		return nil, nil
	}

	coef := make([]float64, order)
	for attempt := 0; attempt < maxDraw; attempt++ {
		for i := range coef {
			coef[i] = rng.Float64()*2.0 - 1.0
		}
		if Admissible(coef) {
			return coef, nil
		}
	}
	return nil, ErrNoAdmissibleDraw
}
