// Package cls estimates ARMA coefficients for a presumed model order by
// randomized conditional least squares: a uniform exploration phase over
// the admissible region followed by an exponentially decaying normal
// perturbation search around the incumbent best.
package cls

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/arimalab/go-arimasim/arma"
	"github.com/arimalab/go-arimasim/timeseries"
	"gonum.org/v1/gonum/floats"
)

const (
	DefaultPrecision  = 1000
	DefaultNarrow     = 0.5
	DefaultSD         = 0.3
	DefaultDecayRate  = 0.1
	DefaultDecaySteps = 100
)

var (
	ErrNegativePrecision  = errors.New("negative precision")
	ErrInvalidNarrow      = errors.New("narrow must be within [0, 1]")
	ErrNonPositiveSD      = errors.New("refinement standard deviation must be positive")
	ErrInvalidDecayRate   = errors.New("decay rate must be within (0, 1]")
	ErrNonPositiveDecay   = errors.New("decay steps must be positive")
	ErrNegativeModelOrder = errors.New("negative model order")
)

// Options configures the randomized search.
type Options struct {
	// Precision is the total number of candidate evaluations.
	Precision int `json:"precision"`

	// Narrow is the fraction of Precision spent in the refinement phase.
	Narrow float64 `json:"narrow"`

	// SD is the initial standard deviation of the refinement perturbation,
	// decayed by DecayRate^(step/DecaySteps) as refinement progresses.
	SD         float64 `json:"sd"`
	DecayRate  float64 `json:"decay_rate"`
	DecaySteps int     `json:"decay_steps"`

	// MaxDraw caps rejection sampling per candidate draw.
	MaxDraw int `json:"max_draw"`
}

// NewDefaultOptions returns a default set of estimator options.
func NewDefaultOptions() *Options {
	return &Options{
		Precision:  DefaultPrecision,
		Narrow:     DefaultNarrow,
		SD:         DefaultSD,
		DecayRate:  DefaultDecayRate,
		DecaySteps: DefaultDecaySteps,
		MaxDraw:    arma.DefaultMaxDraw,
	}
}

// Validate runs basic validation on estimator options, filling defaults
// for unset values.
func (o *Options) Validate() (*Options, error) {
	if o == nil {
		return NewDefaultOptions(), nil
	}

	if o.Precision < 0 {
		return nil, ErrNegativePrecision
	}
	if o.Precision == 0 {
		o.Precision = DefaultPrecision
	}
	if o.Narrow < 0 || o.Narrow > 1 {
		return nil, ErrInvalidNarrow
	}
	if o.Narrow == 0 {
		o.Narrow = DefaultNarrow
	}
	if o.SD < 0 {
		return nil, ErrNonPositiveSD
	}
	if o.SD == 0 {
		o.SD = DefaultSD
	}
	if o.DecayRate < 0 || o.DecayRate > 1 {
		return nil, ErrInvalidDecayRate
	}
	if o.DecayRate == 0 {
		o.DecayRate = DefaultDecayRate
	}
	if o.DecaySteps < 0 {
		return nil, ErrNonPositiveDecay
	}
	if o.DecaySteps == 0 {
		o.DecaySteps = DefaultDecaySteps
	}
	if o.MaxDraw <= 0 {
		o.MaxDraw = arma.DefaultMaxDraw
	}
	return o, nil
}

// Result holds estimated coefficients in natural lag order along with the
// conditional sum of squared residuals achieved. AR and MA are nil when
// the corresponding order is zero.
type Result struct {
	AR []float64 `json:"ar"`
	MA []float64 `json:"ma"`
	SS float64   `json:"ss"`
}

// Estimator fits ARMA coefficients by conditional least squares.
type Estimator struct {
	opt *Options
}

func NewEstimator(opt *Options) (*Estimator, error) {
	opt, err := opt.Validate()
	if err != nil {
		return nil, err
	}
	return &Estimator{opt: opt}, nil
}

// Fit estimates coefficients for the presumed order triple (p, q, d) from
// one observed series. The series is differenced d times, the working
// series is left-padded with max(p,q) zeros standing in for unobserved
// pre-sample values, and Precision candidate coefficient pairs are
// evaluated. The incumbent best is replaced only on strictly lower cost,
// so ties keep the earliest candidate and the tracked cost is
// non-increasing across iterations. Returned coefficients always satisfy
// the same admissibility condition used at generation time.
func (e *Estimator) Fit(rng *rand.Rand, series timeseries.Series, p, q, d int) (*Result, error) {
	if p < 0 || q < 0 {
		return nil, ErrNegativeModelOrder
	}
	if p > arma.MaxOrder || q > arma.MaxOrder {
		return nil, arma.ErrOrderTooLarge
	}

	w, err := series.Diff(d)
	if err != nil {
		return nil, fmt.Errorf("removing %d unit roots, %w", d, err)
	}

	if p == 0 && q == 0 {
		return &Result{}, nil
	}

	n := len(w)
	pad := max(p, q)
	obs := make([]float64, pad+n)
	copy(obs[pad:], w)

	explore := e.opt.Precision - int(math.Round(e.opt.Narrow*float64(e.opt.Precision)))

	// zero vectors are admissible, so refinement has a valid center even
	// when the exploration phase is empty
	centerAR := make([]float64, p)
	centerMA := make([]float64, q)

	var best incumbent
	step := 0
	for it := 0; it < e.opt.Precision; it++ {
		var phi, theta []float64
		if it < explore {
			if phi, err = arma.DrawAdmissible(rng, p, e.opt.MaxDraw); err != nil {
				return nil, err
			}
			if theta, err = arma.DrawAdmissible(rng, q, e.opt.MaxDraw); err != nil {
				return nil, err
			}
		} else {
			scale := e.opt.SD * math.Pow(e.opt.DecayRate, float64(step)/float64(e.opt.DecaySteps))
			if phi, err = drawAbout(rng, centerAR, scale, e.opt.MaxDraw); err != nil {
				return nil, err
			}
			if theta, err = drawAbout(rng, centerMA, scale, e.opt.MaxDraw); err != nil {
				return nil, err
			}
			step++
		}

		if best.offer(phi, theta, condSumSquares(phi, theta, obs, pad, n)) {
			copy(centerAR, best.ar)
			copy(centerMA, best.ma)
		}
	}

	return &Result{
		AR: best.ar,
		MA: best.ma,
		SS: best.ss,
	}, nil
}

// incumbent tracks the best candidate seen so far with an explicit
// no-incumbent-yet state, avoiding a zero-cost sentinel that would be
// ambiguous with a legitimately perfect first draw.
type incumbent struct {
	seeded bool
	ar     []float64
	ma     []float64
	ss     float64
}

// offer records a candidate, replacing the incumbent only on strictly
// lower cost. The very first offer always seeds the incumbent. Reports
// whether the incumbent changed.
func (inc *incumbent) offer(ar, ma []float64, ss float64) bool {
	if inc.seeded && ss >= inc.ss {
		return false
	}
	inc.seeded = true
	inc.ar = ar
	inc.ma = ma
	inc.ss = ss
	return true
}

// condSumSquares evaluates one candidate: the one-step residual
//
//	res[t] = obs[t] - sum(phi*obs[t-1..t-p]) - sum(theta*res[t-1..t-q])
//
// is computed recursively over a fresh zero-padded residual buffer and
// the squared residuals are summed over the n in-sample points. The
// padded history contributes lagged terms but is excluded from the sum.
func condSumSquares(phi, theta, obs []float64, pad, n int) float64 {
	res := make([]float64, pad+n)
	for t := 0; t < n; t++ {
		i := pad + t
		v := obs[i]
		for j := 1; j <= len(phi); j++ {
			v -= phi[j-1] * obs[i-j]
		}
		for j := 1; j <= len(theta); j++ {
			v -= theta[j-1] * res[i-j]
		}
		res[i] = v
	}
	return floats.Dot(res[pad:], res[pad:])
}

// drawAbout samples a coefficient vector from independent normals
// centered on center with the given scale, rejecting non-admissible
// draws up to maxDraw attempts.
func drawAbout(rng *rand.Rand, center []float64, scale float64, maxDraw int) ([]float64, error) {
	if len(center) == 0 {
		return nil, nil
	}

	coef := make([]float64, len(center))
	for attempt := 0; attempt < maxDraw; attempt++ {
		for i := range coef {
			coef[i] = center[i] + rng.NormFloat64()*scale
		}
		if arma.Admissible(coef) {
			return coef, nil
		}
	}
	return nil, arma.ErrNoAdmissibleDraw
}
