// Package mixture generates labeled training sets of synthetic ARIMA
// series with uniformly random model orders and admissible coefficients.
package mixture

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/arimalab/go-arimasim/arma"
	"gonum.org/v1/gonum/mat"
)

const (
	DefaultMaxP   = 2
	DefaultMaxQ   = 2
	DefaultMaxD   = 1
	DefaultSigma  = 1.0
	DefaultLength = 500
	DefaultCount  = 1000
	DefaultBurn   = 100
)

var (
	ErrNonPositiveLength = errors.New("series length must be positive")
	ErrNonPositiveCount  = errors.New("series count must be positive")
	ErrNonPositiveSigma  = errors.New("noise standard deviation must be positive")
	ErrNegativeBurn      = errors.New("negative burn-in length")
	ErrLengthTooShort    = errors.New("series length must exceed the maximum differencing order")
)

// Options configures the random model mixture.
type Options struct {
	// MaxP, MaxQ and MaxD bound the uniformly drawn model orders. MaxP and
	// MaxQ may not exceed arma.MaxOrder.
	MaxP int `json:"max_p"`
	MaxQ int `json:"max_q"`
	MaxD int `json:"max_d"`

	// Mu and Sigma are the drift and innovation standard deviation shared
	// by every generated series.
	Mu    float64 `json:"mu"`
	Sigma float64 `json:"sigma"`

	// Length is the number of points per series and Count the number of
	// series in the mixture.
	Length int `json:"length"`
	Count  int `json:"count"`

	// Burn is the number of leading simulated values discarded per series.
	Burn int `json:"burn"`

	// MaxDraw caps coefficient rejection sampling per series.
	MaxDraw int `json:"max_draw"`
}

// NewDefaultOptions returns a default set of mixture options.
func NewDefaultOptions() *Options {
	return &Options{
		MaxP:    DefaultMaxP,
		MaxQ:    DefaultMaxQ,
		MaxD:    DefaultMaxD,
		Sigma:   DefaultSigma,
		Length:  DefaultLength,
		Count:   DefaultCount,
		Burn:    DefaultBurn,
		MaxDraw: arma.DefaultMaxDraw,
	}
}

// Validate runs basic validation on mixture options, filling defaults for
// unset values.
func (o *Options) Validate() (*Options, error) {
	if o == nil {
		return NewDefaultOptions(), nil
	}

	if o.MaxP < 0 || o.MaxQ < 0 || o.MaxD < 0 {
		return nil, ErrNegativeMaxOrder
	}
	if o.MaxP > arma.MaxOrder || o.MaxQ > arma.MaxOrder {
		return nil, arma.ErrOrderTooLarge
	}
	if o.Length <= 0 {
		return nil, ErrNonPositiveLength
	}
	if o.Length <= o.MaxD {
		return nil, ErrLengthTooShort
	}
	if o.Count <= 0 {
		return nil, ErrNonPositiveCount
	}
	if o.Sigma <= 0 {
		return nil, ErrNonPositiveSigma
	}
	if o.Burn < 0 {
		return nil, ErrNegativeBurn
	}
	if o.MaxDraw <= 0 {
		o.MaxDraw = arma.DefaultMaxDraw
	}
	return o, nil
}

// Descriptor fully describes one generated series.
type Descriptor struct {
	Order ModelOrder        `json:"order"`
	Coef  arma.Coefficients `json:"coefficients"`
	Mu    float64           `json:"mu"`
	Sigma float64           `json:"sigma"`
}

// Mixture holds a generated training set. Series stores one series per
// column. Labels holds one-hot class rows keyed by Orders. AR and MA hold
// the true coefficients zero-padded to MaxP and MaxQ columns and are nil
// when the corresponding maximum order is zero.
type Mixture struct {
	Series      *mat.Dense
	Labels      *mat.Dense
	AR          *mat.Dense
	MA          *mat.Dense
	D           []int
	Orders      *OrderIndex
	Descriptors []Descriptor
}

// Generator produces random model mixtures from a validated set of
// options and a session-scoped order index.
type Generator struct {
	opt    *Options
	orders *OrderIndex
}

func NewGenerator(opt *Options) (*Generator, error) {
	opt, err := opt.Validate()
	if err != nil {
		return nil, err
	}
	orders, err := NewOrderIndex(opt.MaxP, opt.MaxQ, opt.MaxD)
	if err != nil {
		return nil, err
	}
	return &Generator{
		opt:    opt,
		orders: orders,
	}, nil
}

// Orders returns the immutable model order to class index map shared with
// consumers of the labels.
func (g *Generator) Orders() *OrderIndex {
	return g.orders
}

// Generate draws Count independent labeled series. For each series a
// model order triple is drawn uniformly, admissible coefficients are
// rejection-sampled, and the series is simulated with the shared drift
// and noise level.
func (g *Generator) Generate(rng *rand.Rand) (*Mixture, error) {
	mx := &Mixture{
		Series:      mat.NewDense(g.opt.Length, g.opt.Count, nil),
		Labels:      mat.NewDense(g.opt.Count, g.orders.Len(), nil),
		D:           make([]int, g.opt.Count),
		Orders:      g.orders,
		Descriptors: make([]Descriptor, 0, g.opt.Count),
	}
	if g.opt.MaxP > 0 {
		mx.AR = mat.NewDense(g.opt.Count, g.opt.MaxP, nil)
	}
	if g.opt.MaxQ > 0 {
		mx.MA = mat.NewDense(g.opt.Count, g.opt.MaxQ, nil)
	}

	for i := 0; i < g.opt.Count; i++ {
		order := ModelOrder{
			P: rng.IntN(g.opt.MaxP + 1),
			Q: rng.IntN(g.opt.MaxQ + 1),
			D: rng.IntN(g.opt.MaxD + 1),
		}

		phi, err := arma.DrawAdmissible(rng, order.P, g.opt.MaxDraw)
		if err != nil {
			return nil, fmt.Errorf("ar coefficients for series %d, %w", i, err)
		}
		theta, err := arma.DrawAdmissible(rng, order.Q, g.opt.MaxDraw)
		if err != nil {
			return nil, fmt.Errorf("ma coefficients for series %d, %w", i, err)
		}

		series, err := arma.Simulate(rng, phi, theta, order.D, g.opt.Mu, g.opt.Sigma, g.opt.Length, g.opt.Burn)
		if err != nil {
			return nil, fmt.Errorf("series %d, %w", i, err)
		}
		mx.Series.SetCol(i, series)

		idx, exists := g.orders.Index(order)
		if !exists {
			// unreachable as long as the index covers the configured maxima
			return nil, fmt.Errorf("series %d with order %+v has no class index", i, order)
		}
		mx.Labels.Set(i, idx, 1.0)

		for j, c := range phi {
			mx.AR.Set(i, j, c)
		}
		for j, c := range theta {
			mx.MA.Set(i, j, c)
		}
		mx.D[i] = order.D

		mx.Descriptors = append(mx.Descriptors, Descriptor{
			Order: order,
			Coef:  arma.Coefficients{AR: phi, MA: theta},
			Mu:    g.opt.Mu,
			Sigma: g.opt.Sigma,
		})
	}
	return mx, nil
}
