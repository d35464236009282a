// Package arimasim is a research testbed for time series model
// identification. It simulates labeled mixtures of ARIMA processes,
// derives the sample ACF/PACF feature matrices consumed by an external
// order classifier, and estimates coefficients for a presumed order by
// randomized conditional least squares.
package arimasim

import (
	"fmt"
	"math/rand/v2"

	"github.com/arimalab/go-arimasim/cls"
	"github.com/arimalab/go-arimasim/mixture"
	"github.com/arimalab/go-arimasim/stats"
	"github.com/arimalab/go-arimasim/timeseries"
	"gonum.org/v1/gonum/mat"
)

// Lab ties the mixture generator, statistics engine and estimator to one
// owned random stream. A Lab is not safe for concurrent use; parallel
// callers need their own Lab with a disjoint seed pair.
type Lab struct {
	opt *Options
	rng *rand.Rand
	gen *mixture.Generator
	est *cls.Estimator
}

// New creates a Lab from the provided options. If no options are provided
// a default is used.
func New(opt *Options) (*Lab, error) {
	opt, err := opt.Validate()
	if err != nil {
		return nil, err
	}

	gen, err := mixture.NewGenerator(opt.Mixture)
	if err != nil {
		return nil, fmt.Errorf("unable to initialize mixture generator, %w", err)
	}
	est, err := cls.NewEstimator(opt.Estimation)
	if err != nil {
		return nil, fmt.Errorf("unable to initialize estimator, %w", err)
	}

	return &Lab{
		opt: opt,
		rng: rand.New(rand.NewPCG(opt.Seed1, opt.Seed2)),
		gen: gen,
		est: est,
	}, nil
}

// Orders returns the session model order to class index map.
func (l *Lab) Orders() *mixture.OrderIndex {
	return l.gen.Orders()
}

// GenerateTrainingSet draws one labeled mixture from the session stream.
func (l *Lab) GenerateTrainingSet() (*mixture.Mixture, error) {
	return l.gen.Generate(l.rng)
}

// Features builds the classifier input for a matrix of series stored one
// per column: for each series the sample ACF and PACF of the raw series
// are concatenated with the sample ACF and PACF of the once-differenced
// series, giving four blocks of Lags values per row of the returned
// (m x 4*Lags) matrix.
func (l *Lab) Features(series *mat.Dense) (*mat.Dense, error) {
	k := l.opt.Lags

	acfRaw, err := stats.SACF(series, k)
	if err != nil {
		return nil, fmt.Errorf("raw series acf, %w", err)
	}
	pacfRaw, err := stats.SPACF(acfRaw)
	if err != nil {
		return nil, fmt.Errorf("raw series pacf, %w", err)
	}

	diffed, err := timeseries.DiffCols(series, 1)
	if err != nil {
		return nil, err
	}
	acfDiff, err := stats.SACF(diffed, k)
	if err != nil {
		return nil, fmt.Errorf("differenced series acf, %w", err)
	}
	pacfDiff, err := stats.SPACF(acfDiff)
	if err != nil {
		return nil, fmt.Errorf("differenced series pacf, %w", err)
	}

	_, m := series.Dims()
	out := mat.NewDense(m, 4*k, nil)
	row := make([]float64, 0, 4*k)
	block := make([]float64, k)
	for j := 0; j < m; j++ {
		row = row[:0]
		for _, blockSrc := range []*mat.Dense{acfRaw, pacfRaw, acfDiff, pacfDiff} {
			mat.Col(block, j, blockSrc)
			row = append(row, block...)
		}
		out.SetRow(j, row)
	}
	return out, nil
}

// Estimate fits coefficients for a classifier-predicted order triple
// against the corresponding raw series.
func (l *Lab) Estimate(series timeseries.Series, order mixture.ModelOrder) (*cls.Result, error) {
	return l.est.Fit(l.rng, series, order.P, order.Q, order.D)
}

// Report runs an estimation and pairs it with the ground truth descriptor
// for comparison at the reporting boundary. Truth may be nil when no
// generative descriptor exists for the series.
func (l *Lab) Report(series timeseries.Series, order mixture.ModelOrder, truth *mixture.Descriptor) (*EstimationReport, error) {
	res, err := l.Estimate(series, order)
	if err != nil {
		return nil, err
	}
	return &EstimationReport{
		Order:    order,
		Estimate: *res,
		Truth:    truth,
	}, nil
}
