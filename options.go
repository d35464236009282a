package arimasim

import (
	"errors"

	"github.com/arimalab/go-arimasim/cls"
	"github.com/arimalab/go-arimasim/mixture"
)

const DefaultLags = 10

var ErrNonPositiveLags = errors.New("lag count must be positive")

// Options configures a model identification session: how the training
// mixture is generated, how coefficients are estimated, how many
// autocorrelation lags feed the feature matrix, and the seed pair of the
// session random stream.
type Options struct {
	Mixture    *mixture.Options `json:"mixture"`
	Estimation *cls.Options     `json:"estimation"`

	// Lags is the number of sample ACF/PACF lags per feature block.
	Lags int `json:"lags"`

	// Seed1 and Seed2 seed the session PCG stream. Reusing a seed pair
	// reproduces the full generation and estimation sequence.
	Seed1 uint64 `json:"seed1"`
	Seed2 uint64 `json:"seed2"`
}

// NewDefaultOptions returns a default set of session options.
func NewDefaultOptions() *Options {
	return &Options{
		Mixture:    mixture.NewDefaultOptions(),
		Estimation: cls.NewDefaultOptions(),
		Lags:       DefaultLags,
	}
}

// Validate runs basic validation, filling defaults for unset values.
func (o *Options) Validate() (*Options, error) {
	if o == nil {
		return NewDefaultOptions(), nil
	}

	var err error
	if o.Mixture, err = o.Mixture.Validate(); err != nil {
		return nil, err
	}
	if o.Estimation, err = o.Estimation.Validate(); err != nil {
		return nil, err
	}
	if o.Lags < 0 {
		return nil, ErrNonPositiveLags
	}
	if o.Lags == 0 {
		o.Lags = DefaultLags
	}
	return o, nil
}
