package stats

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/arimalab/go-arimasim/arma"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestSACF(t *testing.T) {
	// series {1,2,3,4}: population variance 1.25, autocovariances
	// 0.3125, -0.375, -0.5625 at lags 1..3
	x := mat.NewDense(4, 1, []float64{1, 2, 3, 4})

	res, err := SACF(x, 3)
	require.Nil(t, err)

	k, m := res.Dims()
	require.Equal(t, 3, k)
	require.Equal(t, 1, m)
	assert.InDelta(t, 0.25, res.At(0, 0), 1e-12)
	assert.InDelta(t, -0.3, res.At(1, 0), 1e-12)
	assert.InDelta(t, -0.45, res.At(2, 0), 1e-12)
}

func TestSACFErrors(t *testing.T) {
	testData := map[string]struct {
		x   *mat.Dense
		k   int
		err error
	}{
		"zero lag count": {
			mat.NewDense(4, 1, []float64{1, 2, 3, 4}),
			0,
			ErrNonPositiveLag,
		},
		"constant column": {
			mat.NewDense(4, 1, []float64{2, 2, 2, 2}),
			2,
			ErrConstantSeries,
		},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			_, err := SACF(td.x, td.k)
			assert.ErrorIs(t, err, td.err)
		})
	}
}

// out-of-range lags are allowed but carry no signal
func TestSACFLagBeyondLength(t *testing.T) {
	x := mat.NewDense(3, 1, []float64{1, 2, 4})

	res, err := SACF(x, 5)
	require.Nil(t, err)

	k, _ := res.Dims()
	require.Equal(t, 5, k)
	assert.Zero(t, res.At(3, 0))
	assert.Zero(t, res.At(4, 0))
}

// white noise autocorrelations concentrate near zero as n grows
func TestSACFWhiteNoise(t *testing.T) {
	const (
		n = 2000
		k = 20
	)
	rng := rand.New(rand.NewPCG(53, 59))
	series, err := arma.Simulate(rng, nil, nil, 0, 0.0, 1.0, n, 0)
	require.Nil(t, err)

	res, err := SACF(mat.NewDense(n, 1, series), k)
	require.Nil(t, err)

	band := 3.0 / math.Sqrt(float64(n))
	var outside int
	for lag := 0; lag < k; lag++ {
		if math.Abs(res.At(lag, 0)) > band {
			outside++
		}
	}
	assert.LessOrEqual(t, outside, 2)
}

// an AR(1) series has lag-1 autocorrelation near its coefficient
func TestSACFAR1(t *testing.T) {
	rng := rand.New(rand.NewPCG(61, 67))
	series, err := arma.Simulate(rng, []float64{0.6}, nil, 0, 0.0, 1.0, 5000, 100)
	require.Nil(t, err)

	res, err := SACF(mat.NewDense(len(series), 1, series), 2)
	require.Nil(t, err)
	assert.InDelta(t, 0.6, res.At(0, 0), 0.06)
	assert.InDelta(t, 0.36, res.At(1, 0), 0.08)
}

func TestSACFMultipleColumns(t *testing.T) {
	rng := rand.New(rand.NewPCG(71, 73))
	a, err := arma.Simulate(rng, []float64{0.5}, nil, 0, 0.0, 1.0, 500, 50)
	require.Nil(t, err)
	b, err := arma.Simulate(rng, nil, []float64{0.5}, 0, 0.0, 1.0, 500, 50)
	require.Nil(t, err)

	x := mat.NewDense(500, 2, nil)
	x.SetCol(0, a)
	x.SetCol(1, b)

	joint, err := SACF(x, 5)
	require.Nil(t, err)

	single, err := SACF(mat.NewDense(500, 1, b), 5)
	require.Nil(t, err)

	// per-column results are independent of the other columns
	for lag := 0; lag < 5; lag++ {
		assert.Equal(t, single.At(lag, 0), joint.At(lag, 1))
	}
}
