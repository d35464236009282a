package mixture

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOrderIndex(t *testing.T) {
	testData := map[string]struct {
		maxP int
		maxQ int
		maxD int
		err  error
		len  int
	}{
		"negative":      {-1, 0, 0, ErrNegativeMaxOrder, 0},
		"single class":  {0, 0, 0, nil, 1},
		"full range":    {2, 2, 1, nil, 18},
		"no unit roots": {1, 1, 0, nil, 4},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			oi, err := NewOrderIndex(td.maxP, td.maxQ, td.maxD)
			if td.err != nil {
				require.ErrorIs(t, err, td.err)
				return
			}
			require.Nil(t, err)
			assert.Equal(t, td.len, oi.Len())
		})
	}
}

// every order maps to a unique contiguous index and back
func TestOrderIndexBijective(t *testing.T) {
	oi, err := NewOrderIndex(2, 2, 1)
	require.Nil(t, err)
	require.Equal(t, 18, oi.Len())

	seen := make(map[int]bool, oi.Len())
	for p := 0; p <= 2; p++ {
		for q := 0; q <= 2; q++ {
			for d := 0; d <= 1; d++ {
				o := ModelOrder{P: p, Q: q, D: d}
				idx, exists := oi.Index(o)
				require.True(t, exists, "order %+v", o)
				require.GreaterOrEqual(t, idx, 0)
				require.Less(t, idx, oi.Len())
				require.False(t, seen[idx], "duplicate index %d", idx)
				seen[idx] = true

				back, exists := oi.Order(idx)
				require.True(t, exists)
				assert.Equal(t, o, back)
			}
		}
	}
}

func TestOrderIndexUnknown(t *testing.T) {
	oi, err := NewOrderIndex(1, 1, 0)
	require.Nil(t, err)

	_, exists := oi.Index(ModelOrder{P: 2, Q: 0, D: 0})
	assert.False(t, exists)

	_, exists = oi.Order(-1)
	assert.False(t, exists)
	_, exists = oi.Order(oi.Len())
	assert.False(t, exists)
}

func TestOrderIndexOrdersCopy(t *testing.T) {
	oi, err := NewOrderIndex(1, 0, 0)
	require.Nil(t, err)

	orders := oi.Orders()
	require.Len(t, orders, 2)
	orders[0] = ModelOrder{P: 9, Q: 9, D: 9}

	fresh := oi.Orders()
	assert.NotEqual(t, orders[0], fresh[0])
}
