package mixture

import (
	"errors"
)

var ErrNegativeMaxOrder = errors.New("negative maximum model order")

// ModelOrder identifies one ARIMA model shape: AR order, MA order and
// number of unit roots.
type ModelOrder struct {
	P int `json:"p"`
	Q int `json:"q"`
	D int `json:"d"`
}

// OrderIndex is an immutable bijection between every model order up to
// the configured maxima and a contiguous class index starting at zero.
// It is built once per session and shared between the mixture generator
// and anything interpreting classifier output.
type OrderIndex struct {
	orders []ModelOrder
	index  map[ModelOrder]int
}

// NewOrderIndex enumerates all (p, q, d) combinations with p <= maxP,
// q <= maxQ and d <= maxD in a fixed lexicographic order.
func NewOrderIndex(maxP, maxQ, maxD int) (*OrderIndex, error) {
	if maxP < 0 || maxQ < 0 || maxD < 0 {
		return nil, ErrNegativeMaxOrder
	}

	oi := &OrderIndex{
		orders: make([]ModelOrder, 0, (maxP+1)*(maxQ+1)*(maxD+1)),
		index:  make(map[ModelOrder]int, (maxP+1)*(maxQ+1)*(maxD+1)),
	}
	for p := 0; p <= maxP; p++ {
		for q := 0; q <= maxQ; q++ {
			for d := 0; d <= maxD; d++ {
				o := ModelOrder{P: p, Q: q, D: d}
				oi.index[o] = len(oi.orders)
				oi.orders = append(oi.orders, o)
			}
		}
	}
	return oi, nil
}

// Index returns the class index of a model order.
func (oi *OrderIndex) Index(o ModelOrder) (int, bool) {
	idx, exists := oi.index[o]
	return idx, exists
}

// Order returns the model order mapped to a class index.
func (oi *OrderIndex) Order(idx int) (ModelOrder, bool) {
	if idx < 0 || idx >= len(oi.orders) {
		return ModelOrder{}, false
	}
	return oi.orders[idx], true
}

func (oi *OrderIndex) Len() int {
	return len(oi.orders)
}

// Orders returns the full enumeration in index order.
func (oi *OrderIndex) Orders() []ModelOrder {
	orders := make([]ModelOrder, len(oi.orders))
	copy(orders, oi.orders)
	return orders
}
