package orderbook

import "github.com/gammazero/deque"

// PriceLevel is the FIFO queue of resting orders sharing one price, plus
// the aggregate residual quantity of everything in the queue. The queue
// is backed by a ring buffer with geometric growth (gammazero/deque), so
// push_back/front/pop_front are amortized O(1) and growth preserves
// arrival order.
type PriceLevel struct {
	Price         int64
	orders        deque.Deque[*Order]
	TotalQuantity uint64
}

func newPriceLevel(price int64, initialCapacity int) *PriceLevel {
	lvl := &PriceLevel{Price: price}
	if initialCapacity > 0 {
		lvl.orders.SetMinCapacity(minCapacityExp(initialCapacity))
	}
	return lvl
}

// minCapacityExp returns the smallest exponent n such that 1<<n >= capacity,
// the form deque.SetMinCapacity expects.
func minCapacityExp(capacity int) uint {
	var n uint
	for (1 << n) < capacity {
		n++
	}
	return n
}

// pushBack appends order at the tail, preserving arrival order, and
// folds its residual quantity into TotalQuantity.
func (l *PriceLevel) pushBack(order *Order) {
	l.orders.PushBack(order)
	l.TotalQuantity += order.Quantity
}

// front inspects the head order without removing it. Undefined on an
// empty level.
func (l *PriceLevel) front() *Order {
	return l.orders.Front()
}

// popFront removes the head order. The caller is responsible for
// updating TotalQuantity to reflect the removed quantity.
func (l *PriceLevel) popFront() {
	l.orders.PopFront()
}

func (l *PriceLevel) empty() bool {
	return l.orders.Len() == 0
}

func (l *PriceLevel) size() int {
	return l.orders.Len()
}
