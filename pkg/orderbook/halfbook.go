package orderbook

import "container/heap"

// HalfBook is an ordered map keyed by integer price for one side of the
// book, with a best-price cache kept in O(1). Bid half-books iterate
// best-first from the highest price; ask half-books from the lowest.
// At most one level exists per price.
type HalfBook struct {
	isBid        bool
	levels       map[int64]*PriceLevel
	order        *priceHeap
	bestPriceVal int64
	hasBest      bool
	levelCap     int
}

func newHalfBook(isBid bool, levelCap int) *HalfBook {
	var less func(a, b int64) bool
	if isBid {
		less = func(a, b int64) bool { return a > b } // max-heap: best bid is highest
	} else {
		less = func(a, b int64) bool { return a < b } // min-heap: best ask is lowest
	}
	hb := &HalfBook{
		isBid:    isBid,
		levels:   make(map[int64]*PriceLevel),
		order:    newPriceHeap(less),
		levelCap: levelCap,
	}
	heap.Init(hb.order)
	return hb
}

// better reports whether price a is strictly better than price b for this
// side (greater for bids, less for asks).
func (hb *HalfBook) better(a, b int64) bool {
	if hb.isBid {
		return a > b
	}
	return a < b
}

// add locates (creating if absent) the level for order.Price, appends
// order to it, and advances the best-price cache if order.Price is
// strictly better than the current cache or the cache is absent.
func (hb *HalfBook) add(order *Order) {
	lvl, ok := hb.levels[order.Price]
	if !ok {
		lvl = newPriceLevel(order.Price, hb.levelCap)
		hb.levels[order.Price] = lvl
		heap.Push(hb.order, order.Price)
	}
	lvl.pushBack(order)

	if !hb.hasBest || hb.better(order.Price, hb.bestPriceVal) {
		hb.bestPriceVal = order.Price
		hb.hasBest = true
	}
}

// removeHeadOf pops the head of the level at price and decrements its
// TotalQuantity by quantity. If the level becomes empty it is erased
// from the map; if the erased price was the cached best, the cache is
// advanced to the next non-empty level, or marked absent if none exists.
func (hb *HalfBook) removeHeadOf(price int64, quantity uint64) {
	lvl, ok := hb.levels[price]
	if !ok {
		return
	}

	lvl.popFront()
	lvl.TotalQuantity -= quantity

	if lvl.empty() {
		delete(hb.levels, price)
		if hb.hasBest && hb.bestPriceVal == price {
			hb.advanceBest()
		}
	}
}

// advanceBest finds the next-best non-empty level by lazily discarding
// stale entries from the top of the heap until it finds one still
// present (and non-empty) in the level map, or the heap empties. This is
// O(log N) amortized and never scans the whole map.
func (hb *HalfBook) advanceBest() {
	hb.hasBest = false
	for hb.order.Len() > 0 {
		price, _ := hb.order.peek()
		if lvl, ok := hb.levels[price]; ok && !lvl.empty() {
			hb.bestPriceVal = price
			hb.hasBest = true
			return
		}
		heap.Pop(hb.order)
	}
}

// best returns the head order of the best level, or nil if the
// half-book is empty. Runs in O(1) using the cache.
func (hb *HalfBook) best() *Order {
	if !hb.hasBest {
		return nil
	}
	lvl, ok := hb.levels[hb.bestPriceVal]
	if !ok || lvl.empty() {
		return nil
	}
	return lvl.front()
}

// bestPrice returns the cached best price, or ok=false if absent.
func (hb *HalfBook) bestPrice() (int64, bool) {
	return hb.bestPriceVal, hb.hasBest
}

// levelCount returns the number of non-empty price levels on this side.
func (hb *HalfBook) levelCount() int {
	return len(hb.levels)
}
