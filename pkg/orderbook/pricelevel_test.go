package orderbook

import "testing"

func TestPriceLevelPushBackPreservesArrivalOrder(t *testing.T) {
	lvl := newPriceLevel(100, 0)

	lvl.pushBack(&Order{OrderID: 1, Quantity: 5})
	lvl.pushBack(&Order{OrderID: 2, Quantity: 7})
	lvl.pushBack(&Order{OrderID: 3, Quantity: 3})

	if lvl.TotalQuantity != 15 {
		t.Fatalf("expected total quantity 15, got %d", lvl.TotalQuantity)
	}
	if lvl.size() != 3 {
		t.Fatalf("expected 3 orders, got %d", lvl.size())
	}
	if lvl.front().OrderID != 1 {
		t.Fatalf("expected order 1 at head, got %d", lvl.front().OrderID)
	}

	lvl.popFront()
	lvl.TotalQuantity -= 5
	if lvl.front().OrderID != 2 {
		t.Fatalf("expected order 2 at head after pop, got %d", lvl.front().OrderID)
	}
	if lvl.TotalQuantity != 10 {
		t.Fatalf("expected total quantity 10 after pop, got %d", lvl.TotalQuantity)
	}
}

func TestPriceLevelEmpty(t *testing.T) {
	lvl := newPriceLevel(100, 0)
	if !lvl.empty() {
		t.Fatalf("expected new level to be empty")
	}

	lvl.pushBack(&Order{OrderID: 1, Quantity: 1})
	if lvl.empty() {
		t.Fatalf("expected non-empty level after push")
	}

	lvl.popFront()
	if !lvl.empty() {
		t.Fatalf("expected level to be empty after draining its only order")
	}
}

func TestPriceLevelGrowthPreservesOrder(t *testing.T) {
	lvl := newPriceLevel(100, 0) // force growth from a tiny starting capacity

	const n = 50
	for i := 0; i < n; i++ {
		lvl.pushBack(&Order{OrderID: int64(i), Quantity: 1})
	}

	for i := 0; i < n; i++ {
		if lvl.front().OrderID != int64(i) {
			t.Fatalf("expected order %d at head, got %d", i, lvl.front().OrderID)
		}
		lvl.popFront()
	}
	if !lvl.empty() {
		t.Fatalf("expected level to be empty after draining all orders")
	}
}

func TestMinCapacityExp(t *testing.T) {
	cases := []struct {
		capacity int
		want     uint
	}{
		{0, 0},
		{1, 0},
		{2, 1},
		{3, 2},
		{4, 2},
		{400_000, 19}, // 2^19 == 524288 >= 400000
	}
	for _, c := range cases {
		if got := minCapacityExp(c.capacity); got != c.want {
			t.Errorf("minCapacityExp(%d) = %d, want %d", c.capacity, got, c.want)
		}
	}
}
