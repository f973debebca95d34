package orderbook

import (
	"go.uber.org/zap"

	"github.com/StepanBambestikov/ExchangePriceTimePriority/pkg/logging"
)

// defaultLevelCapacity seeds the ring buffer backing a new price level.
// It is small on purpose here so tests and light workloads don't pay for
// headroom they never use; production deployments should size it from
// expected book depth via EngineConfig.
const defaultLevelCapacity = 0

// MatchingEngine owns one bid half-book, one ask half-book, a monotonic
// timestamp counter, and an optional trade sink. It implements the
// price-time priority matching state machine for LIMIT and MARKET
// orders. An engine is not safe for concurrent Submit calls; callers
// must serialize submissions.
type MatchingEngine struct {
	name string

	bids *HalfBook
	asks *HalfBook

	clock         uint64 // monotonic counter shared by order stamping and trade timestamps
	lastTimestamp int64

	sink TradeSink

	debugChecks bool
	log         *logging.Logger

	inSubmit bool // re-entrancy guard
}

// NewMatchingEngine constructs an engine with the given diagnostic name
// and default (unsized) price levels. Use NewMatchingEngineWithCapacity
// to pre-size price levels for a known book depth.
func NewMatchingEngine(name string) *MatchingEngine {
	return NewMatchingEngineWithCapacity(name, defaultLevelCapacity)
}

// NewMatchingEngineWithCapacity constructs an engine whose price levels
// pre-size their resting-order ring buffer to levelCapacity slots,
// avoiding per-order allocation in the hot path for deep books.
func NewMatchingEngineWithCapacity(name string, levelCapacity int) *MatchingEngine {
	return &MatchingEngine{
		name: name,
		bids: newHalfBook(true, levelCapacity),
		asks: newHalfBook(false, levelCapacity),
	}
}

// Name returns the engine's human-readable diagnostic identity.
func (e *MatchingEngine) Name() string {
	if e.name == "" {
		return "MatchingEngine"
	}
	return e.name
}

// SetTradeSink installs or replaces the trade sink. Replacing the sink
// between submissions is permitted; doing so mid-submission is not
// (there are no suspension points inside Submit to do so from, short of
// calling SetTradeSink from within the sink itself). The engine's
// re-entrancy guard covers Submit only; SetTradeSink is not guarded.
func (e *MatchingEngine) SetTradeSink(sink TradeSink) {
	e.sink = sink
}

// SetLogger installs a diagnostic logger. A nil logger (the default)
// disables logging entirely.
func (e *MatchingEngine) SetLogger(log *logging.Logger) {
	e.log = log
}

// SetDebugChecks toggles the caller-misuse logging: zero-quantity
// submission and non-monotonic external timestamp are logged as
// warnings, a re-entrant Submit at error level. These are log entries
// only: Submit has no error return and the matching loop cannot fail.
// A re-entrant Submit is ignored whether or not debug checks are on.
func (e *MatchingEngine) SetDebugChecks(enabled bool) {
	e.debugChecks = enabled
}

// BuyOrderCount reports the number of non-empty bid price levels, not
// the number of resting orders.
func (e *MatchingEngine) BuyOrderCount() int {
	return e.bids.levelCount()
}

// SellOrderCount reports the number of non-empty ask price levels.
func (e *MatchingEngine) SellOrderCount() int {
	return e.asks.levelCount()
}

// nextTimestamp returns the next value from the engine's monotonic
// counter, shared by order stamping and trade timestamps.
func (e *MatchingEngine) nextTimestamp() int64 {
	e.clock++
	return int64(e.clock)
}

// Submit is the engine's entry point. If order.Timestamp is zero, the
// engine assigns the next counter value; otherwise the supplied
// timestamp is preserved verbatim, even if it breaks monotonicity.
// Submit dispatches on order.Type and runs to completion without
// suspension before returning.
func (e *MatchingEngine) Submit(order *Order) {
	if e.inSubmit {
		if e.debugChecks {
			e.log.Error(errReentrantSubmit.Error(), zap.Int64("order_id", order.OrderID))
		}
		return
	}
	e.inSubmit = true
	defer func() { e.inSubmit = false }()

	if order.Quantity == 0 {
		if e.debugChecks {
			e.log.Warn(errZeroQuantity.Error(), zap.Int64("order_id", order.OrderID))
		}
		return
	}

	if order.Timestamp == 0 {
		order.Timestamp = e.nextTimestamp()
	} else if e.debugChecks && order.Timestamp <= e.lastTimestamp {
		e.log.Warn(errNonMonotonicStamp.Error(),
			zap.Int64("order_id", order.OrderID),
			zap.Int64("supplied_timestamp", order.Timestamp),
			zap.Int64("last_timestamp", e.lastTimestamp),
		)
	}
	if order.Timestamp > e.lastTimestamp {
		e.lastTimestamp = order.Timestamp
	}

	switch order.Type {
	case Market:
		e.matchMarket(order)
	default:
		e.matchLimit(order)
	}
}

// sideBooks returns (own half-book, opposite half-book) for order.Side.
func (e *MatchingEngine) sideBooks(side Side) (own, opposite *HalfBook) {
	if side == Buy {
		return e.bids, e.asks
	}
	return e.asks, e.bids
}

// matchMarket implements the market-order matching state machine:
// walk the opposite half-book, consuming resting liquidity at whatever
// price it rests at, until the incoming order is filled or the opposite
// side is exhausted. Any unfilled residual is silently dropped; market
// orders never rest.
func (e *MatchingEngine) matchMarket(order *Order) {
	_, opposite := e.sideBooks(order.Side)

	for order.Quantity > 0 {
		resting := opposite.best()
		if resting == nil {
			return // opposite half-book exhausted: residual silently dropped
		}

		qty := min(order.Quantity, resting.Quantity)
		e.emitTrade(order, resting, resting.Price, qty)

		order.Quantity -= qty
		resting.Quantity -= qty
		if resting.Quantity == 0 {
			opposite.removeHeadOf(resting.Price, qty)
		} else {
			opposite.levels[resting.Price].TotalQuantity -= qty
		}
	}
}

// matchLimit implements the limit-order matching state machine:
// walk the opposite half-book while the cross predicate holds, then rest
// any residual quantity on this order's own side at its own price.
func (e *MatchingEngine) matchLimit(order *Order) {
	own, opposite := e.sideBooks(order.Side)

	for order.Quantity > 0 {
		resting := opposite.best()
		if resting == nil {
			break
		}
		if !crosses(order, resting) {
			break
		}

		qty := min(order.Quantity, resting.Quantity)
		// Price improvement: the aggressor trades at the maker's price.
		e.emitTrade(order, resting, resting.Price, qty)

		order.Quantity -= qty
		resting.Quantity -= qty
		if resting.Quantity == 0 {
			opposite.removeHeadOf(resting.Price, qty)
		} else {
			opposite.levels[resting.Price].TotalQuantity -= qty
		}
	}

	if order.Quantity > 0 {
		own.add(order)
	}
}

// crosses reports whether incoming crosses with resting, which rests on
// the opposite side: for an incoming BUY, incoming.Price >= resting.Price;
// for an incoming SELL, resting.Price >= incoming.Price.
func crosses(incoming, resting *Order) bool {
	if incoming.Side == Buy {
		return incoming.Price >= resting.Price
	}
	return resting.Price >= incoming.Price
}

// emitTrade builds a Trade at the given price/quantity, orders the
// (buy, sell) ids consistently with which side the incoming order is on,
// stamps it from the shared monotonic counter, and delivers it to the
// sink if one is installed.
func (e *MatchingEngine) emitTrade(incoming, resting *Order, price int64, qty uint64) {
	trade := Trade{
		Price:     price,
		Quantity:  qty,
		Timestamp: e.nextTimestamp(),
	}
	if incoming.Side == Buy {
		trade.BuyOrderID = incoming.OrderID
		trade.SellOrderID = resting.OrderID
	} else {
		trade.BuyOrderID = resting.OrderID
		trade.SellOrderID = incoming.OrderID
	}

	e.log.Debug("trade",
		zap.Int64("buy_order_id", trade.BuyOrderID),
		zap.Int64("sell_order_id", trade.SellOrderID),
		zap.Int64("price", trade.Price),
		zap.Uint64("quantity", trade.Quantity),
		zap.Int64("timestamp", trade.Timestamp),
	)

	if e.sink != nil {
		e.sink.OnTrade(trade)
	}
}
