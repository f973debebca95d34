package orderbook

import "errors"

// These are caller-misuse signals, not a public error taxonomy:
// Submit has no error return, and the matching loop itself cannot fail.
// They exist so debug-check logging has a stable message to attach to.
var (
	errZeroQuantity      = errors.New("orderbook: submitted order has zero quantity")
	errNonMonotonicStamp = errors.New("orderbook: submitted timestamp is not monotonic")
	errReentrantSubmit   = errors.New("orderbook: Submit called re-entrantly from a trade sink")
)
