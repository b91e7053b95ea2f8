package book

import "github.com/shopspring/decimal"

// MatchOutcome reports whether a Submit call produced at least one trade.
type MatchOutcome int

const (
	NotMatched MatchOutcome = iota
	Matched
)

func (m MatchOutcome) String() string {
	if m == Matched {
		return "MATCHED"
	}
	return "NOT_MATCHED"
}

// Orderbook owns the ask and bid ladders, the id->order index, and the
// append-only trade log for one trading pair. It is not safe for
// concurrent use: a single actor is expected to drive Submit/Cancel
// sequentially, so Orderbook carries no locks.
type Orderbook struct {
	pair string

	asks *Ladder
	bids *Ladder

	orders map[OrderId]*Order
	trades []*Trade

	nextTradeID TradeId
}

// NewOrderbook creates an empty book for the given (informational) pair
// identifier; it does not affect matching.
func NewOrderbook(pair string) *Orderbook {
	return &Orderbook{
		pair:   pair,
		asks:   newAskLadder(),
		bids:   newBidLadder(),
		orders: make(map[OrderId]*Order),
	}
}

// Pair returns the book's configured trading pair identifier.
func (ob *Orderbook) Pair() string { return ob.pair }

func (ob *Orderbook) ladder(side Side) *Ladder {
	if side == Ask {
		return ob.asks
	}
	return ob.bids
}

// Submit runs the matching algorithm for a newly arrived order: pre-match
// gating (post-only / FOK-AON probe), the match walk against the opposite
// ladder, and the post-match resting decision. It returns Matched if at
// least one trade occurred, and the trades produced in emission order
// (price priority, then FIFO within a price).
//
// Submit fails only for conditions detectable before any state mutation:
// a duplicate order id. Everything after that point is infallible by
// construction.
func (ob *Orderbook) Submit(order *Order) (MatchOutcome, []*Trade, error) {
	if _, exists := ob.orders[order.ID()]; exists {
		return NotMatched, nil, &DuplicateOrderError{ID: order.ID()}
	}

	opposite := ob.ladder(order.Side().Opposite())
	own := ob.ladder(order.Side())

	// Step 1: pre-match gating.
	if order.IsPostOnly() {
		if top := opposite.PeekTopOrder(); top != nil && order.Matches(top) {
			order.Cancel()
			return NotMatched, nil, nil
		}
	}

	if order.requiresFullFill() {
		if !opposite.ProbeFeasible(order) {
			order.Cancel()
			return NotMatched, nil, nil
		}
	}

	// Step 2: match walk, best level to worst, until the taker is
	// satisfied, the next level doesn't match, or the ladder is empty.
	trades := ob.matchWalk(order, opposite)

	// Step 3: post-match resting decision.
	if order.IsImmediateOrCancel() {
		if !order.IsClosed() {
			order.Cancel()
		}
	} else if order.IsBookable() && !order.IsClosed() {
		own.Insert(order)
		ob.orders[order.ID()] = order
	}

	ob.trades = append(ob.trades, trades...)

	if len(trades) > 0 {
		return Matched, trades, nil
	}
	return NotMatched, trades, nil
}

// matchWalk drains the opposite ladder against order, level by level,
// FIFO within each level, mutating both sides of every trade. It is a
// controlled drain rather than a live iterator: each level is fully
// processed (or the taker satisfied) before the ladder is touched again,
// so there is never a concurrent reader over a ladder being mutated.
func (ob *Orderbook) matchWalk(taker *Order, opposite *Ladder) []*Trade {
	var trades []*Trade

	for taker.Remaining().IsPositive() {
		level := opposite.PeekTop()
		if level == nil || !level.Matches(taker) {
			break
		}

		for level.Quantity().IsPositive() && !taker.IsClosed() {
			maker := level.Front()
			quantity := CanTrade(taker, maker)

			trade, err := newTrade(ob.nextTradeID, taker, maker, quantity)
			if err != nil {
				panic(err)
			}
			ob.nextTradeID++
			trades = append(trades, trade)

			level.qty = level.qty.Sub(quantity)

			if maker.IsClosed() {
				level.popFront()
				delete(ob.orders, maker.ID())
			}
		}

		if level.Quantity().IsZero() {
			opposite.removeLevel(level.Price())
		}
	}

	return trades
}

// Cancel removes a resting order by id, returning it. Fails with
// OrderNotFoundError if the id is not currently resting (never inserted,
// already completed, or already cancelled).
func (ob *Orderbook) Cancel(id OrderId) (*Order, error) {
	order, exists := ob.orders[id]
	if !exists {
		return nil, &OrderNotFoundError{ID: id}
	}

	ladder := ob.ladder(order.Side())
	if !ladder.Remove(order) {
		// The id index referenced an order the ladder doesn't hold: bijection broken.
		panic("book: id index referenced an order missing from its ladder")
	}

	delete(ob.orders, id)
	order.Cancel()
	return order, nil
}

// PeekTop returns the current best order on the given side, or nil.
// Non-mutating.
func (ob *Orderbook) PeekTop(side Side) *Order {
	return ob.ladder(side).PeekTopOrder()
}

// OrdersResting is the number of orders currently resting in the book.
func (ob *Orderbook) OrdersResting() int { return len(ob.orders) }

// TradesRecorded is the number of trades in the append-only trade log.
func (ob *Orderbook) TradesRecorded() int { return len(ob.trades) }

// Trades returns the full trade log in emission order. Callers must not
// mutate the returned slice's backing array.
func (ob *Orderbook) Trades() []*Trade { return ob.trades }

// Order looks up a resting order by id without removing it.
func (ob *Orderbook) Order(id OrderId) (*Order, bool) {
	order, ok := ob.orders[id]
	return order, ok
}

// DepthLevel is the aggregate resting quantity at one price level, as
// returned by Depth.
type DepthLevel struct {
	Price    decimal.Decimal
	Quantity decimal.Decimal
}

// Depth returns up to limit price levels on side, best first. limit <= 0
// means unlimited.
func (ob *Orderbook) Depth(side Side, limit int) []DepthLevel {
	levels := ob.ladder(side).Levels()
	if limit > 0 && len(levels) > limit {
		levels = levels[:limit]
	}
	depth := make([]DepthLevel, len(levels))
	for i, level := range levels {
		depth[i] = DepthLevel{Price: level.Price(), Quantity: level.Quantity()}
	}
	return depth
}
