package book

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// OrderId uniquely identifies an order across its lifetime within a book.
type OrderId uint64

// Side is the side of an order: Ask (sell) or Bid (buy).
type Side int

const (
	Ask Side = iota
	Bid
)

func (s Side) String() string {
	switch s {
	case Ask:
		return "ASK"
	case Bid:
		return "BID"
	default:
		return "UNKNOWN"
	}
}

// Opposite returns the other side.
func (s Side) Opposite() Side {
	if s == Ask {
		return Bid
	}
	return Ask
}

// Kind distinguishes a limit order (has a price, may rest) from a market
// order (price-indifferent, never rests).
type Kind int

const (
	KindLimit Kind = iota
	KindMarket
)

func (k Kind) String() string {
	if k == KindMarket {
		return "MARKET"
	}
	return "LIMIT"
}

// TimeInForce applies only to limit orders.
type TimeInForce int

const (
	// GTC - Good-Til-Cancel. May carry a post-only flag.
	GTC TimeInForce = iota
	// IOC - Immediate-Or-Cancel. May carry an all-or-none flag.
	IOC
	// FOK - Fill-Or-Kill: fill entirely or cancel, no partial rest.
	FOK
)

// Status is the order lifecycle state. Cancelled/Closed/Completed are
// terminal; Closed (as opposed to Cancelled) records that some fill
// occurred before the cancel.
type Status int

const (
	Open Status = iota
	Partial
	Cancelled
	Closed
	Completed
)

func (s Status) String() string {
	switch s {
	case Open:
		return "OPEN"
	case Partial:
		return "PARTIAL"
	case Cancelled:
		return "CANCELLED"
	case Closed:
		return "CLOSED"
	case Completed:
		return "COMPLETED"
	default:
		return "UNKNOWN"
	}
}

// Order is a single order tracked by an Orderbook. Fields are unexported;
// mutation only happens through Fill and Cancel so the lifecycle invariants
// always hold.
type Order struct {
	id       OrderId
	side     Side
	kind     Kind
	tif      TimeInForce // meaningful only when kind == KindLimit
	postOnly bool        // meaningful only when kind == KindLimit && tif == GTC

	// allOrNone is meaningful when kind == KindMarket, or when
	// kind == KindLimit && tif == IOC.
	allOrNone bool

	limitPrice decimal.Decimal // meaningful only when kind == KindLimit

	orderQty decimal.Decimal
	filled   decimal.Decimal
	status   Status
}

// NewGTCLimitOrder creates a Good-Til-Cancel limit order.
func NewGTCLimitOrder(id OrderId, side Side, price, qty decimal.Decimal, postOnly bool) *Order {
	return &Order{
		id:         id,
		side:       side,
		kind:       KindLimit,
		tif:        GTC,
		postOnly:   postOnly,
		limitPrice: price,
		orderQty:   qty,
		status:     Open,
	}
}

// NewIOCLimitOrder creates an Immediate-Or-Cancel limit order.
func NewIOCLimitOrder(id OrderId, side Side, price, qty decimal.Decimal, allOrNone bool) *Order {
	return &Order{
		id:         id,
		side:       side,
		kind:       KindLimit,
		tif:        IOC,
		allOrNone:  allOrNone,
		limitPrice: price,
		orderQty:   qty,
		status:     Open,
	}
}

// NewFOKLimitOrder creates a Fill-Or-Kill limit order.
func NewFOKLimitOrder(id OrderId, side Side, price, qty decimal.Decimal) *Order {
	return &Order{
		id:         id,
		side:       side,
		kind:       KindLimit,
		tif:        FOK,
		limitPrice: price,
		orderQty:   qty,
		status:     Open,
	}
}

// NewMarketOrder creates a market order. Market orders are always treated
// as Immediate-Or-Cancel and never rest on the book.
func NewMarketOrder(id OrderId, side Side, qty decimal.Decimal, allOrNone bool) *Order {
	return &Order{
		id:        id,
		side:      side,
		kind:      KindMarket,
		allOrNone: allOrNone,
		orderQty:  qty,
		status:    Open,
	}
}

func (o *Order) ID() OrderId    { return o.id }
func (o *Order) Side() Side     { return o.side }
func (o *Order) Kind() Kind     { return o.kind }
func (o *Order) Status() Status { return o.status }

// Remaining is order_qty - filled_qty.
func (o *Order) Remaining() decimal.Decimal {
	return o.orderQty.Sub(o.filled)
}

// Filled is the cumulative filled quantity.
func (o *Order) Filled() decimal.Decimal { return o.filled }

// OrderQty is the original requested quantity.
func (o *Order) OrderQty() decimal.Decimal { return o.orderQty }

// LimitPrice returns the limit price and true for a limit order, or the
// zero value and false for a market order.
func (o *Order) LimitPrice() (decimal.Decimal, bool) {
	if o.kind == KindLimit {
		return o.limitPrice, true
	}
	return decimal.Zero, false
}

// IsClosed is true once the order can no longer participate in matching.
func (o *Order) IsClosed() bool {
	switch o.status {
	case Cancelled, Closed, Completed:
		return true
	default:
		return false
	}
}

// IsBookable is true only for limit orders; market orders never rest.
func (o *Order) IsBookable() bool { return o.kind == KindLimit }

// IsPostOnly is true for a GTC limit order flagged post-only.
func (o *Order) IsPostOnly() bool {
	return o.kind == KindLimit && o.tif == GTC && o.postOnly
}

// IsImmediateOrCancel is true for IOC limit orders and for all market
// orders: market orders never rest, so they are always immediate-or-cancel.
func (o *Order) IsImmediateOrCancel() bool {
	return (o.kind == KindLimit && o.tif == IOC) || o.kind == KindMarket
}

// IsFillOrKill is true only for FOK limit orders.
func (o *Order) IsFillOrKill() bool {
	return o.kind == KindLimit && o.tif == FOK
}

// IsAllOrNone is true for an IOC limit or a market order flagged
// all-or-none.
func (o *Order) IsAllOrNone() bool {
	switch {
	case o.kind == KindMarket:
		return o.allOrNone
	case o.kind == KindLimit && o.tif == IOC:
		return o.allOrNone
	default:
		return false
	}
}

// requiresFullFill is true when the order must either fill completely or be
// cancelled without resting any remainder: FOK limits, and any
// all-or-none order (IOC-AON limits and AON market orders alike).
func (o *Order) requiresFullFill() bool {
	return o.IsFillOrKill() || o.IsAllOrNone()
}

// Fill increments the filled quantity by q, failing if q exceeds the
// remaining quantity. Status becomes Completed if this fills the order,
// otherwise Partial.
func (o *Order) Fill(q decimal.Decimal) error {
	if q.GreaterThan(o.Remaining()) {
		return &OverfillError{Fill: q, Remaining: o.Remaining()}
	}
	o.filled = o.filled.Add(q)
	if o.filled.Equal(o.orderQty) {
		o.status = Completed
	} else {
		o.status = Partial
	}
	return nil
}

// Cancel transitions Open->Cancelled and Partial->Closed. No-op in any
// terminal state.
func (o *Order) Cancel() {
	switch o.status {
	case Open:
		o.status = Cancelled
	case Partial:
		o.status = Closed
	}
}

// Matches reports whether taker can trade against maker at
// maker's resting price. A market taker is price-indifferent. A limit
// taker crosses when its limit price is at least as aggressive as the
// maker's. Equal prices match.
func (taker *Order) Matches(maker *Order) bool {
	if taker.IsClosed() || maker.IsClosed() {
		return false
	}
	if taker.kind == KindMarket {
		return true
	}
	switch {
	case taker.side == Ask && maker.side == Bid:
		return taker.limitPrice.LessThanOrEqual(maker.limitPrice)
	case taker.side == Bid && maker.side == Ask:
		return taker.limitPrice.GreaterThanOrEqual(maker.limitPrice)
	default:
		return false
	}
}

// CanTrade returns the quantity that could move between taker and maker
// right now: the smaller of their two remaining quantities.
func CanTrade(taker, maker *Order) decimal.Decimal {
	return decimal.Min(taker.Remaining(), maker.Remaining())
}

func (o *Order) String() string {
	price, ok := o.LimitPrice()
	if !ok {
		return fmt.Sprintf("Order[%d %s MARKET %s/%s %s]", o.id, o.side, o.filled, o.orderQty, o.status)
	}
	return fmt.Sprintf("Order[%d %s %s@%s %s/%s %s]", o.id, o.side, o.orderQty, price, o.filled, o.orderQty, o.status)
}
