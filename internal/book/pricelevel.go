package book

import "github.com/shopspring/decimal"

// PriceLevel is a FIFO queue of resting orders at one price, plus the
// cached aggregate remaining quantity of everything queued. Orders of a
// level share a side and an exact limit price; maintaining that is the
// Ladder's job, not this type's.
//
// Matching walks the book single-threaded, so a plain backing slice with
// O(n) mid-queue removal (used only on cancel) is an acceptable tradeoff
// against a more elaborate FIFO structure.
type PriceLevel struct {
	price  decimal.Decimal
	orders []*Order
	qty    decimal.Decimal
}

func newPriceLevel(price decimal.Decimal) *PriceLevel {
	return &PriceLevel{price: price, qty: decimal.Zero}
}

// Price is the exact limit price every queued order shares.
func (l *PriceLevel) Price() decimal.Decimal { return l.price }

// Quantity is the cached sum of remaining quantity across queued orders.
func (l *PriceLevel) Quantity() decimal.Decimal { return l.qty }

// Len is the number of orders queued at this level.
func (l *PriceLevel) Len() int { return len(l.orders) }

// Empty reports whether the level has no queued orders; an empty level
// must be dropped from its Ladder.
func (l *PriceLevel) Empty() bool { return len(l.orders) == 0 }

// Front returns the head order (the one earliest in FIFO order), or nil.
func (l *PriceLevel) Front() *Order {
	if len(l.orders) == 0 {
		return nil
	}
	return l.orders[0]
}

// pushBack appends order at the tail and adds its remaining quantity to
// the cached total.
func (l *PriceLevel) pushBack(order *Order) {
	l.orders = append(l.orders, order)
	l.qty = l.qty.Add(order.Remaining())
}

// popFront removes and returns the head order, used once a maker at the
// head has been fully filled during a match.
func (l *PriceLevel) popFront() *Order {
	if len(l.orders) == 0 {
		return nil
	}
	order := l.orders[0]
	l.orders = l.orders[1:]
	return order
}

// remove removes an order by id from anywhere in the queue (used on
// cancel) and adjusts the cached quantity by its remaining amount.
func (l *PriceLevel) remove(id OrderId) *Order {
	for i, o := range l.orders {
		if o.ID() == id {
			l.orders = append(l.orders[:i], l.orders[i+1:]...)
			l.qty = l.qty.Sub(o.Remaining())
			return o
		}
	}
	return nil
}

// Matches mirrors Order.Matches at level granularity: true iff the level
// is non-empty, taker is not closed, and taker's price (if any; a market
// taker has none) crosses this level's price on taker's side.
func (l *PriceLevel) Matches(taker *Order) bool {
	if l.Empty() || taker.IsClosed() {
		return false
	}
	limitPrice, ok := taker.LimitPrice()
	if !ok {
		return true // market taker: price-indifferent
	}
	switch taker.Side() {
	case Ask:
		return limitPrice.LessThanOrEqual(l.price)
	case Bid:
		return limitPrice.GreaterThanOrEqual(l.price)
	default:
		return false
	}
}
