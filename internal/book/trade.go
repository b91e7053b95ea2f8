package book

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// TradeId is a monotonic identifier assigned by the owning Orderbook at
// trade construction time.
type TradeId uint64

// Trade is the immutable record of one fill between a taker and a maker.
// The only way to produce one is newTrade, called from the Orderbook
// matching walk once matches(taker, maker) and CanTrade(taker, maker) > 0
// have already been established.
type Trade struct {
	id       TradeId
	takerID  OrderId
	makerID  OrderId
	price    decimal.Decimal
	quantity decimal.Decimal
}

func (t *Trade) ID() TradeId                { return t.id }
func (t *Trade) TakerID() OrderId           { return t.takerID }
func (t *Trade) MakerID() OrderId           { return t.makerID }
func (t *Trade) Price() decimal.Decimal     { return t.price }
func (t *Trade) Quantity() decimal.Decimal  { return t.quantity }

// newTrade fills both sides of the match by quantity and returns the
// immutable trade record. The maker must be a limit order, since a
// market-order maker can never occur: the book only ever rests limit
// orders. If it does, that is an internal invariant breach and is
// reported via MakerWithoutLimitPriceError.
//
// Both fills are expected to succeed: the caller has already established
// quantity = CanTrade(taker, maker) <= min(taker.Remaining(), maker.Remaining()).
// If a fill fails anyway, the book's state is undefined, so this panics
// rather than leaving one side filled and the other not.
func newTrade(id TradeId, taker, maker *Order, quantity decimal.Decimal) (*Trade, error) {
	price, ok := maker.LimitPrice()
	if !ok {
		return nil, &MakerWithoutLimitPriceError{ID: maker.id}
	}

	if err := taker.Fill(quantity); err != nil {
		panic(fmt.Sprintf("matching invariant breach: taker %d: %v", taker.id, err))
	}
	if err := maker.Fill(quantity); err != nil {
		panic(fmt.Sprintf("matching invariant breach: maker %d: %v", maker.id, err))
	}

	return &Trade{
		id:       id,
		takerID:  taker.id,
		makerID:  maker.id,
		price:    price,
		quantity: quantity,
	}, nil
}

func (t *Trade) String() string {
	return fmt.Sprintf("Trade[%d taker:%d maker:%d %s@%s]", t.id, t.takerID, t.makerID, t.quantity, t.price)
}
