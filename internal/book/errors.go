package book

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// DuplicateOrderError is returned by Submit when the order id is already
// present in the book.
type DuplicateOrderError struct {
	ID OrderId
}

func (e *DuplicateOrderError) Error() string {
	return fmt.Sprintf("order %d already exists in the book", e.ID)
}

// OrderNotFoundError is returned by Cancel when the order id is not
// currently resting (never inserted, already completed, or already
// cancelled).
type OrderNotFoundError struct {
	ID OrderId
}

func (e *OrderNotFoundError) Error() string {
	return fmt.Sprintf("order %d is not resting in the book", e.ID)
}

// OverfillError signals an internal invariant breach: a fill was attempted
// for more than an order's remaining quantity. Preconditions established by
// the matching walk make this unreachable; when it occurs anyway the book
// must be considered undefined and the caller should abort, so this error
// is only ever surfaced via panic, never returned across Submit.
type OverfillError struct {
	Fill      decimal.Decimal
	Remaining decimal.Decimal
}

func (e *OverfillError) Error() string {
	return fmt.Sprintf("fill %s exceeds remaining %s", e.Fill, e.Remaining)
}

// MakerWithoutLimitPriceError signals that a non-limit order was
// encountered as a trade maker. The book only ever rests limit orders, so
// this is an internal invariant breach, surfaced only via panic.
type MakerWithoutLimitPriceError struct {
	ID OrderId
}

func (e *MakerWithoutLimitPriceError) Error() string {
	return fmt.Sprintf("order %d has no limit price and cannot be a maker", e.ID)
}
