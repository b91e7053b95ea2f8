// Package report computes a point-in-time snapshot of a book for display or
// logging, never for feeding back into matching.
package report

import (
	"fmt"

	"github.com/shopspring/decimal"

	"corebook/internal/book"
)

// Summary reports best bid, best ask, and the spread between them when
// both sides are non-empty.
type Summary struct {
	BestBid        *decimal.Decimal
	BestAsk        *decimal.Decimal
	RestingOrders  int
	TradesRecorded int
}

// Compute snapshots ob. Non-mutating.
func Compute(ob *book.Orderbook) Summary {
	summary := Summary{
		RestingOrders:  ob.OrdersResting(),
		TradesRecorded: ob.TradesRecorded(),
	}
	if bid := ob.PeekTop(book.Bid); bid != nil {
		if price, ok := bid.LimitPrice(); ok {
			summary.BestBid = &price
		}
	}
	if ask := ob.PeekTop(book.Ask); ask != nil {
		if price, ok := ask.LimitPrice(); ok {
			summary.BestAsk = &price
		}
	}
	return summary
}

// Spread is BestAsk - BestBid, or nil if either side is empty.
func (s Summary) Spread() *decimal.Decimal {
	if s.BestBid == nil || s.BestAsk == nil {
		return nil
	}
	spread := s.BestAsk.Sub(*s.BestBid)
	return &spread
}

func (s Summary) String() string {
	bid, ask, spread := "none", "none", "none"
	if s.BestBid != nil {
		bid = s.BestBid.String()
	}
	if s.BestAsk != nil {
		ask = s.BestAsk.String()
	}
	if sp := s.Spread(); sp != nil {
		spread = sp.String()
	}
	return fmt.Sprintf(
		"best_bid=%s best_ask=%s spread=%s resting_orders=%d trades_recorded=%d",
		bid, ask, spread, s.RestingOrders, s.TradesRecorded,
	)
}
