package book

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBook() *Orderbook {
	return NewOrderbook("ETH/USDT")
}

// Scenario 1: Rest + peek.
func TestScenario_RestAndPeek(t *testing.T) {
	ob := newBook()

	a1 := NewGTCLimitOrder(1, Ask, dec("15"), dec("100"), false)
	outcome, trades, err := ob.Submit(a1)
	require.NoError(t, err)
	assert.Equal(t, NotMatched, outcome)
	assert.Empty(t, trades)

	b1 := NewGTCLimitOrder(2, Bid, dec("14"), dec("25"), false)
	outcome, trades, err = ob.Submit(b1)
	require.NoError(t, err)
	assert.Equal(t, NotMatched, outcome)
	assert.Empty(t, trades)

	assert.Equal(t, OrderId(1), ob.PeekTop(Ask).ID())
	assert.Equal(t, OrderId(2), ob.PeekTop(Bid).ID())
}

// Scenario 2: Full-fill maker.
func TestScenario_FullFillMaker(t *testing.T) {
	ob := newBook()
	b1 := NewGTCLimitOrder(1, Bid, dec("15"), dec("99"), false)
	_, _, err := ob.Submit(b1)
	require.NoError(t, err)

	a1 := NewGTCLimitOrder(2, Ask, dec("15"), dec("100"), false)
	outcome, trades, err := ob.Submit(a1)
	require.NoError(t, err)
	assert.Equal(t, Matched, outcome)
	require.Len(t, trades, 1)

	trade := trades[0]
	assert.Equal(t, OrderId(2), trade.TakerID())
	assert.Equal(t, OrderId(1), trade.MakerID())
	assert.True(t, trade.Price().Equal(dec("15")))
	assert.True(t, trade.Quantity().Equal(dec("99")))

	assert.Nil(t, ob.PeekTop(Bid))
	require.NotNil(t, ob.PeekTop(Ask))
	assert.Equal(t, OrderId(2), ob.PeekTop(Ask).ID())
	assert.True(t, ob.PeekTop(Ask).Remaining().Equal(dec("1")))
}

// Scenario 3: Walk two levels.
func TestScenario_WalkTwoLevels(t *testing.T) {
	ob := newBook()
	b1 := NewGTCLimitOrder(1, Bid, dec("15"), dec("99"), false)
	b2 := NewGTCLimitOrder(2, Bid, dec("16"), dec("20"), false)
	_, _, err := ob.Submit(b1)
	require.NoError(t, err)
	_, _, err = ob.Submit(b2)
	require.NoError(t, err)

	a1 := NewGTCLimitOrder(3, Ask, dec("15"), dec("100"), false)
	outcome, trades, err := ob.Submit(a1)
	require.NoError(t, err)
	assert.Equal(t, Matched, outcome)
	require.Len(t, trades, 2)

	assert.Equal(t, OrderId(2), trades[0].MakerID())
	assert.True(t, trades[0].Price().Equal(dec("16")))
	assert.True(t, trades[0].Quantity().Equal(dec("20")))

	assert.Equal(t, OrderId(1), trades[1].MakerID())
	assert.True(t, trades[1].Price().Equal(dec("15")))
	assert.True(t, trades[1].Quantity().Equal(dec("80")))

	require.NotNil(t, ob.PeekTop(Bid))
	assert.Equal(t, OrderId(1), ob.PeekTop(Bid).ID())
	assert.True(t, ob.PeekTop(Bid).Remaining().Equal(dec("19")))
	assert.Nil(t, ob.PeekTop(Ask))
}

// Scenario 4: FIFO within a level.
func TestScenario_FIFOWithinLevel(t *testing.T) {
	ob := newBook()
	a1 := NewGTCLimitOrder(1, Ask, dec("15"), dec("100"), false)
	a2 := NewGTCLimitOrder(2, Ask, dec("15"), dec("80"), false)
	_, _, err := ob.Submit(a1)
	require.NoError(t, err)
	_, _, err = ob.Submit(a2)
	require.NoError(t, err)

	b1 := NewGTCLimitOrder(3, Bid, dec("15"), dec("120"), false)
	outcome, trades, err := ob.Submit(b1)
	require.NoError(t, err)
	assert.Equal(t, Matched, outcome)
	require.Len(t, trades, 2)

	assert.Equal(t, OrderId(1), trades[0].MakerID())
	assert.True(t, trades[0].Quantity().Equal(dec("100")))
	assert.Equal(t, OrderId(2), trades[1].MakerID())
	assert.True(t, trades[1].Quantity().Equal(dec("20")))

	require.NotNil(t, ob.PeekTop(Ask))
	assert.Equal(t, OrderId(2), ob.PeekTop(Ask).ID())
	assert.True(t, ob.PeekTop(Ask).Remaining().Equal(dec("60")))
}

// Scenario 5: FOK infeasible.
func TestScenario_FOKInfeasible(t *testing.T) {
	ob := newBook()
	a1 := NewGTCLimitOrder(1, Ask, dec("15"), dec("80"), false)
	_, _, err := ob.Submit(a1)
	require.NoError(t, err)

	b1 := NewFOKLimitOrder(2, Bid, dec("15"), dec("99"))
	outcome, trades, err := ob.Submit(b1)
	require.NoError(t, err)
	assert.Equal(t, NotMatched, outcome)
	assert.Empty(t, trades)
	assert.Equal(t, Cancelled, b1.Status())

	require.NotNil(t, ob.PeekTop(Ask))
	assert.Equal(t, OrderId(1), ob.PeekTop(Ask).ID())
	assert.True(t, ob.PeekTop(Ask).Remaining().Equal(dec("80")))
}

// Scenario 6: Post-only crossing.
func TestScenario_PostOnlyCrossing(t *testing.T) {
	ob := newBook()
	a1 := NewGTCLimitOrder(1, Ask, dec("15"), dec("100"), false)
	_, _, err := ob.Submit(a1)
	require.NoError(t, err)

	b1 := NewGTCLimitOrder(2, Bid, dec("15"), dec("99"), true)
	outcome, trades, err := ob.Submit(b1)
	require.NoError(t, err)
	assert.Equal(t, NotMatched, outcome)
	assert.Empty(t, trades)
	assert.Equal(t, Cancelled, b1.Status())

	require.NotNil(t, ob.PeekTop(Ask))
	assert.Equal(t, OrderId(1), ob.PeekTop(Ask).ID())
	assert.Nil(t, ob.PeekTop(Bid))
}

// Scenario 7: Market taker.
func TestScenario_MarketTaker(t *testing.T) {
	ob := newBook()
	a1 := NewGTCLimitOrder(1, Ask, dec("100"), dec("10"), false)
	_, _, err := ob.Submit(a1)
	require.NoError(t, err)

	b1 := NewMarketOrder(2, Bid, dec("15"), false)
	outcome, trades, err := ob.Submit(b1)
	require.NoError(t, err)
	assert.Equal(t, Matched, outcome)
	require.Len(t, trades, 1)
	assert.True(t, trades[0].Price().Equal(dec("100")))
	assert.True(t, trades[0].Quantity().Equal(dec("10")))

	assert.True(t, b1.Remaining().Equal(dec("5")))
	assert.Equal(t, Closed, b1.Status()) // partial fill then IOC-cancelled
	assert.Nil(t, ob.PeekTop(Bid))
}

func TestLaw_CancelUnmatchedReturnsFullOrder(t *testing.T) {
	ob := newBook()
	o := NewGTCLimitOrder(1, Ask, dec("15"), dec("100"), false)
	_, _, err := ob.Submit(o)
	require.NoError(t, err)

	cancelled, err := ob.Cancel(1)
	require.NoError(t, err)
	assert.True(t, cancelled.Remaining().Equal(dec("100")))
	assert.Equal(t, Cancelled, cancelled.Status())
}

func TestLaw_NonCrossingRestsBothSides(t *testing.T) {
	ob := newBook()
	a1 := NewGTCLimitOrder(1, Ask, dec("15"), dec("10"), false)
	b1 := NewGTCLimitOrder(2, Bid, dec("14"), dec("10"), false)
	_, _, err := ob.Submit(a1)
	require.NoError(t, err)
	_, _, err = ob.Submit(b1)
	require.NoError(t, err)

	_, err = ob.Cancel(1)
	require.NoError(t, err)
	_, err = ob.Cancel(2)
	require.NoError(t, err)
}

func TestLaw_CancelIdempotence(t *testing.T) {
	ob := newBook()
	o := NewGTCLimitOrder(1, Ask, dec("15"), dec("10"), false)
	_, _, err := ob.Submit(o)
	require.NoError(t, err)

	_, err = ob.Cancel(1)
	require.NoError(t, err)

	_, err = ob.Cancel(1)
	require.Error(t, err)
	var notFound *OrderNotFoundError
	require.ErrorAs(t, err, &notFound)
}

func TestSubmit_DuplicateOrderIdRejected(t *testing.T) {
	ob := newBook()
	o1 := NewGTCLimitOrder(1, Ask, dec("15"), dec("10"), false)
	_, _, err := ob.Submit(o1)
	require.NoError(t, err)

	o2 := NewGTCLimitOrder(1, Ask, dec("16"), dec("5"), false)
	_, _, err = ob.Submit(o2)
	require.Error(t, err)
	var dup *DuplicateOrderError
	require.ErrorAs(t, err, &dup)
}

func TestSubmit_NoCrossedBookInvariant(t *testing.T) {
	ob := newBook()
	asks := []decimal.Decimal{dec("15"), dec("16"), dec("17")}
	bids := []decimal.Decimal{dec("10"), dec("11"), dec("12")}
	id := OrderId(1)
	for _, p := range asks {
		_, _, err := ob.Submit(NewGTCLimitOrder(id, Ask, p, dec("5"), false))
		require.NoError(t, err)
		id++
	}
	for _, p := range bids {
		_, _, err := ob.Submit(NewGTCLimitOrder(id, Bid, p, dec("5"), false))
		require.NoError(t, err)
		id++
	}

	bestAsk := ob.PeekTop(Ask)
	bestBid := ob.PeekTop(Bid)
	require.NotNil(t, bestAsk)
	require.NotNil(t, bestBid)
	askPrice, _ := bestAsk.LimitPrice()
	bidPrice, _ := bestBid.LimitPrice()
	assert.True(t, askPrice.GreaterThanOrEqual(bidPrice))
}

func TestSubmit_TradeIdsAreMonotonic(t *testing.T) {
	ob := newBook()
	for i := 0; i < 5; i++ {
		_, _, err := ob.Submit(NewGTCLimitOrder(OrderId(i+1), Ask, dec("10"), dec("1"), false))
		require.NoError(t, err)
	}

	b1 := NewGTCLimitOrder(100, Bid, dec("10"), dec("5"), false)
	_, trades, err := ob.Submit(b1)
	require.NoError(t, err)
	require.Len(t, trades, 5)
	for i := 1; i < len(trades); i++ {
		assert.Less(t, trades[i-1].ID(), trades[i].ID())
	}
}

func TestSubmit_ConservationOfFilledQuantity(t *testing.T) {
	ob := newBook()
	a1 := NewGTCLimitOrder(1, Ask, dec("15"), dec("40"), false)
	_, _, err := ob.Submit(a1)
	require.NoError(t, err)

	b1 := NewGTCLimitOrder(2, Bid, dec("15"), dec("25"), false)
	_, trades, err := ob.Submit(b1)
	require.NoError(t, err)
	require.Len(t, trades, 1)

	var tradedQty decimal.Decimal
	for _, tr := range trades {
		tradedQty = tradedQty.Add(tr.Quantity())
	}
	totalFilled := a1.Filled().Add(b1.Filled())
	assert.True(t, totalFilled.Equal(tradedQty.Mul(dec("2"))))
}

func TestCancel_UnknownIdFails(t *testing.T) {
	ob := newBook()
	_, err := ob.Cancel(999)
	require.Error(t, err)
}
