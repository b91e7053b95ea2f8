package report

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"corebook/internal/book"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestCompute_EmptyBookHasNoBestPricesOrSpread(t *testing.T) {
	ob := book.NewOrderbook("ETH/USDT")
	summary := Compute(ob)
	assert.Nil(t, summary.BestBid)
	assert.Nil(t, summary.BestAsk)
	assert.Nil(t, summary.Spread())
	assert.Equal(t, 0, summary.RestingOrders)
}

func TestCompute_RestingOrdersProduceBestPricesAndSpread(t *testing.T) {
	ob := book.NewOrderbook("ETH/USDT")
	_, _, err := ob.Submit(book.NewGTCLimitOrder(1, book.Ask, dec("15"), dec("10"), false))
	require.NoError(t, err)
	_, _, err = ob.Submit(book.NewGTCLimitOrder(2, book.Bid, dec("14"), dec("5"), false))
	require.NoError(t, err)

	summary := Compute(ob)
	require.NotNil(t, summary.BestAsk)
	require.NotNil(t, summary.BestBid)
	assert.True(t, summary.BestAsk.Equal(dec("15")))
	assert.True(t, summary.BestBid.Equal(dec("14")))
	require.NotNil(t, summary.Spread())
	assert.True(t, summary.Spread().Equal(dec("1")))
	assert.Equal(t, 2, summary.RestingOrders)
}

func TestCompute_TradesRecordedReflectsMatches(t *testing.T) {
	ob := book.NewOrderbook("ETH/USDT")
	_, _, err := ob.Submit(book.NewGTCLimitOrder(1, book.Bid, dec("15"), dec("10"), false))
	require.NoError(t, err)
	_, _, err = ob.Submit(book.NewGTCLimitOrder(2, book.Ask, dec("15"), dec("10"), false))
	require.NoError(t, err)

	summary := Compute(ob)
	assert.Equal(t, 1, summary.TradesRecorded)
	assert.Equal(t, 0, summary.RestingOrders)
}
