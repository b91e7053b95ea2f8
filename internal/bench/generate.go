// Package bench produces synthetic OrderRequest streams for throughput
// measurement.
package bench

import (
	"math/rand"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"corebook/internal/book"
	"corebook/internal/ingest"
)

// Generator produces a deterministic-length stream of synthetic requests
// against a single pair, occasionally emitting a Cancel of a previously
// issued order id instead of a Create (1 in cancelRate).
type Generator struct {
	rng        *rand.Rand
	pair       string
	cancelRate int
	nextID     uint64
}

// NewGenerator seeds a Generator for pair. cancelRate <= 0 disables Cancel
// generation entirely.
func NewGenerator(pair string, seed int64, cancelRate int) *Generator {
	return &Generator{
		rng:        rand.New(rand.NewSource(seed)),
		pair:       pair,
		cancelRate: cancelRate,
		nextID:     1,
	}
}

// Next produces the next synthetic OrderRequest.
func (g *Generator) Next() *ingest.OrderRequest {
	if g.cancelRate > 0 && g.nextID > 1 && g.rng.Intn(g.cancelRate) == 0 {
		target := uint64(g.rng.Int63n(int64(g.nextID-1))) + 1
		return &ingest.OrderRequest{
			Request: ingest.Cancel,
			Pair:    g.pair,
			OrderID: book.OrderId(target),
		}
	}

	id := g.nextID
	g.nextID++

	side := "ASK"
	if g.rng.Float64() < 0.5 {
		side = "BID"
	}

	qty := g.randomDecimal()
	req := &ingest.OrderRequest{
		Request:   ingest.Create,
		Pair:      g.pair,
		OrderID:   book.OrderId(id),
		AccountID: AccountID(),
		Side:      side,
		Quantity:  &qty,
	}
	if g.rng.Float64() < 0.8 {
		price := g.randomDecimal()
		req.LimitPrice = &price
	}
	return req
}

// Stream produces n synthetic requests.
func (g *Generator) Stream(n int) []*ingest.OrderRequest {
	requests := make([]*ingest.OrderRequest, n)
	for i := range requests {
		requests[i] = g.Next()
	}
	return requests
}

// randomDecimal produces an integer in [10000, 1000000) scaled by 10^-2,
// i.e. a price/quantity in [100.00, 10000.00).
func (g *Generator) randomDecimal() decimal.Decimal {
	v := g.rng.Int63n(1_000_000-10_000) + 10_000
	return decimal.New(v, -2)
}

// AccountID mints a synthetic correlation id carried on generated Create
// requests; the matching core itself has no notion of accounts and never
// reads the field.
func AccountID() string {
	return uuid.NewString()
}
