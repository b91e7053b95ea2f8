// Package ingest decodes line-delimited JSON order requests into book.Order
// values, validating untrusted input at the boundary so internal/book never
// has to.
package ingest

import (
	"encoding/json"
	"errors"

	"github.com/shopspring/decimal"

	"corebook/internal/book"
)

// Kind discriminates the two request shapes the engine accepts.
type Kind string

const (
	Create Kind = "CREATE"
	Cancel Kind = "CANCEL"
)

var (
	ErrInvalidQuantity   = errors.New("ingest: quantity must be strictly positive")
	ErrInvalidLimitPrice = errors.New("ingest: limit_price must be strictly positive when present")
	ErrPairMismatch      = errors.New("ingest: request pair does not match the book's configured pair")
	ErrMalformedRequest  = errors.New("ingest: malformed request")
	ErrUnknownKind       = errors.New("ingest: unknown request kind")
)

// OrderRequest is the wire shape of one line of input: a tagged union over
// Create/Cancel. A nil LimitPrice on a Create means a market order.
type OrderRequest struct {
	Request     Kind             `json:"request"`
	Pair        string           `json:"pair"`
	OrderID     book.OrderId     `json:"order_id"`
	AccountID   string           `json:"account_id,omitempty"`
	Side        string           `json:"side,omitempty"`
	Quantity    *decimal.Decimal `json:"quantity,omitempty"`
	LimitPrice  *decimal.Decimal `json:"limit_price,omitempty"`
	TimeInForce *string          `json:"time_in_force,omitempty"`
	PostOnly    bool             `json:"post_only,omitempty"`
	AllOrNone   bool             `json:"all_or_none,omitempty"`
}

// Decode parses a single JSON line into an OrderRequest.
func Decode(line []byte) (*OrderRequest, error) {
	var req OrderRequest
	if err := json.Unmarshal(line, &req); err != nil {
		return nil, errors.Join(ErrMalformedRequest, err)
	}
	return &req, nil
}

func parseSide(raw string) (book.Side, error) {
	switch raw {
	case "ASK", "ask", "SELL", "sell":
		return book.Ask, nil
	case "BID", "bid", "BUY", "buy":
		return book.Bid, nil
	default:
		return 0, errors.Join(ErrMalformedRequest, errors.New("unrecognized side: "+raw))
	}
}

// ToOrder validates req against pair and converts it to a book.Order ready
// for Orderbook.Submit. Only called for req.Request == Create.
func (req *OrderRequest) ToOrder(pair string) (*book.Order, error) {
	if req.Pair != "" && req.Pair != pair {
		return nil, ErrPairMismatch
	}
	if req.Quantity == nil || !req.Quantity.IsPositive() {
		return nil, ErrInvalidQuantity
	}
	side, err := parseSide(req.Side)
	if err != nil {
		return nil, err
	}

	if req.LimitPrice == nil {
		return book.NewMarketOrder(req.OrderID, side, *req.Quantity, req.AllOrNone), nil
	}
	if !req.LimitPrice.IsPositive() {
		return nil, ErrInvalidLimitPrice
	}

	tif := "GTC"
	if req.TimeInForce != nil {
		tif = *req.TimeInForce
	}
	switch tif {
	case "GTC", "":
		return book.NewGTCLimitOrder(req.OrderID, side, *req.LimitPrice, *req.Quantity, req.PostOnly), nil
	case "IOC":
		return book.NewIOCLimitOrder(req.OrderID, side, *req.LimitPrice, *req.Quantity, req.AllOrNone), nil
	case "FOK":
		return book.NewFOKLimitOrder(req.OrderID, side, *req.LimitPrice, *req.Quantity), nil
	default:
		return nil, errors.Join(ErrMalformedRequest, errors.New("unrecognized time_in_force: "+tif))
	}
}
