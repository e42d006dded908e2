package orderbook

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Side string

const (
	BUY  Side = "BUY"
	SELL Side = "SELL"
)

type OrderKind string

const (
	LIMIT  OrderKind = "LIMIT"
	MARKET OrderKind = "MARKET"
)

// Order is one submitted buy or sell request. Qty is the remaining
// quantity and is decremented only by the matching loop; Price is the
// zero value for MARKET orders and is never consulted for them.
type Order struct {
	ID        string
	Symbol    string
	Side      Side
	Kind      OrderKind
	Qty       int64
	Price     decimal.Decimal
	Timestamp time.Time
}

// NewLimitOrder builds a limit order with a fresh ID and arrival timestamp.
func NewLimitOrder(symbol string, side Side, qty int64, price decimal.Decimal) *Order {
	return &Order{
		ID:        uuid.NewString(),
		Symbol:    symbol,
		Side:      side,
		Kind:      LIMIT,
		Qty:       qty,
		Price:     price,
		Timestamp: time.Now(),
	}
}

// NewMarketOrder builds a market order; it carries no price.
func NewMarketOrder(symbol string, side Side, qty int64) *Order {
	return &Order{
		ID:        uuid.NewString(),
		Symbol:    symbol,
		Side:      side,
		Kind:      MARKET,
		Qty:       qty,
		Timestamp: time.Now(),
	}
}

// crosses reports whether the order is willing to trade at restingPrice.
// MARKET orders always cross; a limit BUY crosses at or below its price,
// a limit SELL at or above. Keeping this as a predicate avoids storing a
// sentinel extreme price on market orders.
func (o *Order) crosses(restingPrice decimal.Decimal) bool {
	if o.Kind == MARKET {
		return true
	}
	if o.Side == BUY {
		return o.Price.GreaterThanOrEqual(restingPrice)
	}
	return o.Price.LessThanOrEqual(restingPrice)
}

func (o *Order) String() string {
	price := "MARKET"
	if o.Kind == LIMIT {
		price = o.Price.StringFixed(2)
	}
	return fmt.Sprintf("Order[%s]: %s %s %s x %d @ %s",
		o.ID, o.Symbol, o.Side, o.Kind, o.Qty, price)
}
