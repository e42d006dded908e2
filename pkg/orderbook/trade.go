package orderbook

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Trade records one execution. The price is always the resting order's
// price; price improvement favors the resting side. Trades are never
// mutated after creation.
type Trade struct {
	ID          string
	Symbol      string
	BuyOrderID  string
	SellOrderID string
	Qty         int64
	Price       decimal.Decimal
	Timestamp   time.Time
}

func newTrade(symbol, buyOrderID, sellOrderID string, qty int64, price decimal.Decimal) *Trade {
	return &Trade{
		ID:          uuid.NewString(),
		Symbol:      symbol,
		BuyOrderID:  buyOrderID,
		SellOrderID: sellOrderID,
		Qty:         qty,
		Price:       price,
		Timestamp:   time.Now(),
	}
}

func (t *Trade) String() string {
	return fmt.Sprintf("Trade[%s]: %s x %d @ %s (Buy: %s, Sell: %s)",
		t.ID, t.Symbol, t.Qty, t.Price.StringFixed(2), t.BuyOrderID, t.SellOrderID)
}
