package orderbook

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// MarketData is a per-instrument top-of-book snapshot. Bid and Ask hold
// the last observed best prices; they go stale rather than empty when a
// side drains. LastPrice moves only on an execution.
type MarketData struct {
	Symbol    string
	Bid       decimal.Decimal
	Ask       decimal.Decimal
	LastPrice decimal.Decimal
	Timestamp time.Time
}

func (m MarketData) String() string {
	return fmt.Sprintf("%s: Bid: %s, Ask: %s, Last: %s",
		m.Symbol, m.Bid.StringFixed(2), m.Ask.StringFixed(2), m.LastPrice.StringFixed(2))
}
