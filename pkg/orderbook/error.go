package orderbook

import "fmt"

// MarketNotFoundError is returned when an order targets a symbol no book
// exists for. Recoverable: the caller may create the market and retry.
type MarketNotFoundError struct {
	Symbol string
}

func (e *MarketNotFoundError) Error() string {
	return fmt.Sprintf("market %s not found", e.Symbol)
}
