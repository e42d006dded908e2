package orderbook

import (
	"sync"
	"time"

	"github.com/gammazero/deque"
	"github.com/shopspring/decimal"
)

// seed spread applied around the initial price when a market is created.
var (
	seedBidFactor = decimal.RequireFromString("0.99")
	seedAskFactor = decimal.RequireFromString("1.01")
)

// priceLevel holds all resting orders at one price in arrival order.
type priceLevel struct {
	price  decimal.Decimal
	orders deque.Deque[*Order]
}

// orderBook owns the resting liquidity for one instrument. Bid levels are
// kept in descending price order, ask levels ascending, so the best level
// on either side is always index 0. The mutex serializes mutating calls;
// books are independent of each other.
type orderBook struct {
	symbol string

	bids []*priceLevel
	asks []*priceLevel

	trades []*Trade
	md     MarketData

	mu sync.Mutex
}

func newOrderBook(symbol string, initialPrice decimal.Decimal) *orderBook {
	return &orderBook{
		symbol: symbol,
		md: MarketData{
			Symbol:    symbol,
			Bid:       initialPrice.Mul(seedBidFactor),
			Ask:       initialPrice.Mul(seedAskFactor),
			LastPrice: initialPrice,
			Timestamp: time.Now(),
		},
	}
}

// submit runs the matching loop for one incoming order and returns the
// resulting trades in execution order. A limit order with leftover
// quantity rests in the book; a market order's leftover is dropped.
func (ob *orderBook) submit(order *Order) []*Trade {
	ob.mu.Lock()
	defer ob.mu.Unlock()

	var fills []*Trade
	if order.Side == BUY {
		fills = ob.match(order, &ob.asks)
	} else {
		fills = ob.match(order, &ob.bids)
	}

	rested := false
	if order.Qty > 0 && order.Kind == LIMIT {
		if order.Side == BUY {
			insertLevel(&ob.bids, order, decimal.Decimal.GreaterThan)
		} else {
			insertLevel(&ob.asks, order, decimal.Decimal.LessThan)
		}
		rested = true
	}

	if len(fills) > 0 || rested {
		ob.refreshTopOfBook()
	}
	return fills
}

// match consumes liquidity from the opposite side while the incoming
// order still crosses the best resting price. The resting side sets the
// trade price; FIFO within a level comes from the level's queue order.
func (ob *orderBook) match(order *Order, opposite *[]*priceLevel) []*Trade {
	var fills []*Trade

	for order.Qty > 0 && len(*opposite) > 0 {
		level := (*opposite)[0]
		if !order.crosses(level.price) {
			break
		}

		resting := level.orders.Front()
		qty := order.Qty
		if resting.Qty < qty {
			qty = resting.Qty
		}

		var trade *Trade
		if order.Side == BUY {
			trade = newTrade(ob.symbol, order.ID, resting.ID, qty, level.price)
		} else {
			trade = newTrade(ob.symbol, resting.ID, order.ID, qty, level.price)
		}
		fills = append(fills, trade)
		ob.trades = append(ob.trades, trade)
		ob.md.LastPrice = trade.Price
		ob.md.Timestamp = trade.Timestamp

		order.Qty -= qty
		resting.Qty -= qty

		if resting.Qty == 0 {
			level.orders.PopFront()
			if level.orders.Len() == 0 {
				*opposite = (*opposite)[1:]
			}
		}
	}

	return fills
}

// insertLevel places the order at its price-ordered position, scanning
// from the best-price end. The scan stops at an equal price, so new
// orders land behind all resting orders at their level.
func insertLevel(side *[]*priceLevel, order *Order, better func(a, b decimal.Decimal) bool) {
	idx := 0
	for idx < len(*side) {
		if (*side)[idx].price.Equal(order.Price) {
			(*side)[idx].orders.PushBack(order)
			return
		}
		if !better((*side)[idx].price, order.Price) {
			break
		}
		idx++
	}

	level := &priceLevel{price: order.Price}
	level.orders.PushBack(order)
	*side = append(*side, nil)
	copy((*side)[idx+1:], (*side)[idx:])
	(*side)[idx] = level
}

// refreshTopOfBook recomputes the best bid and ask. An empty side leaves
// its last value in place; stale-on-empty is the defined behavior.
func (ob *orderBook) refreshTopOfBook() {
	if len(ob.bids) > 0 {
		ob.md.Bid = ob.bids[0].price
	}
	if len(ob.asks) > 0 {
		ob.md.Ask = ob.asks[0].price
	}
	ob.md.Timestamp = time.Now()
}

func (ob *orderBook) marketData() MarketData {
	ob.mu.Lock()
	defer ob.mu.Unlock()
	return ob.md
}

// snapshot returns copies of both sides, best price first, FIFO within
// each price.
func (ob *orderBook) snapshot() (bids, asks []Order) {
	ob.mu.Lock()
	defer ob.mu.Unlock()
	return flatten(ob.bids), flatten(ob.asks)
}

func flatten(side []*priceLevel) []Order {
	var out []Order
	for _, level := range side {
		for i := 0; i < level.orders.Len(); i++ {
			out = append(out, *level.orders.At(i))
		}
	}
	return out
}

func (ob *orderBook) tradeLog() []Trade {
	ob.mu.Lock()
	defer ob.mu.Unlock()
	out := make([]Trade, 0, len(ob.trades))
	for _, t := range ob.trades {
		out = append(out, *t)
	}
	return out
}
