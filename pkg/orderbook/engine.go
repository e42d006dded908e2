package orderbook

import (
	"sync"

	"github.com/shopspring/decimal"
)

// Engine routes orders to per-instrument books. The engine lock guards
// only the symbol map; matching runs under each book's own mutex, so
// independent instruments never contend.
type Engine struct {
	mu        sync.RWMutex
	books     map[string]*orderBook
	callbacks []func([]*Trade)
}

func NewEngine() *Engine {
	return &Engine{
		books: make(map[string]*orderBook),
	}
}

// CreateMarket registers a book for symbol seeded with a synthetic spread
// of ±1% around initialPrice. Re-creating an existing symbol replaces its
// book and discards its trade history; creation is not idempotent.
func (e *Engine) CreateMarket(symbol string, initialPrice decimal.Decimal) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.books[symbol] = newOrderBook(symbol, initialPrice)
}

// PlaceOrder routes the order to its book and returns the executed
// trades. An unknown symbol yields a *MarketNotFoundError and no state
// change. Fill status is not reported: callers needing it compare the
// requested quantity against the sum of returned trade quantities.
func (e *Engine) PlaceOrder(order *Order) ([]*Trade, error) {
	e.mu.RLock()
	book, ok := e.books[order.Symbol]
	e.mu.RUnlock()
	if !ok {
		return nil, &MarketNotFoundError{Symbol: order.Symbol}
	}

	fills := book.submit(order)
	if len(fills) > 0 {
		e.mu.RLock()
		cbs := e.callbacks
		e.mu.RUnlock()
		for _, cb := range cbs {
			cb(fills)
		}
	}
	return fills, nil
}

// RegisterTradeCallback subscribes fn to every batch of trades produced
// by a PlaceOrder call, delivered synchronously after matching.
func (e *Engine) RegisterTradeCallback(fn func([]*Trade)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.callbacks = append(e.callbacks, fn)
}

func (e *Engine) MarketData(symbol string) (MarketData, bool) {
	e.mu.RLock()
	book, ok := e.books[symbol]
	e.mu.RUnlock()
	if !ok {
		return MarketData{}, false
	}
	return book.marketData(), true
}

// Snapshot returns copies of the resting orders on each side, best price
// first, FIFO within a price.
func (e *Engine) Snapshot(symbol string) (bids, asks []Order, ok bool) {
	e.mu.RLock()
	book, found := e.books[symbol]
	e.mu.RUnlock()
	if !found {
		return nil, nil, false
	}
	bids, asks = book.snapshot()
	return bids, asks, true
}

// Trades returns the book's trade log in execution order.
func (e *Engine) Trades(symbol string) ([]Trade, bool) {
	e.mu.RLock()
	book, ok := e.books[symbol]
	e.mu.RUnlock()
	if !ok {
		return nil, false
	}
	return book.tradeLog(), true
}

func (e *Engine) Symbols() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	symbols := make([]string, 0, len(e.books))
	for s := range e.books {
		symbols = append(symbols, s)
	}
	return symbols
}
