package main

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tradecore/trading-engine/pkg/orderbook"
)

const (
	numOrders = 1_000_000
	symbol    = "ABC"
	minPrice  = 100.0
	maxPrice  = 200.0
	minQty    = 1
	maxQty    = 100
)

func randomOrder(rng *rand.Rand) *orderbook.Order {
	side := orderbook.BUY
	if rng.Intn(2) == 0 {
		side = orderbook.SELL
	}
	qty := int64(rng.Intn(maxQty-minQty+1) + minQty)

	if rng.Intn(20) == 0 {
		return orderbook.NewMarketOrder(symbol, side, qty)
	}

	price := decimal.NewFromFloat(minPrice + rng.Float64()*(maxPrice-minPrice)).Round(2)
	return orderbook.NewLimitOrder(symbol, side, qty, price)
}

func main() {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	engine := orderbook.NewEngine()
	engine.CreateMarket(symbol, decimal.NewFromFloat(150.0))

	totalMatched := 0
	totalQty := int64(0)
	engine.RegisterTradeCallback(func(fills []*orderbook.Trade) {
		for _, t := range fills {
			totalMatched++
			totalQty += t.Qty
			if totalMatched <= 5 {
				fmt.Printf("Match: %s\n", t)
			}
		}
	})

	start := time.Now()
	for i := 0; i < numOrders; i++ {
		if _, err := engine.PlaceOrder(randomOrder(rng)); err != nil {
			fmt.Printf("place order: %v\n", err)
			return
		}
	}
	elapsed := time.Since(start)

	md, _ := engine.MarketData(symbol)
	fmt.Println("--------")
	fmt.Printf("Total Orders     : %d\n", numOrders)
	fmt.Printf("Total Matches    : %d\n", totalMatched)
	fmt.Printf("Total Matched Qty: %d\n", totalQty)
	fmt.Printf("Market Data      : %s\n", md)
	fmt.Printf("Time Taken       : %s\n", elapsed)
}
