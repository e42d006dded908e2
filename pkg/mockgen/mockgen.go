// Package mockgen seeds engine markets with synthetic limit orders so
// the book has two-sided liquidity to trade against. It drives the core
// only through the Engine's public surface.
package mockgen

import (
	"context"
	"math/rand"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/tradecore/trading-engine/pkg/logging"
	"github.com/tradecore/trading-engine/pkg/orderbook"
)

const (
	minQty = 10
	maxQty = 100

	// bids land within 5% below the reference price, asks within 5% above
	maxPriceOffset = 0.05
)

// Market describes one market to seed.
type Market struct {
	Symbol        string
	InitialPrice  decimal.Decimal
	OrdersPerSide int
}

type Generator struct {
	engine *orderbook.Engine
	rng    *rand.Rand
}

func NewGenerator(engine *orderbook.Engine, seed int64) *Generator {
	return &Generator{
		engine: engine,
		rng:    rand.New(rand.NewSource(seed)),
	}
}

// SeedMarkets creates each market and populates both sides around its
// initial price.
func (g *Generator) SeedMarkets(ctx context.Context, markets []Market) {
	log, ctx := logging.GetLogger(ctx)
	for _, m := range markets {
		g.engine.CreateMarket(m.Symbol, m.InitialPrice)
		g.GenerateOrders(ctx, m.Symbol, m.InitialPrice, m.OrdersPerSide)
		log.Info(ctx, "seeded market",
			zap.String("symbol", m.Symbol),
			zap.String("initial_price", m.InitialPrice.StringFixed(2)),
			zap.Int("orders_per_side", m.OrdersPerSide))
	}
}

// GenerateOrders submits one wave of random limit orders: perSide bids
// below ref and perSide asks above it.
func (g *Generator) GenerateOrders(ctx context.Context, symbol string, ref decimal.Decimal, perSide int) {
	log, ctx := logging.GetLogger(ctx)

	for i := 0; i < perSide; i++ {
		price := g.offsetPrice(ref, -maxPriceOffset, 0)
		order := orderbook.NewLimitOrder(symbol, orderbook.BUY, g.randomQty(), price)
		if _, err := g.engine.PlaceOrder(order); err != nil {
			log.Warn(ctx, "mock bid rejected", zap.String("symbol", symbol), zap.Error(err))
			return
		}
	}

	for i := 0; i < perSide; i++ {
		price := g.offsetPrice(ref, 0, maxPriceOffset)
		order := orderbook.NewLimitOrder(symbol, orderbook.SELL, g.randomQty(), price)
		if _, err := g.engine.PlaceOrder(order); err != nil {
			log.Warn(ctx, "mock ask rejected", zap.String("symbol", symbol), zap.Error(err))
			return
		}
	}
}

func (g *Generator) randomQty() int64 {
	return int64(g.rng.Intn(maxQty-minQty) + minQty)
}

// offsetPrice picks a price uniformly in ref*(1+lo)..ref*(1+hi), rounded
// to 2 decimal places.
func (g *Generator) offsetPrice(ref decimal.Decimal, lo, hi float64) decimal.Decimal {
	offset := lo + g.rng.Float64()*(hi-lo)
	factor := decimal.NewFromFloat(1 + offset)
	return ref.Mul(factor).Round(2)
}
