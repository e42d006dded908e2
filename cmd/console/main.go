package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/tradecore/trading-engine/config"
	"github.com/tradecore/trading-engine/pkg/logging"
	"github.com/tradecore/trading-engine/pkg/mockgen"
	"github.com/tradecore/trading-engine/pkg/orderbook"
)

type console struct {
	engine     *orderbook.Engine
	gen        *mockgen.Generator
	lines      chan string
	out        io.Writer
	showPrompt bool
}

func main() {
	configPath := flag.String("config", "./config/config.yml", "config file path")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.NewLogger(cfg.ServiceName, logging.ParseLevel(cfg.LogLevel))
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx = logging.WithLogger(ctx, logger)

	engine := orderbook.NewEngine()
	gen := mockgen.NewGenerator(engine, cfg.Seed)
	gen.SeedMarkets(ctx, marketsFromConfig(cfg))
	logger.Info(ctx, "engine ready", zap.Int("markets", len(engine.Symbols())))

	c := newConsole(engine, gen, os.Stdin, os.Stdout, cfg.Prompt)
	c.run(ctx)
}

func marketsFromConfig(cfg *config.AppConfig) []mockgen.Market {
	markets := make([]mockgen.Market, 0, len(cfg.Markets))
	for _, m := range cfg.Markets {
		markets = append(markets, mockgen.Market{
			Symbol:        m.Symbol,
			InitialPrice:  decimal.NewFromFloat(m.InitialPrice),
			OrdersPerSide: m.OrdersPerSide,
		})
	}
	return markets
}

func newConsole(engine *orderbook.Engine, gen *mockgen.Generator, in io.Reader, out io.Writer, showPrompt bool) *console {
	c := &console{
		engine:     engine,
		gen:        gen,
		lines:      make(chan string),
		out:        out,
		showPrompt: showPrompt,
	}
	go func() {
		defer close(c.lines)
		sc := bufio.NewScanner(in)
		for sc.Scan() {
			c.lines <- strings.TrimSpace(sc.Text())
		}
	}()
	return c
}

func (c *console) run(ctx context.Context) {
	for {
		c.printMenu()
		choice, ok := c.readLine(ctx)
		if !ok {
			fmt.Fprintln(c.out, "\nShutting down...")
			return
		}
		switch choice {
		case "1":
			c.viewMarkets()
		case "2":
			c.viewMarketData(ctx)
		case "3":
			c.viewOrderBook(ctx)
		case "4":
			c.viewTrades(ctx)
		case "5":
			c.placeLimitOrder(ctx)
		case "6":
			c.placeMarketOrder(ctx)
		case "7":
			c.generateMockData(ctx)
		case "8":
			fmt.Fprintln(c.out, "Exiting...")
			return
		default:
			fmt.Fprintln(c.out, "Invalid option")
		}
	}
}

func (c *console) printMenu() {
	if !c.showPrompt {
		return
	}
	fmt.Fprintln(c.out, "\n=== TRADING SYSTEM CLI ===")
	fmt.Fprintln(c.out, "1. View available markets")
	fmt.Fprintln(c.out, "2. View market data")
	fmt.Fprintln(c.out, "3. View order book")
	fmt.Fprintln(c.out, "4. View recent trades")
	fmt.Fprintln(c.out, "5. Place limit order")
	fmt.Fprintln(c.out, "6. Place market order")
	fmt.Fprintln(c.out, "7. Generate more mock data")
	fmt.Fprintln(c.out, "8. Exit")
	fmt.Fprint(c.out, "Select an option: ")
}

// readLine waits for the next input line; it reports false once input is
// exhausted or the context is cancelled (SIGINT/SIGTERM).
func (c *console) readLine(ctx context.Context) (string, bool) {
	select {
	case <-ctx.Done():
		return "", false
	case line, ok := <-c.lines:
		return line, ok
	}
}

func (c *console) ask(ctx context.Context, label string) (string, bool) {
	if c.showPrompt {
		fmt.Fprint(c.out, label)
	}
	return c.readLine(ctx)
}

func (c *console) viewMarkets() {
	fmt.Fprintln(c.out, "\n=== AVAILABLE MARKETS ===")
	for _, symbol := range c.engine.Symbols() {
		if md, ok := c.engine.MarketData(symbol); ok {
			fmt.Fprintln(c.out, md)
		}
	}
}

func (c *console) viewMarketData(ctx context.Context) {
	symbol, ok := c.ask(ctx, "Enter symbol: ")
	if !ok {
		return
	}
	md, found := c.engine.MarketData(symbol)
	if !found {
		fmt.Fprintf(c.out, "Market %s not found\n", symbol)
		return
	}
	fmt.Fprintf(c.out, "\n=== MARKET DATA FOR %s ===\n", symbol)
	fmt.Fprintln(c.out, md)
}

func (c *console) viewOrderBook(ctx context.Context) {
	symbol, ok := c.ask(ctx, "Enter symbol: ")
	if !ok {
		return
	}
	bids, asks, found := c.engine.Snapshot(symbol)
	if !found {
		fmt.Fprintf(c.out, "Market %s not found\n", symbol)
		return
	}
	fmt.Fprintf(c.out, "\n=== ORDER BOOK FOR %s ===\n", symbol)
	fmt.Fprintln(c.out, "BIDS:")
	for i := range bids {
		fmt.Fprintf(c.out, "  %s\n", &bids[i])
	}
	fmt.Fprintln(c.out, "ASKS:")
	for i := range asks {
		fmt.Fprintf(c.out, "  %s\n", &asks[i])
	}
}

func (c *console) viewTrades(ctx context.Context) {
	symbol, ok := c.ask(ctx, "Enter symbol: ")
	if !ok {
		return
	}
	trades, found := c.engine.Trades(symbol)
	if !found {
		fmt.Fprintf(c.out, "Market %s not found\n", symbol)
		return
	}
	fmt.Fprintf(c.out, "\n=== RECENT TRADES FOR %s ===\n", symbol)
	if len(trades) == 0 {
		fmt.Fprintln(c.out, "No trades yet")
		return
	}
	// newest first, at most 10
	shown := 0
	for i := len(trades) - 1; i >= 0 && shown < 10; i-- {
		fmt.Fprintln(c.out, &trades[i])
		shown++
	}
}

func (c *console) placeLimitOrder(ctx context.Context) {
	symbol, ok := c.ask(ctx, "Enter symbol: ")
	if !ok {
		return
	}
	sideIn, ok := c.ask(ctx, "Side (buy/sell): ")
	if !ok {
		return
	}
	qtyIn, ok := c.ask(ctx, "Quantity: ")
	if !ok {
		return
	}
	qty, err := strconv.ParseInt(qtyIn, 10, 64)
	if err != nil || qty <= 0 {
		fmt.Fprintln(c.out, "Invalid quantity")
		return
	}

	priceIn, ok := c.ask(ctx, "Limit price: ")
	if !ok {
		return
	}
	price, err := decimal.NewFromString(priceIn)
	if err != nil || !price.IsPositive() {
		fmt.Fprintln(c.out, "Invalid price")
		return
	}

	c.submit(orderbook.NewLimitOrder(symbol, parseSide(sideIn), qty, price))
}

func (c *console) placeMarketOrder(ctx context.Context) {
	symbol, ok := c.ask(ctx, "Enter symbol: ")
	if !ok {
		return
	}
	sideIn, ok := c.ask(ctx, "Side (buy/sell): ")
	if !ok {
		return
	}
	qtyIn, ok := c.ask(ctx, "Quantity: ")
	if !ok {
		return
	}
	qty, err := strconv.ParseInt(qtyIn, 10, 64)
	if err != nil || qty <= 0 {
		fmt.Fprintln(c.out, "Invalid quantity")
		return
	}

	c.submit(orderbook.NewMarketOrder(symbol, parseSide(sideIn), qty))
}

func (c *console) submit(order *orderbook.Order) {
	placed := *order // matching mutates the remaining quantity
	trades, err := c.engine.PlaceOrder(order)
	if err != nil {
		fmt.Fprintf(c.out, "Error: %v\n", err)
		return
	}

	fmt.Fprintf(c.out, "Order placed: %s\n", &placed)
	if len(trades) == 0 {
		// A limit order with no fills rests in the book; only a market
		// order leaves nothing behind.
		if order.Kind == orderbook.MARKET {
			fmt.Fprintln(c.out, "No trades executed. No matching orders in the book.")
		}
		return
	}
	fmt.Fprintln(c.out, "Trades executed:")
	var filled int64
	for _, t := range trades {
		fmt.Fprintf(c.out, "  %s\n", t)
		filled += t.Qty
	}
	if order.Kind == orderbook.MARKET && filled < placed.Qty {
		fmt.Fprintf(c.out, "Unfilled quantity %d was discarded\n", placed.Qty-filled)
	}
}

func (c *console) generateMockData(ctx context.Context) {
	for _, symbol := range c.engine.Symbols() {
		if md, ok := c.engine.MarketData(symbol); ok {
			c.gen.GenerateOrders(ctx, symbol, md.LastPrice, 10)
		}
	}
	fmt.Fprintln(c.out, "Generated additional mock orders for all markets")
}

func parseSide(s string) orderbook.Side {
	if strings.EqualFold(s, "buy") {
		return orderbook.BUY
	}
	return orderbook.SELL
}
