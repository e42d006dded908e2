package main

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tradecore/trading-engine/pkg/mockgen"
	"github.com/tradecore/trading-engine/pkg/orderbook"
)

func newTestConsole(t *testing.T, input string, showPrompt bool) (*console, *bytes.Buffer, *orderbook.Engine) {
	t.Helper()
	engine := orderbook.NewEngine()
	gen := mockgen.NewGenerator(engine, 1)
	out := &bytes.Buffer{}
	c := newConsole(engine, gen, strings.NewReader(input), out, showPrompt)
	return c, out, engine
}

func TestRunStopsOnContextCancel(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()

	engine := orderbook.NewEngine()
	out := &bytes.Buffer{}
	c := newConsole(engine, mockgen.NewGenerator(engine, 1), pr, out, true)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		c.run(ctx)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("run did not stop after context cancellation")
	}
	if !strings.Contains(out.String(), "Shutting down...") {
		t.Errorf("expected shutdown notice, got %q", out.String())
	}
}

func TestRunStopsOnInputEOF(t *testing.T) {
	c, out, _ := newTestConsole(t, "", true)

	done := make(chan struct{})
	go func() {
		c.run(context.Background())
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("run did not stop at end of input")
	}
	if !strings.Contains(out.String(), "Shutting down...") {
		t.Errorf("expected shutdown notice, got %q", out.String())
	}
}

func TestPromptToggleSuppressesMenu(t *testing.T) {
	c, out, _ := newTestConsole(t, "8\n", false)
	c.run(context.Background())

	if strings.Contains(out.String(), "TRADING SYSTEM CLI") {
		t.Errorf("menu should be suppressed when prompting is off: %q", out.String())
	}
	if !strings.Contains(out.String(), "Exiting...") {
		t.Errorf("results should still be printed: %q", out.String())
	}

	c, out, _ = newTestConsole(t, "8\n", true)
	c.run(context.Background())
	if !strings.Contains(out.String(), "TRADING SYSTEM CLI") {
		t.Errorf("menu should be printed when prompting is on: %q", out.String())
	}
}

func TestRestingLimitOrderPrintsNoMarketMessage(t *testing.T) {
	c, out, engine := newTestConsole(t, "5\nAAPL\nbuy\n10\n100\n8\n", false)
	engine.CreateMarket("AAPL", decimal.NewFromInt(150))

	c.run(context.Background())

	if strings.Contains(out.String(), "No trades executed") {
		t.Errorf("a resting limit order is not a failed match: %q", out.String())
	}
	if !strings.Contains(out.String(), "Order placed") {
		t.Errorf("expected order confirmation: %q", out.String())
	}

	bids, _, _ := engine.Snapshot("AAPL")
	if len(bids) != 1 {
		t.Fatalf("expected the limit order to rest, got %d bids", len(bids))
	}
}

func TestMarketOrderNoLiquidityMessage(t *testing.T) {
	c, out, engine := newTestConsole(t, "6\nAAPL\nbuy\n10\n8\n", false)
	engine.CreateMarket("AAPL", decimal.NewFromInt(150))

	c.run(context.Background())

	if !strings.Contains(out.String(), "No trades executed. No matching orders in the book.") {
		t.Errorf("expected the no-liquidity notice for a market order: %q", out.String())
	}
}

func TestRejectsNonPositiveQuantity(t *testing.T) {
	c, out, engine := newTestConsole(t, "5\nAAPL\nbuy\n-3\n8\n", false)
	engine.CreateMarket("AAPL", decimal.NewFromInt(150))

	c.run(context.Background())

	if !strings.Contains(out.String(), "Invalid quantity") {
		t.Errorf("expected rejection of non-positive quantity: %q", out.String())
	}
	bids, asks, _ := engine.Snapshot("AAPL")
	if len(bids) != 0 || len(asks) != 0 {
		t.Errorf("invalid input must never reach the book: %d/%d", len(bids), len(asks))
	}
}
