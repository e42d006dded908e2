package logging

import (
	"context"
	"testing"
)

func TestWithLoggerRoundTrip(t *testing.T) {
	base := NewLogger("test", DEBUG)
	ctx := WithLogger(context.Background(), base)

	got, _ := GetLogger(ctx)
	if got != base {
		t.Fatal("GetLogger should return the logger stored in the context")
	}
}

func TestGetLoggerCachesInContext(t *testing.T) {
	log, ctx := GetLogger(context.Background())
	if log == nil {
		t.Fatal("expected a logger")
	}

	again, _ := GetLogger(ctx)
	if again != log {
		t.Error("repeated GetLogger on the returned context should reuse the logger")
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]LogLevel{
		"debug":   DEBUG,
		"warn":    WARN,
		"error":   ERROR,
		"fatal":   FATAL,
		"info":    INFO,
		"unknown": INFO,
		"":        INFO,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}
