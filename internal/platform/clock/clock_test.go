package clock_test

import (
	"testing"
	"time"

	"healthlog/internal/platform/clock"
)

func TestParseDate(t *testing.T) {
	t.Parallel()
	cases := map[string]bool{
		"2025-01-01": true,
		"2024-02-29": true,
		"2025-02-29": false,
		"2025-1-5":   false,
		"":           false,
		"yesterday":  false,
	}
	for input, want := range cases {
		if _, ok := clock.ParseDate(input); ok != want {
			t.Fatalf("ParseDate(%q) ok=%t, want %t", input, ok, want)
		}
	}
}

func TestTodayUsesClock(t *testing.T) {
	t.Parallel()
	c := clock.Fixed{At: time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC)}
	if got := clock.Today(c); got != "2025-03-14" {
		t.Fatalf("expected 2025-03-14, got %s", got)
	}
}
