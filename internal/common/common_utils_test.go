package common

import (
	"testing"
	"time"
)

func TestFormatTimestamp(t *testing.T) {
	ts := time.Date(2026, time.March, 9, 18, 5, 0, 0, time.FixedZone("AST", 3*60*60))

	if got := FormatTimestamp(ts); got != "09 Mar 2026 | 15:05 UTC" {
		t.Errorf("Expected UTC rendering, got %q", got)
	}
}

func TestOrDefault(t *testing.T) {
	if got := OrDefault("", "N/A"); got != "N/A" {
		t.Errorf("Expected fallback, got %q", got)
	}
	if got := OrDefault("Capt. Ali", "N/A"); got != "Capt. Ali" {
		t.Errorf("Expected value, got %q", got)
	}
}
