package models

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseDirection(t *testing.T) {
	assert.Equal(t, Long, ParseDirection("Long"))
	assert.Equal(t, Long, ParseDirection("long"))
	assert.Equal(t, Long, ParseDirection("  LONG  "))
	assert.Equal(t, Short, ParseDirection("Short"))
	assert.Equal(t, Short, ParseDirection("short"))
	assert.Equal(t, Short, ParseDirection(""))
	assert.Equal(t, Short, ParseDirection("sideways"))
}

func TestNormalizeDefaults(t *testing.T) {
	trade := TradeRecord{
		Symbol:    "  reliance  ",
		Direction: "long",
	}
	trade.Normalize()

	assert.NotEmpty(t, trade.ID)
	assert.Equal(t, "reliance", trade.Symbol)
	assert.Equal(t, Long, trade.Direction)
	assert.Equal(t, DefaultTrend, trade.Trend)
	assert.Equal(t, DefaultRuleFollowed, trade.RuleFollowed)
}

func TestNormalizeWithConfiguredDefaults(t *testing.T) {
	trade := TradeRecord{Symbol: "TCS"}
	trade.NormalizeWithDefaults("Down", "No")

	assert.Equal(t, "Down", trade.Trend)
	assert.Equal(t, "No", trade.RuleFollowed)

	// Explicit values still win over configured defaults
	explicit := TradeRecord{Trend: "Sideways", RuleFollowed: "Yes"}
	explicit.NormalizeWithDefaults("Down", "No")
	assert.Equal(t, "Sideways", explicit.Trend)
	assert.Equal(t, "Yes", explicit.RuleFollowed)

	// Blank configured defaults fall back to the stock constants
	fallback := TradeRecord{}
	fallback.NormalizeWithDefaults("", "")
	assert.Equal(t, DefaultTrend, fallback.Trend)
	assert.Equal(t, DefaultRuleFollowed, fallback.RuleFollowed)
}

func TestNormalizePreservesExplicitValues(t *testing.T) {
	trade := TradeRecord{
		ID:           "keep-me",
		Trend:        "Down",
		RuleFollowed: "No",
		Setup:        "  ORB  ",
	}
	trade.Normalize()

	assert.Equal(t, "keep-me", trade.ID)
	assert.Equal(t, "Down", trade.Trend)
	assert.Equal(t, "No", trade.RuleFollowed)
	assert.Equal(t, "ORB", trade.Setup)
}

func TestNewIDUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := NewID()
		assert.False(t, seen[id], "duplicate id %s", id)
		assert.True(t, strings.Contains(id, "-"))
		seen[id] = true
	}
}

func TestNetWithoutCharges(t *testing.T) {
	trade := TradeRecord{}
	assert.Equal(t, 0.0, trade.Net())
	assert.False(t, trade.IsWin())
	assert.False(t, trade.HasCharges())
}

func TestIsWin(t *testing.T) {
	win := TradeRecord{Charges: &ChargeBreakdown{Net: 10.5}}
	loss := TradeRecord{Charges: &ChargeBreakdown{Net: -3.2}}
	flat := TradeRecord{Charges: &ChargeBreakdown{Net: 0}}

	assert.True(t, win.IsWin())
	assert.False(t, loss.IsWin())
	assert.False(t, flat.IsWin())
}

func TestDay(t *testing.T) {
	trade := TradeRecord{Date: time.Date(2026, 8, 20, 14, 35, 12, 0, time.UTC)}
	day := trade.Day()

	assert.Equal(t, time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC), day)
}
