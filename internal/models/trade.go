// Package models defines the core data types for the trading journal.
package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Direction indicates which side a trade was taken on.
type Direction string

const (
	Long  Direction = "Long"
	Short Direction = "Short"
)

// ParseDirection maps free-text input to a Direction. Anything that is not
// "Long" is treated as Short, matching the calculator's sign convention for
// unrecognized values.
func ParseDirection(s string) Direction {
	if strings.EqualFold(strings.TrimSpace(s), string(Long)) {
		return Long
	}
	return Short
}

// Defaults applied to blank classification fields by Normalize.
const (
	DefaultTrend        = "Up"
	DefaultRuleFollowed = "Yes"
)

// Screenshot is attachment metadata carried on a trade. The engines never
// inspect it.
type Screenshot struct {
	Name      string `json:"name"`
	Thumbnail string `json:"thumbnail"`
	FullSize  string `json:"full_size"`
}

// TradeRecord is one logged trade. A record is valid for aggregation only
// once Charges has been populated, and Charges must be recomputed whenever
// Quantity, BuyPrice, SellPrice, or Direction changes.
type TradeRecord struct {
	ID           string
	Date         time.Time
	Symbol       string
	Direction    Direction
	Quantity     float64
	BuyPrice     float64
	SellPrice    float64
	EntryTime    string // "HH:MM", optional
	ExitTime     string // "HH:MM", optional
	Trend        string
	RuleFollowed string
	Emotion      string
	RiskReward   string
	Setup        string
	Remarks      string
	Screenshots  []Screenshot
	Charges      *ChargeBreakdown
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ChargeBreakdown is the itemized fee and P&L result for a trade. Every
// field is rounded to 2 decimal places.
type ChargeBreakdown struct {
	Turnover        float64
	Brokerage       float64
	STT             float64
	ExchangeCharges float64
	StampDuty       float64
	SEBIFees        float64
	GST             float64
	TotalCharges    float64
	Gross           float64
	Net             float64
}

// NewID generates a client-side record identifier: creation time plus a
// random suffix, opaque and stable for the record's lifetime.
func NewID() string {
	return fmt.Sprintf("%d-%s", time.Now().UnixMilli(), uuid.NewString()[:8])
}

// Normalize applies the stock field defaults exactly once at the record
// boundary (creation, edit, import, load), so the aggregation code never has
// to default-or-fallback per call site.
func (t *TradeRecord) Normalize() {
	t.NormalizeWithDefaults(DefaultTrend, DefaultRuleFollowed)
}

// NormalizeWithDefaults is Normalize with configured defaults for the blank
// classification fields. Blank defaults fall back to the stock constants.
func (t *TradeRecord) NormalizeWithDefaults(trend, ruleFollowed string) {
	if strings.TrimSpace(trend) == "" {
		trend = DefaultTrend
	}
	if strings.TrimSpace(ruleFollowed) == "" {
		ruleFollowed = DefaultRuleFollowed
	}

	if t.ID == "" {
		t.ID = NewID()
	}
	t.Symbol = strings.TrimSpace(t.Symbol)
	t.Direction = ParseDirection(string(t.Direction))
	if strings.TrimSpace(t.Trend) == "" {
		t.Trend = trend
	}
	if strings.TrimSpace(t.RuleFollowed) == "" {
		t.RuleFollowed = ruleFollowed
	}
	t.Setup = strings.TrimSpace(t.Setup)
	t.Emotion = strings.TrimSpace(t.Emotion)
	t.EntryTime = strings.TrimSpace(t.EntryTime)
	t.ExitTime = strings.TrimSpace(t.ExitTime)
}

// HasCharges reports whether the record carries a computed breakdown.
func (t *TradeRecord) HasCharges() bool {
	return t.Charges != nil
}

// Net returns the record's net P&L, or 0 when charges are not yet computed.
func (t *TradeRecord) Net() float64 {
	if t.Charges == nil {
		return 0
	}
	return t.Charges.Net
}

// IsWin reports whether the trade closed with a positive net P&L.
func (t *TradeRecord) IsWin() bool {
	return t.Net() > 0
}

// Day returns the record's date truncated to calendar-day precision.
func (t *TradeRecord) Day() time.Time {
	return time.Date(t.Date.Year(), t.Date.Month(), t.Date.Day(), 0, 0, 0, 0, t.Date.Location())
}
