// Package charges implements the intraday equity charge and P&L calculator.
//
// All formulas follow the NSE intraday equity fee schedule: brokerage capped
// at ₹20 per order pair, STT on the sell leg, exchange transaction charges,
// stamp duty, SEBI turnover fees, and 18% GST on brokerage plus exchange
// charges.
package charges

import (
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"trading-journal/internal/models"
)

// Fee rates. Brokerage and exchange charges apply to turnover (both legs),
// STT applies to the sell leg only.
const (
	brokerageRate = 0.0003
	brokerageCap  = 20.0
	sttRate       = 0.00025
	exchangeRate  = 0.0000375
	stampDutyRate = 0.00003
	sebiRate      = 0.000001
	gstRate       = 0.18
)

// Round2 rounds a monetary value to 2 decimal places, half away from zero.
func Round2(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return f
}

// Compute converts raw trade inputs into a fully itemized charge breakdown
// and net P&L. It is pure and never fails: zero or degenerate inputs produce
// a deterministic all-zero breakdown, a deliberate leniency for live form
// previews. Every intermediate is computed from unrounded inputs, then each
// output field is rounded once. Net is reconstructed from the rounded Gross
// and TotalCharges so Net == Gross - TotalCharges holds exactly on the
// returned value.
func Compute(direction models.Direction, quantity, buyPrice, sellPrice float64) models.ChargeBreakdown {
	turnover := quantity * (buyPrice + sellPrice)

	brokerage := turnover * brokerageRate
	if brokerage > brokerageCap {
		brokerage = brokerageCap
	}
	stt := sellPrice * quantity * sttRate
	exchange := turnover * exchangeRate
	stamp := turnover * stampDutyRate
	sebi := turnover * sebiRate
	gst := gstRate * (brokerage + exchange)
	total := brokerage + stt + exchange + stamp + sebi + gst

	gross := (sellPrice - buyPrice) * quantity
	if direction != models.Long {
		gross = (buyPrice - sellPrice) * quantity
	}

	b := models.ChargeBreakdown{
		Turnover:        Round2(turnover),
		Brokerage:       Round2(brokerage),
		STT:             Round2(stt),
		ExchangeCharges: Round2(exchange),
		StampDuty:       Round2(stamp),
		SEBIFees:        Round2(sebi),
		GST:             Round2(gst),
		TotalCharges:    Round2(total),
		Gross:           Round2(gross),
	}
	b.Net = Round2(b.Gross - b.TotalCharges)
	return b
}

// Attach recomputes and stores the breakdown on a record. Call whenever
// quantity, prices, or direction change.
func Attach(t *models.TradeRecord) {
	b := Compute(t.Direction, t.Quantity, t.BuyPrice, t.SellPrice)
	t.Charges = &b
}

// Coerce parses a numeric form or spreadsheet field, treating anything
// unparseable (or non-finite) as 0.
func Coerce(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
