package analytics

import (
	"sort"
	"time"

	"trading-journal/internal/charges"
	"trading-journal/internal/models"
)

// EquityPoint is one step of the cumulative equity curve.
type EquityPoint struct {
	Date          time.Time
	Net           float64
	CumulativeNet float64
}

// EquityCurve sorts records ascending by date (stable, so same-day trades
// keep input order) and accumulates net P&L. The running sum is rounded at
// every step; the negligible compounding of rounding error across the series
// is intentional and kept for numeric parity.
func EquityCurve(records []models.TradeRecord) []EquityPoint {
	sorted := make([]models.TradeRecord, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})

	points := make([]EquityPoint, 0, len(sorted))
	var cumulative float64
	for _, t := range sorted {
		cumulative = charges.Round2(cumulative + t.Net())
		points = append(points, EquityPoint{
			Date:          t.Date,
			Net:           t.Net(),
			CumulativeNet: cumulative,
		})
	}
	return points
}
