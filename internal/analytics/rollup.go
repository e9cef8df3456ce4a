package analytics

import (
	"trading-journal/internal/charges"
	"trading-journal/internal/models"
)

// Dimension is the categorical axis a rollup groups by.
type Dimension string

const (
	ByMonth          Dimension = "month"
	BySetup          Dimension = "setup"
	ByEmotion        Dimension = "emotion"
	ByDirectionTrend Dimension = "direction-trend"
)

// Sentinel group keys for blank classification fields. Each dimension keeps
// its own sentinel string for display compatibility.
const (
	SetupUnspecified    = "Unspecified"
	EmotionNotSpecified = "Not Specified"
	TrendUnknown        = "Unknown"
)

// monthKeyFormat renders "MMM YYYY", e.g. "Mar 2025".
const monthKeyFormat = "Jan 2006"

// RollupRow is one group's summary within a rollup.
type RollupRow struct {
	Key      string
	Trades   int
	Wins     int
	Losses   int
	WinRate  float64
	TotalNet float64
	AvgNet   float64
}

// Rollup groups records along the given dimension and summarizes each group.
// Groups appear in order of first appearance; callers sort explicitly when a
// different order matters. A win is net > 0, a loss is net <= 0.
func Rollup(records []models.TradeRecord, dim Dimension) []RollupRow {
	type acc struct {
		trades int
		wins   int
		total  float64
	}

	var keys []string
	groups := make(map[string]*acc)

	for _, t := range records {
		key := groupKey(&t, dim)
		g, ok := groups[key]
		if !ok {
			g = &acc{}
			groups[key] = g
			keys = append(keys, key)
		}
		g.trades++
		if t.IsWin() {
			g.wins++
		}
		g.total += t.Net()
	}

	rows := make([]RollupRow, 0, len(keys))
	for _, key := range keys {
		g := groups[key]
		rows = append(rows, RollupRow{
			Key:      key,
			Trades:   g.trades,
			Wins:     g.wins,
			Losses:   g.trades - g.wins,
			WinRate:  winRate(g.wins, g.trades),
			TotalNet: charges.Round2(g.total),
			AvgNet:   charges.Round2(g.total / float64(g.trades)),
		})
	}
	return rows
}

func groupKey(t *models.TradeRecord, dim Dimension) string {
	switch dim {
	case BySetup:
		if t.Setup == "" {
			return SetupUnspecified
		}
		return t.Setup
	case ByEmotion:
		if t.Emotion == "" {
			return EmotionNotSpecified
		}
		return t.Emotion
	case ByDirectionTrend:
		trend := t.Trend
		if trend == "" {
			trend = TrendUnknown
		}
		return string(t.Direction) + "→" + trend
	default:
		return t.Date.Format(monthKeyFormat)
	}
}

// winRate returns wins/total as a percentage rounded to 2 decimals, or 0 for
// an empty set. Every ratio in this package short-circuits on a zero
// denominator.
func winRate(wins, total int) float64 {
	if total == 0 {
		return 0
	}
	return charges.Round2(float64(wins) / float64(total) * 100)
}
