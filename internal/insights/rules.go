package insights

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"trading-journal/internal/analytics"
	"trading-journal/internal/models"
)

// emotionKeywords flag a psychology entry as emotional. Matching is
// case-insensitive substring.
var emotionKeywords = []string{"fear", "greed", "panic", "frustrated"}

// countEmotionalTrades counts trades whose calendar date matches a psychology
// entry containing an emotion keyword.
func countEmotionalTrades(records []models.TradeRecord, entries []models.PsychologyEntry) int {
	emotionalDays := make(map[time.Time]struct{})
	for _, e := range entries {
		text := strings.ToLower(e.Entry)
		for _, kw := range emotionKeywords {
			if strings.Contains(text, kw) {
				emotionalDays[e.Day()] = struct{}{}
				break
			}
		}
	}
	if len(emotionalDays) == 0 {
		return 0
	}

	count := 0
	for _, t := range records {
		if _, ok := emotionalDays[t.Day()]; ok {
			count++
		}
	}
	return count
}

// Insight trigger thresholds.
const (
	excellentWinRate = 70.0
	poorWinRate      = 40.0
	strongPF         = 2.0
	weakConsistency  = 50.0
)

// buildInsights applies each independent insight rule in a stable order.
func buildInsights(stats analytics.SetStats, pf, cons float64, trades int) []Insight {
	insights := []Insight{}

	if stats.WinRate >= excellentWinRate {
		insights = append(insights, Insight{
			Level:   "success",
			Title:   "Excellent win rate",
			Message: fmt.Sprintf("You are winning %.2f%% of your trades. Keep doing what works.", stats.WinRate),
		})
	}
	if stats.WinRate < poorWinRate {
		insights = append(insights, Insight{
			Level:   "warning",
			Title:   "Low win rate",
			Message: fmt.Sprintf("Only %.2f%% of your trades are winners. Review your entry criteria.", stats.WinRate),
		})
	}
	if pf < 1 {
		insights = append(insights, Insight{
			Level:   "danger",
			Title:   "Losses exceed wins",
			Message: fmt.Sprintf("Your profit factor is %.2f. You are losing more than you make.", pf),
		})
	}
	if pf >= strongPF {
		insights = append(insights, Insight{
			Level:   "success",
			Title:   "Strong profit factor",
			Message: fmt.Sprintf("Your winners outweigh your losers %.2f to 1.", pf),
		})
	}
	if trades >= consistencyMinCount && cons < weakConsistency {
		insights = append(insights, Insight{
			Level:   "warning",
			Title:   "Inconsistent results",
			Message: "Your per-trade P&L varies widely. Consider standardizing position sizes.",
		})
	}

	return insights
}

// buildRecommendations suggests prioritized actions from the history.
func buildRecommendations(records []models.TradeRecord, emotional int) []Recommendation {
	recs := []Recommendation{}

	if emotional > 0 {
		recs = append(recs, Recommendation{
			Priority: "high",
			Action:   "Pause trading on emotional days",
			Reason:   fmt.Sprintf("%d trade(s) coincide with emotional psychology entries.", emotional),
		})
	}

	if best, ok := bestSetup(records); ok {
		recs = append(recs, Recommendation{
			Priority: "medium",
			Action:   fmt.Sprintf("Focus on your %q setup", best.Key),
			Reason: fmt.Sprintf("It has the highest total net (%.2f over %d trades, %.2f%% win rate).",
				best.TotalNet, best.Trades, best.WinRate),
		})
	}

	if broken := rulesBrokenRatio(records); broken > 0.2 {
		recs = append(recs, Recommendation{
			Priority: "high",
			Action:   "Stick to your trading rules",
			Reason:   fmt.Sprintf("%.0f%% of trades were taken against your own rules.", broken*100),
		})
	}

	return recs
}

// bestSetup picks the named setup with the highest total net among setups
// with at least 3 trades. Sentinel (unspecified) groups are ignored.
func bestSetup(records []models.TradeRecord) (analytics.RollupRow, bool) {
	rows := analytics.Rollup(records, analytics.BySetup)
	candidates := rows[:0]
	for _, row := range rows {
		if row.Key != analytics.SetupUnspecified && row.Trades >= 3 {
			candidates = append(candidates, row)
		}
	}
	if len(candidates) == 0 {
		return analytics.RollupRow{}, false
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].TotalNet > candidates[j].TotalNet
	})
	if candidates[0].TotalNet <= 0 {
		return analytics.RollupRow{}, false
	}
	return candidates[0], true
}

func rulesBrokenRatio(records []models.TradeRecord) float64 {
	if len(records) == 0 {
		return 0
	}
	broken := 0
	for _, t := range records {
		if !strings.EqualFold(t.RuleFollowed, "Yes") {
			broken++
		}
	}
	return float64(broken) / float64(len(records))
}

// Alert trigger thresholds.
const (
	overtradingCount  = 5 // more than this many trades today triggers an alert
	streakWindow      = 5
	streakLossTrigger = 4
)

// buildAlerts checks same-day overtrading and recent losing streaks against
// the reference time.
func buildAlerts(records []models.TradeRecord, now time.Time) []Alert {
	alerts := []Alert{}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	todayCount := 0
	for _, t := range records {
		if t.Day().Equal(today) {
			todayCount++
		}
	}
	if todayCount > overtradingCount {
		alerts = append(alerts, Alert{
			Kind:    "overtrading",
			Message: fmt.Sprintf("%d trades logged today. Consider stepping away.", todayCount),
		})
	}

	if len(records) >= streakWindow {
		sorted := make([]models.TradeRecord, len(records))
		copy(sorted, records)
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].Date.Before(sorted[j].Date)
		})
		losses := 0
		for _, t := range sorted[len(sorted)-streakWindow:] {
			if !t.IsWin() {
				losses++
			}
		}
		if losses >= streakLossTrigger {
			alerts = append(alerts, Alert{
				Kind:    "losing-streak",
				Message: fmt.Sprintf("%d of your last %d trades were losses. Reduce size or take a break.", losses, streakWindow),
			})
		}
	}

	return alerts
}
