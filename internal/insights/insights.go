// Package insights reduces aggregation output, plus an optional psychology
// log, into a composite 0-100 score, a risk classification, and rule-based
// natural-language feedback.
package insights

import (
	"math"
	"time"

	"trading-journal/internal/analytics"
	"trading-journal/internal/models"
)

// RiskLevel buckets the accumulated risk score.
type RiskLevel string

const (
	RiskHigh    RiskLevel = "HIGH"
	RiskMedium  RiskLevel = "MEDIUM"
	RiskLow     RiskLevel = "LOW"
	RiskVeryLow RiskLevel = "VERY_LOW"
)

// Insight is one threshold-triggered observation about the trade history.
type Insight struct {
	Level   string // "success", "warning", "danger"
	Title   string
	Message string
}

// Recommendation is a prioritized suggested action.
type Recommendation struct {
	Priority string // "high", "medium", "low"
	Action   string
	Reason   string
}

// Alert is a same-day behavioral warning.
type Alert struct {
	Kind    string
	Message string
}

// Patterns carries the best and worst time buckets, nil when no bucket
// clears the noise floor.
type Patterns struct {
	BestDay   *analytics.PatternGroup
	WorstDay  *analytics.PatternGroup
	BestHour  *analytics.PatternGroup
	WorstHour *analytics.PatternGroup
}

// Result is the full insight-engine output.
type Result struct {
	OverallScore    int
	WinRate         float64
	ProfitFactor    float64
	Consistency     float64
	PsychologyScore float64
	EmotionalTrades int
	RiskLevel       RiskLevel
	Insights        []Insight
	Recommendations []Recommendation
	Alerts          []Alert
	Patterns        Patterns
}

// Composite score weights and caps.
const (
	winRateWeight       = 0.4
	profitFactorCap     = 30.0
	consistencyWeight   = 0.2
	psychologyWeight    = 0.1
	neutralConsistency  = 50.0
	consistencyMinCount = 10
)

// Score evaluates the trade history against the current clock.
// minPatternTrades is the noise floor for time-pattern buckets; values <= 0
// use the stock floor.
func Score(records []models.TradeRecord, entries []models.PsychologyEntry, minPatternTrades int) Result {
	return ScoreAt(records, entries, time.Now(), minPatternTrades)
}

// ScoreAt evaluates the trade history relative to a reference time, which
// anchors the trailing-window rules (psychology score, overtrading alert).
// It never fails: zero trades produce an empty zero-score result.
func ScoreAt(records []models.TradeRecord, entries []models.PsychologyEntry, now time.Time, minPatternTrades int) Result {
	if len(records) == 0 {
		return Result{
			RiskLevel:       RiskLow,
			Insights:        []Insight{},
			Recommendations: []Recommendation{},
			Alerts:          []Alert{},
		}
	}

	stats := analytics.Stats(records)
	pf := profitFactor(records)
	cons := consistency(records)
	psych := psychologyScore(entries, now)
	emotional := countEmotionalTrades(records, entries)

	composite := stats.WinRate*winRateWeight +
		math.Min(pf*10, profitFactorCap) +
		cons*consistencyWeight +
		psych*psychologyWeight

	r := Result{
		OverallScore:    int(math.Round(composite)),
		WinRate:         stats.WinRate,
		ProfitFactor:    pf,
		Consistency:     cons,
		PsychologyScore: psych,
		EmotionalTrades: emotional,
		RiskLevel:       riskBucket(riskScore(records, stats, pf, emotional)),
		Insights:        buildInsights(stats, pf, cons, len(records)),
		Recommendations: buildRecommendations(records, emotional),
		Alerts:          buildAlerts(records, now),
		Patterns:        timePatterns(records, minPatternTrades),
	}
	return r
}

// profitFactor is total win amount over total loss amount. When there are no
// losing trades it returns the total win amount itself, i.e. treated as
// already capped favorably; the composite score caps its contribution anyway.
func profitFactor(records []models.TradeRecord) float64 {
	var wins, losses float64
	for _, t := range records {
		net := t.Net()
		if net > 0 {
			wins += net
		} else {
			losses += -net
		}
	}
	if losses == 0 {
		return wins
	}
	return wins / losses
}

// consistency scores the relative dispersion of per-trade net P&L on a 0-100
// scale. Below 10 trades, or when mean net is exactly 0 (dispersion
// undefined), it returns the neutral default of 50.
func consistency(records []models.TradeRecord) float64 {
	if len(records) < consistencyMinCount {
		return neutralConsistency
	}

	n := float64(len(records))
	var sum float64
	for _, t := range records {
		sum += t.Net()
	}
	mean := sum / n
	if mean == 0 {
		return neutralConsistency
	}

	var variance float64
	for _, t := range records {
		d := t.Net() - mean
		variance += d * d
	}
	stdDev := math.Sqrt(variance / n)

	return math.Round(math.Max(0, 100-(stdDev/math.Abs(mean))*100))
}

// psychologyScore rewards journaling: 20 points per entry in the trailing 7
// days, capped at 100.
func psychologyScore(entries []models.PsychologyEntry, now time.Time) float64 {
	cutoff := now.AddDate(0, 0, -7)
	count := 0
	for _, e := range entries {
		if e.Date.After(cutoff) && !e.Date.After(now) {
			count++
		}
	}
	return math.Min(100, float64(count)*20)
}

// riskScore accumulates integer risk points from threshold checks on trading
// frequency, win rate, profit factor, and emotional-trade count.
func riskScore(records []models.TradeRecord, stats analytics.SetStats, pf float64, emotional int) int {
	score := 0

	days := distinctDays(records)
	avgPerDay := float64(len(records)) / float64(days)
	switch {
	case avgPerDay > 5:
		score += 3
	case avgPerDay > 3:
		score += 2
	case avgPerDay > 1:
		score += 1
	}

	switch {
	case stats.WinRate < 40:
		score += 3
	case stats.WinRate < 50:
		score += 2
	case stats.WinRate < 60:
		score += 1
	}

	switch {
	case pf < 1:
		score += 3
	case pf < 1.5:
		score += 1
	}

	switch {
	case emotional > 5:
		score += 2
	case emotional > 0:
		score += 1
	}

	return score
}

func riskBucket(score int) RiskLevel {
	switch {
	case score >= 8:
		return RiskHigh
	case score >= 5:
		return RiskMedium
	case score >= 2:
		return RiskLow
	default:
		return RiskVeryLow
	}
}

func distinctDays(records []models.TradeRecord) int {
	days := make(map[time.Time]struct{})
	for _, t := range records {
		days[t.Day()] = struct{}{}
	}
	return len(days)
}

func timePatterns(records []models.TradeRecord, minTrades int) Patterns {
	if minTrades <= 0 {
		minTrades = analytics.DefaultMinPatternTrades
	}
	var p Patterns
	if dow := analytics.DayOfWeekPattern(records, minTrades); len(dow) > 0 {
		best := analytics.Rank(dow, true)
		worst := analytics.Rank(dow, false)
		p.BestDay, p.WorstDay = &best[0], &worst[0]
	}
	if hours := analytics.HourPattern(records, minTrades); len(hours) > 0 {
		best := analytics.Rank(hours, true)
		worst := analytics.Rank(hours, false)
		p.BestHour, p.WorstHour = &best[0], &worst[0]
	}
	return p
}
