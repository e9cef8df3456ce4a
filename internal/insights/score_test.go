package insights

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"trading-journal/internal/models"
)

func tradeOn(date time.Time, net float64) models.TradeRecord {
	return models.TradeRecord{
		Date:         date,
		Symbol:       "TEST",
		RuleFollowed: "Yes",
		Charges:      &models.ChargeBreakdown{Net: net},
	}
}

func day(d int) time.Time {
	return time.Date(2025, 3, d, 0, 0, 0, 0, time.UTC)
}

func TestScoreEmptyJournal(t *testing.T) {
	r := Score(nil, nil, 0)

	assert.Equal(t, 0, r.OverallScore)
	assert.Equal(t, 0.0, r.WinRate)
	assert.Equal(t, 0.0, r.ProfitFactor)
	assert.Equal(t, RiskLow, r.RiskLevel)
	assert.NotNil(t, r.Insights)
	assert.Empty(t, r.Insights)
	assert.NotNil(t, r.Recommendations)
	assert.Empty(t, r.Recommendations)
	assert.NotNil(t, r.Alerts)
	assert.Empty(t, r.Alerts)
	assert.Nil(t, r.Patterns.BestDay)
}

func TestScoreCompositeWeights(t *testing.T) {
	// One winning, one losing trade on separate days:
	// winRate 50, pf = 100/50 = 2, fewer than 10 trades so consistency
	// defaults to 50, no psychology entries.
	// composite = 50*0.4 + min(2*10, 30) + 50*0.2 + 0*0.1 = 20 + 20 + 10 = 50
	records := []models.TradeRecord{
		tradeOn(day(10), 100),
		tradeOn(day(11), -50),
	}
	now := day(20)

	r := ScoreAt(records, nil, now, 0)

	assert.Equal(t, 50, r.OverallScore)
	assert.Equal(t, 50.0, r.WinRate)
	assert.Equal(t, 2.0, r.ProfitFactor)
	assert.Equal(t, 50.0, r.Consistency)
	assert.Equal(t, 0.0, r.PsychologyScore)
}

func TestScoreProfitFactorContributionCapped(t *testing.T) {
	// All winners: pf = total wins (no losses), contribution capped at 30.
	// winRate 100 -> 40, consistency default 50 -> 10, total 80.
	records := []models.TradeRecord{
		tradeOn(day(10), 100),
		tradeOn(day(11), 200),
	}
	r := ScoreAt(records, nil, day(20), 0)

	assert.Equal(t, 300.0, r.ProfitFactor)
	assert.Equal(t, 80, r.OverallScore)
}

func TestProfitFactorNoLosses(t *testing.T) {
	records := []models.TradeRecord{
		tradeOn(day(10), 30),
		tradeOn(day(10), 70),
	}
	assert.Equal(t, 100.0, profitFactor(records))
}

func TestProfitFactorZeroNetCountsAsLoss(t *testing.T) {
	// A zero-net trade adds nothing to either side
	records := []models.TradeRecord{
		tradeOn(day(10), 100),
		tradeOn(day(10), 0),
		tradeOn(day(10), -50),
	}
	assert.Equal(t, 2.0, profitFactor(records))
}

func TestConsistencyBelowMinCount(t *testing.T) {
	records := []models.TradeRecord{
		tradeOn(day(10), 100),
		tradeOn(day(11), -50),
	}
	assert.Equal(t, 50.0, consistency(records))
}

func TestConsistencyZeroMean(t *testing.T) {
	var records []models.TradeRecord
	for i := 0; i < 5; i++ {
		records = append(records, tradeOn(day(10), 10))
		records = append(records, tradeOn(day(10), -10))
	}
	assert.Equal(t, 50.0, consistency(records))
}

func TestConsistencyIdenticalNets(t *testing.T) {
	// Ten identical trades: zero dispersion, perfect consistency
	var records []models.TradeRecord
	for i := 0; i < 10; i++ {
		records = append(records, tradeOn(day(10+i), 25))
	}
	assert.Equal(t, 100.0, consistency(records))
}

func TestPsychologyScore(t *testing.T) {
	now := day(20)
	entries := []models.PsychologyEntry{
		{Date: day(19), Entry: "calm"},
		{Date: day(18), Entry: "focused"},
		{Date: day(1), Entry: "old entry"}, // outside the 7-day window
	}
	assert.Equal(t, 40.0, psychologyScore(entries, now))

	// Six recent entries cap at 100
	var many []models.PsychologyEntry
	for i := 0; i < 6; i++ {
		many = append(many, models.PsychologyEntry{Date: day(19), Entry: "e"})
	}
	assert.Equal(t, 100.0, psychologyScore(many, now))
}

func TestCountEmotionalTrades(t *testing.T) {
	records := []models.TradeRecord{
		tradeOn(day(10), 100),
		tradeOn(day(10), -50),
		tradeOn(day(11), 30),
	}
	entries := []models.PsychologyEntry{
		{Date: day(10), Entry: "Full of GREED after the open"},
		{Date: day(11), Entry: "calm and patient"},
	}

	assert.Equal(t, 2, countEmotionalTrades(records, entries))
	assert.Equal(t, 0, countEmotionalTrades(records, nil))
}

func TestRiskBuckets(t *testing.T) {
	assert.Equal(t, RiskVeryLow, riskBucket(0))
	assert.Equal(t, RiskVeryLow, riskBucket(1))
	assert.Equal(t, RiskLow, riskBucket(2))
	assert.Equal(t, RiskLow, riskBucket(4))
	assert.Equal(t, RiskMedium, riskBucket(5))
	assert.Equal(t, RiskMedium, riskBucket(7))
	assert.Equal(t, RiskHigh, riskBucket(8))
	assert.Equal(t, RiskHigh, riskBucket(12))
}

func TestRiskLevelHighForChurning(t *testing.T) {
	// 7 trades in one day, all losses: avg/day > 5 (+3), win rate 0 (+3),
	// pf 0 (+3) => score 9 => HIGH
	var records []models.TradeRecord
	for i := 0; i < 7; i++ {
		records = append(records, tradeOn(day(10), -10))
	}
	r := ScoreAt(records, nil, day(20), 0)

	assert.Equal(t, RiskHigh, r.RiskLevel)
}

func TestInsightRules(t *testing.T) {
	// 8 winners, 2 losers: winRate 80 (excellent), pf = 800/100 = 8 (strong)
	var records []models.TradeRecord
	for i := 0; i < 8; i++ {
		records = append(records, tradeOn(day(1+i), 100))
	}
	records = append(records, tradeOn(day(9), -50))
	records = append(records, tradeOn(day(10), -50))

	r := ScoreAt(records, nil, day(20), 0)

	titles := make([]string, 0, len(r.Insights))
	for _, ins := range r.Insights {
		titles = append(titles, ins.Title)
	}
	assert.Contains(t, titles, "Excellent win rate")
	assert.Contains(t, titles, "Strong profit factor")
	assert.NotContains(t, titles, "Low win rate")
	assert.NotContains(t, titles, "Losses exceed wins")
}

func TestRecommendationBestSetup(t *testing.T) {
	var records []models.TradeRecord
	for i := 0; i < 3; i++ {
		trade := tradeOn(day(10+i), 50)
		trade.Setup = "Breakout"
		records = append(records, trade)
	}
	// Unspecified setups never win the recommendation
	records = append(records, tradeOn(day(14), 500))

	r := ScoreAt(records, nil, day(20), 0)

	found := false
	for _, rec := range r.Recommendations {
		if rec.Priority == "medium" {
			assert.Contains(t, rec.Action, "Breakout")
			found = true
		}
	}
	assert.True(t, found, "expected a best-setup recommendation")
}

func TestRecommendationRulesBroken(t *testing.T) {
	var records []models.TradeRecord
	for i := 0; i < 7; i++ {
		records = append(records, tradeOn(day(1+i), 10))
	}
	for i := 0; i < 3; i++ {
		trade := tradeOn(day(8+i), 10)
		trade.RuleFollowed = "No"
		records = append(records, trade)
	}

	r := ScoreAt(records, nil, day(20), 0)

	found := false
	for _, rec := range r.Recommendations {
		if rec.Action == "Stick to your trading rules" {
			found = true
		}
	}
	assert.True(t, found, "expected a rules recommendation at 30%% broken")
}

func TestAlertOvertrading(t *testing.T) {
	now := day(10)
	var records []models.TradeRecord
	for i := 0; i < 6; i++ {
		records = append(records, tradeOn(day(10), 10))
	}

	r := ScoreAt(records, nil, now, 0)

	kinds := make([]string, 0, len(r.Alerts))
	for _, a := range r.Alerts {
		kinds = append(kinds, a.Kind)
	}
	assert.Contains(t, kinds, "overtrading")

	// Five trades today is at the threshold, not over it
	r = ScoreAt(records[:5], nil, now, 0)
	for _, a := range r.Alerts {
		assert.NotEqual(t, "overtrading", a.Kind)
	}
}

func TestAlertLosingStreak(t *testing.T) {
	records := []models.TradeRecord{
		tradeOn(day(1), 100),
		tradeOn(day(2), 100),
		tradeOn(day(3), -10),
		tradeOn(day(4), -10),
		tradeOn(day(5), -10),
		tradeOn(day(6), 5),
		tradeOn(day(7), -10),
	}
	// Last 5 by date: -10, -10, -10, +5, -10 => 4 losses
	r := ScoreAt(records, nil, day(20), 0)

	kinds := make([]string, 0, len(r.Alerts))
	for _, a := range r.Alerts {
		kinds = append(kinds, a.Kind)
	}
	assert.Contains(t, kinds, "losing-streak")
}

func TestTimePatternsRequireNoiseFloor(t *testing.T) {
	// Single trade per weekday bucket: below the floor of 2, no patterns
	records := []models.TradeRecord{
		tradeOn(day(10), 10),
		tradeOn(day(11), 20),
	}
	r := ScoreAt(records, nil, day(20), 0)

	assert.Nil(t, r.Patterns.BestDay)
	assert.Nil(t, r.Patterns.BestHour)
}

func TestTimePatternsConfigurableFloor(t *testing.T) {
	// One trade per weekday bucket
	records := []models.TradeRecord{
		tradeOn(day(10), 10),
		tradeOn(day(11), 20),
	}

	// Floor 1 admits single-trade buckets
	r := ScoreAt(records, nil, day(20), 1)
	assert.NotNil(t, r.Patterns.BestDay)

	// A higher floor suppresses them again
	r = ScoreAt(records, nil, day(20), 3)
	assert.Nil(t, r.Patterns.BestDay)

	// Zero falls back to the stock floor of 2
	r = ScoreAt(records, nil, day(20), 0)
	assert.Nil(t, r.Patterns.BestDay)
}

func TestTimePatternsBestAndWorst(t *testing.T) {
	monday := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	tuesday := monday.AddDate(0, 0, 1)

	records := []models.TradeRecord{
		tradeOn(monday, 10),
		tradeOn(monday.AddDate(0, 0, 7), 20),
		tradeOn(tuesday, -10),
		tradeOn(tuesday.AddDate(0, 0, 7), -20),
	}
	r := ScoreAt(records, nil, day(25), 0)

	if assert.NotNil(t, r.Patterns.BestDay) {
		assert.Equal(t, "Monday", r.Patterns.BestDay.Key)
	}
	if assert.NotNil(t, r.Patterns.WorstDay) {
		assert.Equal(t, "Tuesday", r.Patterns.WorstDay.Key)
	}
}
