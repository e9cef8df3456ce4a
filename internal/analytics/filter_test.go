package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"trading-journal/internal/models"
)

func TestApplyZeroFilterMatchesAll(t *testing.T) {
	records := []models.TradeRecord{
		tradeWithNet(day(10), 10),
		tradeWithNet(day(11), -5),
	}
	out := Apply(records, Filter{})
	assert.Len(t, out, 2)
}

func TestApplyDateRangeIsDayPrecision(t *testing.T) {
	// A trade at 15:30 on the To day is still inside the range
	trade := tradeWithNet(time.Date(2025, 3, 10, 15, 30, 0, 0, time.UTC), 10)
	out := Apply([]models.TradeRecord{trade}, Filter{
		From: time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC),
		To:   time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC),
	})
	assert.Len(t, out, 1)

	out = Apply([]models.TradeRecord{trade}, Filter{To: day(9)})
	assert.Empty(t, out)

	out = Apply([]models.TradeRecord{trade}, Filter{From: day(11)})
	assert.Empty(t, out)
}

func TestApplyTextSearch(t *testing.T) {
	trade := tradeWithNet(day(10), 10)
	trade.Symbol = "RELIANCE"
	trade.Setup = "Opening Range Breakout"
	trade.Emotion = "calm"
	trade.Remarks = "clean entry"

	for _, needle := range []string{"reliance", "BREAKOUT", "Calm", "clean"} {
		out := Apply([]models.TradeRecord{trade}, Filter{Text: needle})
		assert.Len(t, out, 1, "needle %q", needle)
	}

	out := Apply([]models.TradeRecord{trade}, Filter{Text: "revenge"})
	assert.Empty(t, out)
}

func TestApplyOutcome(t *testing.T) {
	win := tradeWithNet(day(10), 10)
	loss := tradeWithNet(day(10), -5)
	flat := tradeWithNet(day(10), 0)
	records := []models.TradeRecord{win, loss, flat}

	wins := Apply(records, Filter{Outcome: OutcomeWins})
	assert.Len(t, wins, 1)
	assert.Equal(t, 10.0, wins[0].Net())

	// Zero net counts as a loss
	losses := Apply(records, Filter{Outcome: OutcomeLosses})
	assert.Len(t, losses, 2)
}

func TestApplyPreservesOrderAndInput(t *testing.T) {
	records := []models.TradeRecord{
		tradeWithNet(day(12), 3),
		tradeWithNet(day(10), 1),
		tradeWithNet(day(11), 2),
	}
	out := Apply(records, Filter{From: day(10)})

	assert.Equal(t, 3.0, out[0].Net())
	assert.Equal(t, 1.0, out[1].Net())
	assert.Equal(t, 2.0, out[2].Net())
	assert.Len(t, records, 3)
}
