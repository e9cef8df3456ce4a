// Package analytics provides the pure aggregation pipeline over trade
// records: rollups, equity curve, streak statistics, and time-pattern
// analysis. Every function takes the record collection as a parameter and
// returns a derived view; nothing here caches or mutates state, so a full
// recompute on every change is safe and expected.
package analytics

import (
	"strings"
	"time"

	"trading-journal/internal/models"
)

// Outcome narrows a subset to winning or losing trades.
type Outcome string

const (
	OutcomeAll    Outcome = ""
	OutcomeWins   Outcome = "wins"
	OutcomeLosses Outcome = "losses"
)

// Filter selects a subset of records. Zero values match everything, so the
// zero Filter is a no-op.
type Filter struct {
	From    time.Time
	To      time.Time
	Text    string
	Outcome Outcome
}

// Apply returns the records matching the filter, in input order. The input
// slice is never mutated.
func Apply(records []models.TradeRecord, f Filter) []models.TradeRecord {
	out := make([]models.TradeRecord, 0, len(records))
	needle := strings.ToLower(strings.TrimSpace(f.Text))
	for _, t := range records {
		if !f.From.IsZero() && t.Day().Before(dayOf(f.From)) {
			continue
		}
		if !f.To.IsZero() && t.Day().After(dayOf(f.To)) {
			continue
		}
		if needle != "" && !matchesText(&t, needle) {
			continue
		}
		switch f.Outcome {
		case OutcomeWins:
			if !t.IsWin() {
				continue
			}
		case OutcomeLosses:
			if t.IsWin() {
				continue
			}
		}
		out = append(out, t)
	}
	return out
}

func matchesText(t *models.TradeRecord, needle string) bool {
	for _, field := range []string{t.Symbol, t.Setup, t.Emotion, t.Remarks} {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}

func dayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
