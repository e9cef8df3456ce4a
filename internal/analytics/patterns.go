package analytics

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"trading-journal/internal/charges"
	"trading-journal/internal/models"
)

// DefaultMinPatternTrades is the noise floor for time-pattern groups: groups
// with fewer trades are dropped as statistical noise. Tunable via config.
const DefaultMinPatternTrades = 2

// PatternGroup is one time-bucket summary (weekday, hour, or hold duration).
type PatternGroup struct {
	Key     string
	Trades  int
	Wins    int
	WinRate float64
	AvgNet  float64
}

// DayOfWeekPattern groups records by weekday name, dropping groups below the
// noise floor. Groups appear in order of first appearance; use Rank to order
// them by win rate.
func DayOfWeekPattern(records []models.TradeRecord, minTrades int) []PatternGroup {
	return pattern(records, minTrades, func(t *models.TradeRecord) (string, bool) {
		return t.Date.Weekday().String(), true
	})
}

// HourPattern groups records by entry hour parsed from the "HH:MM" entry
// time. Records without a parseable entry time are skipped.
func HourPattern(records []models.TradeRecord, minTrades int) []PatternGroup {
	return pattern(records, minTrades, func(t *models.TradeRecord) (string, bool) {
		minutes, ok := ParseClock(t.EntryTime)
		if !ok {
			return "", false
		}
		return fmt.Sprintf("%02d:00", minutes/60), true
	})
}

func pattern(records []models.TradeRecord, minTrades int, keyFn func(*models.TradeRecord) (string, bool)) []PatternGroup {
	type acc struct {
		trades int
		wins   int
		total  float64
	}
	var keys []string
	groups := make(map[string]*acc)

	for _, t := range records {
		key, ok := keyFn(&t)
		if !ok {
			continue
		}
		g, found := groups[key]
		if !found {
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

	out := make([]PatternGroup, 0, len(keys))
	for _, key := range keys {
		g := groups[key]
		if g.trades < minTrades {
			continue
		}
		out = append(out, PatternGroup{
			Key:     key,
			Trades:  g.trades,
			Wins:    g.wins,
			WinRate: winRate(g.wins, g.trades),
			AvgNet:  charges.Round2(g.total / float64(g.trades)),
		})
	}
	return out
}

// Rank returns a copy of groups stably sorted by win rate: descending ranks
// "best" first, ascending ranks "worst" first. Equal win rates keep their
// input order.
func Rank(groups []PatternGroup, descending bool) []PatternGroup {
	ranked := make([]PatternGroup, len(groups))
	copy(ranked, groups)
	sort.SliceStable(ranked, func(i, j int) bool {
		if descending {
			return ranked[i].WinRate > ranked[j].WinRate
		}
		return ranked[i].WinRate < ranked[j].WinRate
	})
	return ranked
}

// Holding-period buckets by time between entry and exit.
const (
	HoldShort  = "Short"  // <= 30 min
	HoldMedium = "Medium" // 30 min - 2 h
	HoldLong   = "Long"   // > 2 h
)

// DurationBuckets classifies trades with both entry and exit times into
// holding-period buckets. Trades missing either time, or with an exit before
// the entry, are skipped. Buckets with no trades are omitted.
func DurationBuckets(records []models.TradeRecord) []PatternGroup {
	groups := pattern(records, 1, func(t *models.TradeRecord) (string, bool) {
		entry, ok := ParseClock(t.EntryTime)
		if !ok {
			return "", false
		}
		exit, ok := ParseClock(t.ExitTime)
		if !ok || exit < entry {
			return "", false
		}
		return holdBucket(exit - entry), true
	})

	// Fixed Short/Medium/Long presentation order.
	rank := map[string]int{HoldShort: 0, HoldMedium: 1, HoldLong: 2}
	sort.SliceStable(groups, func(i, j int) bool {
		return rank[groups[i].Key] < rank[groups[j].Key]
	})
	return groups
}

func holdBucket(minutes int) string {
	switch {
	case minutes <= 30:
		return HoldShort
	case minutes <= 120:
		return HoldMedium
	default:
		return HoldLong
	}
}

// ParseClock parses a "HH:MM" string into minutes since midnight.
func ParseClock(s string) (int, bool) {
	parts := strings.SplitN(strings.TrimSpace(s), ":", 2)
	if len(parts) != 2 {
		return 0, false
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, false
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, false
	}
	return h*60 + m, true
}
