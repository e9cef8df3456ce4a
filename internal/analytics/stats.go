package analytics

import (
	"sort"
	"time"

	"trading-journal/internal/charges"
	"trading-journal/internal/models"
)

// SetStats summarizes wins, losses, and daily streaks over any record subset.
type SetStats struct {
	Trades      int
	Wins        int
	Losses      int
	WinRate     float64
	TotalNet    float64
	BestDay     time.Time
	BestDayNet  float64
	WorstDay    time.Time
	WorstDayNet float64
	BestStreak  int
}

type dayNet struct {
	day time.Time
	net float64
}

// Stats computes win/loss and streak statistics for a record set. The best
// streak counts consecutive calendar days with positive net P&L: a
// non-positive day resets it, and a calendar gap with no trades breaks it.
func Stats(records []models.TradeRecord) SetStats {
	var s SetStats
	if len(records) == 0 {
		return s
	}

	var total float64
	for _, t := range records {
		s.Trades++
		if t.IsWin() {
			s.Wins++
		}
		total += t.Net()
	}
	s.Losses = s.Trades - s.Wins
	s.WinRate = winRate(s.Wins, s.Trades)
	s.TotalNet = charges.Round2(total)

	days := dailyNets(records)
	streak := 0
	for i, d := range days {
		if i == 0 {
			s.BestDay, s.BestDayNet = d.day, d.net
			s.WorstDay, s.WorstDayNet = d.day, d.net
		} else {
			if d.net > s.BestDayNet {
				s.BestDay, s.BestDayNet = d.day, d.net
			}
			if d.net < s.WorstDayNet {
				s.WorstDay, s.WorstDayNet = d.day, d.net
			}
		}

		if d.net > 0 {
			if i > 0 && days[i-1].day.AddDate(0, 0, 1).Equal(d.day) && streak > 0 {
				streak++
			} else {
				streak = 1
			}
		} else {
			streak = 0
		}
		if streak > s.BestStreak {
			s.BestStreak = streak
		}
	}
	return s
}

// dailyNets groups records by calendar day and returns per-day rounded net
// totals in ascending day order.
func dailyNets(records []models.TradeRecord) []dayNet {
	totals := make(map[time.Time]float64)
	var order []time.Time
	for _, t := range records {
		day := t.Day()
		if _, ok := totals[day]; !ok {
			order = append(order, day)
		}
		totals[day] += t.Net()
	}
	sort.Slice(order, func(i, j int) bool { return order[i].Before(order[j]) })

	days := make([]dayNet, 0, len(order))
	for _, day := range order {
		days = append(days, dayNet{day: day, net: charges.Round2(totals[day])})
	}
	return days
}
