package store

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/gocarina/gocsv"

	"trading-journal/internal/charges"
	"trading-journal/internal/models"
)

// csvDateFormat is the spreadsheet date layout for import/export.
const csvDateFormat = "2006-01-02"

// tradeRow is the spreadsheet shape of a trade. Numeric cells are kept as
// strings on import so unparseable values degrade to 0 instead of failing
// the whole file.
type tradeRow struct {
	Date         string `csv:"date"`
	Symbol       string `csv:"symbol"`
	Direction    string `csv:"direction"`
	Quantity     string `csv:"quantity"`
	BuyPrice     string `csv:"buy_price"`
	SellPrice    string `csv:"sell_price"`
	EntryTime    string `csv:"entry_time"`
	ExitTime     string `csv:"exit_time"`
	Trend        string `csv:"trend"`
	RuleFollowed string `csv:"rule_followed"`
	Emotion      string `csv:"emotion"`
	RiskReward   string `csv:"risk_reward"`
	Setup        string `csv:"setup"`
	Remarks      string `csv:"remarks"`
	Net          string `csv:"net"`
}

// ExportTradesCSV writes records as CSV rows.
func ExportTradesCSV(w io.Writer, records []models.TradeRecord) error {
	rows := make([]tradeRow, 0, len(records))
	for _, t := range records {
		rows = append(rows, tradeRow{
			Date:         t.Date.Format(csvDateFormat),
			Symbol:       t.Symbol,
			Direction:    string(t.Direction),
			Quantity:     fmt.Sprintf("%g", t.Quantity),
			BuyPrice:     fmt.Sprintf("%g", t.BuyPrice),
			SellPrice:    fmt.Sprintf("%g", t.SellPrice),
			EntryTime:    t.EntryTime,
			ExitTime:     t.ExitTime,
			Trend:        t.Trend,
			RuleFollowed: t.RuleFollowed,
			Emotion:      t.Emotion,
			RiskReward:   t.RiskReward,
			Setup:        t.Setup,
			Remarks:      t.Remarks,
			Net:          fmt.Sprintf("%.2f", t.Net()),
		})
	}
	if err := gocsv.Marshal(&rows, w); err != nil {
		return fmt.Errorf("failed to write CSV: %w", err)
	}
	return nil
}

// ImportTradesCSV reads spreadsheet rows into normalized trade records with
// freshly computed charges. Blank trend and rule-followed cells take the
// given defaults (blank defaults fall back to the stock constants). Rows
// without a parseable date are skipped and counted; the exported net column
// is ignored in favor of the recomputed one.
func ImportTradesCSV(r io.Reader, defaultTrend, defaultRuleFollowed string) (records []models.TradeRecord, skipped int, err error) {
	var rows []tradeRow
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		return nil, 0, fmt.Errorf("failed to read CSV: %w", err)
	}

	for _, row := range rows {
		date, err := time.Parse(csvDateFormat, strings.TrimSpace(row.Date))
		if err != nil {
			skipped++
			continue
		}

		t := models.TradeRecord{
			Date:         date,
			Symbol:       row.Symbol,
			Direction:    models.ParseDirection(row.Direction),
			Quantity:     charges.Coerce(row.Quantity),
			BuyPrice:     charges.Coerce(row.BuyPrice),
			SellPrice:    charges.Coerce(row.SellPrice),
			EntryTime:    row.EntryTime,
			ExitTime:     row.ExitTime,
			Trend:        row.Trend,
			RuleFollowed: row.RuleFollowed,
			Emotion:      row.Emotion,
			RiskReward:   row.RiskReward,
			Setup:        row.Setup,
			Remarks:      row.Remarks,
		}
		t.NormalizeWithDefaults(defaultTrend, defaultRuleFollowed)
		charges.Attach(&t)
		records = append(records, t)
	}
	return records, skipped, nil
}
