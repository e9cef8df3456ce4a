package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trading-journal/internal/charges"
	jerrors "trading-journal/internal/errors"
	"trading-journal/internal/models"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "journal_test.db")
	s, err := NewSQLiteStore(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleTrade(date time.Time) models.TradeRecord {
	trade := models.TradeRecord{
		ID:         models.NewID(),
		Date:       date,
		Symbol:     "RELIANCE",
		Direction:  models.Long,
		Quantity:   10,
		BuyPrice:   100,
		SellPrice:  105,
		EntryTime:  "09:30",
		ExitTime:   "10:15",
		Emotion:    "calm",
		RiskReward: "1:2",
		Setup:      "Breakout",
		Remarks:    "clean entry",
		Screenshots: []models.Screenshot{
			{Name: "entry.png", Thumbnail: "t.png", FullSize: "f.png"},
		},
	}
	trade.Normalize()
	charges.Attach(&trade)
	return trade
}

func TestTradeRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	trade := sampleTrade(time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC))
	require.NoError(t, s.InsertTrade(ctx, &trade))

	got, err := s.GetTrade(ctx, trade.ID)
	require.NoError(t, err)

	assert.Equal(t, trade.ID, got.ID)
	assert.Equal(t, trade.Symbol, got.Symbol)
	assert.Equal(t, trade.Direction, got.Direction)
	assert.Equal(t, trade.Quantity, got.Quantity)
	assert.Equal(t, trade.EntryTime, got.EntryTime)
	assert.Equal(t, trade.Setup, got.Setup)
	assert.Len(t, got.Screenshots, 1)
	assert.Equal(t, "entry.png", got.Screenshots[0].Name)

	require.NotNil(t, got.Charges)
	assert.Equal(t, 48.86, got.Charges.Net)
	assert.Equal(t, 1.14, got.Charges.TotalCharges)
}

func TestGetTradeNotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.GetTrade(context.Background(), "missing")
	assert.ErrorIs(t, err, jerrors.ErrTradeNotFound)
}

func TestUpdateTrade(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	trade := sampleTrade(time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC))
	require.NoError(t, s.InsertTrade(ctx, &trade))

	trade.SellPrice = 110
	charges.Attach(&trade)
	require.NoError(t, s.UpdateTrade(ctx, &trade))

	got, err := s.GetTrade(ctx, trade.ID)
	require.NoError(t, err)
	assert.Equal(t, 110.0, got.SellPrice)
	assert.Equal(t, trade.Charges.Net, got.Charges.Net)
}

func TestUpdateTradeNotFound(t *testing.T) {
	s := newTestStore(t)

	trade := sampleTrade(time.Now())
	trade.ID = "missing"
	err := s.UpdateTrade(context.Background(), &trade)
	assert.ErrorIs(t, err, jerrors.ErrTradeNotFound)
}

func TestDeleteTrade(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	trade := sampleTrade(time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC))
	require.NoError(t, s.InsertTrade(ctx, &trade))
	require.NoError(t, s.DeleteTrade(ctx, trade.ID))

	_, err := s.GetTrade(ctx, trade.ID)
	assert.ErrorIs(t, err, jerrors.ErrTradeNotFound)

	assert.ErrorIs(t, s.DeleteTrade(ctx, trade.ID), jerrors.ErrTradeNotFound)
}

func TestListTradesFilters(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	march := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	a := sampleTrade(march)
	b := sampleTrade(march.AddDate(0, 0, 5))
	b.Symbol = "TCS"
	b.Setup = "Reversal"
	c := sampleTrade(march.AddDate(0, 1, 0))
	require.NoError(t, s.InsertTrade(ctx, &a))
	require.NoError(t, s.InsertTrade(ctx, &b))
	require.NoError(t, s.InsertTrade(ctx, &c))

	all, err := s.ListTrades(ctx, TradeFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)
	// Date ascending
	assert.Equal(t, a.ID, all[0].ID)
	assert.Equal(t, c.ID, all[2].ID)

	bySymbol, err := s.ListTrades(ctx, TradeFilter{Symbol: "TCS"})
	require.NoError(t, err)
	assert.Len(t, bySymbol, 1)
	assert.Equal(t, b.ID, bySymbol[0].ID)

	bySetup, err := s.ListTrades(ctx, TradeFilter{Setup: "Breakout"})
	require.NoError(t, err)
	assert.Len(t, bySetup, 2)

	byRange, err := s.ListTrades(ctx, TradeFilter{
		StartDate: march,
		EndDate:   march.AddDate(0, 0, 20),
	})
	require.NoError(t, err)
	assert.Len(t, byRange, 2)

	limited, err := s.ListTrades(ctx, TradeFilter{Limit: 1})
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

func TestPsychologyRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	entry := models.PsychologyEntry{
		ID:    models.NewID(),
		Date:  time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		Entry: "Felt calm and followed the plan",
	}
	require.NoError(t, s.SavePsychologyEntry(ctx, &entry))

	entries, err := s.ListPsychologyEntries(ctx, PsychologyFilter{})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, entry.Entry, entries[0].Entry)

	// Same id replaces the entry
	entry.Entry = "Edited"
	require.NoError(t, s.SavePsychologyEntry(ctx, &entry))

	entries, err = s.ListPsychologyEntries(ctx, PsychologyFilter{})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Edited", entries[0].Entry)
}

func TestPsychologyDateFilter(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for d := 10; d <= 12; d++ {
		entry := models.PsychologyEntry{
			ID:    models.NewID(),
			Date:  time.Date(2025, 3, d, 0, 0, 0, 0, time.UTC),
			Entry: "entry",
		}
		require.NoError(t, s.SavePsychologyEntry(ctx, &entry))
	}

	entries, err := s.ListPsychologyEntries(ctx, PsychologyFilter{
		StartDate: time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}
