// Package store provides data persistence interfaces and implementations.
package store

import (
	"context"
	"time"

	"trading-journal/internal/models"
)

// DataStore defines the interface for journal persistence. The store owns
// the canonical record list; the engines treat whatever it returns as
// read-only per invocation.
type DataStore interface {
	// Trades
	InsertTrade(ctx context.Context, trade *models.TradeRecord) error
	UpdateTrade(ctx context.Context, trade *models.TradeRecord) error
	DeleteTrade(ctx context.Context, id string) error
	GetTrade(ctx context.Context, id string) (*models.TradeRecord, error)
	ListTrades(ctx context.Context, filter TradeFilter) ([]models.TradeRecord, error)

	// Psychology log
	SavePsychologyEntry(ctx context.Context, entry *models.PsychologyEntry) error
	ListPsychologyEntries(ctx context.Context, filter PsychologyFilter) ([]models.PsychologyEntry, error)

	// Lifecycle
	Close() error
}

// TradeFilter represents filters for querying trades.
type TradeFilter struct {
	Symbol    string
	StartDate time.Time
	EndDate   time.Time
	Direction string
	Setup     string
	Limit     int
}

// PsychologyFilter represents filters for querying psychology entries.
type PsychologyFilter struct {
	StartDate time.Time
	EndDate   time.Time
	Limit     int
}
