package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	jerrors "trading-journal/internal/errors"
	"trading-journal/internal/models"
)

// SQLiteStore implements DataStore using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new SQLite-based data store.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return store, nil
}

// initSchema creates all required tables and indexes.
func (s *SQLiteStore) initSchema() error {
	schema := `
	-- Trade records, with the computed charge breakdown denormalized into
	-- columns so list queries need no join.
	CREATE TABLE IF NOT EXISTS trades (
		id TEXT PRIMARY KEY,
		date DATETIME NOT NULL,
		symbol TEXT NOT NULL,
		direction TEXT NOT NULL,
		quantity REAL NOT NULL,
		buy_price REAL NOT NULL,
		sell_price REAL NOT NULL,
		entry_time TEXT,
		exit_time TEXT,
		trend TEXT,
		rule_followed TEXT,
		emotion TEXT,
		risk_reward TEXT,
		setup TEXT,
		remarks TEXT,
		screenshots TEXT,
		turnover REAL,
		brokerage REAL,
		stt REAL,
		exchange_charges REAL,
		stamp_duty REAL,
		sebi_fees REAL,
		gst REAL,
		total_charges REAL,
		gross REAL,
		net REAL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	-- Psychology journal entries
	CREATE TABLE IF NOT EXISTS psychology (
		id TEXT PRIMARY KEY,
		date DATETIME NOT NULL,
		entry TEXT NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_trades_date ON trades(date);
	CREATE INDEX IF NOT EXISTS idx_trades_symbol ON trades(symbol);
	CREATE INDEX IF NOT EXISTS idx_trades_setup ON trades(setup);
	CREATE INDEX IF NOT EXISTS idx_psychology_date ON psychology(date);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

const tradeColumns = `id, date, symbol, direction, quantity, buy_price, sell_price,
	entry_time, exit_time, trend, rule_followed, emotion, risk_reward, setup, remarks,
	screenshots, turnover, brokerage, stt, exchange_charges, stamp_duty, sebi_fees,
	gst, total_charges, gross, net, created_at, updated_at`

// InsertTrade saves a new trade record.
func (s *SQLiteStore) InsertTrade(ctx context.Context, trade *models.TradeRecord) error {
	screenshots, _ := json.Marshal(trade.Screenshots)
	now := time.Now()
	trade.CreatedAt = now
	trade.UpdatedAt = now

	c := trade.Charges
	if c == nil {
		c = &models.ChargeBreakdown{}
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO trades (`+tradeColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, trade.ID, trade.Date, trade.Symbol, string(trade.Direction), trade.Quantity,
		trade.BuyPrice, trade.SellPrice, trade.EntryTime, trade.ExitTime, trade.Trend,
		trade.RuleFollowed, trade.Emotion, trade.RiskReward, trade.Setup, trade.Remarks,
		string(screenshots), c.Turnover, c.Brokerage, c.STT, c.ExchangeCharges,
		c.StampDuty, c.SEBIFees, c.GST, c.TotalCharges, c.Gross, c.Net,
		trade.CreatedAt, trade.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert trade: %w", err)
	}
	return nil
}

// UpdateTrade replaces an existing trade record by id.
func (s *SQLiteStore) UpdateTrade(ctx context.Context, trade *models.TradeRecord) error {
	screenshots, _ := json.Marshal(trade.Screenshots)
	trade.UpdatedAt = time.Now()

	c := trade.Charges
	if c == nil {
		c = &models.ChargeBreakdown{}
	}

	res, err := s.db.ExecContext(ctx, `
		UPDATE trades SET date = ?, symbol = ?, direction = ?, quantity = ?,
			buy_price = ?, sell_price = ?, entry_time = ?, exit_time = ?, trend = ?,
			rule_followed = ?, emotion = ?, risk_reward = ?, setup = ?, remarks = ?,
			screenshots = ?, turnover = ?, brokerage = ?, stt = ?, exchange_charges = ?,
			stamp_duty = ?, sebi_fees = ?, gst = ?, total_charges = ?, gross = ?,
			net = ?, updated_at = ?
		WHERE id = ?
	`, trade.Date, trade.Symbol, string(trade.Direction), trade.Quantity,
		trade.BuyPrice, trade.SellPrice, trade.EntryTime, trade.ExitTime, trade.Trend,
		trade.RuleFollowed, trade.Emotion, trade.RiskReward, trade.Setup, trade.Remarks,
		string(screenshots), c.Turnover, c.Brokerage, c.STT, c.ExchangeCharges,
		c.StampDuty, c.SEBIFees, c.GST, c.TotalCharges, c.Gross, c.Net,
		trade.UpdatedAt, trade.ID)
	if err != nil {
		return fmt.Errorf("failed to update trade: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return jerrors.ErrTradeNotFound
	}
	return nil
}

// DeleteTrade removes a trade record by id.
func (s *SQLiteStore) DeleteTrade(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM trades WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete trade: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return jerrors.ErrTradeNotFound
	}
	return nil
}

// GetTrade retrieves a single trade record by id.
func (s *SQLiteStore) GetTrade(ctx context.Context, id string) (*models.TradeRecord, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+tradeColumns+` FROM trades WHERE id = ?`, id)
	trade, err := scanTrade(row)
	if err == sql.ErrNoRows {
		return nil, jerrors.ErrTradeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get trade: %w", err)
	}
	return trade, nil
}

// ListTrades retrieves trade records matching the filter, date ascending.
func (s *SQLiteStore) ListTrades(ctx context.Context, filter TradeFilter) ([]models.TradeRecord, error) {
	query := `SELECT ` + tradeColumns + ` FROM trades WHERE 1=1`
	args := []interface{}{}

	if filter.Symbol != "" {
		query += " AND symbol = ?"
		args = append(args, filter.Symbol)
	}
	if !filter.StartDate.IsZero() {
		query += " AND date >= ?"
		args = append(args, filter.StartDate)
	}
	if !filter.EndDate.IsZero() {
		query += " AND date <= ?"
		args = append(args, filter.EndDate)
	}
	if filter.Direction != "" {
		query += " AND direction = ?"
		args = append(args, filter.Direction)
	}
	if filter.Setup != "" {
		query += " AND setup = ?"
		args = append(args, filter.Setup)
	}

	query += " ORDER BY date ASC, created_at ASC"
	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query trades: %w", err)
	}
	defer rows.Close()

	var trades []models.TradeRecord
	for rows.Next() {
		trade, err := scanTrade(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan trade: %w", err)
		}
		trades = append(trades, *trade)
	}
	return trades, rows.Err()
}

// scanner abstracts sql.Row and sql.Rows for scanTrade.
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanTrade(row scanner) (*models.TradeRecord, error) {
	var t models.TradeRecord
	var direction, screenshotsJSON string
	var c models.ChargeBreakdown

	err := row.Scan(&t.ID, &t.Date, &t.Symbol, &direction, &t.Quantity,
		&t.BuyPrice, &t.SellPrice, &t.EntryTime, &t.ExitTime, &t.Trend,
		&t.RuleFollowed, &t.Emotion, &t.RiskReward, &t.Setup, &t.Remarks,
		&screenshotsJSON, &c.Turnover, &c.Brokerage, &c.STT, &c.ExchangeCharges,
		&c.StampDuty, &c.SEBIFees, &c.GST, &c.TotalCharges, &c.Gross, &c.Net,
		&t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}

	t.Direction = models.Direction(direction)
	t.Charges = &c
	if screenshotsJSON != "" {
		json.Unmarshal([]byte(screenshotsJSON), &t.Screenshots)
	}
	return &t, nil
}

// SavePsychologyEntry saves a psychology journal entry.
func (s *SQLiteStore) SavePsychologyEntry(ctx context.Context, entry *models.PsychologyEntry) error {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO psychology (id, date, entry, created_at)
		VALUES (?, ?, ?, ?)
	`, entry.ID, entry.Date, entry.Entry, entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to save psychology entry: %w", err)
	}
	return nil
}

// ListPsychologyEntries retrieves psychology entries matching the filter,
// date ascending.
func (s *SQLiteStore) ListPsychologyEntries(ctx context.Context, filter PsychologyFilter) ([]models.PsychologyEntry, error) {
	query := `SELECT id, date, entry, created_at FROM psychology WHERE 1=1`
	args := []interface{}{}

	if !filter.StartDate.IsZero() {
		query += " AND date >= ?"
		args = append(args, filter.StartDate)
	}
	if !filter.EndDate.IsZero() {
		query += " AND date <= ?"
		args = append(args, filter.EndDate)
	}

	query += " ORDER BY date ASC"
	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query psychology entries: %w", err)
	}
	defer rows.Close()

	var entries []models.PsychologyEntry
	for rows.Next() {
		var e models.PsychologyEntry
		if err := rows.Scan(&e.ID, &e.Date, &e.Entry, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan psychology entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
