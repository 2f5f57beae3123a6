package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/fractrade/fraclib/internal/domain"
)

// SQLiteStore journals accepted signals. The full interchange document is
// stored alongside a few queryable columns; reads rebuild the record through
// the codec so whatever comes back out has been validated again.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}

	store := &SQLiteStore{db: db}
	if err := store.initSchema(); err != nil {
		return nil, err
	}

	return store, nil
}

func (s *SQLiteStore) initSchema() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS signals (
			signal_id TEXT PRIMARY KEY,
			ts DATETIME NOT NULL,
			type TEXT NOT NULL,
			trade_type TEXT NOT NULL,
			symbol TEXT NOT NULL,
			side TEXT NOT NULL,
			order_type TEXT NOT NULL,
			amount_capital_percent TEXT NOT NULL,
			payload TEXT NOT NULL,
			received_at DATETIME NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_signals_symbol ON signals(symbol);`,
		`CREATE INDEX IF NOT EXISTS idx_signals_ts ON signals(ts);`,
	}

	for _, q := range queries {
		if _, err := s.db.Exec(q); err != nil {
			return fmt.Errorf("failed to exec query %s: %w", q, err)
		}
	}

	return nil
}

func (s *SQLiteStore) SaveSignal(ctx context.Context, sig *domain.TradingSignal) error {
	payload, err := sig.ToJSON()
	if err != nil {
		return fmt.Errorf("failed to encode signal %s: %w", sig.SignalID, err)
	}

	query := `INSERT INTO signals (signal_id, ts, type, trade_type, symbol, side, order_type, amount_capital_percent, payload, received_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = s.db.ExecContext(ctx, query,
		sig.SignalID,
		sig.Timestamp,
		string(sig.Type),
		string(sig.TradeType),
		sig.Symbol,
		string(sig.Side),
		string(sig.OrderType),
		sig.AmountCapitalPercent.String(),
		string(payload),
		time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to save signal %s: %w", sig.SignalID, err)
	}
	return nil
}

// GetSignal returns the journaled signal, or nil when it was never seen.
func (s *SQLiteStore) GetSignal(ctx context.Context, signalID string) (*domain.TradingSignal, error) {
	var payload string
	err := s.db.QueryRowContext(ctx, `SELECT payload FROM signals WHERE signal_id = ?`, signalID).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get signal %s: %w", signalID, err)
	}
	return domain.FromJSON([]byte(payload))
}

func (s *SQLiteStore) ListSignals(ctx context.Context, limit int) ([]*domain.TradingSignal, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT payload FROM signals ORDER BY ts DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list signals: %w", err)
	}
	defer rows.Close()

	var signals []*domain.TradingSignal
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, err
		}
		sig, err := domain.FromJSON([]byte(payload))
		if err != nil {
			return nil, fmt.Errorf("failed to decode journaled signal: %w", err)
		}
		signals = append(signals, sig)
	}
	return signals, rows.Err()
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
