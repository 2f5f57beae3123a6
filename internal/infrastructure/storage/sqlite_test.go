package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fractrade/fraclib/internal/domain"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "signals.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func testSignal(t *testing.T, id string, ts time.Time) *domain.TradingSignal {
	t.Helper()
	limit := decimal.RequireFromString("2000.0")
	sig, err := domain.NewSignal(domain.TradingSignal{
		SignalID:             id,
		Timestamp:            ts,
		Type:                 domain.SignalTypeTrade,
		TradeType:            domain.TradeTypePerp,
		Symbol:               "ETH-USDT",
		Side:                 domain.SideBuy,
		OrderType:            domain.OrderTypeLimit,
		Message:              "journal test",
		AmountCapitalPercent: decimal.RequireFromString("10.0"),
		LimitPrice:           &limit,
	})
	require.NoError(t, err)
	return sig
}

func TestSaveAndGetSignal(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	sig := testSignal(t, "sig-1", time.Date(2024, 2, 19, 12, 0, 0, 0, time.UTC))
	require.NoError(t, store.SaveSignal(ctx, sig))

	got, err := store.GetSignal(ctx, "sig-1")
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.Equal(t, sig.SignalID, got.SignalID)
	assert.True(t, sig.Timestamp.Equal(got.Timestamp))
	assert.Equal(t, sig.Symbol, got.Symbol)
	assert.Equal(t, sig.AmountCapitalPercent.String(), got.AmountCapitalPercent.String())
	assert.Equal(t, sig.LimitPrice.String(), got.LimitPrice.String())
}

func TestGetSignalUnknownID(t *testing.T) {
	store := newTestStore(t)

	got, err := store.GetSignal(context.Background(), "never-seen")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSaveSignalDuplicateID(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	sig := testSignal(t, "sig-1", time.Now().UTC())
	require.NoError(t, store.SaveSignal(ctx, sig))
	assert.Error(t, store.SaveSignal(ctx, sig), "signal_id is the primary key")
}

func TestListSignalsNewestFirst(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	older := testSignal(t, "sig-old", time.Date(2024, 2, 19, 10, 0, 0, 0, time.UTC))
	newer := testSignal(t, "sig-new", time.Date(2024, 2, 19, 12, 0, 0, 0, time.UTC))
	require.NoError(t, store.SaveSignal(ctx, older))
	require.NoError(t, store.SaveSignal(ctx, newer))

	signals, err := store.ListSignals(ctx, 10)
	require.NoError(t, err)
	require.Len(t, signals, 2)
	assert.Equal(t, "sig-new", signals[0].SignalID)
	assert.Equal(t, "sig-old", signals[1].SignalID)

	limited, err := store.ListSignals(ctx, 1)
	require.NoError(t, err)
	require.Len(t, limited, 1)
	assert.Equal(t, "sig-new", limited[0].SignalID)
}
