package domain

import "context"

// SignalRepository journals validated signals.
type SignalRepository interface {
	SaveSignal(ctx context.Context, s *TradingSignal) error
	GetSignal(ctx context.Context, signalID string) (*TradingSignal, error)
	ListSignals(ctx context.Context, limit int) ([]*TradingSignal, error)
}

// Executor consumes validated signals and places the actual orders. The
// receiving pipeline only hands it records that passed validation.
type Executor interface {
	Execute(ctx context.Context, s *TradingSignal) error
}
