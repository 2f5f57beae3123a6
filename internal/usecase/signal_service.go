package usecase

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/fractrade/fraclib/internal/domain"
)

// SignalService is the receiving pipeline: raw payload in, validated and
// journaled signal out to the executor. The codec is the only gate; nothing
// that fails validation reaches the repository or the executor.
type SignalService struct {
	repo     domain.SignalRepository
	executor domain.Executor
	logger   *zap.Logger
}

// NewSignalService wires the pipeline. executor may be nil when the receiver
// runs journal-only.
func NewSignalService(repo domain.SignalRepository, executor domain.Executor, logger *zap.Logger) *SignalService {
	return &SignalService{
		repo:     repo,
		executor: executor,
		logger:   logger,
	}
}

// HandleRaw decodes one interchange document and runs it through the
// pipeline. Validation failures come back as *domain.ValidationError so
// callers can report the kind; transport decides whether to drop or alert.
func (s *SignalService) HandleRaw(ctx context.Context, payload []byte) (*domain.TradingSignal, error) {
	sig, err := domain.FromJSON(payload)
	if err != nil {
		s.logger.Warn("rejected signal", zap.Error(err))
		return nil, err
	}

	// Same id seen before means a replayed message; skip the journal insert
	// and the executor.
	existing, err := s.repo.GetSignal(ctx, sig.SignalID)
	if err != nil {
		return nil, fmt.Errorf("failed to check signal %s: %w", sig.SignalID, err)
	}
	if existing != nil {
		s.logger.Info("duplicate signal ignored", zap.String("signal_id", sig.SignalID))
		return existing, nil
	}

	if err := s.repo.SaveSignal(ctx, sig); err != nil {
		return nil, fmt.Errorf("failed to journal signal %s: %w", sig.SignalID, err)
	}

	if s.executor != nil {
		if err := s.executor.Execute(ctx, sig); err != nil {
			return nil, fmt.Errorf("executor rejected signal %s: %w", sig.SignalID, err)
		}
	}

	s.logger.Info("accepted signal",
		zap.String("signal_id", sig.SignalID),
		zap.String("symbol", sig.Symbol),
		zap.String("side", string(sig.Side)),
		zap.String("order_type", string(sig.OrderType)),
	)
	return sig, nil
}

func (s *SignalService) ListSignals(ctx context.Context, limit int) ([]*domain.TradingSignal, error) {
	return s.repo.ListSignals(ctx, limit)
}
