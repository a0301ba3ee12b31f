package worker

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// OTPStore is the slice of the verification ledger the sweeper needs.
type OTPStore interface {
	Sweep(ctx context.Context) (int64, error)
}

// Sweeper drops expired verification codes on a fixed interval so the
// ledger never serves a stale code.
type Sweeper struct {
	store    OTPStore
	interval time.Duration
	log      *zap.Logger
}

func NewSweeper(store OTPStore, interval time.Duration, log *zap.Logger) *Sweeper {
	return &Sweeper{
		store:    store,
		interval: interval,
		log:      log.Named("otp-sweeper"),
	}
}

func (s *Sweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.log.Debug("sweeper stopped")
			return
		case <-ticker.C:
			removed, err := s.store.Sweep(ctx)
			if err != nil {
				s.log.Error("sweep expired codes", zap.Error(err))
				continue
			}
			if removed > 0 {
				s.log.Info("expired codes removed", zap.Int64("count", removed))
			}
		}
	}
}
