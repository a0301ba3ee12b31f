package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"go.uber.org/zap"

	"github.com/seminarroom/bookdesk/internal/errs"
	"github.com/seminarroom/bookdesk/internal/model"
	"github.com/seminarroom/bookdesk/internal/repository"
)

// OTPService owns the one-time-code ledger: issue, bounded-attempt
// verify with single-use consumption, and an explicit sweep invoked by
// the host's scheduler.
type OTPService struct {
	repo        repository.OTPRepository
	log         *zap.Logger
	ttl         time.Duration
	maxAttempts int

	now func() time.Time
}

func NewOTPService(repo repository.OTPRepository, log *zap.Logger, ttl time.Duration, maxAttempts int) *OTPService {
	return &OTPService{
		repo:        repo,
		log:         log.Named("otp"),
		ttl:         ttl,
		maxAttempts: maxAttempts,
		now:         time.Now,
	}
}

// Issue generates a fresh 6-digit code, overwriting any prior live
// entry for the email. Sending the code is the caller's concern.
func (s *OTPService) Issue(ctx context.Context, email string) (string, error) {
	code, err := generateCode()
	if err != nil {
		return "", err
	}
	if err := s.repo.Upsert(ctx, model.OTPEntry{
		Email:    email,
		Code:     code,
		IssuedAt: s.now().UTC(),
	}); err != nil {
		return "", err
	}
	return code, nil
}

// Verify checks the code against the live entry for the email.
// Outcomes, in order: no entry, expired (entry consumed), attempts
// exhausted (entry consumed), match (entry consumed), mismatch (entry
// retained with the attempt recorded). The attempt bound is checked
// before recording, so after maxAttempts wrong codes the next call
// fails without ever inspecting its code.
func (s *OTPService) Verify(ctx context.Context, email, code string) error {
	entry, err := s.repo.Get(ctx, email)
	if err != nil {
		return err
	}

	if s.now().Sub(entry.IssuedAt) > s.ttl {
		if err := s.repo.Delete(ctx, email); err != nil {
			return err
		}
		return errs.ErrOTPExpired
	}

	if entry.Attempts >= s.maxAttempts {
		if err := s.repo.Delete(ctx, email); err != nil {
			return err
		}
		return errs.ErrTooManyAttempts
	}

	if err := s.repo.IncrementAttempts(ctx, email); err != nil {
		return err
	}

	if entry.Code != code {
		return errs.ErrInvalidOTP
	}

	return s.repo.Delete(ctx, email)
}

// Sweep drops every entry older than the TTL. It runs on a fixed
// interval independent of verification traffic.
func (s *OTPService) Sweep(ctx context.Context) (int64, error) {
	n, err := s.repo.DeleteOlderThan(ctx, s.now().UTC().Add(-s.ttl))
	if err != nil {
		return 0, err
	}
	if n > 0 {
		s.log.Debug("swept expired otp entries", zap.Int64("count", n))
	}
	return n, nil
}

func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}
