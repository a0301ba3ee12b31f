package worker

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/seminarroom/bookdesk/internal/model"
	"github.com/seminarroom/bookdesk/pkg/mailer"
)

// OpenLogLister is the slice of the issue ledger the reminder needs.
type OpenLogLister interface {
	ListAllOpen(ctx context.Context) ([]model.IssueLog, error)
}

// Reminder scans open issuances on a fixed interval and mails holders
// whose return date is within a day or already past.
type Reminder struct {
	logs     OpenLogLister
	mail     mailer.Sender
	mailCfg  mailer.Config
	interval time.Duration
	log      *zap.Logger
	now      func() time.Time
}

func NewReminder(logs OpenLogLister, mail mailer.Sender, mailCfg mailer.Config, interval time.Duration, log *zap.Logger) *Reminder {
	return &Reminder{
		logs:     logs,
		mail:     mail,
		mailCfg:  mailCfg,
		interval: interval,
		log:      log.Named("reminder"),
		now:      time.Now,
	}
}

func (r *Reminder) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.log.Debug("reminder stopped")
			return
		case <-ticker.C:
			r.scan(ctx)
		}
	}
}

func (r *Reminder) scan(ctx context.Context) {
	open, err := r.logs.ListAllOpen(ctx)
	if err != nil {
		r.log.Error("list open issuances", zap.Error(err))
		return
	}

	deadline := r.now().Add(24 * time.Hour)
	for _, entry := range open {
		if entry.ExpectedReturnDate.After(deadline) {
			continue
		}
		subject, body := r.mailCfg.ReminderMail(entry.IssuerName, entry.BookTitle, entry.ExpectedReturnDate)
		if err := r.mail.Send(ctx, entry.IssuerEmail, subject, body); err != nil {
			r.log.Warn("send reminder",
				zap.Int64("bookId", entry.BookID),
				zap.String("email", entry.IssuerEmail),
				zap.Error(err))
			continue
		}
		r.log.Info("reminder sent",
			zap.Int64("bookId", entry.BookID),
			zap.String("email", entry.IssuerEmail))
	}
}
