package app

import (
	"context"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/seminarroom/bookdesk/config"
	"github.com/seminarroom/bookdesk/internal/handler"
	"github.com/seminarroom/bookdesk/internal/repository"
	"github.com/seminarroom/bookdesk/internal/server"
	"github.com/seminarroom/bookdesk/internal/service"
	"github.com/seminarroom/bookdesk/internal/worker"
	"github.com/seminarroom/bookdesk/migrations"
	"github.com/seminarroom/bookdesk/pkg/logger"
	"github.com/seminarroom/bookdesk/pkg/mailer"
	"github.com/seminarroom/bookdesk/pkg/postgres"
)

func Run(cfg *config.Config) {
	log := logger.NewLogger(cfg.Log, "bookdesk")
	db, err := postgres.NewPostgresDB(context.Background(), &cfg.Database, migrations.MigrationFiles)
	if err != nil {
		log.Fatal("db init", zap.Error(err))
	}

	bookRepo := repository.NewBookRepository(db, log)
	logRepo := repository.NewIssueLogRepository(db, log)
	otpRepo := repository.NewOTPRepository(db, log)
	userRepo := repository.NewUserRepository(db, log)

	mail := mailer.New(cfg.SMTP)
	jwtKey := []byte(cfg.Auth.JWTKey)

	otpSvc := service.NewOTPService(otpRepo, log, cfg.OTP.TTL, cfg.OTP.MaxAttempts)
	authSvc := service.NewAuthService(userRepo, otpSvc, mail, cfg.SMTP, log,
		jwtKey, cfg.Auth.SessionTTL, cfg.Auth.EmailTokenTTL)
	registrySvc := service.NewRegistryService(bookRepo, log, cfg.Policy.PreserveHistory)
	issuanceSvc := service.NewIssuanceService(bookRepo, logRepo, mail, cfg.SMTP, log)
	importSvc := service.NewImportService(bookRepo, log)
	exportSvc := service.NewExportService(logRepo, log)

	workerCtx, stopWorkers := context.WithCancel(context.Background())
	go worker.NewSweeper(otpSvc, cfg.OTP.SweepInterval, log).Run(workerCtx)
	if cfg.Reminder.Enabled {
		go worker.NewReminder(logRepo, mail, cfg.SMTP, cfg.Reminder.Interval, log).Run(workerCtx)
	}

	h := handler.New(authSvc, registrySvc, issuanceSvc, importSvc, exportSvc, jwtKey, log)
	srv := server.NewServer(cfg.Server, h.NewRouter())
	log.Info("http server start ON: ",
		zap.String("addr",
			net.JoinHostPort(cfg.Server.Host, cfg.Server.Port)))
	go func() {
		if err := srv.Run(); err != nil {
			log.Error("server run", zap.Error(err))
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	termSig := <-sig

	log.Debug("Graceful shutdown", zap.Any("signal", termSig))

	stopWorkers()
	closeCtx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	if err = srv.Stop(closeCtx); err != nil {
		log.DPanic("srv.Stop", zap.Error(err))
	}
	db.Close()
	log.Info("Graceful shutdown finished")
}
