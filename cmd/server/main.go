package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"

	_ "rsvp/docs" // swagger docs

	"rsvp/internal/auth"
	"rsvp/internal/cache"
	"rsvp/internal/config"
	"rsvp/internal/db"
	"rsvp/internal/handler"
	"rsvp/internal/notify"
	"rsvp/internal/repository"
	"rsvp/internal/router"
	"rsvp/internal/service"
)

// @title Wedding RSVP API
// @version 1.0
// @description Invitation-gated registration, guest preferences and contact relay.
// @host localhost:8080
// @BasePath /
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := run(logger); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	gormDB, err := db.Open(cfg)
	if err != nil {
		return err
	}

	// Drop tables if RESET_DB environment variable is set
	if cfg.ResetDB {
		logger.Warn("RESET_DB=true detected, dropping all tables")
		if err := db.Reset(gormDB); err != nil {
			return err
		}
	}
	if err := db.Migrate(gormDB); err != nil {
		return err
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB, "rsvp")
	defer cacheClient.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	guestRepo := repository.NewGuestRepository(gormDB)

	// Initialize auth components
	tokens := auth.NewTokenCodec(cfg.TokenSize, cfg.TokenFingerprintKey)
	passwords := auth.NewPasswordHasher(cfg.BcryptCost)
	sessions := auth.NewJWTService(cfg.JWTSecret, cfg.AccessTokenExpiry())

	// Email delivery
	mailer := notify.NewSMTPMailer(notify.SMTPConfig{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUsername,
		Password: cfg.SMTPPassword,
		From:     cfg.MailFrom,
		Timeout:  cfg.MailSendTimeout(),
	})
	dispatcher := notify.NewDispatcher(mailer, cfg.MailWorkers, cfg.MailQueueSize, cfg.MailSendTimeout(), logger)
	dispatcher.Start(context.Background())
	defer dispatcher.Stop()
	notifier := notify.NewNotifier(dispatcher, cfg, cfg.MailSubjectPrefix, logger)

	// Initialize services
	lifecycleService := service.NewLifecycleService(userRepo, tokens, passwords, sessions, cacheClient, logger)
	guestService := service.NewGuestService(guestRepo, cacheClient, logger)
	contactService := service.NewContactService(guestRepo, cacheClient, cfg.PhoneDefaultRegion, logger)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(lifecycleService, notifier)
	guestHandler := handler.NewGuestHandler(lifecycleService, guestService)
	contactHandler := handler.NewContactHandler(contactService, notifier)

	e := echo.New()
	e.HideBanner = true
	router.Register(e, cfg, sessions, authHandler, guestHandler, contactHandler)

	logger.Info("swagger documentation available", "url", "http://localhost:"+cfg.ServerPort+"/swagger/index.html")

	errCh := make(chan error, 1)
	go func() {
		addr := ":" + cfg.ServerPort
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
