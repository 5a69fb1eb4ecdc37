package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/tup-eyegrade/eyegrade-api/auth"
	"github.com/tup-eyegrade/eyegrade-api/config"
	"github.com/tup-eyegrade/eyegrade-api/content"
	"github.com/tup-eyegrade/eyegrade-api/handlers"
	"github.com/tup-eyegrade/eyegrade-api/identity"
	"github.com/tup-eyegrade/eyegrade-api/logger"
	"github.com/tup-eyegrade/eyegrade-api/mail"
	"github.com/tup-eyegrade/eyegrade-api/middleware"
	"github.com/tup-eyegrade/eyegrade-api/reminders"
	"github.com/tup-eyegrade/eyegrade-api/repositories"
	"github.com/tup-eyegrade/eyegrade-api/services"
)

func init() {
	// Load .env file if not running on Render
	if os.Getenv("RENDER") == "" {
		if err := godotenv.Load(); err != nil {
			log.Printf("Warning: .env file not found, environment variables might not be loaded: %v", err)
		}
	}
}

func main() {
	cfg := config.Load()

	mode := "production"
	if cfg.IsDevelopment() {
		mode = "development"
	}
	appLog, err := logger.New(mode)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer appLog.Sync()

	db, err := config.Connect(cfg, appLog)
	if err != nil {
		appLog.Fatal("failed to connect to database", "error", err)
	}

	prescriptions := repositories.NewPrescriptionRepository(db)
	assessments := repositories.NewAssessmentRepository(db)
	notifications := repositories.NewNotificationRepository(db)

	accounts := repositories.NewAccountRepository(db)
	directory, err := newDirectory(cfg, appLog, accounts)
	if err != nil {
		appLog.Fatal("failed to set up identity directory", "error", err)
	}

	mailer := newMailer(cfg, appLog)

	var redisClient *redis.Client
	var locker reminders.Locker = &reminders.LocalLocker{}
	if cfg.RedisURL != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		redisClient, err = reminders.NewRedisClient(ctx, cfg.RedisURL)
		cancel()
		if err != nil {
			appLog.Fatal("failed to connect to redis", "error", err)
		}
		locker = reminders.NewRedisLocker(redisClient, "", 0)
	}

	loc := cfg.Location()
	dispatcher := reminders.NewDispatcher(appLog, reminders.DispatcherConfig{
		Prescriptions: prescriptions,
		Directory:     directory,
		Mailer:        mailer,
		Notifications: notifications,
		Dedupe:        cfg.ReminderDedupe,
		Locker:        locker,
		Location:      loc,
	})
	scheduler, err := reminders.NewScheduler(appLog, cfg.ReminderSchedule, loc, dispatcher)
	if err != nil {
		appLog.Fatal("failed to schedule reminders", "error", err)
	}

	h := &handlers.APIHandler{
		Prescriptions: prescriptions,
		Assessments:   assessments,
		Purger:        services.NewAccountPurger(assessments, prescriptions, directory, repositories.NewTxManager(db), appLog),
		Mailer:        mailer,
		Deck:          content.NewDeck(nil),
		Log:           appLog.With("component", "APIHandler"),
	}

	routerCfg := handlers.RouterConfig{
		Gate:       middleware.NewGate(cfg.AllowedEmailDomain, cfg.TokenAuth(), appLog),
		CORSOrigin: cfg.CORSOrigin,
	}
	if cfg.SupabaseURL == "" {
		routerCfg.AccountSync = middleware.AccountSync(accounts, appLog)
	}
	if cfg.TokenAuth() {
		routerCfg.TokenMiddleware, err = middleware.EnsureValidToken(cfg.SupabaseURL, cfg.SupabaseJWTSecret, appLog)
		if err != nil {
			appLog.Fatal("failed to set up token verification", "error", err)
		}
	}

	server := &http.Server{
		Addr:              "0.0.0.0:" + cfg.Port,
		Handler:           handlers.NewRouter(h, routerCfg),
		ReadHeaderTimeout: 10 * time.Second,
		ErrorLog:          appLog.StdLog(),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	scheduler.Start()

	go func() {
		appLog.Info("server running", "port", cfg.Port, "token_auth", cfg.TokenAuth())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLog.Error("server stopped unexpectedly", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	appLog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		appLog.Error("failed to shut down server", "error", err)
	}
	scheduler.Stop(shutdownCtx)

	if redisClient != nil {
		_ = redisClient.Close()
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

// newDirectory picks the Supabase admin API when configured, otherwise the local accounts table.
func newDirectory(cfg config.Config, log *logger.Logger, local identity.Directory) (identity.Directory, error) {
	if cfg.SupabaseURL == "" {
		log.Warn("SUPABASE_URL not set, using the local accounts table")
		return local, nil
	}

	key := cfg.SupabaseKey
	if key == "" {
		minted, err := auth.CreateServiceRoleKey(cfg.SupabaseJWTSecret)
		if err != nil {
			return nil, err
		}
		key = minted
	}

	return identity.NewSupabaseDirectory(log, identity.SupabaseConfig{
		BaseURL:        cfg.SupabaseURL,
		ServiceRoleKey: key,
	})
}

func newMailer(cfg config.Config, log *logger.Logger) mail.Sender {
	sender, err := mail.NewSMTPSender(log, mail.SMTPConfig{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.EmailUser,
		Password: cfg.EmailPass,
	})
	if err != nil {
		log.Warn("email delivery disabled", "error", err)
		return mail.Disabled{}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := sender.Verify(ctx); err != nil {
		log.Error("cannot connect to mail server", "error", err)
	} else {
		log.Info("mail server ready", "host", cfg.SMTPHost)
	}
	return sender
}
