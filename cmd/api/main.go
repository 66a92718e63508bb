package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/go-api-errnotify/internal/application/errnotify"
	"github.com/go-api-errnotify/internal/application/notification"
	"github.com/go-api-errnotify/internal/config"
	"github.com/go-api-errnotify/internal/infrastructure/awscfg"
	"github.com/go-api-errnotify/internal/infrastructure/dynamo"
	"github.com/go-api-errnotify/internal/infrastructure/i18n"
	jwtinfra "github.com/go-api-errnotify/internal/infrastructure/jwt"
	s3infra "github.com/go-api-errnotify/internal/infrastructure/s3"
	"github.com/go-api-errnotify/internal/infrastructure/sns"
	"github.com/go-api-errnotify/internal/pkg/logging"
	transporthttp "github.com/go-api-errnotify/internal/transport/http"
	"github.com/joho/godotenv"
)

func main() {
	envErr := godotenv.Load()

	cfg := config.Load()
	logger := logging.NewLogger(logging.ParseLevel(cfg.LogLevel), cfg.LogFormat, os.Stderr)
	slog.SetDefault(logger)
	if envErr != nil {
		logger.Info("no .env file found, reading from environment")
	}

	if err := run(cfg, logger); err != nil {
		logger.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	ctx := context.Background()

	awsCfg, err := awscfg.Load(ctx, cfg, "")
	if err != nil {
		return err
	}

	// Bootstrap the notifications table (creates it if it doesn't exist).
	dynamoClient := dynamo.NewClient(awsCfg, cfg.AWSEndpointURL)
	if err := dynamo.Bootstrap(ctx, dynamoClient, cfg.NotificationsTable, logger); err != nil {
		logger.Warn("could not create notifications table", "table", cfg.NotificationsTable, "err", err)
	}

	catalog, err := loadCatalog(ctx, cfg, awsCfg)
	if err != nil {
		return err
	}
	labels, err := i18n.LoadFieldLabels(cfg.FieldLabelsPath)
	if err != nil {
		return err
	}

	jwtProvider, err := jwtinfra.NewProvider(cfg)
	if err != nil {
		return fmt.Errorf("jwt provider: %w", err)
	}

	// SNS fan-out (optional).
	var publisher notification.Publisher
	if cfg.SNSTopicARN != "" {
		snsCfg, err := awscfg.Load(ctx, cfg, cfg.SNSRegion)
		if err != nil {
			logger.Warn("SNS publisher not available", "err", err)
		} else {
			publisher = sns.NewPublisher(sns.NewClient(snsCfg), cfg.SNSTopicARN)
		}
	}

	notifSvc := notification.NewService(notification.ServiceDeps{
		Repo:      dynamo.NewNotificationRepo(dynamoClient, cfg.NotificationsTable),
		Publisher: publisher,
		Timeout:   cfg.NotifyTimeout,
		Logger:    logger.With("component", "notification"),
	})
	errSvc := errnotify.NewService(notifSvc, catalog, labels, logger.With("component", "errnotify"))

	router, limiter := transporthttp.NewRouter(cfg, &transporthttp.Deps{
		ErrNotifier:   errSvc,
		Notifications: notifSvc,
		Catalog:       catalog,
		Verifier:      jwtProvider,
		Logger:        logger,
	})
	defer limiter.Stop()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.AppPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting", "addr", srv.Addr, "env", cfg.AppEnv, "locale", cfg.Locale)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-quit:
	}

	logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("forced shutdown: %w", err)
	}
	notifSvc.Wait()
	logger.Info("server stopped")
	return nil
}

// loadCatalog prefers a local catalog file and falls back to the S3 object.
func loadCatalog(ctx context.Context, cfg *config.Config, awsCfg aws.Config) (*i18n.Catalog, error) {
	src := i18n.FileSource(cfg.LocaleCatalogPath)
	if cfg.LocaleCatalogPath == "" {
		store := s3infra.NewStore(s3infra.NewClient(awsCfg, cfg.AWSEndpointURL), cfg.S3BucketName)
		key := cfg.LocaleCatalogS3Key
		if key == "" {
			key = "i18n/" + cfg.Locale + ".yaml"
		}
		src = i18n.ObjectSource(store, key)
	}
	catalog, err := i18n.Load(ctx, src)
	if err != nil {
		return nil, fmt.Errorf("locale %s: %w", cfg.Locale, err)
	}
	return catalog, nil
}
