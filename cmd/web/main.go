package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"cloud.google.com/go/pubsub"
	"go.uber.org/zap"
	"google.golang.org/api/option"

	"sveasoft.se/web/internal/config"
	"sveasoft.se/web/internal/contact"
	"sveasoft.se/web/internal/handlers"
	"sveasoft.se/web/internal/observability"
	"sveasoft.se/web/internal/secrets"
)

func main() {
	ctx := context.Background()

	baseLogger, err := observability.NewLogger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialise logger: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = baseLogger.Sync()
	}()

	logger := baseLogger.Named("web")
	ctx = observability.WithLogger(ctx, logger)

	fetcher, err := newSecretFetcher(ctx, logger)
	if err != nil {
		logger.Fatal("failed to initialise secret fetcher", zap.Error(err))
	}
	defer func() {
		if err := fetcher.Close(); err != nil {
			logger.Warn("secret fetcher close error", zap.Error(err))
		}
	}()

	cfg, err := config.Load(ctx, config.WithSecretResolver(fetcher))
	if err != nil {
		var verr *config.ValidationError
		if errors.As(err, &verr) {
			logger.Fatal("invalid configuration", zap.Strings("fields", verr.Fields()), zap.Error(err))
		}
		logger.Fatal("failed to load configuration", zap.Error(err))
	}

	notifier, stopNotifier, err := newNotifier(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("failed to initialise contact notifier", zap.Error(err))
	}
	defer stopNotifier()

	site, err := newApp(ctx, cfg, logger, appDeps{
		Notifier:  notifier,
		Analytics: handlers.LoadAnalyticsFromEnv(),
	})
	if err != nil {
		logger.Fatal("failed to initialise site", zap.Error(err))
	}
	defer site.Close()

	server := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           site.routes(),
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	sigCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	serverLogger := logger.Named("http").With(zap.String("addr", server.Addr))
	go func() {
		serverLogger.Info("sveasoft web listening",
			zap.String("env", cfg.Site.Environment),
			zap.Bool("dev", cfg.Site.DevMode),
			zap.Bool("pubsub", cfg.Contact.PubSubEnabled()),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverLogger.Fatal("http server error", zap.Error(err))
		}
	}()

	<-sigCtx.Done()
	logger.Info("shutdown signal received; draining requests")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
}

// newSecretFetcher is built before configuration so secret:// values in the environment can
// be resolved while loading it.
func newSecretFetcher(ctx context.Context, logger *zap.Logger) (*secrets.Fetcher, error) {
	opts := []secrets.Option{
		secrets.WithLogger(logger.Named("secrets")),
		secrets.WithDefaultProject(os.Getenv("WEB_SECRETS_PROJECT_ID")),
	}
	if path := strings.TrimSpace(os.Getenv("WEB_SECRETS_FALLBACK_FILE")); path != "" {
		opts = append(opts, secrets.WithFallbackFile(path))
	}
	if creds := strings.TrimSpace(os.Getenv("WEB_CREDENTIALS_FILE")); creds != "" {
		opts = append(opts, secrets.WithClientOptions(option.WithCredentialsFile(creds)))
	}
	return secrets.NewFetcher(ctx, opts...)
}

// newNotifier publishes contact submissions to Pub/Sub when a topic is configured and logs them
// otherwise. The returned func flushes and closes whatever was opened.
func newNotifier(ctx context.Context, cfg config.Config, logger *zap.Logger) (contact.Notifier, func(), error) {
	if !cfg.Contact.PubSubEnabled() {
		logger.Info("contact submissions will be logged; set WEB_CONTACT_TOPIC to publish them")
		return contact.NewLogNotifier(logger.Named("contact")), func() {}, nil
	}
	var opts []option.ClientOption
	if creds := strings.TrimSpace(os.Getenv("WEB_CREDENTIALS_FILE")); creds != "" {
		opts = append(opts, option.WithCredentialsFile(creds))
	}
	client, err := pubsub.NewClient(ctx, cfg.Contact.ProjectID, opts...)
	if err != nil {
		return nil, nil, fmt.Errorf("pubsub client: %w", err)
	}
	notifier, err := contact.NewPubSubNotifier(client.Topic(cfg.Contact.Topic))
	if err != nil {
		_ = client.Close()
		return nil, nil, err
	}
	return notifier, func() {
		notifier.Stop()
		if err := client.Close(); err != nil {
			logger.Warn("pubsub client close error", zap.Error(err))
		}
	}, nil
}
