package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"os"
	"time"

	"github.com/bmwadforth/articlehub/internal/articleservice"
	"github.com/bmwadforth/articlehub/internal/authservice"
	"github.com/bmwadforth/articlehub/internal/blobstore"
	"github.com/bmwadforth/articlehub/internal/common"
	"github.com/bmwadforth/articlehub/internal/handlers"
	"github.com/bmwadforth/articlehub/internal/mailservice"
)

type application struct {
	config   *Config
	logger   *slog.Logger
	handlers *handlers.Handlers
	tokens   tokenParser
	limiter  *ipRateLimiter
}

type tokenParser interface {
	ParseToken(raw string) (*authservice.Claims, error)
}

func main() {
	logger := slog.New(newTraceHandler(slog.NewTextHandler(os.Stdout, nil)))
	slog.SetDefault(logger)

	cfg, err := loadConfig(".env")
	if err != nil {
		logger.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := run(cfg, logger); err != nil {
		logger.Error("server exited", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(cfg *Config, logger *slog.Logger) error {
	ctx := context.Background()

	if cfg.TracingEnabled {
		tp, err := newTracerProvider(ctx, cfg)
		if err != nil {
			return err
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := tp.Shutdown(shutdownCtx); err != nil {
				logger.Error("failed to flush traces", slog.String("error", err.Error()))
			}
		}()
	}

	if err := common.Migrate(cfg.DB.URL); err != nil {
		return err
	}

	db, err := common.NewDB(cfg.DB.URL, cfg.DB.MaxOpenConns, cfg.DB.MaxIdleConns, cfg.DB.MaxIdleTime)
	if err != nil {
		return err
	}
	defer common.CloseDB(db)

	blobs, err := newBlobStore(ctx, cfg)
	if err != nil {
		return err
	}

	tokens, err := authservice.NewTokenManager(cfg.Auth.Key, cfg.Auth.Issuer, cfg.Auth.Audience)
	if err != nil {
		return err
	}

	var producer common.MessageProducer
	if cfg.RabbitMQ.URL != "" {
		broker, err := common.NewMessageBroker(cfg.RabbitMQ.URL)
		if err != nil {
			return err
		}
		defer broker.Close()

		if err := common.SetupUserExchange(broker); err != nil {
			return err
		}
		producer = broker

		mail := mailservice.NewMailService(broker, mailservice.Config{
			Host:     cfg.Mail.Host,
			Port:     cfg.Mail.Port,
			Username: cfg.Mail.User,
			Password: cfg.Mail.Password,
			Sender:   cfg.Mail.Sender,
			AppName:  serviceName,
		}, logger)
		if err := mail.SendWelcomeEmail(); err != nil {
			return err
		}
		defer mail.Close()
	} else {
		logger.Info("RABBITMQ_URL not set, user events and welcome emails are disabled")
	}

	app := newApplication(cfg, logger, db, blobs, tokens, producer)

	return app.serve(cfg.Port)
}

func newApplication(cfg *Config, logger *slog.Logger, db *sql.DB, blobs blobstore.BlobStore, tokens *authservice.TokenManager, producer common.MessageProducer) *application {
	cache := common.NewCache(5*time.Minute, 10*time.Minute)

	return &application{
		config: cfg,
		logger: logger,
		handlers: handlers.New(
			articleservice.NewArticleService(db, blobs, cache),
			authservice.NewAuthService(db, tokens, producer),
		),
		tokens:  tokens,
		limiter: newIPRateLimiter(cfg.Auth.LoginRateLimit, cfg.Auth.LoginRateBurst),
	}
}

func newBlobStore(ctx context.Context, cfg *Config) (blobstore.BlobStore, error) {
	switch cfg.Blob.Backend {
	case "memory":
		return blobstore.NewMemoryStore(), nil
	case "s3":
		store, err := blobstore.NewS3Store(ctx, blobstore.S3Config{
			Region:                 cfg.Blob.S3Region,
			Bucket:                 cfg.Blob.S3Bucket,
			AccessKeyID:            cfg.Blob.S3AccessKeyID,
			SecretAccessKey:        cfg.Blob.S3SecretAccessKey,
			Endpoint:               cfg.Blob.S3Endpoint,
			UsePathStyle:           cfg.Blob.S3UsePathStyle,
			KeyPrefix:              cfg.Blob.S3KeyPrefix,
			CreateBucketIfNotExist: cfg.Blob.S3CreateBucket,
		})
		if err != nil {
			return nil, err
		}
		return store, nil
	default:
		return nil, errors.New("unknown blob backend " + cfg.Blob.Backend)
	}
}
