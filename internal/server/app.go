// Package server wires the identity service together: storage backend,
// token issuer, email sender, and the HTTP server, with graceful shutdown
// on SIGINT/SIGTERM.
package server

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
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"

	"github.com/akarpov87/custauth/internal/logging"
	"github.com/akarpov87/custauth/internal/server/auth"
	"github.com/akarpov87/custauth/internal/server/config"
	"github.com/akarpov87/custauth/internal/server/email"
	"github.com/akarpov87/custauth/internal/server/httpapi"
	"github.com/akarpov87/custauth/internal/server/repositories/repomanager"
	"github.com/akarpov87/custauth/internal/server/services"
)

const shutdownTimeout = 10 * time.Second

type App struct {
	config  *config.Config
	logger  logging.Logger
	manager repomanager.RepositoryManager
	httpSrv *httpapi.Server
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	manager, err := NewRepositoryManager(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("storage init error: %w", err)
	}

	sender, err := newEmailSender(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("email init error: %w", err)
	}

	issuer := auth.NewIssuer(
		[]byte(cfg.SessionSecretKey), []byte(cfg.ResetSecretKey),
		cfg.SessionTokenValidity, cfg.ResetTokenValidity,
	)
	identity := services.NewIdentityService(manager, issuer, sender, cfg)
	httpSrv := httpapi.NewServer(cfg.EndpointAddrHTTP, identity, issuer, logger)

	return &App{config: cfg, logger: logger, manager: manager, httpSrv: httpSrv}, nil
}

// NewRepositoryManager selects the storage backend named in the config.
// cmd/regtool uses it too, so it is exported.
func NewRepositoryManager(ctx context.Context, cfg *config.Config) (repomanager.RepositoryManager, error) {
	switch cfg.StorageBackend {
	case config.BackendPostgres:
		return repomanager.NewPostgresRepositoryManager(ctx, cfg.DatabaseDSN)
	case config.BackendDynamoDB:
		return repomanager.NewDynamoRepositoryManager(ctx, cfg)
	case config.BackendMemory:
		return repomanager.NewMemoryRepositoryManager(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend: %q", cfg.StorageBackend)
	}
}

func newEmailSender(ctx context.Context, cfg *config.Config) (email.Sender, error) {
	switch cfg.EmailBackend {
	case config.EmailSES:
		opts := []func(*awsconfig.LoadOptions) error{
			awsconfig.WithRegion(cfg.AWSRegion),
		}
		if cfg.AWSAccessKeyID != "" {
			opts = append(opts, awsconfig.WithCredentialsProvider(
				credentials.NewStaticCredentialsProvider(cfg.AWSAccessKeyID, cfg.AWSSecretAccessKey, "")))
		}

		awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
		if err != nil {
			return nil, fmt.Errorf("aws config error: %w", err)
		}

		client := sesv2.NewFromConfig(awsCfg, func(o *sesv2.Options) {
			if cfg.AWSBaseEndpoint != "" {
				o.BaseEndpoint = aws.String(cfg.AWSBaseEndpoint)
			}
		})

		return email.NewSESSender(client, cfg.EmailFrom), nil
	case config.EmailMemory:
		return email.NewMemorySender(), nil
	default:
		return nil, fmt.Errorf("unknown email backend: %q", cfg.EmailBackend)
	}
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.initSignalHandler(cancelFunc)

	app.logger.Info(ctx, "starting server",
		"addr", app.config.EndpointAddrHTTP,
		"storage", app.config.StorageBackend,
		"email", app.config.EmailBackend,
	)

	errCh := make(chan error, 1)
	go func() {
		errCh <- app.httpSrv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			app.logger.Error(ctx, "server error", "error", err)
		}
	case <-ctx.Done():
		app.logger.Info(ctx, "shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := app.httpSrv.Shutdown(shutdownCtx); err != nil {
			app.logger.Error(ctx, "shutdown error", "error", err)
		}
	}

	if err := app.manager.Close(); err != nil {
		app.logger.Error(ctx, "storage close error", "error", err)
	}
}
