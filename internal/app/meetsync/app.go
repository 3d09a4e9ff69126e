package meetsync

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/meetsync/internal/config"
	"github.com/magabrotheeeer/meetsync/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/meetsync/internal/lib/sl"
	"github.com/magabrotheeeer/meetsync/internal/migrations"
	accountservice "github.com/magabrotheeeer/meetsync/internal/services/account"
	"github.com/magabrotheeeer/meetsync/internal/session"
	"github.com/magabrotheeeer/meetsync/internal/storage/repository"
)

type App struct {
	server   *http.Server
	logger   *slog.Logger
	db       *repository.Storage
	sessions *session.Manager
	rabbit   *amqp.Connection
}

func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		return nil, err
	}
	if err = repository.CheckDatabaseReady(db); err != nil {
		return nil, err
	}

	count, err := db.CountUsers(ctx)
	if err != nil {
		return nil, err
	}
	logger.Info("database ready", slog.Int("user_count", count))

	sessions, err := session.New(ctx, cfg.RedisConnection, cfg.Session)
	if err != nil {
		return nil, err
	}

	var publisher accountservice.EventPublisher
	var rabbitConn *amqp.Connection
	if cfg.Rabbit.AddressAMQP != "" {
		conn, err := rabbitmq.Connect(cfg.Rabbit.AddressAMQP, cfg.Rabbit.Retries, cfg.Rabbit.RetryDelay)
		if err != nil {
			return nil, err
		}
		rabbitConn = conn
		ch, err := rabbitmq.SetupChannel(conn, cfg.Rabbit.Exchange, []rabbitmq.QueueConfig{
			{QueueName: cfg.Rabbit.Queue, RoutingKey: cfg.Rabbit.RoutingKey},
		})
		if err != nil {
			return nil, err
		}
		publisher = rabbitmq.NewPublisher(ch, cfg.Rabbit.Exchange)
	} else {
		logger.Info("rabbitmq address is empty, registration events disabled")
	}

	accountService := accountservice.New(db, publisher, cfg.Rabbit.RoutingKey, logger)

	router := chi.NewRouter()

	RegisterRoutes(router, logger, accountService, sessions)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server:   srv,
		logger:   logger,
		db:       db,
		sessions: sessions,
		rabbit:   rabbitConn,
	}, nil
}

func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		if closeErr := a.db.DB.Close(); closeErr != nil {
			a.logger.Error("failed to close database", sl.Err(closeErr))
		}
		if closeErr := a.sessions.Close(); closeErr != nil {
			a.logger.Error("failed to close session store", sl.Err(closeErr))
		}
		if a.rabbit != nil {
			if closeErr := a.rabbit.Close(); closeErr != nil {
				a.logger.Error("failed to close rabbitmq connection", sl.Err(closeErr))
			}
		}
		return err
	}
}
