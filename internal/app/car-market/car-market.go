package carmarket

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/car-market/internal/cache"
	"github.com/magabrotheeeer/car-market/internal/config"
	"github.com/magabrotheeeer/car-market/internal/lib/jwt"
	"github.com/magabrotheeeer/car-market/internal/migrations"
	"github.com/magabrotheeeer/car-market/internal/rabbitmq"
	authservice "github.com/magabrotheeeer/car-market/internal/services/auth"
	carservice "github.com/magabrotheeeer/car-market/internal/services/car"
	"github.com/magabrotheeeer/car-market/internal/storage/repository"
)

type App struct {
	server *http.Server
	logger *slog.Logger
	db     *repository.Storage
	amqp   *amqp.Connection
}

func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	// Публикация событий опциональна: без брокера сервис работает как обычно.
	var amqpConn *amqp.Connection
	var events carservice.EventPublisher
	if cfg.AddressRabbit != "" {
		amqpConn, err = rabbitmq.Connect(cfg.AddressRabbit, cfg.Retries, cfg.RetryDelay)
		if err != nil {
			return nil, err
		}
		ch, err := rabbitmq.SetupChannel(amqpConn, rabbitmq.GetListingQueues())
		if err != nil {
			return nil, err
		}
		events = rabbitmq.NewPublisher(ch)
	}

	jwtMaker := jwt.NewMaker(cfg.JWTSecretKey)
	authService := authservice.NewAuthService(db, jwtMaker)
	carService := carservice.NewCarService(db, cacheRedis, events, logger)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, cfg, authService, carService)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
		amqp:   amqpConn,
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
		if a.amqp != nil {
			_ = a.amqp.Close()
		}
		_ = a.db.DB.Close()
		return err
	}
}
