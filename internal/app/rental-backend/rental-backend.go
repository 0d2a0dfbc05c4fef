package rentalbackend

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/streadway/amqp"

	"github.com/homefind/rental-backend/internal/cache"
	"github.com/homefind/rental-backend/internal/config"
	"github.com/homefind/rental-backend/internal/lib/jwt"
	"github.com/homefind/rental-backend/internal/lib/sl"
	"github.com/homefind/rental-backend/internal/media"
	"github.com/homefind/rental-backend/internal/rabbitmq"
	availabilityservice "github.com/homefind/rental-backend/internal/services/availability"
	houseservice "github.com/homefind/rental-backend/internal/services/house"
	questionservice "github.com/homefind/rental-backend/internal/services/question"
	rentalservice "github.com/homefind/rental-backend/internal/services/rental"
	sweepservice "github.com/homefind/rental-backend/internal/services/sweep"
	userservice "github.com/homefind/rental-backend/internal/services/user"
	"github.com/homefind/rental-backend/internal/storage/mongodb"
)

// App хранит собранный HTTP-сервер и ресурсы, требующие закрытия.
type App struct {
	server  *http.Server
	logger  *slog.Logger
	db      *mongodb.Storage
	amqp    *amqp.Connection
	sweeper *sweepservice.Service
}

// New собирает приложение из конфигурации: хранилище, кэш, блоб-хранилище,
// брокер событий, сервисы и маршруты.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := mongodb.New(ctx, cfg.StorageConnectionString, cfg.StorageDatabase)
	if err != nil {
		return nil, err
	}

	var cacheClient rentalservice.Cache
	if cfg.RedisConnection.Enabled {
		redisCache, err := cache.InitServer(ctx, cfg.RedisConnection)
		if err != nil {
			return nil, err
		}
		cacheClient = redisCache
	} else {
		logger.Info("cache is disabled, using noop implementation")
		cacheClient = cache.Noop{}
	}

	mediaStore, err := media.New(ctx, cfg.MediaStorage)
	if err != nil {
		return nil, err
	}

	var events rentalservice.EventPublisher = rabbitmq.NopPublisher{}
	var amqpConn *amqp.Connection
	if cfg.RabbitMQURL != "" {
		amqpConn, err = rabbitmq.Connect(cfg.RabbitMQURL, cfg.RabbitMQMaxRetries, cfg.RabbitMQRetryDelay)
		if err != nil {
			return nil, err
		}
		channel, err := rabbitmq.SetupChannel(amqpConn)
		if err != nil {
			return nil, err
		}
		events = rabbitmq.NewPublisher(channel)
	} else {
		logger.Info("rabbitmq is not configured, rental events are dropped")
	}

	jwtMaker := jwt.NewMaker(cfg.JWTSecretKey, cfg.TokenTTL)

	checker := availabilityservice.New(db.Rentals)
	rentalSvc := rentalservice.New(db.Rentals, db.Houses, db.Users, checker, cacheClient, events, logger)
	houseSvc := houseservice.New(db.Houses, db.Users, db.Rentals, mediaStore, cacheClient, logger)
	userSvc := userservice.New(db.Users, db.Houses, mediaStore, jwtMaker, logger)
	questionSvc := questionservice.New(db.Questions, db.Houses, logger)
	sweeper := sweepservice.New(db.Houses, cacheClient, cfg.SweepInterval, cfg.SweepLimit, cfg.SweepDiscount, logger)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, jwtMaker, userSvc, houseSvc, rentalSvc, questionSvc, mediaStore)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server:  srv,
		logger:  logger,
		db:      db,
		amqp:    amqpConn,
		sweeper: sweeper,
	}, nil
}

// Run запускает фоновую уценку и HTTP-сервер, останавливая оба
// по отмене контекста.
func (a *App) Run(ctx context.Context) error {
	go a.sweeper.Run(ctx)

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
			if cerr := a.amqp.Close(); cerr != nil {
				a.logger.Error("failed to close rabbitmq connection", sl.Err(cerr))
			}
		}
		if cerr := a.db.Close(timeoutCtx); cerr != nil {
			a.logger.Error("failed to close storage connection", sl.Err(cerr))
		}
		return err
	}
}
