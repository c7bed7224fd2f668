// Package app собирает приложение: подключения к хранилищу и кешу,
// сервисы, маршруты и HTTP сервер с мягкой остановкой.
package app

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/magabrotheeeer/tour-booking-api/internal/cache"
	"github.com/magabrotheeeer/tour-booking-api/internal/config"
	"github.com/magabrotheeeer/tour-booking-api/internal/lib/jwt"
	"github.com/magabrotheeeer/tour-booking-api/internal/lib/sl"
	"github.com/magabrotheeeer/tour-booking-api/internal/lib/smtp"
	"github.com/magabrotheeeer/tour-booking-api/internal/storage/mongodb"
	"github.com/magabrotheeeer/tour-booking-api/internal/storage/repository"

	authservice "github.com/magabrotheeeer/tour-booking-api/internal/services/auth"
	mailerservice "github.com/magabrotheeeer/tour-booking-api/internal/services/mailer"
	reviewservice "github.com/magabrotheeeer/tour-booking-api/internal/services/review"
	tourservice "github.com/magabrotheeeer/tour-booking-api/internal/services/tour"
	userservice "github.com/magabrotheeeer/tour-booking-api/internal/services/user"
)

// App — собранное приложение бронирования туров.
type App struct {
	server  *http.Server
	logger  *slog.Logger
	storage *mongodb.Storage
	cache   *cache.Cache
}

// New подключается к хранилищу и кешу, собирает сервисы и маршруты.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	connectCtx, cancel := context.WithTimeout(ctx, cfg.MongoConnection.Timeout)
	defer cancel()

	storage, err := mongodb.New(connectCtx, cfg.MongoConnection.URI, cfg.MongoConnection.Database)
	if err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	users := repository.NewUsers(storage)
	tours := repository.NewTours(storage)
	reviews := repository.NewReviews(storage)

	jwtMaker := jwt.NewJWTMaker(cfg.JWTToken.JWTSecretKey, cfg.JWTToken.TokenTTL)
	transport := smtp.NewTransport(cfg.SMTP, logger)

	authService := authservice.NewAuthService(users, jwtMaker, cfg.ResetToken.ResetTokenTTL)
	tourService := tourservice.NewTourService(tours, cacheRedis, logger)
	reviewService := reviewservice.NewReviewService(reviews)
	userService := userservice.NewUserService(users)
	mailerService := mailerservice.NewMailerService(transport, logger)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, cfg.Env, Services{
		Auth:   authService,
		Tour:   tourService,
		Review: reviewService,
		User:   userService,
		Mailer: mailerService,
	})

	srv := &http.Server{
		Addr:         cfg.HTTPServer.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.HTTPServer.TimeoutHTTP,
		WriteTimeout: cfg.HTTPServer.TimeoutHTTP,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	return &App{
		server:  srv,
		logger:  logger,
		storage: storage,
		cache:   cacheRedis,
	}, nil
}

// Run запускает HTTP сервер и мягко останавливает его при отмене контекста.
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
		if closeErr := a.storage.Close(timeoutCtx); closeErr != nil {
			a.logger.Error("failed to close storage connection", sl.Err(closeErr))
		}
		if closeErr := a.cache.Db.Close(); closeErr != nil {
			a.logger.Error("failed to close cache connection", sl.Err(closeErr))
		}
		return err
	}
}
