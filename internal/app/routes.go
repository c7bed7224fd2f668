package app

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
	"golang.org/x/time/rate"

	"github.com/magabrotheeeer/tour-booking-api/internal/http/middlewarectx"
	"github.com/magabrotheeeer/tour-booking-api/internal/http/response"
	"github.com/magabrotheeeer/tour-booking-api/internal/models"

	"github.com/magabrotheeeer/tour-booking-api/internal/http/handlers/auth/forgotpassword"
	"github.com/magabrotheeeer/tour-booking-api/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/tour-booking-api/internal/http/handlers/auth/resetpassword"
	"github.com/magabrotheeeer/tour-booking-api/internal/http/handlers/auth/signup"
	"github.com/magabrotheeeer/tour-booking-api/internal/http/handlers/auth/updatepassword"
	"github.com/magabrotheeeer/tour-booking-api/internal/http/handlers/crud"
	reviewcreate "github.com/magabrotheeeer/tour-booking-api/internal/http/handlers/review/create"
	reviewlist "github.com/magabrotheeeer/tour-booking-api/internal/http/handlers/review/list"
	reviewremove "github.com/magabrotheeeer/tour-booking-api/internal/http/handlers/review/remove"
	reviewupdate "github.com/magabrotheeeer/tour-booking-api/internal/http/handlers/review/update"
	tourlist "github.com/magabrotheeeer/tour-booking-api/internal/http/handlers/tour/list"
	"github.com/magabrotheeeer/tour-booking-api/internal/http/handlers/tour/monthlyplan"
	tourread "github.com/magabrotheeeer/tour-booking-api/internal/http/handlers/tour/read"
	"github.com/magabrotheeeer/tour-booking-api/internal/http/handlers/tour/stats"
	userlist "github.com/magabrotheeeer/tour-booking-api/internal/http/handlers/user/list"
	userread "github.com/magabrotheeeer/tour-booking-api/internal/http/handlers/user/read"
	userupdate "github.com/magabrotheeeer/tour-booking-api/internal/http/handlers/user/update"

	authservice "github.com/magabrotheeeer/tour-booking-api/internal/services/auth"
	mailerservice "github.com/magabrotheeeer/tour-booking-api/internal/services/mailer"
	reviewservice "github.com/magabrotheeeer/tour-booking-api/internal/services/review"
	tourservice "github.com/magabrotheeeer/tour-booking-api/internal/services/tour"
	userservice "github.com/magabrotheeeer/tour-booking-api/internal/services/user"
)

// maxBodyBytes — верхняя граница размера тела запроса.
const maxBodyBytes = 10 << 10

// Services — сервисы, которыми пользуются маршруты.
type Services struct {
	Auth   *authservice.AuthService
	Tour   *tourservice.TourService
	Review *reviewservice.ReviewService
	User   *userservice.UserService
	Mailer *mailerservice.MailerService
}

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, env string, svc Services) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)
	r.Use(middlewarectx.SecureHeaders)
	r.Use(middlewarectx.RateLimitMiddleware(logger, rate.NewLimiter(rate.Limit(100), 100)))
	r.Use(limitBody)

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки
		r.Route("/auth-users", func(r chi.Router) {
			r.Post("/signup", signup.New(logger, svc.Auth, env).ServeHTTP)
			r.Post("/login", login.New(logger, svc.Auth, env).ServeHTTP)
			r.Post("/forgotPassword", forgotpassword.New(logger, svc.Auth, svc.Mailer, env).ServeHTTP)
			r.Patch("/resetPassword/{token}", resetpassword.New(logger, svc.Auth, env).ServeHTTP)

			r.Group(func(r chi.Router) {
				r.Use(middlewarectx.Authenticate(svc.Auth, logger))
				r.Patch("/updatePassword", updatepassword.New(logger, svc.Auth, env).ServeHTTP)
			})
		})

		r.Route("/tours", func(r chi.Router) {
			r.Use(middlewarectx.Authenticate(svc.Auth, logger))

			r.Get("/", tourlist.New(logger, svc.Tour, env).ServeHTTP)
			r.Post("/", crud.NewCreate[models.Tour](logger, svc.Tour, env).ServeHTTP)
			r.Get("/top-5-cheap", tourlist.NewTopCheap(logger, svc.Tour, env).ServeHTTP)
			r.Get("/tour-stats", stats.New(logger, svc.Tour, env).ServeHTTP)
			r.Get("/monthly-plan/{year}", monthlyplan.New(logger, svc.Tour, env).ServeHTTP)

			r.Get("/{id}", tourread.New(logger, svc.Tour, env).ServeHTTP)
			r.Patch("/{id}", crud.NewUpdate[models.Tour](logger, svc.Tour, env).ServeHTTP)
			r.Group(func(r chi.Router) {
				r.Use(middlewarectx.RequireRoles(logger, models.RoleAdmin, models.RoleLeadGuide))
				r.Delete("/{id}", crud.NewRemove(logger, svc.Tour, env).ServeHTTP)
			})

			r.Route("/{tourId}/review", func(r chi.Router) {
				r.Get("/", reviewlist.New(logger, svc.Review, env).ServeHTTP)
				r.Group(func(r chi.Router) {
					r.Use(middlewarectx.RequireRoles(logger, models.RoleUser))
					r.Post("/", reviewcreate.New(logger, svc.Review, env).ServeHTTP)
				})
			})
		})

		r.Route("/reviews", func(r chi.Router) {
			r.Use(middlewarectx.Authenticate(svc.Auth, logger))
			r.Get("/", reviewlist.New(logger, svc.Review, env).ServeHTTP)
			r.Group(func(r chi.Router) {
				r.Use(middlewarectx.RequireRoles(logger, models.RoleUser))
				r.Post("/", reviewcreate.New(logger, svc.Review, env).ServeHTTP)
			})
			r.Group(func(r chi.Router) {
				r.Use(middlewarectx.RequireRoles(logger, models.RoleUser, models.RoleAdmin))
				r.Patch("/update/{id}", reviewupdate.New(logger, svc.Review, env).ServeHTTP)
				r.Delete("/delete/{id}", reviewremove.New(logger, svc.Review, env).ServeHTTP)
			})
		})

		r.Route("/users", func(r chi.Router) {
			r.Use(middlewarectx.Authenticate(svc.Auth, logger))
			r.Get("/getAllUsers", userlist.New(logger, svc.User, env).ServeHTTP)
			r.Get("/getUser", userread.New(logger).ServeHTTP)
			r.Patch("/updateUser", userupdate.New(logger, svc.User, env).ServeHTTP)
			r.Delete("/deleteUser/{id}", crud.NewRemove(logger, svc.User, env).ServeHTTP)
		})
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Response{
			Status:  response.StatusFail,
			Message: fmt.Sprintf("can't find %s on this server", r.URL.Path),
		})
	})
}

// limitBody ограничивает размер тела запроса.
func limitBody(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
		next.ServeHTTP(w, r)
	})
}
