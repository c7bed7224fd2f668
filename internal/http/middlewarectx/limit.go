package middlewarectx

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/render"
	"golang.org/x/time/rate"

	"github.com/magabrotheeeer/tour-booking-api/internal/http/response"
)

// RateLimitMiddleware ограничивает частоту запросов к API одним общим
// лимитером на процесс.
func RateLimitMiddleware(log *slog.Logger, limiter *rate.Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				log.Error("too many requests")
				w.WriteHeader(http.StatusTooManyRequests)
				render.JSON(w, r, response.Response{
					Status:  response.StatusFail,
					Message: "too many requests from this IP, please try again later",
				})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
