package middlewarectx

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/tour-booking-api/internal/apperr"
	"github.com/magabrotheeeer/tour-booking-api/internal/http/response"
	"github.com/magabrotheeeer/tour-booking-api/internal/lib/sl"
	"github.com/magabrotheeeer/tour-booking-api/internal/models"
)

// Authenticator описывает интерфейс сервиса для проверки токена доступа.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*models.User, error)
}

// Authenticate возвращает HTTP middleware, который проверяет JWT в заголовке
// Authorization и кладёт живого пользователя в контекст запроса.
//
// Токен отклоняется, если подпись неверна, срок истёк, пользователь удалён
// или пароль менялся после выдачи токена.
func Authenticate(auth Authenticator, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.Authenticate"

			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			authHeader := r.Header.Get("Authorization")
			if !strings.HasPrefix(authHeader, "Bearer ") {
				log.Error("missing or invalid authorization header")
				w.WriteHeader(http.StatusUnauthorized)
				render.JSON(w, r, response.Response{
					Status:  response.StatusFail,
					Message: "you are not logged in, please log in to get access",
				})
				return
			}
			tokenStr := strings.TrimPrefix(authHeader, "Bearer ")

			user, err := auth.Authenticate(r.Context(), tokenStr)
			if err != nil {
				log.Error("authentication failed", sl.Err(err))
				w.WriteHeader(http.StatusUnauthorized)
				render.JSON(w, r, response.Response{
					Status:  response.StatusFail,
					Message: apperrMessage(err),
				})
				return
			}

			ctx := context.WithValue(r.Context(), User, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func apperrMessage(err error) string {
	return apperr.From(err).Message
}

// RequireRoles возвращает HTTP middleware, который пускает дальше только
// пользователей с одной из перечисленных ролей. Ставится после Authenticate.
func RequireRoles(log *slog.Logger, roles ...models.Role) func(http.Handler) http.Handler {
	allowed := make(map[models.Role]struct{}, len(roles))
	for _, role := range roles {
		allowed[role] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.RequireRoles"

			user, ok := UserFromContext(r.Context())
			if !ok {
				log.Error("user missing from request context",
					slog.String("op", op),
					slog.String("request_id", middleware.GetReqID(r.Context())),
				)
				w.WriteHeader(http.StatusUnauthorized)
				render.JSON(w, r, response.Response{
					Status:  response.StatusFail,
					Message: "you are not logged in, please log in to get access",
				})
				return
			}

			if _, ok := allowed[user.Role]; !ok {
				w.WriteHeader(http.StatusForbidden)
				render.JSON(w, r, response.Response{
					Status:  response.StatusFail,
					Message: "you do not have permission to perform this action",
				})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
