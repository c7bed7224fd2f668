// Package read реализует HTTP-обработчик чтения профиля текущего
// пользователя.
package read

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/tour-booking-api/internal/http/middlewarectx"
	"github.com/magabrotheeeer/tour-booking-api/internal/http/response"
)

// Handler обрабатывает HTTP-запросы на чтение своего профиля.
type Handler struct {
	log *slog.Logger
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger) *Handler {
	return &Handler{log: log}
}

// ServeHTTP godoc
// @Summary Профиль текущего пользователя
// @Description Возвращает профиль аутентифицированного пользователя.
// @Tags Users
// @Produce  json
// @Success 200 {object} response.Response "Профиль пользователя"
// @Failure 401 {object} response.Response "Пользователь не авторизован"
// @Security BearerAuth
// @Router /users/getUser [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.user.read"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	user, ok := middlewarectx.UserFromContext(r.Context())
	if !ok {
		log.Error("user missing from request context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Response{
			Status:  response.StatusFail,
			Message: "you are not logged in, please log in to get access",
		})
		return
	}

	log.Info("user profile read", slog.String("email", user.Email))
	render.JSON(w, r, response.OKWithData(map[string]any{"user": user}))
}
