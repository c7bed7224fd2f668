// Package list реализует HTTP-обработчик выборки пользователей.
// Мягко удалённые пользователи в выборку не попадают.
package list

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/tour-booking-api/internal/http/response"
	"github.com/magabrotheeeer/tour-booking-api/internal/lib/sl"
	"github.com/magabrotheeeer/tour-booking-api/internal/models"
)

// Handler обрабатывает HTTP-запросы на выборку пользователей.
type Handler struct {
	log     *slog.Logger
	service Service
	env     string
}

// Service описывает интерфейс бизнес-логики выборки пользователей.
type Service interface {
	List(ctx context.Context, params url.Values) ([]models.User, error)
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service, env string) *Handler {
	return &Handler{
		log:     log,
		service: service,
		env:     env,
	}
}

// ServeHTTP godoc
// @Summary Список пользователей
// @Description Возвращает активных пользователей по параметрам выборки.
// @Tags Users
// @Produce  json
// @Success 200 {object} response.Response "Список пользователей"
// @Security BearerAuth
// @Router /users/getAllUsers [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.user.list"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	users, err := h.service.List(r.Context(), r.URL.Query())
	if err != nil {
		log.Error("failed to list users", sl.Err(err))
		response.RenderError(w, r, log, h.env, err)
		return
	}

	log.Info("users listed", slog.Int("count", len(users)))
	render.JSON(w, r, response.OKList(len(users), map[string]any{"users": users}))
}
