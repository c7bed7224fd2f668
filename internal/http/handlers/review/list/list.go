// Package list реализует HTTP-обработчик выборки отзывов: всех подряд на
// маршруте /reviews либо отзывов одного тура на вложенном маршруте.
package list

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/tour-booking-api/internal/http/response"
	"github.com/magabrotheeeer/tour-booking-api/internal/lib/sl"
	"github.com/magabrotheeeer/tour-booking-api/internal/models"
)

// Handler обрабатывает HTTP-запросы на выборку отзывов тура.
type Handler struct {
	log     *slog.Logger
	service Service
	env     string
}

// Service описывает интерфейс бизнес-логики выборки отзывов.
type Service interface {
	ListByTour(ctx context.Context, tourID string, params url.Values) ([]models.Review, error)
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
// @Summary Отзывы тура
// @Description Возвращает отзывы указанного тура.
// @Tags Reviews
// @Produce  json
// @Param tourId path string true "Идентификатор тура"
// @Success 200 {object} response.Response "Список отзывов"
// @Failure 400 {object} response.Response "Некорректный идентификатор"
// @Security BearerAuth
// @Router /tours/{tourId}/review [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.review.list"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	reviews, err := h.service.ListByTour(r.Context(), chi.URLParam(r, "tourId"), r.URL.Query())
	if err != nil {
		log.Error("failed to list reviews", sl.Err(err))
		response.RenderError(w, r, log, h.env, err)
		return
	}

	log.Info("reviews listed", slog.Int("count", len(reviews)))
	render.JSON(w, r, response.OKList(len(reviews), map[string]any{"reviews": reviews}))
}
