// Package read реализует HTTP-обработчик чтения одного тура с отзывами.
package read

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/tour-booking-api/internal/http/response"
	"github.com/magabrotheeeer/tour-booking-api/internal/lib/sl"
	"github.com/magabrotheeeer/tour-booking-api/internal/models"
)

// Handler обрабатывает HTTP-запросы на чтение одного тура.
type Handler struct {
	log     *slog.Logger
	service Service
	env     string
}

// Service описывает интерфейс бизнес-логики чтения тура.
type Service interface {
	Get(ctx context.Context, id string) (*models.TourWithReviews, error)
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
// @Summary Один тур
// @Description Возвращает тур по идентификатору вместе с отзывами.
// @Tags Tours
// @Produce  json
// @Param id path string true "Идентификатор тура"
// @Success 200 {object} response.Response "Тур с отзывами"
// @Failure 400 {object} response.Response "Некорректный идентификатор"
// @Failure 404 {object} response.Response "Тур не найден"
// @Security BearerAuth
// @Router /tours/{id} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.tour.read"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	tour, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		log.Error("failed to read tour", sl.Err(err))
		response.RenderError(w, r, log, h.env, err)
		return
	}

	log.Info("tour read", slog.String("id", chi.URLParam(r, "id")))
	render.JSON(w, r, response.OKWithData(map[string]any{"tour": tour}))
}
