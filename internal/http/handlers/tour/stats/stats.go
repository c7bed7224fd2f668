// Package stats реализует HTTP-обработчик агрегированной статистики туров.
package stats

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/tour-booking-api/internal/http/response"
	"github.com/magabrotheeeer/tour-booking-api/internal/lib/sl"
	"github.com/magabrotheeeer/tour-booking-api/internal/models"
)

// Handler обрабатывает HTTP-запросы на статистику туров.
type Handler struct {
	log     *slog.Logger
	service Service
	env     string
}

// Service описывает интерфейс бизнес-логики статистики туров.
type Service interface {
	Stats(ctx context.Context) ([]models.TourStats, error)
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
// @Summary Статистика туров
// @Description Возвращает агрегированную статистику туров по сложности.
// @Tags Tours
// @Produce  json
// @Success 200 {object} response.Response "Статистика по сложности"
// @Security BearerAuth
// @Router /tours/tour-stats [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.tour.stats"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	stats, err := h.service.Stats(r.Context())
	if err != nil {
		log.Error("failed to build tour stats", sl.Err(err))
		response.RenderError(w, r, log, h.env, err)
		return
	}

	log.Info("tour stats built")
	render.JSON(w, r, response.OKWithData(map[string]any{"stats": stats}))
}
