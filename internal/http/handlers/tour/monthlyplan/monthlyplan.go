// Package monthlyplan реализует HTTP-обработчик помесячного плана стартов
// туров за выбранный год.
package monthlyplan

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/tour-booking-api/internal/apperr"
	"github.com/magabrotheeeer/tour-booking-api/internal/http/response"
	"github.com/magabrotheeeer/tour-booking-api/internal/lib/sl"
	"github.com/magabrotheeeer/tour-booking-api/internal/models"
)

// Handler обрабатывает HTTP-запросы на помесячный план.
type Handler struct {
	log     *slog.Logger
	service Service
	env     string
}

// Service описывает интерфейс бизнес-логики помесячного плана.
type Service interface {
	MonthlyPlan(ctx context.Context, year int) ([]models.MonthlyPlanEntry, error)
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
// @Summary Помесячный план стартов
// @Description Возвращает количество стартов туров по месяцам выбранного года.
// @Tags Tours
// @Produce  json
// @Param year path int true "Год"
// @Success 200 {object} response.Response "План по месяцам"
// @Failure 400 {object} response.Response "Некорректный год"
// @Security BearerAuth
// @Router /tours/monthly-plan/{year} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.tour.monthlyplan"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil {
		log.Error("invalid year parameter", sl.Err(err))
		response.RenderError(w, r, log, h.env, apperr.Validation("invalid year"))
		return
	}

	plan, err := h.service.MonthlyPlan(r.Context(), year)
	if err != nil {
		log.Error("failed to build monthly plan", sl.Err(err))
		response.RenderError(w, r, log, h.env, err)
		return
	}

	log.Info("monthly plan built", slog.Int("year", year))
	render.JSON(w, r, response.OKWithData(map[string]any{"plan": plan}))
}
