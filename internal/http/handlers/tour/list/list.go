// Package list реализует HTTP-обработчик выборки туров по параметрам строки
// запроса: фильтрация, сортировка, проекция полей и пагинация.
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

// Handler обрабатывает HTTP-запросы на выборку туров.
type Handler struct {
	log     *slog.Logger
	service Service
	preset  url.Values
	env     string
}

// Service описывает интерфейс бизнес-логики выборки туров.
type Service interface {
	List(ctx context.Context, params url.Values) ([]models.Tour, error)
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service, env string) *Handler {
	return &Handler{
		log:     log,
		service: service,
		env:     env,
	}
}

// NewTopCheap создает Handler с предустановленными параметрами выборки:
// пять туров с лучшим рейтингом, отсортированные по цене, с урезанным
// набором полей. Клиентские параметры перекрываются предустановкой.
func NewTopCheap(log *slog.Logger, service Service, env string) *Handler {
	return &Handler{
		log:     log,
		service: service,
		env:     env,
		preset: url.Values{
			"limit":  []string{"5"},
			"sort":   []string{"-ratingsAverage,price"},
			"fields": []string{"name,price,ratingsAverage,summary,difficulty"},
		},
	}
}

// ServeHTTP godoc
// @Summary Список туров
// @Description Возвращает туры по параметрам фильтрации, сортировки и пагинации.
// @Tags Tours
// @Produce  json
// @Param sort query string false "Поля сортировки, через запятую, префикс - для убывания"
// @Param fields query string false "Поля проекции, через запятую"
// @Param page query int false "Номер страницы"
// @Param limit query int false "Размер страницы"
// @Success 200 {object} response.Response "Список туров"
// @Security BearerAuth
// @Router /tours [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.tour.list"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	params := r.URL.Query()
	for key, values := range h.preset {
		params[key] = values
	}

	tours, err := h.service.List(r.Context(), params)
	if err != nil {
		log.Error("failed to list tours", sl.Err(err))
		response.RenderError(w, r, log, h.env, err)
		return
	}

	log.Info("tours listed", slog.Int("count", len(tours)))
	render.JSON(w, r, response.OKList(len(tours), map[string]any{"tours": tours}))
}
