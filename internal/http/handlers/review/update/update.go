// Package update реализует HTTP-обработчик изменения отзыва. Обычный
// пользователь может менять только свои отзывы, администратор — любые.
package update

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/tour-booking-api/internal/http/middlewarectx"
	"github.com/magabrotheeeer/tour-booking-api/internal/http/response"
	"github.com/magabrotheeeer/tour-booking-api/internal/lib/sl"
	"github.com/magabrotheeeer/tour-booking-api/internal/models"
)

// Request — структура входных данных для изменения отзыва. Оба поля
// необязательны, пустое значение оставляет поле без изменений.
type Request struct {
	Review string  `json:"review"`
	Rating float64 `json:"rating" validate:"omitempty,min=1,max=5"`
}

// Handler обрабатывает HTTP-запросы на изменение отзыва.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
	env      string
}

// Service описывает интерфейс бизнес-логики изменения отзыва.
type Service interface {
	Update(ctx context.Context, id string, actor *models.User, text string, rating float64) (*models.Review, error)
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service, env string) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
		env:      env,
	}
}

// ServeHTTP godoc
// @Summary Изменить отзыв
// @Description Меняет текст или оценку отзыва с проверкой владения.
// @Tags Reviews
// @Accept  json
// @Produce  json
// @Param id path string true "Идентификатор отзыва"
// @Param request body Request true "Новый текст или оценка"
// @Success 200 {object} response.Response "Обновлённый отзыв"
// @Failure 403 {object} response.Response "Чужой отзыв"
// @Failure 404 {object} response.Response "Отзыв не найден"
// @Security BearerAuth
// @Router /reviews/update/{id} [patch]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.review.update"
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

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Response{
			Status:  response.StatusFail,
			Message: "invalid request body",
		})
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	review, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), user, req.Review, req.Rating)
	if err != nil {
		log.Error("failed to update review", sl.Err(err))
		response.RenderError(w, r, log, h.env, err)
		return
	}

	log.Info("review updated", slog.String("id", chi.URLParam(r, "id")))
	render.JSON(w, r, response.OKWithData(map[string]any{"review": review}))
}
