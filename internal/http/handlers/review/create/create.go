// Package create реализует HTTP-обработчик создания отзыва. Автор берётся
// из контекста запроса, тур — из пути при вложенном маршруте либо из тела
// запроса при обращении к /reviews напрямую.
package create

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/magabrotheeeer/tour-booking-api/internal/apperr"
	"github.com/magabrotheeeer/tour-booking-api/internal/http/middlewarectx"
	"github.com/magabrotheeeer/tour-booking-api/internal/http/response"
	"github.com/magabrotheeeer/tour-booking-api/internal/lib/sl"
	"github.com/magabrotheeeer/tour-booking-api/internal/models"
)

// Request — структура входных данных для создания отзыва. Поле tour
// обязательно только когда идентификатор тура не пришёл в пути.
type Request struct {
	Review string  `json:"review" validate:"required"`
	Rating float64 `json:"rating" validate:"required,min=1,max=5"`
	Tour   string  `json:"tour"`
}

// Handler обрабатывает HTTP-запросы на создание отзыва.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
	env      string
}

// Service описывает интерфейс бизнес-логики создания отзыва.
type Service interface {
	Create(ctx context.Context, tourID string, authorID primitive.ObjectID, text string, rating float64) (*models.Review, error)
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
// @Summary Создать отзыв
// @Description Создает отзыв текущего пользователя для указанного тура.
// @Tags Reviews
// @Accept  json
// @Produce  json
// @Param tourId path string true "Идентификатор тура"
// @Param request body Request true "Текст и оценка отзыва"
// @Success 201 {object} response.Response "Отзыв создан"
// @Failure 400 {object} response.Response "Некорректный JSON или идентификатор"
// @Failure 422 {object} response.Response "Ошибка валидации"
// @Security BearerAuth
// @Router /tours/{tourId}/review [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.review.create"
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

	tourID := chi.URLParam(r, "tourId")
	if tourID == "" {
		tourID = req.Tour
	}
	if tourID == "" {
		log.Error("tour id missing from path and body")
		response.RenderError(w, r, log, h.env, apperr.Validation("review must belong to a tour"))
		return
	}

	review, err := h.service.Create(r.Context(), tourID, user.ID, req.Review, req.Rating)
	if err != nil {
		log.Error("failed to create review", sl.Err(err))
		response.RenderError(w, r, log, h.env, err)
		return
	}

	log.Info("review created", slog.String("tour", tourID))
	w.WriteHeader(http.StatusCreated)
	render.JSON(w, r, response.OKWithData(map[string]any{"review": review}))
}
