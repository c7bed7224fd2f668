// Package crud содержит обобщённые HTTP-обработчики create/update/remove,
// параметризованные типом документа. Один и тот же обработчик
// инстанцируется для разных коллекций каталога.
package crud

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/tour-booking-api/internal/http/response"
	"github.com/magabrotheeeer/tour-booking-api/internal/lib/sl"
)

// Creator описывает интерфейс бизнес-логики создания документа.
type Creator[T any] interface {
	Create(ctx context.Context, doc T) (*T, error)
}

// CreateHandler обрабатывает HTTP-запросы на создание документа типа T.
// Входные данные валидируются по validate-тегам самого типа.
type CreateHandler[T any] struct {
	log      *slog.Logger
	service  Creator[T]
	validate *validator.Validate
	env      string
}

// NewCreate создает новый экземпляр CreateHandler.
func NewCreate[T any](log *slog.Logger, service Creator[T], env string) *CreateHandler[T] {
	return &CreateHandler[T]{
		log:      log,
		service:  service,
		validate: validator.New(),
		env:      env,
	}
}

// ServeHTTP godoc
// @Summary Создать документ
// @Description Создает новый документ коллекции и возвращает сохранённую версию.
// @Tags CRUD
// @Accept  json
// @Produce  json
// @Success 201 {object} response.Response "Документ создан"
// @Failure 400 {object} response.Response "Некорректный JSON или дубликат"
// @Failure 422 {object} response.Response "Ошибка валидации"
// @Security BearerAuth
func (h *CreateHandler[T]) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.crud.create"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var doc T
	if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Response{
			Status:  response.StatusFail,
			Message: "invalid request body",
		})
		return
	}

	if err := h.validate.Struct(doc); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	created, err := h.service.Create(r.Context(), doc)
	if err != nil {
		log.Error("failed to create document", sl.Err(err))
		response.RenderError(w, r, log, h.env, err)
		return
	}

	log.Info("document created")
	w.WriteHeader(http.StatusCreated)
	render.JSON(w, r, response.OKWithData(map[string]any{"data": created}))
}
