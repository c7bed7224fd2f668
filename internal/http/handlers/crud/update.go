package crud

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/magabrotheeeer/tour-booking-api/internal/http/response"
	"github.com/magabrotheeeer/tour-booking-api/internal/lib/sl"
)

// Updater описывает интерфейс бизнес-логики частичного обновления документа.
type Updater[T any] interface {
	Update(ctx context.Context, id string, patch bson.M) (*T, error)
}

// UpdateHandler обрабатывает HTTP-запросы на частичное обновление документа.
type UpdateHandler[T any] struct {
	log     *slog.Logger
	service Updater[T]
	env     string
}

// NewUpdate создает новый экземпляр UpdateHandler.
func NewUpdate[T any](log *slog.Logger, service Updater[T], env string) *UpdateHandler[T] {
	return &UpdateHandler[T]{
		log:     log,
		service: service,
		env:     env,
	}
}

// ServeHTTP godoc
// @Summary Обновить документ
// @Description Применяет частичное обновление к документу по идентификатору.
// @Tags CRUD
// @Accept  json
// @Produce  json
// @Param id path string true "Идентификатор документа"
// @Success 200 {object} response.Response "Обновлённый документ"
// @Failure 400 {object} response.Response "Некорректный JSON или идентификатор"
// @Failure 404 {object} response.Response "Документ не найден"
// @Security BearerAuth
func (h *UpdateHandler[T]) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.crud.update"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var patch bson.M
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Response{
			Status:  response.StatusFail,
			Message: "invalid request body",
		})
		return
	}
	// идентификатор не обновляется
	delete(patch, "_id")
	delete(patch, "id")

	// пустой $set хранилище отвергает, поэтому отсекаем его заранее
	if len(patch) == 0 {
		log.Error("empty update patch")
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Response{
			Status:  response.StatusFail,
			Message: "no fields provided for update",
		})
		return
	}

	updated, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), patch)
	if err != nil {
		log.Error("failed to update document", sl.Err(err))
		response.RenderError(w, r, log, h.env, err)
		return
	}

	log.Info("document updated")
	render.JSON(w, r, response.OKWithData(map[string]any{"data": updated}))
}
