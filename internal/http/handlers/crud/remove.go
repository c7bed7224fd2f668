package crud

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/tour-booking-api/internal/http/response"
	"github.com/magabrotheeeer/tour-booking-api/internal/lib/sl"
)

// Remover описывает интерфейс бизнес-логики удаления документа.
type Remover interface {
	Delete(ctx context.Context, id string) error
}

// RemoveHandler обрабатывает HTTP-запросы на удаление документа.
type RemoveHandler struct {
	log     *slog.Logger
	service Remover
	env     string
}

// NewRemove создает новый экземпляр RemoveHandler.
func NewRemove(log *slog.Logger, service Remover, env string) *RemoveHandler {
	return &RemoveHandler{
		log:     log,
		service: service,
		env:     env,
	}
}

// ServeHTTP godoc
// @Summary Удалить документ
// @Description Удаляет документ по идентификатору.
// @Tags CRUD
// @Produce  json
// @Param id path string true "Идентификатор документа"
// @Success 204 "Документ удалён"
// @Failure 400 {object} response.Response "Некорректный идентификатор"
// @Failure 404 {object} response.Response "Документ не найден"
// @Security BearerAuth
func (h *RemoveHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.crud.remove"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		log.Error("failed to delete document", sl.Err(err))
		response.RenderError(w, r, log, h.env, err)
		return
	}

	log.Info("document deleted")
	w.WriteHeader(http.StatusNoContent)
}
