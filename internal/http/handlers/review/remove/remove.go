// Package remove реализует HTTP-обработчик удаления отзыва с проверкой
// владения.
package remove

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/tour-booking-api/internal/http/middlewarectx"
	"github.com/magabrotheeeer/tour-booking-api/internal/http/response"
	"github.com/magabrotheeeer/tour-booking-api/internal/lib/sl"
	"github.com/magabrotheeeer/tour-booking-api/internal/models"
)

// Handler обрабатывает HTTP-запросы на удаление отзыва.
type Handler struct {
	log     *slog.Logger
	service Service
	env     string
}

// Service описывает интерфейс бизнес-логики удаления отзыва.
type Service interface {
	Delete(ctx context.Context, id string, actor *models.User) error
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
// @Summary Удалить отзыв
// @Description Удаляет отзыв с проверкой владения.
// @Tags Reviews
// @Produce  json
// @Param id path string true "Идентификатор отзыва"
// @Success 204 "Отзыв удалён"
// @Failure 403 {object} response.Response "Чужой отзыв"
// @Failure 404 {object} response.Response "Отзыв не найден"
// @Security BearerAuth
// @Router /reviews/delete/{id} [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.review.remove"
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

	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id"), user); err != nil {
		log.Error("failed to delete review", sl.Err(err))
		response.RenderError(w, r, log, h.env, err)
		return
	}

	log.Info("review deleted", slog.String("id", chi.URLParam(r, "id")))
	w.WriteHeader(http.StatusNoContent)
}
