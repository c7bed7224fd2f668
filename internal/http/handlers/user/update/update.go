// Package update реализует HTTP-обработчик изменения профиля текущего
// пользователя. Меняются только имя и email; попытка сменить пароль здесь
// отклоняется с указанием правильного маршрута.
package update

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/tour-booking-api/internal/apperr"
	"github.com/magabrotheeeer/tour-booking-api/internal/http/middlewarectx"
	"github.com/magabrotheeeer/tour-booking-api/internal/http/response"
	"github.com/magabrotheeeer/tour-booking-api/internal/lib/sl"
	"github.com/magabrotheeeer/tour-booking-api/internal/models"
)

// Request — структура входных данных для изменения профиля. Поля Password
// используются только для отклонения запроса со сменой пароля.
type Request struct {
	Name            string `json:"name"`
	Email           string `json:"email" validate:"omitempty,email"`
	Password        string `json:"password"`
	PasswordConfirm string `json:"passwordConfirm"`
}

// Handler обрабатывает HTTP-запросы на изменение профиля.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
	env      string
}

// Service описывает интерфейс бизнес-логики изменения профиля.
type Service interface {
	Update(ctx context.Context, id, name, email string) (*models.User, error)
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
// @Summary Изменение профиля
// @Description Меняет имя и email текущего пользователя. Смена пароля отклоняется.
// @Tags Users
// @Accept  json
// @Produce  json
// @Param request body Request true "Новое имя или email"
// @Success 200 {object} response.Response "Обновлённый профиль"
// @Failure 400 {object} response.Response "Попытка сменить пароль или занятый email"
// @Failure 422 {object} response.Response "Ошибка валидации"
// @Security BearerAuth
// @Router /users/updateUser [patch]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.user.update"
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

	if req.Password != "" || req.PasswordConfirm != "" {
		log.Error("password update attempted on profile route")
		response.RenderError(w, r, log, h.env,
			apperr.Validation("this route is not for password updates, please use /updatePassword"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	updated, err := h.service.Update(r.Context(), user.ID.Hex(), req.Name, req.Email)
	if err != nil {
		log.Error("failed to update profile", sl.Err(err))
		response.RenderError(w, r, log, h.env, err)
		return
	}

	log.Info("profile updated", slog.String("email", updated.Email))
	render.JSON(w, r, response.OKWithData(map[string]any{"user": updated}))
}
