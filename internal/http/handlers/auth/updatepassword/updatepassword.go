// Package updatepassword реализует HTTP-обработчик смены пароля
// аутентифицированным пользователем.
package updatepassword

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/tour-booking-api/internal/http/middlewarectx"
	"github.com/magabrotheeeer/tour-booking-api/internal/http/response"
	"github.com/magabrotheeeer/tour-booking-api/internal/lib/sl"
)

// Request — структура входных данных для смены пароля.
type Request struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	EnteredPassword string `json:"enteredPassword" validate:"required,min=8"`
	PasswordConfirm string `json:"passwordConfirm" validate:"omitempty,eqfield=EnteredPassword"`
}

// Handler обрабатывает HTTP-запросы на смену пароля.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
	env      string
}

// Service описывает интерфейс бизнес-логики смены пароля.
type Service interface {
	UpdatePassword(ctx context.Context, userID, currentPassword, newPassword string) (string, error)
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
// @Summary Смена пароля
// @Description Меняет пароль текущего пользователя после проверки старого пароля.
// @Tags Auth
// @Accept  json
// @Produce  json
// @Param request body Request true "Текущий и новый пароль"
// @Success 200 {object} response.Response "Пароль изменён"
// @Failure 401 {object} response.Response "Текущий пароль неверен"
// @Failure 422 {object} response.Response "Ошибка валидации"
// @Security BearerAuth
// @Router /auth-users/updatePassword [patch]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.updatepassword"
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

	token, err := h.service.UpdatePassword(r.Context(), user.ID.Hex(), req.CurrentPassword, req.EnteredPassword)
	if err != nil {
		log.Error("failed to update password", sl.Err(err))
		response.RenderError(w, r, log, h.env, err)
		return
	}

	log.Info("password updated", slog.String("email", user.Email))
	render.JSON(w, r, response.OKWithToken(token, nil))
}
