// Package resetpassword реализует HTTP-обработчик установки нового пароля
// по одноразовому токену из письма.
package resetpassword

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/tour-booking-api/internal/http/response"
	"github.com/magabrotheeeer/tour-booking-api/internal/lib/sl"
)

// Request — структура входных данных для установки нового пароля.
type Request struct {
	Password        string `json:"password" validate:"required,min=8"`
	PasswordConfirm string `json:"passwordConfirm" validate:"omitempty,eqfield=Password"`
}

// Handler обрабатывает HTTP-запросы на установку нового пароля.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
	env      string
}

// Service описывает интерфейс бизнес-логики сброса пароля.
type Service interface {
	ResetPassword(ctx context.Context, plainToken, newPassword string) (string, error)
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
// @Summary Установка нового пароля по токену сброса
// @Description Меняет пароль по одноразовому токену из письма и возвращает токен доступа.
// @Tags Auth
// @Accept  json
// @Produce  json
// @Param token path string true "Одноразовый токен сброса"
// @Param request body Request true "Новый пароль"
// @Success 200 {object} response.Response "Пароль изменён"
// @Failure 400 {object} response.Response "Токен неверен или истёк"
// @Failure 422 {object} response.Response "Ошибка валидации"
// @Router /auth-users/resetPassword/{token} [patch]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.resetpassword"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

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

	plainToken := chi.URLParam(r, "token")
	token, err := h.service.ResetPassword(r.Context(), plainToken, req.Password)
	if err != nil {
		log.Error("failed to reset password", sl.Err(err))
		response.RenderError(w, r, log, h.env, err)
		return
	}

	log.Info("password reset complete")
	render.JSON(w, r, response.OKWithToken(token, nil))
}
