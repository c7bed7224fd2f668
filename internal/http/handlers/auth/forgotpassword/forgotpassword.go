// Package forgotpassword реализует HTTP-обработчик запроса сброса пароля.
//
// Обработчик генерирует одноразовый токен сброса и отправляет ссылку на
// email пользователя. Если письмо отправить не удалось, токен немедленно
// гасится и клиент получает 500.
package forgotpassword

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/tour-booking-api/internal/apperr"
	"github.com/magabrotheeeer/tour-booking-api/internal/http/response"
	"github.com/magabrotheeeer/tour-booking-api/internal/lib/sl"
	"github.com/magabrotheeeer/tour-booking-api/internal/models"
)

// Request — структура входных данных для запроса сброса пароля.
type Request struct {
	Email string `json:"email" validate:"required,email"`
}

// Handler обрабатывает HTTP-запросы на сброс пароля.
type Handler struct {
	log      *slog.Logger
	service  Service
	mailer   Mailer
	validate *validator.Validate
	env      string
}

// Service описывает интерфейс бизнес-логики сброса пароля.
type Service interface {
	ForgotPassword(ctx context.Context, email string) (string, *models.User, error)
	ClearResetToken(ctx context.Context, userID string) error
}

// Mailer описывает интерфейс отправки письма со ссылкой сброса.
type Mailer interface {
	SendPasswordReset(user *models.User, resetURL string) error
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service, mailer Mailer, env string) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		mailer:   mailer,
		validate: validator.New(),
		env:      env,
	}
}

// ServeHTTP godoc
// @Summary Запрос сброса пароля
// @Description Отправляет на email пользователя ссылку для сброса пароля.
// @Tags Auth
// @Accept  json
// @Produce  json
// @Param request body Request true "Email пользователя"
// @Success 200 {object} response.Response "Письмо отправлено"
// @Failure 404 {object} response.Response "Пользователь с таким email не найден"
// @Failure 500 {object} response.Response "Ошибка отправки письма"
// @Router /auth-users/forgotPassword [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.forgotpassword"
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

	plainToken, user, err := h.service.ForgotPassword(r.Context(), req.Email)
	if err != nil {
		log.Error("failed to issue reset token", sl.Err(err))
		response.RenderError(w, r, log, h.env, err)
		return
	}

	resetURL := fmt.Sprintf("%s://%s/api/v1/auth-users/resetPassword/%s",
		requestScheme(r), r.Host, plainToken)

	if err := h.mailer.SendPasswordReset(user, resetURL); err != nil {
		log.Error("failed to send reset email", sl.Err(err))
		if clearErr := h.service.ClearResetToken(r.Context(), user.ID.Hex()); clearErr != nil {
			log.Error("failed to clear reset token", sl.Err(clearErr))
		}
		response.RenderError(w, r, log, h.env,
			apperr.Operational(http.StatusInternalServerError, "there was an error sending the email, try again later"))
		return
	}

	log.Info("reset token sent", slog.String("email", user.Email))
	render.JSON(w, r, response.OKWithMessage("token sent to email"))
}

func requestScheme(r *http.Request) string {
	if r.TLS != nil {
		return "https"
	}
	return "http"
}
