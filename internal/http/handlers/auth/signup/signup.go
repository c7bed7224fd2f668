// Package signup реализует HTTP-обработчик регистрации пользователей.
//
// Handler принимает JSON с данными нового пользователя, валидирует их,
// делегирует создание учётной записи сервису аутентификации и возвращает
// токен доступа вместе с созданным профилем.
package signup

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
	"github.com/magabrotheeeer/tour-booking-api/internal/models"
)

// Request — структура входных данных для регистрации.
type Request struct {
	Name            string `json:"name" validate:"required,min=3,max=50"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=8"`
	PasswordConfirm string `json:"passwordConfirm" validate:"omitempty,eqfield=Password"`
	Role            string `json:"role"`
}

// Handler обрабатывает HTTP-запросы на регистрацию.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
	env      string
}

// Service описывает интерфейс бизнес-логики регистрации.
type Service interface {
	Signup(ctx context.Context, name, email, rawPassword string, role models.Role) (string, *models.User, error)
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
// @Summary Регистрация пользователя
// @Description Создает нового пользователя и возвращает токен доступа.
// @Tags Auth
// @Accept  json
// @Produce  json
// @Param request body Request true "Данные нового пользователя"
// @Success 201 {object} response.Response "Успешная регистрация"
// @Failure 400 {object} response.Response "Некорректный JSON или занятый email"
// @Failure 422 {object} response.Response "Ошибка валидации"
// @Router /auth-users/signup [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.signup"
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

	token, user, err := h.service.Signup(r.Context(), req.Name, req.Email, req.Password, models.Role(req.Role))
	if err != nil {
		log.Error("signup failed", sl.Err(err))
		response.RenderError(w, r, log, h.env, err)
		return
	}

	log.Info("user registered", slog.String("email", user.Email))
	w.WriteHeader(http.StatusCreated)
	render.JSON(w, r, response.OKWithToken(token, map[string]any{"user": user}))
}
