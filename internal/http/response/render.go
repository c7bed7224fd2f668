package response

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/go-chi/render"

	"github.com/magabrotheeeer/tour-booking-api/internal/apperr"
	"github.com/magabrotheeeer/tour-booking-api/internal/config"
	"github.com/magabrotheeeer/tour-booking-api/internal/lib/sl"
)

// RenderError — единая точка формирования ответа об ошибке.
//
// В development-режиме клиент получает полный текст ошибки и стек. В
// production-режиме операционные ошибки отдаются своим сообщением, все
// остальные скрываются за общим текстом и логируются на сервере.
func RenderError(w http.ResponseWriter, r *http.Request, log *slog.Logger, env string, err error) {
	e := apperr.From(err)

	if env == config.EnvDevelopment {
		w.WriteHeader(e.Status)
		render.JSON(w, r, Response{
			Status:  statusWord(e.Status),
			Message: e.Message,
			Error:   err.Error(),
			Stack:   string(debug.Stack()),
		})
		return
	}

	if e.Operational {
		w.WriteHeader(e.Status)
		render.JSON(w, r, Response{
			Status:  statusWord(e.Status),
			Message: e.Message,
		})
		return
	}

	log.Error("unexpected error", sl.Err(err))
	w.WriteHeader(http.StatusInternalServerError)
	render.JSON(w, r, Response{
		Status:  StatusError,
		Message: "something went very wrong",
	})
}

// statusWord выбирает слово статуса по коду ответа: 4xx — fail, иначе error.
func statusWord(code int) string {
	if code >= 400 && code < 500 {
		return StatusFail
	}
	return StatusError
}
