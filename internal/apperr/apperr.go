// Package apperr определяет типизированную модель ошибок приложения.
//
// Каждая ошибка несёт вид (Kind), HTTP-статус и признак операционной ошибки.
// Операционные ошибки безопасно показывать клиенту; остальные скрываются
// в production-режиме и логируются на сервере.
package apperr

import (
	"errors"
	"net/http"
)

// Kind классифицирует ошибку приложения.
type Kind string

const (
	// KindValidation — некорректные или отсутствующие поля запроса.
	KindValidation Kind = "validation"
	// KindDuplicateKey — нарушение уникального индекса.
	KindDuplicateKey Kind = "duplicate_key"
	// KindBadID — некорректный идентификатор ресурса.
	KindBadID Kind = "bad_id"
	// KindNotFound — ресурс не найден.
	KindNotFound Kind = "not_found"
	// KindUnauthenticated — запрос без валидной аутентификации.
	KindUnauthenticated Kind = "unauthenticated"
	// KindForbidden — недостаточно прав для операции.
	KindForbidden Kind = "forbidden"
	// KindInvalidToken — невалидный или истёкший одноразовый токен.
	KindInvalidToken Kind = "invalid_or_expired_token"
	// KindUnknown — неожиданная ошибка, детали не показываются клиенту.
	KindUnknown Kind = "unknown"
)

// Error — ошибка приложения с HTTP-статусом и признаком операционности.
type Error struct {
	Kind        Kind
	Status      int
	Message     string
	Operational bool
	Err         error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Validation возвращает операционную ошибку 400 для некорректного ввода.
func Validation(msg string) *Error {
	return &Error{Kind: KindValidation, Status: http.StatusBadRequest, Message: msg, Operational: true}
}

// DuplicateKey возвращает операционную ошибку 400 для нарушения уникальности.
func DuplicateKey(msg string) *Error {
	return &Error{Kind: KindDuplicateKey, Status: http.StatusBadRequest, Message: msg, Operational: true}
}

// BadID возвращает операционную ошибку 400 для некорректного идентификатора.
func BadID(msg string) *Error {
	return &Error{Kind: KindBadID, Status: http.StatusBadRequest, Message: msg, Operational: true}
}

// NotFound возвращает операционную ошибку 404.
func NotFound(msg string) *Error {
	return &Error{Kind: KindNotFound, Status: http.StatusNotFound, Message: msg, Operational: true}
}

// Unauthenticated возвращает операционную ошибку 401.
func Unauthenticated(msg string) *Error {
	return &Error{Kind: KindUnauthenticated, Status: http.StatusUnauthorized, Message: msg, Operational: true}
}

// Forbidden возвращает операционную ошибку 403.
func Forbidden(msg string) *Error {
	return &Error{Kind: KindForbidden, Status: http.StatusForbidden, Message: msg, Operational: true}
}

// InvalidToken возвращает операционную ошибку 400 для одноразовых токенов.
func InvalidToken(msg string) *Error {
	return &Error{Kind: KindInvalidToken, Status: http.StatusBadRequest, Message: msg, Operational: true}
}

// Operational возвращает операционную ошибку с произвольным статусом.
func Operational(status int, msg string) *Error {
	return &Error{Kind: KindUnknown, Status: status, Message: msg, Operational: true}
}

// Unknown оборачивает неожиданную ошибку. Сообщение не предназначено для клиента.
func Unknown(err error) *Error {
	return &Error{
		Kind:        KindUnknown,
		Status:      http.StatusInternalServerError,
		Message:     "internal error",
		Operational: false,
		Err:         err,
	}
}

// From извлекает *Error из цепочки ошибок. Любая другая ошибка считается
// неожиданной и превращается в Unknown.
func From(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Unknown(err)
}
