package apperr

import (
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// FromStore переводит ошибки драйвера MongoDB в операционную таксономию:
// отсутствие документа, дубликат уникального ключа и некорректный ObjectID.
// Остальные ошибки хранилища считаются неожиданными.
func FromStore(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		return NotFound("no document found with that ID")
	case mongo.IsDuplicateKeyError(err):
		return DuplicateKey("duplicate field value, please use another value")
	case errors.Is(err, primitive.ErrInvalidHex):
		return BadID("invalid id")
	}
	return Unknown(err)
}
