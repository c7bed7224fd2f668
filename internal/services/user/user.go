// Package services содержит логику бизнес-уровня для управления профилями
// пользователей.
package services

import (
	"context"
	"net/url"
	"strings"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/magabrotheeeer/tour-booking-api/internal/apperr"
	"github.com/magabrotheeeer/tour-booking-api/internal/models"
	"github.com/magabrotheeeer/tour-booking-api/internal/storage/query"
)

// UserRepository описывает контракт для работы с пользователями в хранилище.
type UserRepository interface {
	UpdateByID(ctx context.Context, id string, patch bson.M) (*models.User, error)
	List(ctx context.Context, q query.Options) ([]models.User, error)
	SoftDelete(ctx context.Context, id string) error
}

// UserService отвечает за профили пользователей. Смена пароля сюда не
// входит, ей занимается AuthService.
type UserService struct {
	users UserRepository
}

// NewUserService создает новый экземпляр UserService.
func NewUserService(users UserRepository) *UserService {
	return &UserService{users: users}
}

// List возвращает активных пользователей по параметрам строки запроса.
func (s *UserService) List(ctx context.Context, params url.Values) ([]models.User, error) {
	return s.users.List(ctx, query.Build(params))
}

// Update меняет имя и email профиля. Пустые значения не трогают поле,
// полностью пустое обновление отклоняется до обращения к хранилищу.
func (s *UserService) Update(ctx context.Context, id, name, email string) (*models.User, error) {
	patch := bson.M{}
	if name != "" {
		patch["name"] = name
	}
	if email != "" {
		patch["email"] = strings.ToLower(email)
	}
	if len(patch) == 0 {
		return nil, apperr.Validation("no fields provided for update")
	}
	return s.users.UpdateByID(ctx, id, patch)
}

// Delete мягко удаляет пользователя. Документ остаётся в хранилище, но
// исчезает из всех выборок и перестаёт проходить аутентификацию.
func (s *UserService) Delete(ctx context.Context, id string) error {
	return s.users.SoftDelete(ctx, id)
}
