package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/magabrotheeeer/tour-booking-api/internal/apperr"
	"github.com/magabrotheeeer/tour-booking-api/internal/models"
	"github.com/magabrotheeeer/tour-booking-api/internal/storage/mongodb"
	"github.com/magabrotheeeer/tour-booking-api/internal/storage/query"
)

// Users — репозиторий пользователей. Любое чтение по умолчанию исключает
// мягко удалённых (active=false) пользователей; явные методы с
// includeInactive снимают этот предикат.
type Users struct {
	c *Collection[models.User]
}

// NewUsers создает репозиторий пользователей.
func NewUsers(s *mongodb.Storage) *Users {
	return &Users{c: NewCollection[models.User](s.Db, mongodb.CollectionUsers)}
}

// activeOnly добавляет предикат мягкого удаления. $ne: false также
// захватывает документы без поля active, например из старых импортов.
func activeOnly(filter bson.M) bson.M {
	filter["active"] = bson.M{"$ne": false}
	return filter
}

// Create сохраняет нового пользователя. Нарушение уникальности имени или
// email поднимается как DuplicateKey из уникальных индексов коллекции.
func (r *Users) Create(ctx context.Context, user models.User) (*models.User, error) {
	return r.c.Create(ctx, user)
}

// FindByEmail возвращает активного пользователя по email.
func (r *Users) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	const op = "repository.Users.FindByEmail"
	user, err := r.c.findOne(ctx, activeOnly(bson.M{"email": email}))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return user, nil
}

// FindByID возвращает активного пользователя по идентификатору.
func (r *Users) FindByID(ctx context.Context, id string) (*models.User, error) {
	const op = "repository.Users.FindByID"
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, apperr.FromStore(err))
	}
	user, err := r.c.findOne(ctx, activeOnly(bson.M{"_id": oid}))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return user, nil
}

// FindByResetToken возвращает пользователя, чей хэш токена сброса совпадает
// и срок действия токена ещё не истёк.
func (r *Users) FindByResetToken(ctx context.Context, tokenHash string) (*models.User, error) {
	const op = "repository.Users.FindByResetToken"
	user, err := r.c.findOne(ctx, activeOnly(bson.M{
		"passwordResetToken":   tokenHash,
		"passwordResetExpires": bson.M{"$gt": time.Now()},
	}))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return user, nil
}

// UpdateByID применяет частичное обновление к активному пользователю.
// Мягко удалённый пользователь не находится и возвращает NotFound.
func (r *Users) UpdateByID(ctx context.Context, id string, patch bson.M) (*models.User, error) {
	const op = "repository.Users.UpdateByID"
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, apperr.FromStore(err))
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var user models.User
	err = r.c.coll.FindOneAndUpdate(ctx, activeOnly(bson.M{"_id": oid}), bson.M{"$set": patch}, opts).Decode(&user)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, apperr.FromStore(err))
	}
	return &user, nil
}

// List возвращает активных пользователей по описанию выборки.
func (r *Users) List(ctx context.Context, q query.Options) ([]models.User, error) {
	return r.c.Find(ctx, q.MergeFilter(bson.M{"active": bson.M{"$ne": false}}))
}

// SoftDelete помечает пользователя неактивным вместо физического удаления.
func (r *Users) SoftDelete(ctx context.Context, id string) error {
	const op = "repository.Users.SoftDelete"
	if _, err := r.c.UpdateByID(ctx, id, bson.M{"active": false}); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
