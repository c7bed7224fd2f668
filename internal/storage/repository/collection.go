// Package repository реализует доступ к коллекциям хранилища документов.
//
// Collection — обобщённый репозиторий над одной коллекцией, покрывающий
// набор возможностей create/findById/updateById/deleteById/find. Конкретные
// репозитории (Users, Tours, Reviews) добавляют доменные операции поверх него.
// Ошибки драйвера переводятся в таксономию apperr на этой границе.
package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/magabrotheeeer/tour-booking-api/internal/apperr"
	"github.com/magabrotheeeer/tour-booking-api/internal/storage/query"
)

// Collection — обобщённый репозиторий над коллекцией документов типа T.
type Collection[T any] struct {
	coll *mongo.Collection
}

// NewCollection создает репозиторий для коллекции с указанным именем.
func NewCollection[T any](db *mongo.Database, name string) *Collection[T] {
	return &Collection[T]{coll: db.Collection(name)}
}

// Create вставляет документ и возвращает его сохранённую версию.
func (c *Collection[T]) Create(ctx context.Context, doc T) (*T, error) {
	const op = "repository.Create"
	res, err := c.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, apperr.FromStore(err))
	}
	return c.findOne(ctx, bson.M{"_id": res.InsertedID})
}

// FindByID возвращает документ по строковому идентификатору.
func (c *Collection[T]) FindByID(ctx context.Context, id string) (*T, error) {
	const op = "repository.FindByID"
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, apperr.FromStore(err))
	}
	return c.findOne(ctx, bson.M{"_id": oid})
}

// UpdateByID применяет частичное обновление и возвращает новую версию
// документа либо NotFound, если идентификатор никуда не указывает.
func (c *Collection[T]) UpdateByID(ctx context.Context, id string, patch bson.M) (*T, error) {
	const op = "repository.UpdateByID"
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, apperr.FromStore(err))
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc T
	err = c.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": patch}, opts).Decode(&doc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, apperr.FromStore(err))
	}
	return &doc, nil
}

// DeleteByID навсегда удаляет документ либо возвращает NotFound.
func (c *Collection[T]) DeleteByID(ctx context.Context, id string) error {
	const op = "repository.DeleteByID"
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, apperr.FromStore(err))
	}

	res, err := c.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("%s: %w", op, apperr.FromStore(err))
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("%s: %w", op, apperr.NotFound("no document found with that ID"))
	}
	return nil
}

// Find выполняет выборку по описанию из пакета query.
func (c *Collection[T]) Find(ctx context.Context, q query.Options) ([]T, error) {
	const op = "repository.Find"
	cursor, err := c.coll.Find(ctx, q.Filter, q.FindOptions())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, apperr.FromStore(err))
	}
	docs := []T{}
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("%s: %w", op, apperr.FromStore(err))
	}
	return docs, nil
}

func (c *Collection[T]) findOne(ctx context.Context, filter bson.M) (*T, error) {
	const op = "repository.findOne"
	var doc T
	if err := c.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		return nil, fmt.Errorf("%s: %w", op, apperr.FromStore(err))
	}
	return &doc, nil
}
