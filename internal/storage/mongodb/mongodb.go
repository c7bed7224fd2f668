// Package mongodb отвечает за подключение к хранилищу документов и
// создание индексов, которые требуются доменной модели: уникальные имя и
// email пользователя, уникальная пара тур+автор у отзыва.
package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Имена коллекций.
const (
	CollectionUsers   = "users"
	CollectionTours   = "tours"
	CollectionReviews = "reviews"
)

// Storage держит клиент и базу данных.
type Storage struct {
	Client *mongo.Client
	Db     *mongo.Database
}

// New подключается к серверу, проверяет соединение и создаёт индексы.
func New(ctx context.Context, uri, database string) (*Storage, error) {
	const op = "storage.mongodb.New"

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s := &Storage{Client: client, Db: client.Database(database)}
	if err := s.ensureIndexes(ctx); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return s, nil
}

func (s *Storage) ensureIndexes(ctx context.Context) error {
	users := s.Db.Collection(CollectionUsers)
	_, err := users.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "name", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create user indexes: %w", err)
	}

	// один отзыв от пользователя на тур
	reviews := s.Db.Collection(CollectionReviews)
	_, err = reviews.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "tour", Value: 1}, {Key: "user", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create review index: %w", err)
	}

	tours := s.Db.Collection(CollectionTours)
	_, err = tours.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "price", Value: 1}, {Key: "ratingsAverage", Value: -1}},
	})
	if err != nil {
		return fmt.Errorf("failed to create tour index: %w", err)
	}
	return nil
}

// Close разрывает соединение с сервером.
func (s *Storage) Close(ctx context.Context) error {
	return s.Client.Disconnect(ctx)
}
