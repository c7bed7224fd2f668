// Package services содержит логику бизнес-уровня для работы с отзывами.
package services

import (
	"context"
	"net/url"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/magabrotheeeer/tour-booking-api/internal/apperr"
	"github.com/magabrotheeeer/tour-booking-api/internal/models"
	"github.com/magabrotheeeer/tour-booking-api/internal/storage/query"
)

// ReviewRepository описывает контракт для работы с отзывами в хранилище.
type ReviewRepository interface {
	Create(ctx context.Context, review models.Review) (*models.Review, error)
	FindByID(ctx context.Context, id string) (*models.Review, error)
	UpdateByID(ctx context.Context, id string, patch bson.M) (*models.Review, error)
	DeleteByID(ctx context.Context, id string) error
	Find(ctx context.Context, q query.Options) ([]models.Review, error)
}

// ReviewService отвечает за отзывы: создание в контексте тура, выборки и
// проверку владения при изменении или удалении.
type ReviewService struct {
	reviews ReviewRepository
}

// NewReviewService создает новый экземпляр ReviewService.
func NewReviewService(reviews ReviewRepository) *ReviewService {
	return &ReviewService{reviews: reviews}
}

// Create сохраняет отзыв от имени автора для указанного тура.
func (s *ReviewService) Create(ctx context.Context, tourID string, authorID primitive.ObjectID, text string, rating float64) (*models.Review, error) {
	tourOID, err := primitive.ObjectIDFromHex(tourID)
	if err != nil {
		return nil, apperr.BadID("invalid id")
	}

	review := models.Review{
		Review:    text,
		Rating:    rating,
		Tour:      tourOID,
		User:      authorID,
		CreatedAt: time.Now().UTC(),
	}
	return s.reviews.Create(ctx, review)
}

// ListByTour возвращает отзывы с учётом параметров выборки. При непустом
// tourID привязка к туру становится обязательным предикатом поверх
// клиентского фильтра, при пустом выборка идёт по всем отзывам.
func (s *ReviewService) ListByTour(ctx context.Context, tourID string, params url.Values) ([]models.Review, error) {
	q := query.Build(params)
	if tourID != "" {
		tourOID, err := primitive.ObjectIDFromHex(tourID)
		if err != nil {
			return nil, apperr.BadID("invalid id")
		}
		q = q.MergeFilter(bson.M{"tour": tourOID})
	}
	return s.reviews.Find(ctx, q)
}

// Update меняет текст или оценку отзыва. Обычный пользователь может менять
// только свои отзывы, администратор — любые.
func (s *ReviewService) Update(ctx context.Context, id string, actor *models.User, text string, rating float64) (*models.Review, error) {
	if err := s.checkOwnership(ctx, id, actor); err != nil {
		return nil, err
	}

	patch := bson.M{}
	if text != "" {
		patch["review"] = text
	}
	if rating != 0 {
		patch["rating"] = rating
	}
	if len(patch) == 0 {
		return nil, apperr.Validation("no fields provided for update")
	}
	return s.reviews.UpdateByID(ctx, id, patch)
}

// Delete удаляет отзыв с той же проверкой владения, что и Update.
func (s *ReviewService) Delete(ctx context.Context, id string, actor *models.User) error {
	if err := s.checkOwnership(ctx, id, actor); err != nil {
		return err
	}
	return s.reviews.DeleteByID(ctx, id)
}

func (s *ReviewService) checkOwnership(ctx context.Context, id string, actor *models.User) error {
	review, err := s.reviews.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if actor.Role != models.RoleAdmin && review.User != actor.ID {
		return apperr.Forbidden("you do not have permission to perform this action")
	}
	return nil
}
