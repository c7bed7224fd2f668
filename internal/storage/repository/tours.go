package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/magabrotheeeer/tour-booking-api/internal/apperr"
	"github.com/magabrotheeeer/tour-booking-api/internal/models"
	"github.com/magabrotheeeer/tour-booking-api/internal/storage/mongodb"
)

// Tours — репозиторий туров: обобщённый CRUD плюс агрегирующие выборки.
type Tours struct {
	*Collection[models.Tour]
}

// NewTours создает репозиторий туров.
func NewTours(s *mongodb.Storage) *Tours {
	return &Tours{Collection: NewCollection[models.Tour](s.Db, mongodb.CollectionTours)}
}

// FindByIDWithReviews возвращает тур вместе с отзывами, подтянутыми через
// $lookup по ссылке review.tour.
func (r *Tours) FindByIDWithReviews(ctx context.Context, id string) (*models.TourWithReviews, error) {
	const op = "repository.Tours.FindByIDWithReviews"
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, apperr.FromStore(err))
	}

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{"_id": oid}}},
		bson.D{{Key: "$lookup", Value: bson.M{
			"from":         mongodb.CollectionReviews,
			"localField":   "_id",
			"foreignField": "tour",
			"as":           "reviews",
		}}},
	}
	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, apperr.FromStore(err))
	}
	var docs []models.TourWithReviews
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("%s: %w", op, apperr.FromStore(err))
	}
	if len(docs) == 0 {
		return nil, fmt.Errorf("%s: %w", op, apperr.NotFound("no tour found with that ID"))
	}
	return &docs[0], nil
}

// Stats группирует туры с рейтингом от 4.5 по сложности и считает
// количество, рейтинги и разброс цен.
func (r *Tours) Stats(ctx context.Context) ([]models.TourStats, error) {
	const op = "repository.Tours.Stats"
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{"ratingsAverage": bson.M{"$gte": 4.5}}}},
		bson.D{{Key: "$group", Value: bson.M{
			"_id":        bson.M{"$toUpper": "$difficulty"},
			"numTours":   bson.M{"$sum": 1},
			"numRatings": bson.M{"$sum": "$ratingsQuantity"},
			"avgRating":  bson.M{"$avg": "$ratingsAverage"},
			"avgPrice":   bson.M{"$avg": "$price"},
			"minPrice":   bson.M{"$min": "$price"},
			"maxPrice":   bson.M{"$max": "$price"},
		}}},
		bson.D{{Key: "$sort", Value: bson.M{"avgPrice": 1}}},
	}
	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, apperr.FromStore(err))
	}
	stats := []models.TourStats{}
	if err := cursor.All(ctx, &stats); err != nil {
		return nil, fmt.Errorf("%s: %w", op, apperr.FromStore(err))
	}
	return stats, nil
}

// MonthlyPlan раскладывает стартовые даты туров выбранного года по месяцам.
func (r *Tours) MonthlyPlan(ctx context.Context, year int) ([]models.MonthlyPlanEntry, error) {
	const op = "repository.Tours.MonthlyPlan"
	from := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(year, time.December, 31, 23, 59, 59, 0, time.UTC)

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$unwind", Value: "$startDates"}},
		bson.D{{Key: "$match", Value: bson.M{
			"startDates": bson.M{
				"$gte": from,
				"$lte": to,
			},
		}}},
		bson.D{{Key: "$group", Value: bson.M{
			"_id":           bson.M{"$month": "$startDates"},
			"numTourStarts": bson.M{"$sum": 1},
			"tours":         bson.M{"$push": "$name"},
		}}},
		bson.D{{Key: "$addFields", Value: bson.M{"month": "$_id"}}},
		bson.D{{Key: "$project", Value: bson.M{"_id": 0}}},
		bson.D{{Key: "$sort", Value: bson.M{"numTourStarts": -1}}},
		bson.D{{Key: "$limit", Value: 12}},
	}
	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, apperr.FromStore(err))
	}
	plan := []models.MonthlyPlanEntry{}
	if err := cursor.All(ctx, &plan); err != nil {
		return nil, fmt.Errorf("%s: %w", op, apperr.FromStore(err))
	}
	return plan, nil
}
