// Package services содержит логику бизнес-уровня для работы с каталогом
// туров: выборки, CRUD и агрегирующие отчёты с кэшированием.
package services

import (
	"context"
	"log/slog"
	"net/url"
	"strconv"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/magabrotheeeer/tour-booking-api/internal/lib/sl"
	"github.com/magabrotheeeer/tour-booking-api/internal/models"
	"github.com/magabrotheeeer/tour-booking-api/internal/storage/query"
)

// cacheTTL — срок жизни закэшированных агрегаций.
const cacheTTL = 10 * time.Minute

const statsCacheKey = "tour-stats"

// TourRepository описывает контракт для работы с турами в хранилище.
type TourRepository interface {
	Create(ctx context.Context, tour models.Tour) (*models.Tour, error)
	FindByIDWithReviews(ctx context.Context, id string) (*models.TourWithReviews, error)
	UpdateByID(ctx context.Context, id string, patch bson.M) (*models.Tour, error)
	DeleteByID(ctx context.Context, id string) error
	Find(ctx context.Context, q query.Options) ([]models.Tour, error)
	Stats(ctx context.Context) ([]models.TourStats, error)
	MonthlyPlan(ctx context.Context, year int) ([]models.MonthlyPlanEntry, error)
}

// CacheStore описывает контракт для работы с кешем.
type CacheStore interface {
	Get(key string, result any) (bool, error)
	Set(key string, value any, expiration time.Duration) error
	Invalidate(key string) error
}

// TourService отвечает за каталог туров. Агрегирующие отчёты кэшируются;
// кеш инвалидируется при любой записи в каталог. Отказ кеша не фатален —
// сервис логирует его и идёт в хранилище.
type TourService struct {
	tours TourRepository
	cache CacheStore
	log   *slog.Logger
}

// NewTourService создает новый экземпляр TourService.
func NewTourService(tours TourRepository, cache CacheStore, log *slog.Logger) *TourService {
	return &TourService{
		tours: tours,
		cache: cache,
		log:   log,
	}
}

// List возвращает туры по параметрам строки запроса.
func (s *TourService) List(ctx context.Context, params url.Values) ([]models.Tour, error) {
	return s.tours.Find(ctx, query.Build(params))
}

// Get возвращает тур вместе с отзывами.
func (s *TourService) Get(ctx context.Context, id string) (*models.TourWithReviews, error) {
	return s.tours.FindByIDWithReviews(ctx, id)
}

// Create сохраняет новый тур и сбрасывает кэш агрегаций.
func (s *TourService) Create(ctx context.Context, tour models.Tour) (*models.Tour, error) {
	if tour.CreatedAt.IsZero() {
		tour.CreatedAt = time.Now().UTC()
	}
	created, err := s.tours.Create(ctx, tour)
	if err != nil {
		return nil, err
	}
	s.invalidateAggregations(created.StartDates)
	return created, nil
}

// Update применяет частичное обновление тура и сбрасывает кэш агрегаций.
func (s *TourService) Update(ctx context.Context, id string, patch bson.M) (*models.Tour, error) {
	updated, err := s.tours.UpdateByID(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	s.invalidateAggregations(updated.StartDates)
	return updated, nil
}

// Delete удаляет тур и сбрасывает кэш агрегаций.
func (s *TourService) Delete(ctx context.Context, id string) error {
	if err := s.tours.DeleteByID(ctx, id); err != nil {
		return err
	}
	s.invalidateAggregations(nil)
	return nil
}

// Stats возвращает статистику туров по сложности, сначала из кеша.
func (s *TourService) Stats(ctx context.Context) ([]models.TourStats, error) {
	var cached []models.TourStats
	found, err := s.cache.Get(statsCacheKey, &cached)
	if err != nil {
		s.log.Warn("failed to read tour stats from cache", sl.Err(err))
	}
	if found {
		return cached, nil
	}

	stats, err := s.tours.Stats(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(statsCacheKey, stats, cacheTTL); err != nil {
		s.log.Warn("failed to cache tour stats", sl.Err(err))
	}
	return stats, nil
}

// MonthlyPlan возвращает помесячный план стартов за год, сначала из кеша.
func (s *TourService) MonthlyPlan(ctx context.Context, year int) ([]models.MonthlyPlanEntry, error) {
	key := monthlyPlanKey(year)

	var cached []models.MonthlyPlanEntry
	found, err := s.cache.Get(key, &cached)
	if err != nil {
		s.log.Warn("failed to read monthly plan from cache", sl.Err(err))
	}
	if found {
		return cached, nil
	}

	plan, err := s.tours.MonthlyPlan(ctx, year)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(key, plan, cacheTTL); err != nil {
		s.log.Warn("failed to cache monthly plan", sl.Err(err))
	}
	return plan, nil
}

// invalidateAggregations сбрасывает статистику и помесячные планы годов,
// затронутых стартовыми датами. При удалении даты неизвестны, тогда
// устаревшие планы доживают до конца TTL.
func (s *TourService) invalidateAggregations(startDates []time.Time) {
	if err := s.cache.Invalidate(statsCacheKey); err != nil {
		s.log.Warn("failed to invalidate tour stats cache", sl.Err(err))
	}
	years := map[int]struct{}{}
	for _, d := range startDates {
		years[d.Year()] = struct{}{}
	}
	for year := range years {
		if err := s.cache.Invalidate(monthlyPlanKey(year)); err != nil {
			s.log.Warn("failed to invalidate monthly plan cache", sl.Err(err))
		}
	}
}

func monthlyPlanKey(year int) string {
	return "monthly-plan:" + strconv.Itoa(year)
}
