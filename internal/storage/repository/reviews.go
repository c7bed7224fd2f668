package repository

import (
	"github.com/magabrotheeeer/tour-booking-api/internal/models"
	"github.com/magabrotheeeer/tour-booking-api/internal/storage/mongodb"
)

// Reviews — репозиторий отзывов. Доменные выборки (например по туру)
// выражаются фильтром query.Options поверх обобщённого Find.
type Reviews struct {
	*Collection[models.Review]
}

// NewReviews создает репозиторий отзывов.
func NewReviews(s *mongodb.Storage) *Reviews {
	return &Reviews{Collection: NewCollection[models.Review](s.Db, mongodb.CollectionReviews)}
}
