package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Tour представляет тур в каталоге. Теги validate используются обобщёнными
// обработчиками при создании ресурса.
type Tour struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name            string             `bson:"name" json:"name" validate:"required,min=10,max=40"`
	Duration        int                `bson:"duration" json:"duration" validate:"required,gt=0"`
	MaxGroupSize    int                `bson:"maxGroupSize" json:"maxGroupSize" validate:"required,gt=0"`
	Difficulty      string             `bson:"difficulty" json:"difficulty" validate:"required,oneof=easy medium difficult"`
	RatingsAverage  float64            `bson:"ratingsAverage" json:"ratingsAverage"`
	RatingsQuantity int                `bson:"ratingsQuantity" json:"ratingsQuantity"`
	Price           float64            `bson:"price" json:"price" validate:"required,gt=0"`
	PriceDiscount   float64            `bson:"priceDiscount,omitempty" json:"priceDiscount,omitempty"`
	Summary         string             `bson:"summary" json:"summary" validate:"required"`
	Description     string             `bson:"description,omitempty" json:"description,omitempty"`
	ImageCover      string             `bson:"imageCover,omitempty" json:"imageCover,omitempty"`
	Images          []string           `bson:"images,omitempty" json:"images,omitempty"`
	StartDates      []time.Time        `bson:"startDates,omitempty" json:"startDates,omitempty"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
}

// TourWithReviews — тур вместе с отзывами, подтянутыми через $lookup.
// Отзывы хранятся отдельной коллекцией и не встраиваются в документ тура.
type TourWithReviews struct {
	Tour    `bson:",inline"`
	Reviews []Review `bson:"reviews" json:"reviews"`
}

// TourStats — агрегированная статистика туров, сгруппированная по сложности.
type TourStats struct {
	Difficulty string  `bson:"_id" json:"difficulty"`
	NumTours   int     `bson:"numTours" json:"numTours"`
	NumRatings int     `bson:"numRatings" json:"numRatings"`
	AvgRating  float64 `bson:"avgRating" json:"avgRating"`
	AvgPrice   float64 `bson:"avgPrice" json:"avgPrice"`
	MinPrice   float64 `bson:"minPrice" json:"minPrice"`
	MaxPrice   float64 `bson:"maxPrice" json:"maxPrice"`
}

// MonthlyPlanEntry — количество стартов туров в месяце выбранного года.
type MonthlyPlanEntry struct {
	Month         int      `bson:"month" json:"month"`
	NumTourStarts int      `bson:"numTourStarts" json:"numTourStarts"`
	Tours         []string `bson:"tours" json:"tours"`
}
