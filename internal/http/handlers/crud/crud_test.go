package crud_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/magabrotheeeer/tour-booking-api/internal/apperr"
	"github.com/magabrotheeeer/tour-booking-api/internal/config"
	"github.com/magabrotheeeer/tour-booking-api/internal/http/handlers/crud"
	"github.com/magabrotheeeer/tour-booking-api/internal/http/response"
	"github.com/magabrotheeeer/tour-booking-api/internal/models"
)

type TourServiceMock struct {
	mock.Mock
}

func (m *TourServiceMock) Create(ctx context.Context, doc models.Tour) (*models.Tour, error) {
	args := m.Called(ctx, doc)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Tour), args.Error(1)
}

func (m *TourServiceMock) Update(ctx context.Context, id string, patch bson.M) (*models.Tour, error) {
	args := m.Called(ctx, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Tour), args.Error(1)
}

func (m *TourServiceMock) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

const validTourBody = `{
	"name": "The Forest Hiker Tour",
	"duration": 5,
	"maxGroupSize": 25,
	"difficulty": "easy",
	"price": 397,
	"summary": "Breathtaking hike through the Canadian Banff National Park"
}`

func TestCreateHandler(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		mockDoc        *models.Tour
		mockErr        error
		wantStatusCode int
	}{
		{
			name:           "success",
			body:           validTourBody,
			mockDoc:        &models.Tour{ID: primitive.NewObjectID(), Name: "The Forest Hiker Tour"},
			wantStatusCode: http.StatusCreated,
		},
		{
			name:           "duplicate name",
			body:           validTourBody,
			mockErr:        apperr.DuplicateKey("duplicate field value, please use another value"),
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name:           "validation failure - short name",
			body:           `{"name":"short","duration":5,"maxGroupSize":25,"difficulty":"easy","price":397,"summary":"x"}`,
			wantStatusCode: http.StatusUnprocessableEntity,
		},
		{
			name:           "validation failure - bad difficulty",
			body:           `{"name":"The Forest Hiker Tour","duration":5,"maxGroupSize":25,"difficulty":"impossible","price":397,"summary":"x"}`,
			wantStatusCode: http.StatusUnprocessableEntity,
		},
		{
			name:           "invalid json",
			body:           `{`,
			wantStatusCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(TourServiceMock)
			if tt.mockDoc != nil || tt.mockErr != nil {
				svc.On("Create", mock.Anything, mock.AnythingOfType("models.Tour")).
					Return(tt.mockDoc, tt.mockErr).Once()
			}

			handler := crud.NewCreate[models.Tour](newNoopLogger(), svc, config.EnvProduction)

			req := httptest.NewRequest(http.MethodPost, "/api/v1/tours", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatusCode, rec.Code)
			svc.AssertExpectations(t)
		})
	}
}

func TestUpdateHandler(t *testing.T) {
	id := primitive.NewObjectID().Hex()

	t.Run("success strips id from patch", func(t *testing.T) {
		svc := new(TourServiceMock)
		updated := &models.Tour{Name: "The Forest Hiker Tour", Price: 450}
		svc.On("Update", mock.Anything, id, bson.M{"price": float64(450)}).
			Return(updated, nil).Once()

		handler := crud.NewUpdate[models.Tour](newNoopLogger(), svc, config.EnvProduction)

		router := chi.NewRouter()
		router.Method(http.MethodPatch, "/tours/{id}", handler)

		req := httptest.NewRequest(http.MethodPatch, "/tours/"+id,
			strings.NewReader(`{"price":450,"id":"hacker","_id":"hacker"}`))
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		var resp response.Response
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, response.StatusSuccess, resp.Status)
		svc.AssertExpectations(t)
	})

	t.Run("empty patch rejected", func(t *testing.T) {
		svc := new(TourServiceMock)
		handler := crud.NewUpdate[models.Tour](newNoopLogger(), svc, config.EnvProduction)

		router := chi.NewRouter()
		router.Method(http.MethodPatch, "/tours/{id}", handler)

		req := httptest.NewRequest(http.MethodPatch, "/tours/"+id, strings.NewReader(`{"id":"hacker"}`))
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		var resp response.Response
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, response.StatusFail, resp.Status)
		svc.AssertNotCalled(t, "Update")
	})

	t.Run("not found", func(t *testing.T) {
		svc := new(TourServiceMock)
		svc.On("Update", mock.Anything, id, mock.Anything).
			Return(nil, apperr.NotFound("no tour found with that ID")).Once()

		handler := crud.NewUpdate[models.Tour](newNoopLogger(), svc, config.EnvProduction)

		router := chi.NewRouter()
		router.Method(http.MethodPatch, "/tours/{id}", handler)

		req := httptest.NewRequest(http.MethodPatch, "/tours/"+id, strings.NewReader(`{"price":450}`))
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestRemoveHandler(t *testing.T) {
	id := primitive.NewObjectID().Hex()

	t.Run("success returns 204", func(t *testing.T) {
		svc := new(TourServiceMock)
		svc.On("Delete", mock.Anything, id).Return(nil).Once()

		handler := crud.NewRemove(newNoopLogger(), svc, config.EnvProduction)

		router := chi.NewRouter()
		router.Method(http.MethodDelete, "/tours/{id}", handler)

		req := httptest.NewRequest(http.MethodDelete, "/tours/"+id, nil)
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Empty(t, rec.Body.String())
		svc.AssertExpectations(t)
	})

	t.Run("bad id", func(t *testing.T) {
		svc := new(TourServiceMock)
		svc.On("Delete", mock.Anything, "not-an-id").
			Return(apperr.BadID("invalid id")).Once()

		handler := crud.NewRemove(newNoopLogger(), svc, config.EnvProduction)

		router := chi.NewRouter()
		router.Method(http.MethodDelete, "/tours/{id}", handler)

		req := httptest.NewRequest(http.MethodDelete, "/tours/not-an-id", nil)
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
