package create_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/magabrotheeeer/tour-booking-api/internal/config"
	"github.com/magabrotheeeer/tour-booking-api/internal/http/handlers/review/create"
	"github.com/magabrotheeeer/tour-booking-api/internal/http/middlewarectx"
	"github.com/magabrotheeeer/tour-booking-api/internal/models"
)

type ServiceMock struct {
	mock.Mock
}

func (m *ServiceMock) Create(ctx context.Context, tourID string, authorID primitive.ObjectID, text string, rating float64) (*models.Review, error) {
	args := m.Called(ctx, tourID, authorID, text, rating)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Review), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestCreateHandler(t *testing.T) {
	tourID := primitive.NewObjectID()
	user := &models.User{ID: primitive.NewObjectID(), Role: models.RoleUser}

	newRequest := func(body string, withUser bool) *http.Request {
		req := httptest.NewRequest(http.MethodPost, "/tours/"+tourID.Hex()+"/review", strings.NewReader(body))
		if withUser {
			ctx := context.WithValue(req.Context(), middlewarectx.User, user)
			req = req.WithContext(ctx)
		}
		return req
	}

	t.Run("success binds tour and author", func(t *testing.T) {
		svc := new(ServiceMock)
		saved := &models.Review{ID: primitive.NewObjectID(), Review: "amazing", Rating: 5}
		svc.On("Create", mock.Anything, tourID.Hex(), user.ID, "amazing", float64(5)).
			Return(saved, nil).Once()

		handler := create.New(newNoopLogger(), svc, config.EnvProduction)

		router := chi.NewRouter()
		router.Method(http.MethodPost, "/tours/{tourId}/review", handler)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, newRequest(`{"review":"amazing","rating":5}`, true))

		assert.Equal(t, http.StatusCreated, rec.Code)
		svc.AssertExpectations(t)
	})

	t.Run("tour id taken from body on flat route", func(t *testing.T) {
		svc := new(ServiceMock)
		saved := &models.Review{ID: primitive.NewObjectID(), Review: "amazing", Rating: 5}
		svc.On("Create", mock.Anything, tourID.Hex(), user.ID, "amazing", float64(5)).
			Return(saved, nil).Once()

		handler := create.New(newNoopLogger(), svc, config.EnvProduction)

		router := chi.NewRouter()
		router.Method(http.MethodPost, "/reviews", handler)

		body := `{"review":"amazing","rating":5,"tour":"` + tourID.Hex() + `"}`
		req := httptest.NewRequest(http.MethodPost, "/reviews", strings.NewReader(body))
		req = req.WithContext(context.WithValue(req.Context(), middlewarectx.User, user))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusCreated, rec.Code)
		svc.AssertExpectations(t)
	})

	t.Run("tour id missing from path and body", func(t *testing.T) {
		svc := new(ServiceMock)
		handler := create.New(newNoopLogger(), svc, config.EnvProduction)

		router := chi.NewRouter()
		router.Method(http.MethodPost, "/reviews", handler)

		req := httptest.NewRequest(http.MethodPost, "/reviews", strings.NewReader(`{"review":"amazing","rating":5}`))
		req = req.WithContext(context.WithValue(req.Context(), middlewarectx.User, user))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		svc.AssertNotCalled(t, "Create")
	})

	t.Run("rating out of range", func(t *testing.T) {
		svc := new(ServiceMock)
		handler := create.New(newNoopLogger(), svc, config.EnvProduction)

		router := chi.NewRouter()
		router.Method(http.MethodPost, "/tours/{tourId}/review", handler)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, newRequest(`{"review":"bad","rating":6}`, true))

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		svc.AssertNotCalled(t, "Create")
	})

	t.Run("missing user in context", func(t *testing.T) {
		svc := new(ServiceMock)
		handler := create.New(newNoopLogger(), svc, config.EnvProduction)

		router := chi.NewRouter()
		router.Method(http.MethodPost, "/tours/{tourId}/review", handler)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, newRequest(`{"review":"amazing","rating":5}`, false))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
