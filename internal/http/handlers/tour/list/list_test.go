package list_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/tour-booking-api/internal/config"
	"github.com/magabrotheeeer/tour-booking-api/internal/http/handlers/tour/list"
	"github.com/magabrotheeeer/tour-booking-api/internal/http/response"
	"github.com/magabrotheeeer/tour-booking-api/internal/models"
)

type ServiceMock struct {
	mock.Mock
}

func (m *ServiceMock) List(ctx context.Context, params url.Values) ([]models.Tour, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Tour), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestListHandler(t *testing.T) {
	svc := new(ServiceMock)
	tours := []models.Tour{{Name: "The Forest Hiker Tour"}, {Name: "The Sea Explorer Tour"}}
	svc.On("List", mock.Anything, mock.MatchedBy(func(params url.Values) bool {
		return params.Get("difficulty") == "easy"
	})).Return(tours, nil).Once()

	handler := list.New(newNoopLogger(), svc, config.EnvProduction)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/tours?difficulty=easy", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp response.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, response.StatusSuccess, resp.Status)
	require.NotNil(t, resp.Results)
	assert.Equal(t, 2, *resp.Results)
	svc.AssertExpectations(t)
}

func TestListHandler_TopCheapPresetOverridesClientParams(t *testing.T) {
	svc := new(ServiceMock)
	svc.On("List", mock.Anything, mock.MatchedBy(func(params url.Values) bool {
		return params.Get("limit") == "5" &&
			params.Get("sort") == "-ratingsAverage,price" &&
			params.Get("fields") == "name,price,ratingsAverage,summary,difficulty"
	})).Return([]models.Tour{}, nil).Once()

	handler := list.NewTopCheap(newNoopLogger(), svc, config.EnvProduction)

	// клиентские limit и sort перекрываются предустановкой
	req := httptest.NewRequest(http.MethodGet, "/api/v1/tours/top-5-cheap?limit=100&sort=price", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	svc.AssertExpectations(t)
}
