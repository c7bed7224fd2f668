package login_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/tour-booking-api/internal/apperr"
	"github.com/magabrotheeeer/tour-booking-api/internal/config"
	"github.com/magabrotheeeer/tour-booking-api/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/tour-booking-api/internal/http/response"
)

type ServiceMock struct {
	mock.Mock
}

func (m *ServiceMock) Login(ctx context.Context, email, rawPassword string) (string, error) {
	args := m.Called(ctx, email, rawPassword)
	return args.String(0), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestLoginHandler(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		mockToken      string
		mockErr        error
		wantStatusCode int
		wantStatus     string
	}{
		{
			name:           "success",
			body:           `{"email":"alice@example.com","password":"pass1234"}`,
			mockToken:      "jwt-token",
			wantStatusCode: http.StatusOK,
			wantStatus:     response.StatusSuccess,
		},
		{
			name:           "invalid credentials",
			body:           `{"email":"alice@example.com","password":"wrong"}`,
			mockErr:        apperr.Unauthenticated("invalid credentials"),
			wantStatusCode: http.StatusUnauthorized,
			wantStatus:     response.StatusFail,
		},
		{
			name:           "invalid json",
			body:           `not json`,
			wantStatusCode: http.StatusBadRequest,
			wantStatus:     response.StatusFail,
		},
		{
			name:           "missing email",
			body:           `{"password":"pass1234"}`,
			wantStatusCode: http.StatusUnprocessableEntity,
			wantStatus:     response.StatusFail,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(ServiceMock)
			if tt.mockToken != "" || tt.mockErr != nil {
				svc.On("Login", mock.Anything, "alice@example.com", mock.AnythingOfType("string")).
					Return(tt.mockToken, tt.mockErr).Once()
			}

			handler := login.New(newNoopLogger(), svc, config.EnvProduction)

			req := httptest.NewRequest(http.MethodPost, "/api/v1/auth-users/login", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatusCode, rec.Code)

			var resp response.Response
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, tt.wantStatus, resp.Status)
			if tt.mockToken != "" {
				assert.Equal(t, tt.mockToken, resp.Token)
			}
			svc.AssertExpectations(t)
		})
	}
}
