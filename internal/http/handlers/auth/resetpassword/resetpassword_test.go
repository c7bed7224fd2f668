package resetpassword_test

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

	"github.com/magabrotheeeer/tour-booking-api/internal/apperr"
	"github.com/magabrotheeeer/tour-booking-api/internal/config"
	"github.com/magabrotheeeer/tour-booking-api/internal/http/handlers/auth/resetpassword"
	"github.com/magabrotheeeer/tour-booking-api/internal/http/response"
)

type ServiceMock struct {
	mock.Mock
}

func (m *ServiceMock) ResetPassword(ctx context.Context, plainToken, newPassword string) (string, error) {
	args := m.Called(ctx, plainToken, newPassword)
	return args.String(0), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestResetPasswordHandler(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		mockToken      string
		mockErr        error
		wantStatusCode int
	}{
		{
			name:           "success without password confirmation",
			body:           `{"password":"newpass1234"}`,
			mockToken:      "jwt-token",
			wantStatusCode: http.StatusOK,
		},
		{
			name:           "confirmation mismatch",
			body:           `{"password":"newpass1234","passwordConfirm":"other"}`,
			wantStatusCode: http.StatusUnprocessableEntity,
		},
		{
			name:           "expired token",
			body:           `{"password":"newpass1234"}`,
			mockErr:        apperr.InvalidToken("token is invalid or has expired"),
			wantStatusCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(ServiceMock)
			if tt.mockToken != "" || tt.mockErr != nil {
				svc.On("ResetPassword", mock.Anything, "plaintoken", "newpass1234").
					Return(tt.mockToken, tt.mockErr).Once()
			}

			router := chi.NewRouter()
			router.Method(http.MethodPatch, "/auth-users/resetPassword/{token}",
				resetpassword.New(newNoopLogger(), svc, config.EnvProduction))

			req := httptest.NewRequest(http.MethodPatch, "/auth-users/resetPassword/plaintoken", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatusCode, rec.Code)

			var resp response.Response
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			if tt.wantStatusCode == http.StatusOK {
				assert.Equal(t, response.StatusSuccess, resp.Status)
				assert.Equal(t, tt.mockToken, resp.Token)
			} else {
				assert.Equal(t, response.StatusFail, resp.Status)
			}
			svc.AssertExpectations(t)
		})
	}
}
