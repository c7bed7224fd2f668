package updatepassword_test

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
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/magabrotheeeer/tour-booking-api/internal/apperr"
	"github.com/magabrotheeeer/tour-booking-api/internal/config"
	"github.com/magabrotheeeer/tour-booking-api/internal/http/handlers/auth/updatepassword"
	"github.com/magabrotheeeer/tour-booking-api/internal/http/middlewarectx"
	"github.com/magabrotheeeer/tour-booking-api/internal/http/response"
	"github.com/magabrotheeeer/tour-booking-api/internal/models"
)

type ServiceMock struct {
	mock.Mock
}

func (m *ServiceMock) UpdatePassword(ctx context.Context, userID, currentPassword, newPassword string) (string, error) {
	args := m.Called(ctx, userID, currentPassword, newPassword)
	return args.String(0), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestUpdatePasswordHandler(t *testing.T) {
	user := &models.User{ID: primitive.NewObjectID(), Email: "alice@example.com", Role: models.RoleUser}

	tests := []struct {
		name           string
		body           string
		withUser       bool
		mockToken      string
		mockErr        error
		wantStatusCode int
	}{
		{
			name:           "success without password confirmation",
			body:           `{"currentPassword":"pass1234","enteredPassword":"newpass1234"}`,
			withUser:       true,
			mockToken:      "jwt-token",
			wantStatusCode: http.StatusOK,
		},
		{
			name:           "success with matching confirmation",
			body:           `{"currentPassword":"pass1234","enteredPassword":"newpass1234","passwordConfirm":"newpass1234"}`,
			withUser:       true,
			mockToken:      "jwt-token",
			wantStatusCode: http.StatusOK,
		},
		{
			name:           "confirmation mismatch",
			body:           `{"currentPassword":"pass1234","enteredPassword":"newpass1234","passwordConfirm":"other"}`,
			withUser:       true,
			wantStatusCode: http.StatusUnprocessableEntity,
		},
		{
			name:           "wrong current password",
			body:           `{"currentPassword":"wrong","enteredPassword":"newpass1234"}`,
			withUser:       true,
			mockErr:        apperr.Unauthenticated("your current password is wrong"),
			wantStatusCode: http.StatusUnauthorized,
		},
		{
			name:           "missing user in context",
			body:           `{"currentPassword":"pass1234","enteredPassword":"newpass1234"}`,
			wantStatusCode: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(ServiceMock)
			if tt.mockToken != "" || tt.mockErr != nil {
				svc.On("UpdatePassword", mock.Anything, user.ID.Hex(), mock.Anything, "newpass1234").
					Return(tt.mockToken, tt.mockErr).Once()
			}

			handler := updatepassword.New(newNoopLogger(), svc, config.EnvProduction)

			req := httptest.NewRequest(http.MethodPatch, "/api/v1/auth-users/updatePassword", strings.NewReader(tt.body))
			if tt.withUser {
				req = req.WithContext(context.WithValue(req.Context(), middlewarectx.User, user))
			}
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

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
