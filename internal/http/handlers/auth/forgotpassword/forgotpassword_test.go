package forgotpassword_test

import (
	"context"
	"encoding/json"
	"errors"
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
	"github.com/magabrotheeeer/tour-booking-api/internal/http/handlers/auth/forgotpassword"
	"github.com/magabrotheeeer/tour-booking-api/internal/http/response"
	"github.com/magabrotheeeer/tour-booking-api/internal/models"
)

type ServiceMock struct {
	mock.Mock
}

func (m *ServiceMock) ForgotPassword(ctx context.Context, email string) (string, *models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(1) == nil {
		return args.String(0), nil, args.Error(2)
	}
	return args.String(0), args.Get(1).(*models.User), args.Error(2)
}

func (m *ServiceMock) ClearResetToken(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

type MailerMock struct {
	mock.Mock
}

func (m *MailerMock) SendPasswordReset(user *models.User, resetURL string) error {
	args := m.Called(user, resetURL)
	return args.Error(0)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestForgotPasswordHandler(t *testing.T) {
	user := &models.User{ID: primitive.NewObjectID(), Name: "Alice", Email: "alice@example.com"}

	t.Run("success sends reset link", func(t *testing.T) {
		svc := new(ServiceMock)
		mailer := new(MailerMock)
		svc.On("ForgotPassword", mock.Anything, "alice@example.com").
			Return("plaintoken", user, nil).Once()
		mailer.On("SendPasswordReset", user, mock.MatchedBy(func(resetURL string) bool {
			return strings.HasSuffix(resetURL, "/api/v1/auth-users/resetPassword/plaintoken")
		})).Return(nil).Once()

		handler := forgotpassword.New(newNoopLogger(), svc, mailer, config.EnvProduction)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth-users/forgotPassword",
			strings.NewReader(`{"email":"alice@example.com"}`))
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		var resp response.Response
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, response.StatusSuccess, resp.Status)
		assert.Equal(t, "token sent to email", resp.Message)
		svc.AssertExpectations(t)
		mailer.AssertExpectations(t)
	})

	t.Run("unknown email returns 404", func(t *testing.T) {
		svc := new(ServiceMock)
		mailer := new(MailerMock)
		svc.On("ForgotPassword", mock.Anything, "nobody@example.com").
			Return("", nil, apperr.NotFound("there is no user with this email address")).Once()

		handler := forgotpassword.New(newNoopLogger(), svc, mailer, config.EnvProduction)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth-users/forgotPassword",
			strings.NewReader(`{"email":"nobody@example.com"}`))
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		mailer.AssertNotCalled(t, "SendPasswordReset")
	})

	t.Run("mail failure clears token and returns 500", func(t *testing.T) {
		svc := new(ServiceMock)
		mailer := new(MailerMock)
		svc.On("ForgotPassword", mock.Anything, "alice@example.com").
			Return("plaintoken", user, nil).Once()
		mailer.On("SendPasswordReset", user, mock.AnythingOfType("string")).
			Return(errors.New("smtp down")).Once()
		svc.On("ClearResetToken", mock.Anything, user.ID.Hex()).Return(nil).Once()

		handler := forgotpassword.New(newNoopLogger(), svc, mailer, config.EnvProduction)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth-users/forgotPassword",
			strings.NewReader(`{"email":"alice@example.com"}`))
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		var resp response.Response
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, response.StatusError, resp.Status)
		assert.Equal(t, "there was an error sending the email, try again later", resp.Message)
		svc.AssertExpectations(t)
		mailer.AssertExpectations(t)
	})
}
