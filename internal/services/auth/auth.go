// Package services содержит логику бизнес-уровня для работы с учётными
// данными: пароли, токены доступа и одноразовые токены сброса пароля.
package services

import (
	"context"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/magabrotheeeer/tour-booking-api/internal/apperr"
	"github.com/magabrotheeeer/tour-booking-api/internal/lib/jwt"
	"github.com/magabrotheeeer/tour-booking-api/internal/lib/password"
	"github.com/magabrotheeeer/tour-booking-api/internal/lib/resettoken"
	"github.com/magabrotheeeer/tour-booking-api/internal/models"
)

// UserRepository описывает контракт для работы с пользователями в хранилище.
// Все методы чтения видят только активных пользователей.
type UserRepository interface {
	// Create сохраняет нового пользователя и возвращает сохранённый документ.
	Create(ctx context.Context, user models.User) (*models.User, error)

	// FindByEmail возвращает пользователя по email или NotFound.
	FindByEmail(ctx context.Context, email string) (*models.User, error)

	// FindByID возвращает пользователя по идентификатору или NotFound.
	FindByID(ctx context.Context, id string) (*models.User, error)

	// FindByResetToken возвращает пользователя по хэшу токена сброса,
	// срок действия которого ещё не истёк.
	FindByResetToken(ctx context.Context, tokenHash string) (*models.User, error)

	// UpdateByID применяет частичное обновление и возвращает новую версию.
	UpdateByID(ctx context.Context, id string, patch bson.M) (*models.User, error)
}

// AuthService отвечает за регистрацию, вход, проверку токенов доступа и
// жизненный цикл токенов сброса пароля.
type AuthService struct {
	users    UserRepository
	jwtMaker jwt.Maker
	resetTTL time.Duration
}

// NewAuthService создает новый экземпляр AuthService.
func NewAuthService(users UserRepository, jwtMaker jwt.Maker, resetTTL time.Duration) *AuthService {
	return &AuthService{
		users:    users,
		jwtMaker: jwtMaker,
		resetTTL: resetTTL,
	}
}

// Signup создает нового пользователя с хэшированием пароля и выдаёт токен
// доступа. Роль по умолчанию — user; уникальность имени и email
// обеспечивается индексами хранилища и поднимается как DuplicateKey.
func (s *AuthService) Signup(ctx context.Context, name, email, rawPassword string, role models.Role) (string, *models.User, error) {
	if role == "" {
		role = models.RoleUser
	}
	if !role.Valid() {
		return "", nil, apperr.Validation("invalid role")
	}

	hashed, err := password.GetHash(rawPassword)
	if err != nil {
		return "", nil, err
	}

	now := time.Now().UTC()
	user := models.User{
		Name:         name,
		Email:        strings.ToLower(email),
		PasswordHash: hashed,
		Role:         role,
		Active:       true,
		CreatedAt:    now,
		// секунда назад, чтобы токен, выданный сразу после регистрации,
		// не считался выданным до смены пароля
		PasswordChangedAt: now.Add(-time.Second),
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return "", nil, err
	}

	token, err := s.jwtMaker.GenerateToken(created.ID.Hex())
	if err != nil {
		return "", nil, err
	}
	return token, created, nil
}

// Login проверяет пароль пользователя и выдаёт токен доступа. Отсутствие
// пользователя и неверный пароль неразличимы для клиента.
func (s *AuthService) Login(ctx context.Context, email, rawPassword string) (string, error) {
	user, err := s.users.FindByEmail(ctx, strings.ToLower(email))
	if err != nil {
		return "", apperr.Unauthenticated("invalid credentials")
	}
	if err := password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		return "", apperr.Unauthenticated("invalid credentials")
	}
	return s.jwtMaker.GenerateToken(user.ID.Hex())
}

// Authenticate разбирает токен доступа и возвращает живого пользователя.
//
// Отказ наступает, если подпись неверна, токен истёк, пользователь удалён
// или пароль менялся после выдачи токена.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*models.User, error) {
	claims, err := s.jwtMaker.ParseToken(token)
	if err != nil {
		return nil, apperr.Unauthenticated("invalid or expired token")
	}

	user, err := s.users.FindByID(ctx, claims.UserID)
	if err != nil {
		return nil, apperr.Unauthenticated("the user belonging to this token no longer exists")
	}

	if user.PasswordChangedAfter(claims.IssuedAt.Time) {
		return nil, apperr.Unauthenticated("password was changed recently, please log in again")
	}
	return user, nil
}

// ForgotPassword генерирует одноразовый токен сброса, сохраняет его хэш и
// срок действия на пользователе и возвращает открытое значение для отправки
// по почте. Открытое значение нигде не сохраняется.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) (string, *models.User, error) {
	user, err := s.users.FindByEmail(ctx, strings.ToLower(email))
	if err != nil {
		return "", nil, err
	}

	plain, hash, err := resettoken.New()
	if err != nil {
		return "", nil, err
	}

	expires := time.Now().UTC().Add(s.resetTTL)
	if _, err := s.users.UpdateByID(ctx, user.ID.Hex(), bson.M{
		"passwordResetToken":   hash,
		"passwordResetExpires": expires,
	}); err != nil {
		return "", nil, err
	}
	return plain, user, nil
}

// ClearResetToken сбрасывает поля токена сброса, например когда письмо
// не удалось отправить.
func (s *AuthService) ClearResetToken(ctx context.Context, userID string) error {
	_, err := s.users.UpdateByID(ctx, userID, bson.M{
		"passwordResetToken":   "",
		"passwordResetExpires": nil,
	})
	return err
}

// ResetPassword обменивает одноразовый токен на новый пароль и токен
// доступа. Токен одноразовый: поля сброса очищаются при успехе, повторное
// использование того же значения даёт InvalidToken.
func (s *AuthService) ResetPassword(ctx context.Context, plainToken, newPassword string) (string, error) {
	user, err := s.users.FindByResetToken(ctx, resettoken.Hash(plainToken))
	if err != nil {
		return "", apperr.InvalidToken("token is invalid or has expired")
	}

	hashed, err := password.GetHash(newPassword)
	if err != nil {
		return "", err
	}

	now := time.Now().UTC()
	if _, err := s.users.UpdateByID(ctx, user.ID.Hex(), bson.M{
		"password":             hashed,
		"passwordChangedAt":    now.Add(-time.Second),
		"passwordResetToken":   "",
		"passwordResetExpires": nil,
	}); err != nil {
		return "", err
	}
	return s.jwtMaker.GenerateToken(user.ID.Hex())
}

// UpdatePassword меняет пароль аутентифицированного пользователя после
// проверки текущего пароля и выдаёт свежий токен доступа.
func (s *AuthService) UpdatePassword(ctx context.Context, userID, currentPassword, newPassword string) (string, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return "", err
	}
	if err := password.CompareHash(user.PasswordHash, currentPassword); err != nil {
		return "", apperr.Unauthenticated("your current password is wrong")
	}

	hashed, err := password.GetHash(newPassword)
	if err != nil {
		return "", err
	}

	now := time.Now().UTC()
	if _, err := s.users.UpdateByID(ctx, userID, bson.M{
		"password":          hashed,
		"passwordChangedAt": now.Add(-time.Second),
	}); err != nil {
		return "", err
	}
	return s.jwtMaker.GenerateToken(userID)
}
