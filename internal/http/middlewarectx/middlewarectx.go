// Package middlewarectx содержит HTTP middleware: аутентификацию по JWT,
// проверку ролей, лимит запросов и защитные заголовки. Аутентифицированный
// пользователь кладётся в контекст запроса.
package middlewarectx

import (
	"context"

	"github.com/magabrotheeeer/tour-booking-api/internal/models"
)

// Key тип для ключей контекста HTTP-запроса.
type Key string

// User — ключ для аутентифицированного пользователя в контексте.
const User Key = "user"

// UserFromContext возвращает аутентифицированного пользователя из контекста.
func UserFromContext(ctx context.Context) (*models.User, bool) {
	user, ok := ctx.Value(User).(*models.User)
	return user, ok
}
