// Package models содержит доменные модели системы бронирования туров:
// пользователей, туры и отзывы. Структуры используются в бизнес-логике
// и при работе с хранилищем документов.
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role — закрытое перечисление ролей пользователя.
type Role string

const (
	// RoleUser — обычный пользователь, может оставлять отзывы.
	RoleUser Role = "user"
	// RoleGuide — гид тура.
	RoleGuide Role = "guide"
	// RoleLeadGuide — ведущий гид, управляет турами.
	RoleLeadGuide Role = "lead-guide"
	// RoleAdmin — администратор.
	RoleAdmin Role = "admin"
)

// Valid сообщает, входит ли роль в закрытое множество ролей.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleGuide, RoleLeadGuide, RoleAdmin:
		return true
	}
	return false
}

// User представляет зарегистрированного пользователя системы.
//
// Хэш пароля, токен сброса и флаг активности никогда не сериализуются в JSON.
// В поле PasswordResetToken хранится только sha256-хэш, открытое значение
// токена уходит пользователю по почте и нигде не сохраняется.
type User struct {
	ID                   primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name                 string             `bson:"name" json:"name"`
	Email                string             `bson:"email" json:"email"`
	Photo                string             `bson:"photo,omitempty" json:"photo,omitempty"`
	PasswordHash         string             `bson:"password" json:"-"`
	Role                 Role               `bson:"role" json:"role"`
	PasswordChangedAt    time.Time          `bson:"passwordChangedAt,omitempty" json:"-"`
	PasswordResetToken   string             `bson:"passwordResetToken,omitempty" json:"-"`
	PasswordResetExpires *time.Time         `bson:"passwordResetExpires,omitempty" json:"-"`
	Active               bool               `bson:"active" json:"-"`
	CreatedAt            time.Time          `bson:"createdAt" json:"createdAt"`
}

// PasswordChangedAfter сообщает, менялся ли пароль после указанного момента.
// Используется для отзыва токенов, выданных до смены пароля. Сравнение идёт
// с точностью до секунды, как у claim iat в JWT.
func (u *User) PasswordChangedAfter(t time.Time) bool {
	if u.PasswordChangedAt.IsZero() {
		return false
	}
	return u.PasswordChangedAt.Unix() > t.Unix()
}
