// Package resettoken реализует одноразовые токены сброса пароля.
//
// New генерирует криптографически случайный токен; в базе хранится только
// его sha256-хэш, открытое значение уходит пользователю по почте.
package resettoken

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// tokenBytes — длина случайной части токена.
const tokenBytes = 32

// New возвращает открытое значение токена и его хэш для хранения.
func New() (plain string, hash string, err error) {
	const op = "resettoken.New"
	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", "", fmt.Errorf("%s: %w", op, err)
	}
	plain = hex.EncodeToString(buf)
	return plain, Hash(plain), nil
}

// Hash возвращает hex-представление sha256-хэша открытого токена.
func Hash(plain string) string {
	sum := sha256.Sum256([]byte(plain))
	return hex.EncodeToString(sum[:])
}
