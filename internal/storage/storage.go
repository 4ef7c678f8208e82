// Package storage определяет общие ошибки слоя хранения.
// Конкретные реализации живут в подпакете repository.
package storage

import "errors"

var (
	// ErrNotFound возвращается при запросе несуществующей записи.
	ErrNotFound = errors.New("record not found")
	// ErrUsernameTaken возвращается при регистрации с занятым именем пользователя.
	ErrUsernameTaken = errors.New("username already taken")
)
