package repository

import "errors"

// Сентинельные ошибки слоя хранения, сервисы переводят их в domain.DomainError
var (
	ErrTeamNotFound   = errors.New("team not found")
	ErrUserNotFound   = errors.New("user not found")
	ErrTaskNotFound   = errors.New("task not found")
	ErrClientNotFound = errors.New("client not found")
	ErrDuplicateKey   = errors.New("duplicate key")
	ErrInvalidID      = errors.New("invalid id")
)
