package domain

import "fmt"

const (
	CodeValidation     = "VALIDATION"
	CodeNotFound       = "NOT_FOUND"
	CodeConflict       = "CONFLICT"
	CodeTaskNotPending = "TASK_NOT_PENDING"
	CodeUnauthorized   = "UNAUTHORIZED"
	CodeForbidden      = "FORBIDDEN"
)

type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// Это позволяет использовать errors.Is()
func (e *DomainError) Is(target error) bool {
	if t, ok := target.(*DomainError); ok {
		return e.Code == t.Code
	}
	return false
}

var (
	// ErrValidation - обязательное поле отсутствует или некорректно
	ErrValidation = &DomainError{
		Code:    CodeValidation,
		Message: "validation failed",
	}

	// ErrNotFound - ресурс не найден
	ErrNotFound = &DomainError{
		Code:    CodeNotFound,
		Message: "resource not found",
	}

	// ErrConflict - ресурс с таким ключом уже существует
	ErrConflict = &DomainError{
		Code:    CodeConflict,
		Message: "resource already exists",
	}

	// ErrUsernameTaken - имя пользователя занято
	ErrUsernameTaken = &DomainError{
		Code:    CodeConflict,
		Message: "username already exists",
	}

	// ErrTaskNotPending - завершить можно только задачу в статусе pending
	ErrTaskNotPending = &DomainError{
		Code:    CodeTaskNotPending,
		Message: "only pending tasks can be completed",
	}

	// ErrInvalidCredentials - неверный логин или пароль
	ErrInvalidCredentials = &DomainError{
		Code:    CodeUnauthorized,
		Message: "invalid credentials",
	}

	// ErrUnauthorized - нет активной сессии
	ErrUnauthorized = &DomainError{
		Code:    CodeUnauthorized,
		Message: "authentication required",
	}

	// ErrForbidden - роль не позволяет выполнить действие
	ErrForbidden = &DomainError{
		Code:    CodeForbidden,
		Message: "insufficient role",
	}
)

// NewNotFoundError создает ошибку NOT_FOUND с дополнительным контекстом
func NewNotFoundError(resource string) *DomainError {
	return &DomainError{
		Code:    CodeNotFound,
		Message: fmt.Sprintf("%s not found", resource),
	}
}

// NewValidationError создает ошибку VALIDATION с описанием поля
func NewValidationError(format string, args ...any) *DomainError {
	return &DomainError{
		Code:    CodeValidation,
		Message: fmt.Sprintf(format, args...),
	}
}
