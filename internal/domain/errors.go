package domain

import (
	"fmt"
	"time"
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

const (
	CodeNotFound           = "NOT_FOUND"
	CodeDuplicate          = "DUPLICATE"
	CodeConcurrencyFailure = "CONCURRENCY_FAILURE"
	CodeValidation         = "VALIDATION"
	CodeLockedOut          = "LOCKED_OUT"
)

var (
	// ErrNotFound - запись не найдена
	ErrNotFound = &DomainError{
		Code:    CodeNotFound,
		Message: "resource not found",
	}

	// ErrDuplicate - нарушено ограничение уникальности
	ErrDuplicate = &DomainError{
		Code:    CodeDuplicate,
		Message: "resource already exists",
	}

	// ErrConcurrencyFailure - запись была изменена другим вызывающим
	ErrConcurrencyFailure = &DomainError{
		Code:    CodeConcurrencyFailure,
		Message: "optimistic concurrency failure, object has been modified",
	}

	// ErrValidation - входные данные не прошли проверку
	ErrValidation = &DomainError{
		Code:    CodeValidation,
		Message: "validation failed",
	}

	// ErrLockedOut - пользователь заблокирован
	ErrLockedOut = &DomainError{
		Code:    CodeLockedOut,
		Message: "user is locked out",
	}
)

// NewNotFoundError создает ошибку NOT_FOUND с дополнительным контекстом
func NewNotFoundError(resource string) *DomainError {
	return &DomainError{
		Code:    CodeNotFound,
		Message: fmt.Sprintf("%s not found", resource),
	}
}

// NewDuplicateError создает ошибку DUPLICATE с дополнительным контекстом
func NewDuplicateError(resource string) *DomainError {
	return &DomainError{
		Code:    CodeDuplicate,
		Message: fmt.Sprintf("%s already exists", resource),
	}
}

func NewValidationError(format string, args ...any) *DomainError {
	return &DomainError{
		Code:    CodeValidation,
		Message: fmt.Sprintf(format, args...),
	}
}

// NewLockedOutError создает ошибку LOCKED_OUT с моментом окончания блокировки
func NewLockedOutError(userID string, until time.Time) *DomainError {
	return &DomainError{
		Code:    CodeLockedOut,
		Message: fmt.Sprintf("user %s is locked out until %s", userID, until.UTC().Format(time.RFC3339)),
	}
}
