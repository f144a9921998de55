package domain

import (
	"errors"
	"fmt"
)

// Application errors
var (
	// ErrNotFound запись не найдена
	ErrNotFound = errors.New("record not found")

	// ErrDuplicate дубликат записи
	ErrDuplicate = errors.New("duplicate record")

	// ErrInvalidInput неверные входные данные
	ErrInvalidInput = errors.New("invalid input data")

	// ErrUnavailable хранилище данных недоступно или вернуло ошибку
	ErrUnavailable = errors.New("data gateway unavailable")

	// ErrEmptyReport за выбранный период нет записей
	ErrEmptyReport = errors.New("no records in the selected range")

	// ErrNoSubscription у пользователя нет подписки для продления
	ErrNoSubscription = errors.New("user has no subscription to extend")

	// ErrUnknownPage страница не зарегистрирована
	ErrUnknownPage = errors.New("unknown page")

	// ErrInternal внутренняя ошибка
	ErrInternal = errors.New("internal error")
)

// ValidationError представляет ошибку валидации одного поля
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors представляет набор ошибок валидации
type ValidationErrors []ValidationError

// Error реализует интерфейс error
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return "validation failed"
	}

	if len(e) == 1 {
		return fmt.Sprintf("validation failed: %s - %s", e[0].Field, e[0].Message)
	}

	return fmt.Sprintf("validation failed: %d errors", len(e))
}

// Is сопоставляет ошибки валидации с ErrInvalidInput
func (e ValidationErrors) Is(target error) bool {
	return target == ErrInvalidInput
}

// Add добавляет ошибку валидации
func (e *ValidationErrors) Add(field, message string) {
	*e = append(*e, ValidationError{Field: field, Message: message})
}

// HasErrors проверяет наличие ошибок
func (e ValidationErrors) HasErrors() bool {
	return len(e) > 0
}

// GetByField возвращает сообщение об ошибке для указанного поля
func (e ValidationErrors) GetByField(field string) string {
	for _, err := range e {
		if err.Field == field {
			return err.Message
		}
	}
	return ""
}

// NewValidationError создает ошибку валидации для одного поля
func NewValidationError(field, message string) ValidationErrors {
	return ValidationErrors{{Field: field, Message: message}}
}

// GatewayError представляет сбой обращения к хранилищу данных
type GatewayError struct {
	Op    string
	Table string
	Err   error
}

// Error реализует интерфейс error
func (e *GatewayError) Error() string {
	return fmt.Sprintf("gateway %s %s: %v", e.Op, e.Table, e.Err)
}

// Unwrap возвращает исходную ошибку
func (e *GatewayError) Unwrap() error {
	return e.Err
}

// Is сопоставляет сбой хранилища с ErrUnavailable
func (e *GatewayError) Is(target error) bool {
	return target == ErrUnavailable
}

// NewGatewayError оборачивает транспортную ошибку драйвера
func NewGatewayError(op, table string, err error) *GatewayError {
	return &GatewayError{Op: op, Table: table, Err: err}
}

// NotFoundError представляет ошибку "не найдено"
type NotFoundError struct {
	Entity string
	ID     string
}

// Error реализует интерфейс error
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with ID %s not found", e.Entity, e.ID)
}

// Is проверяет, является ли ошибка ошибкой типа "не найдено"
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// NewNotFoundError создает новую ошибку "не найдено"
func NewNotFoundError(entity, id string) *NotFoundError {
	return &NotFoundError{
		Entity: entity,
		ID:     id,
	}
}
