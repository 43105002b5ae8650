package service

import (
	"fmt"
	"strings"
)

type BusinessError struct {
	Code    string
	Message string
	Details map[string]any
	Err     error
}

type Detail struct {
	Key     string
	Payload any
}

func (b *BusinessError) Error() string {
	if b.Err != nil {
		return fmt.Sprintf("[%s] %s: %s", b.Code, b.Message, b.Err.Error())
	}
	return fmt.Sprintf("[%s] %s", b.Code, b.Message)
}

func (b *BusinessError) Unwrap() error {
	return b.Err
}

func ToDetail(key string, payload any) Detail {
	return Detail{
		Key:     key,
		Payload: payload,
	}
}

func NewBusinessError(code string, message string, details ...Detail) *BusinessError {
	busErr := &BusinessError{
		Code:    code,
		Message: message,
		Details: make(map[string]any),
	}

	for _, detail := range details {
		busErr.Details[detail.Key] = detail.Payload
	}

	return busErr
}

func NewValidationError(field, reason string) *BusinessError {
	return &BusinessError{
		Code:    "VALIDATION_ERROR",
		Message: fmt.Sprintf("Неверное значение поля '%s': %s", field, reason),
		Details: map[string]any{
			"field":  field,
			"reason": reason,
		},
	}
}

func NewUnknownAction(name string, known []string, err error) *BusinessError {
	return &BusinessError{
		Code:    "UNKNOWN_ACTION",
		Message: fmt.Sprintf("Неизвестное действие фильтра '%s'", name),
		Details: map[string]any{
			"action": name,
			"known":  strings.Join(known, ","),
		},
		Err: err,
	}
}

func NewUnavailable(err error) *BusinessError {
	return &BusinessError{
		Code:    "UNAVAILABLE",
		Message: "Хранилище задач недоступно",
		Err:     err,
	}
}
