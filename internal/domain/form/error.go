package form

import (
	"errors"
	"strings"
)

var (
	ErrNotFound     = errors.New("form not found")
	ErrSaveFailed   = errors.New("failed to save form")
	ErrDeleteFailed = errors.New("failed to delete form")
	ErrStoreMissing = errors.New("forms file not found")
	ErrUnavailable  = errors.New("forms store unavailable")
	ErrConflict     = errors.New("forms file changed concurrently")
)

// FieldError - ошибка конкретного поля формы, сообщение для пользователя
type FieldError struct {
	Field   string
	Message string
}

// ValidationError собирает все ошибки полей за один проход
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return "invalid form: " + strings.Join(parts, "; ")
}

// Message возвращает сообщение для поля или пустую строку
func (e *ValidationError) Message(field string) string {
	for _, f := range e.Fields {
		if f.Field == field {
			return f.Message
		}
	}
	return ""
}
