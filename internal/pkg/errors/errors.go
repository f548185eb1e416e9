package errors

import (
	"fmt"
)

// AppError - ошибка движка с машинным кодом и произвольным контекстом
type AppError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

func (e *AppError) Error() string {
	if len(e.Details) == 0 {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s %v", e.Code, e.Message, e.Details)
}

// New создает AppError с указанным кодом и сообщением
func New(code, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// WithDetails возвращает копию ошибки с дополнительным контекстом.
// Исходная ошибка (обычно - одна из предопределённых) не модифицируется.
func (e *AppError) WithDetails(details map[string]interface{}) *AppError {
	return &AppError{
		Code:    e.Code,
		Message: e.Message,
		Details: details,
	}
}

// Is сравнивает ошибки по коду, что позволяет использовать errors.Is
// с предопределёнными значениями независимо от Details
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}
