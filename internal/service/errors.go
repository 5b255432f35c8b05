package service

import "fmt"

// коды бизнес-ошибок, известные хэндлерам

const CodeValidation = "VALIDATION_ERROR"
const CodeConflict = "CONFLICT"
const CodeInvalidCredentials = "INVALID_CREDENTIALS"
const CodeForbidden = "FORBIDDEN"
const CodeNotFound = "NOT_FOUND"

type BusinessError struct {
	Code    string
	Message string
	Details map[string]any
	Err     error
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

func NewValidationError(field, reason string) *BusinessError {
	return &BusinessError{
		Code:    CodeValidation,
		Message: fmt.Sprintf("Invalid value for '%s': %s", field, reason),
		Details: map[string]any{
			"field":  field,
			"reason": reason,
		},
	}
}

func NewConflict(message, field string) *BusinessError {
	return &BusinessError{
		Code:    CodeConflict,
		Message: message,
		Details: map[string]any{
			"field": field,
		},
	}
}

// NewInvalidCredentials одинаков для неизвестного имени и неверного пароля,
// чтобы не раскрывать существование учётной записи.
func NewInvalidCredentials() *BusinessError {
	return &BusinessError{
		Code:    CodeInvalidCredentials,
		Message: "Invalid credentials",
	}
}

func NewForbidden(message string) *BusinessError {
	return &BusinessError{
		Code:    CodeForbidden,
		Message: message,
	}
}

func NewNotFound(resource, id string) *BusinessError {
	return &BusinessError{
		Code:    CodeNotFound,
		Message: fmt.Sprintf("%s not found.", resource),
		Details: map[string]any{
			"resource": resource,
			"id":       id,
		},
	}
}
