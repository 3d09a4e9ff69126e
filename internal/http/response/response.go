// Package response содержит вспомогательные типы и функции для формирования
// унифицированных JSON‑ответов HTTP‑обработчиков. Пакет упрощает возврат
// успешных ответов, общих ошибок и пополевых сообщений валидации в едином формате.
package response

import (
	"fmt"

	"github.com/go-playground/validator"
)

// Response описывает стандартную структуру JSON‑ответа сервера.
// Поле Status — статус запроса ("OK" или "Error").
// Поле Error — общий текст ошибки (опционально, при неуспехе).
// Поле Fields — пополевые сообщения об ошибках ввода (опционально).
// Поле Data — данные ответа (опционально, при успехе).
type Response struct {
	Status string            `json:"status" example:"Error"`
	Error  string            `json:"error,omitempty" example:"invalid request body"`
	Fields map[string]string `json:"fields,omitempty"`
	Data   any               `json:"data,omitempty"`
}

const (
	// StatusOK — значение статуса для успешного ответа.
	StatusOK = "OK"
	// StatusError — значение статуса для ответа с ошибкой.
	StatusError = "Error"
)

// OKWithData возвращает успешный Response с переданными данными.
func OKWithData(data any) Response {
	return Response{
		Status: StatusOK,
		Data:   data,
	}
}

// Error возвращает Response с общим сообщением об ошибке.
func Error(msg string) Response {
	return Response{
		Status: StatusError,
		Error:  msg,
	}
}

// FieldError возвращает Response с сообщением, привязанным к конкретному полю формы.
func FieldError(field, msg string) Response {
	return Response{
		Status: StatusError,
		Fields: map[string]string{field: msg},
	}
}

// ValidationError формирует Response со статусом Error на основе ошибок валидации.
// Каждое нарушение привязывается к своему полю, чтобы форма могла
// показать сообщение рядом с полем.
func ValidationError(errs validator.ValidationErrors) Response {
	fields := make(map[string]string, len(errs))

	for _, err := range errs {
		switch err.ActualTag() {
		case "required":
			fields[err.Field()] = fmt.Sprintf("field %s is a required field", err.Field())
		case "email":
			fields[err.Field()] = fmt.Sprintf("field %s must be a valid email address", err.Field())
		case "min":
			fields[err.Field()] = fmt.Sprintf("field %s must be at least %s characters", err.Field(), err.Param())
		case "max":
			fields[err.Field()] = fmt.Sprintf("field %s must be at most %s characters", err.Field(), err.Param())
		case "eqfield":
			fields[err.Field()] = fmt.Sprintf("field %s must match field %s", err.Field(), err.Param())
		default:
			fields[err.Field()] = fmt.Sprintf("field %s is not a valid", err.Field())
		}
	}
	return Response{
		Status: StatusError,
		Fields: fields,
	}
}
