package apperr

import "net/http"

// Kind классифицирует доменные ошибки, каждому виду соответствует HTTP статус
type Kind int

const (
	KindBadRequest Kind = iota
	KindDuplicated
	KindForbidden
	KindNotFound
	KindUnauthorized
	KindNotImplemented
	KindServiceUnavailable
	KindUnknown
)

func (k Kind) Status() int {
	switch k {
	case KindBadRequest:
		return http.StatusBadRequest
	case KindDuplicated:
		return http.StatusConflict
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindNotImplemented:
		return http.StatusNotImplemented
	case KindServiceUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// Error несет вид, сообщение и опциональные данные для тела ответа
type Error struct {
	Kind    Kind
	Message string
	Data    map[string]interface{}
}

func (e *Error) Error() string {
	return e.Message
}

func BadRequest(message string, data map[string]interface{}) *Error {
	return &Error{Kind: KindBadRequest, Message: message, Data: data}
}

func Duplicated(message string) *Error {
	return &Error{Kind: KindDuplicated, Message: message}
}

func Forbidden() *Error {
	return &Error{
		Kind:    KindForbidden,
		Message: "Access denied: You do not have the necessary permissions to perform this action.",
	}
}

func NotFound(message string) *Error {
	if message == "" {
		message = "the resource requested is not found"
	}
	return &Error{Kind: KindNotFound, Message: message}
}

func Unauthorized(message string) *Error {
	if message == "" {
		message = "Unauthorized"
	}
	return &Error{Kind: KindUnauthorized, Message: message}
}

func NotImplemented(message string) *Error {
	if message == "" {
		message = "this api is not implemented yet."
	}
	return &Error{Kind: KindNotImplemented, Message: message}
}

func ServiceUnavailable(message string) *Error {
	if message == "" {
		message = "Service unavailable"
	}
	return &Error{Kind: KindServiceUnavailable, Message: message}
}

func Unknown(message string) *Error {
	if message == "" {
		message = "unknown error"
	}
	return &Error{Kind: KindUnknown, Message: message}
}
