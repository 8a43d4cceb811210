// errors.go: таксономия ошибок клиента: NotFound, RequestFailed, ValidationFailed.
package apiclient

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrNotFound: операция над отсутствующим id.
	ErrNotFound = errors.New("файл не найден")
	// ErrValidation: клиентская валидация не пройдена.
	ErrValidation = errors.New("ошибка валидации")
)

// RequestError: ответ backend с не-2xx статусом.
type RequestError struct {
	// StatusCode: HTTP-статус ответа
	StatusCode int
	// Message: человекочитаемое сообщение из тела или по умолчанию
	Message string
	// Body: разобранный JSON (map/array/...) или сырой текст
	Body any
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
}

// Is позволяет errors.Is(err, ErrNotFound) для ответов 404.
func (e *RequestError) Is(target error) bool {
	return target == ErrNotFound && e.StatusCode == http.StatusNotFound
}
