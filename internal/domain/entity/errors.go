package entity

import (
	"errors"
	"fmt"
)

// ErrEmptyAddress возвращается до любого сетевого вызова, если адрес пуст.
var ErrEmptyAddress = errors.New("address is empty")

// RetrievalError — не удалось получить снимок: геокодер не нашёл адрес,
// сервис снимков ответил ошибкой или запрос не дошёл до сервиса.
type RetrievalError struct {
	Status int    // HTTP-статус ответа, 0 если запрос не состоялся
	Reason string // причина отказа
}

func (e *RetrievalError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("imagery retrieval failed: %s (status %d)", e.Reason, e.Status)
	}
	return fmt.Sprintf("imagery retrieval failed: %s", e.Reason)
}

// MalformedImageError — снимок не удалось декодировать в форму,
// пригодную для модели. Ошибка фатальна для запроса, но не для процесса.
type MalformedImageError struct {
	Reason string
}

func (e *MalformedImageError) Error() string {
	return fmt.Sprintf("malformed image: %s", e.Reason)
}

// ReportError — не удалось записать PDF-отчёт на диск.
type ReportError struct {
	Path string
	Err  error
}

func (e *ReportError) Error() string {
	return fmt.Sprintf("report write failed: %s: %v", e.Path, e.Err)
}

func (e *ReportError) Unwrap() error {
	return e.Err
}
