// Пакет controller: состояние страниц dashboard и оркестрация вызовов FileAPI.
//
// Каждый контроллер хранит загруженные элементы (заменяются целиком при каждой
// загрузке), флаг занятости и сообщение об ошибке. Перезагрузка запрашивается
// явным сигналом ReloadSignal. Загрузки нумеруются: результат применяется,
// только если после неё не стартовала более новая загрузка.
package controller

import (
	"context"
	"errors"
	"sync"

	"github.com/bigkaa/goartstore/content-dashboard/internal/apiclient"
)

// ReloadSignal: явный запрос перезагрузки данных контроллера.
type ReloadSignal struct {
	mu   sync.Mutex
	subs []func(ctx context.Context)
}

// Subscribe регистрирует обработчик запроса перезагрузки.
func (s *ReloadSignal) Subscribe(fn func(ctx context.Context)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, fn)
}

// Request оповещает подписчиков синхронно, в порядке подписки.
func (s *ReloadSignal) Request(ctx context.Context) {
	s.mu.Lock()
	subs := append([]func(context.Context){}, s.subs...)
	s.mu.Unlock()

	for _, fn := range subs {
		fn(ctx)
	}
}

// loadSeq: нумерация загрузок одного контроллера.
// Вызывать под мьютексом контроллера.
type loadSeq struct {
	last uint64
}

func (s *loadSeq) begin() uint64 {
	s.last++
	return s.last
}

func (s *loadSeq) stale(n uint64) bool {
	return n != s.last
}

// Коды ошибок для отображения. Текст подставляет слой представления.
const (
	MsgLoadFailed   = "error.load_failed"
	MsgNotFound     = "error.not_found"
	MsgUpdateFailed = "error.update_failed"
	MsgDeleteFailed = "error.delete_failed"
	MsgUploadFailed = "error.upload_failed"
)

// Failure: ошибка, показываемая пользователю inline.
type Failure struct {
	// Key: код сообщения (MsgLoadFailed, ...)
	Key string
	// Detail: сообщение backend, если есть
	Detail string
}

// newFailure строит Failure из ошибки вызова.
func newFailure(key string, err error) *Failure {
	f := &Failure{Key: key}
	var reqErr *apiclient.RequestError
	switch {
	case errors.Is(err, apiclient.ErrNotFound):
		f.Key = MsgNotFound
	case errors.As(err, &reqErr):
		f.Detail = reqErr.Message
	case errors.Is(err, apiclient.ErrValidation):
		f.Detail = err.Error()
	}
	return f
}
