// Пакет mockstore: in-memory хранилище файлов для mock-режима.
//
// Хранилище создаётся явно и передаётся клиенту (без глобального состояния).
// Порядок записей: новые первыми (Create добавляет в начало).
// Все операции работают с копиями, внешний код не может изменить
// сохранённые записи.
package mockstore

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/bigkaa/goartstore/content-dashboard/internal/domain/model"
)

// ErrNotFound: запись с указанным id отсутствует.
var ErrNotFound = errors.New("mockstore: запись не найдена")

// Latency: имитация сетевой задержки по операциям.
type Latency struct {
	List   time.Duration
	Get    time.Duration
	Create time.Duration
	Update time.Duration
	Delete time.Duration
}

// DefaultLatency возвращает профиль задержек, близкий к реальному backend.
func DefaultLatency() Latency {
	return Latency{
		List:   250 * time.Millisecond,
		Get:    150 * time.Millisecond,
		Create: 400 * time.Millisecond,
		Update: 250 * time.Millisecond,
		Delete: 200 * time.Millisecond,
	}
}

// Option: функциональная опция Store.
type Option func(*Store)

// WithLatency включает имитацию задержек.
func WithLatency(l Latency) Option {
	return func(s *Store) { s.latency = l }
}

// WithClock подменяет источник времени (для тестов).
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDGenerator подменяет генератор id (для тестов).
func WithIDGenerator(gen func() string) Option {
	return func(s *Store) { s.newID = gen }
}

// Store: потокобезопасное in-memory хранилище записей File.
type Store struct {
	mu      sync.RWMutex
	files   []*model.File
	latency Latency
	now     func() time.Time
	newID   func() string
	logger  *slog.Logger
}

// New создаёт пустое хранилище.
func New(logger *slog.Logger, opts ...Option) *Store {
	s := &Store{
		files:  make([]*model.File, 0),
		now:    time.Now,
		newID:  func() string { return "f" + uuid.NewString() },
		logger: logger.With(slog.String("component", "mockstore")),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Seed добавляет демонстрационную запись "Sample TS Stream".
func (s *Store) Seed() {
	sample := &model.File{
		ID:          "f1",
		Title:       "Sample TS Stream",
		Description: "A sample transport stream with multiple audio tracks.",
		Tags:        []string{"sample", "test"},
		CreatedAt:   s.now().UTC().Format(time.RFC3339),
		Size:        10485760,
		Status:      model.StatusReady,
		Video:       &model.VideoTrack{Codec: "H.264", Resolution: "1920x1080", Bitrate: 4500},
		Audios: []model.AudioTrack{
			{Language: "en", Codec: "AAC", Channels: "2.0"},
			{Language: "ar", Codec: "AAC", Channels: "2.0"},
		},
		Subtitles: []model.SubtitleTrack{
			{Language: "en", Format: "srt"},
		},
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.files = append(s.files, sample)

	s.logger.Debug("Mock-хранилище заполнено демо-записью", slog.String("file_id", sample.ID))
}

// List возвращает записи, соответствующие фильтру, в порядке хранения.
// Пустой результат: пустой срез, не ошибка.
func (s *Store) List(ctx context.Context, filter model.FileFilter) (*model.FileList, error) {
	if err := s.wait(ctx, s.latency.List); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]*model.File, 0, len(s.files))
	for _, f := range s.files {
		if f.Matches(filter) {
			items = append(items, f.Clone())
		}
	}
	return &model.FileList{Items: items, Total: len(items)}, nil
}

// Get возвращает запись по id или ErrNotFound.
func (s *Store) Get(ctx context.Context, id string) (*model.File, error) {
	if err := s.wait(ctx, s.latency.Get); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if i := s.indexOf(id); i >= 0 {
		return s.files[i].Clone(), nil
	}
	return nil, ErrNotFound
}

// Create сохраняет новую запись в начало списка.
// Id генерируется, статус: processing, размер: payload.Size
// или число прочитанных байт, если размер неизвестен.
func (s *Store) Create(ctx context.Context, payload *model.UploadPayload) (*model.File, error) {
	if err := s.wait(ctx, s.latency.Create); err != nil {
		return nil, err
	}

	size := payload.Size
	if payload.File != nil {
		n, err := io.Copy(io.Discard, payload.File)
		if err != nil {
			return nil, err
		}
		if size <= 0 {
			size = n
		}
	}

	f := &model.File{
		ID:          s.newID(),
		Title:       payload.Title,
		Description: payload.Description,
		Tags:        model.ParseTags(payload.Tags),
		CreatedAt:   s.now().UTC().Format(time.RFC3339),
		Size:        size,
		Status:      model.StatusProcessing,
		Audios:      append([]model.AudioTrack{}, payload.Audios...),
		Subtitles:   append([]model.SubtitleTrack{}, payload.Subtitles...),
	}
	if payload.Video != nil {
		v := *payload.Video
		f.Video = &v
	}

	s.mu.Lock()
	s.files = append([]*model.File{f}, s.files...)
	s.mu.Unlock()

	s.logger.Info("Mock-запись создана",
		slog.String("file_id", f.ID),
		slog.String("title", f.Title),
		slog.Int64("size", f.Size),
	)
	return f.Clone(), nil
}

// Update применяет частичное обновление (shallow merge).
func (s *Store) Update(ctx context.Context, id string, patch model.FilePatch) (*model.File, error) {
	if err := s.wait(ctx, s.latency.Update); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return nil, ErrNotFound
	}
	updated := s.files[i].Clone()
	patch.Apply(updated)
	s.files[i] = updated
	return updated.Clone(), nil
}

// Delete удаляет запись. Возвращает true, если запись существовала.
func (s *Store) Delete(ctx context.Context, id string) (bool, error) {
	if err := s.wait(ctx, s.latency.Delete); err != nil {
		return false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return false, nil
	}
	s.files = append(s.files[:i], s.files[i+1:]...)
	return true, nil
}

// Count возвращает количество записей.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.files)
}

// indexOf ищет позицию записи. Вызывать под блокировкой.
func (s *Store) indexOf(id string) int {
	for i, f := range s.files {
		if f.ID == id {
			return i
		}
	}
	return -1
}

// wait имитирует задержку операции с учётом отмены контекста.
func (s *Store) wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
