package controller

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/bigkaa/goartstore/content-dashboard/internal/apiclient"
	"github.com/bigkaa/goartstore/content-dashboard/internal/domain/model"
)

// ListView: снимок состояния списка файлов для отрисовки.
type ListView struct {
	Filter   model.FileFilter
	Items    []*model.File
	Busy     bool
	Failure  *Failure
	Selected *model.File
	// PendingDelete: файл, ожидающий подтверждения удаления
	PendingDelete *model.File
}

// FileList: контроллер списка файлов с фильтром, деталями, правкой и удалением.
// Используется страницами Files и Uploads.
type FileList struct {
	api    apiclient.FileAPI
	logger *slog.Logger
	reload ReloadSignal

	mu       sync.Mutex
	seq      loadSeq
	filter   model.FileFilter
	items    []*model.File
	busy     bool
	failure  *Failure
	selected *model.File
	pending  *model.File
}

// NewFileList создаёт контроллер. Перезагрузка по сигналу выполняет Load.
func NewFileList(api apiclient.FileAPI, logger *slog.Logger) *FileList {
	c := &FileList{
		api:    api,
		logger: logger,
		items:  []*model.File{},
	}
	c.reload.Subscribe(c.Load)
	return c
}

// Reload возвращает сигнал перезагрузки контроллера.
func (c *FileList) Reload() *ReloadSignal { return &c.reload }

// Load загружает файлы по текущему фильтру.
// Результат устаревшей загрузки отбрасывается.
func (c *FileList) Load(ctx context.Context) {
	c.mu.Lock()
	seq := c.seq.begin()
	filter := c.filter
	c.busy = true
	c.failure = nil
	c.mu.Unlock()

	list, err := c.api.ListFiles(ctx, filter)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.seq.stale(seq) {
		c.logger.Debug("Результат устаревшей загрузки отброшен", slog.Uint64("seq", seq))
		return
	}
	c.busy = false
	if err != nil {
		c.logger.Warn("Ошибка загрузки списка файлов", slog.String("error", err.Error()))
		c.failure = newFailure(MsgLoadFailed, err)
		return
	}
	c.items = list.Items
}

// SetFilter задаёт фильтр и перезагружает список.
func (c *FileList) SetFilter(ctx context.Context, filter model.FileFilter) {
	filter.Query = strings.TrimSpace(filter.Query)

	c.mu.Lock()
	c.filter = filter
	c.mu.Unlock()

	c.reload.Request(ctx)
}

// Select загружает файл для окна деталей.
func (c *FileList) Select(ctx context.Context, id string) {
	f, err := c.api.GetFile(ctx, id)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.failure = newFailure(MsgLoadFailed, err)
		c.selected = nil
		return
	}
	c.selected = f
}

// CloseDetails закрывает окно деталей и отменяет ожидающее удаление.
func (c *FileList) CloseDetails() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.selected = nil
	c.pending = nil
}

// EditTitle меняет название файла.
// Пустое или неизменное название игнорируется. После успеха: перезагрузка.
func (c *FileList) EditTitle(ctx context.Context, id, title string) {
	title = strings.TrimSpace(title)
	if title == "" || title == c.currentTitle(id) {
		return
	}

	updated, err := c.api.UpdateFile(ctx, id, model.FilePatch{Title: &title})
	if err != nil {
		c.logger.Warn("Ошибка обновления названия",
			slog.String("file_id", id),
			slog.String("error", err.Error()),
		)
		c.setFailure(newFailure(MsgUpdateFailed, err))
		return
	}

	c.mu.Lock()
	if c.selected != nil && c.selected.ID == id {
		c.selected = updated
	}
	c.mu.Unlock()

	c.reload.Request(ctx)
}

// Delete удаляет файл. Без подтверждения только запоминает файл,
// ожидающий подтверждения. После удаления: перезагрузка.
// Возвращает true, если запрос на удаление выполнялся.
func (c *FileList) Delete(ctx context.Context, id string, confirmed bool) bool {
	if !confirmed {
		c.mu.Lock()
		c.pending = c.find(id)
		if c.pending == nil {
			c.pending = &model.File{ID: id}
		}
		c.mu.Unlock()
		return false
	}

	c.mu.Lock()
	c.pending = nil
	c.mu.Unlock()

	deleted, err := c.api.DeleteFile(ctx, id)
	if err != nil {
		c.logger.Warn("Ошибка удаления файла",
			slog.String("file_id", id),
			slog.String("error", err.Error()),
		)
		c.setFailure(newFailure(MsgDeleteFailed, err))
		return true
	}
	if !deleted {
		c.logger.Debug("Файл уже удалён", slog.String("file_id", id))
	}

	c.mu.Lock()
	if c.selected != nil && c.selected.ID == id {
		c.selected = nil
	}
	c.mu.Unlock()

	c.reload.Request(ctx)
	return true
}

// View возвращает снимок состояния.
func (c *FileList) View() ListView {
	c.mu.Lock()
	defer c.mu.Unlock()
	return ListView{
		Filter:   c.filter,
		Items:    append([]*model.File{}, c.items...),
		Busy:     c.busy,
		Failure:  c.failure,
		Selected: c.selected,

		PendingDelete: c.pending,
	}
}

func (c *FileList) currentTitle(id string) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if f := c.find(id); f != nil {
		return f.Title
	}
	return ""
}

// find ищет файл в списке и деталях. Вызывать под блокировкой.
func (c *FileList) find(id string) *model.File {
	for _, f := range c.items {
		if f.ID == id {
			return f
		}
	}
	if c.selected != nil && c.selected.ID == id {
		return c.selected
	}
	return nil
}

func (c *FileList) setFailure(f *Failure) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.failure = f
}
