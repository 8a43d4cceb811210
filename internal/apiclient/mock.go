// mock.go: реализация FileAPI поверх in-memory хранилища.
package apiclient

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/bigkaa/goartstore/content-dashboard/internal/domain/model"
	"github.com/bigkaa/goartstore/content-dashboard/internal/mockstore"
)

// Mock: FileAPI без backend. Фильтрация выполняется локально.
type Mock struct {
	store       *mockstore.Store
	frontendURL string
}

// NewMock создаёт mock-клиент над переданным хранилищем.
func NewMock(store *mockstore.Store, frontendURL string) *Mock {
	return &Mock{
		store:       store,
		frontendURL: strings.TrimRight(frontendURL, "/"),
	}
}

// Mode возвращает ModeMock.
func (m *Mock) Mode() Mode { return ModeMock }

// ListFiles фильтрует записи хранилища.
func (m *Mock) ListFiles(ctx context.Context, filter model.FileFilter) (*model.FileList, error) {
	return m.store.List(ctx, filter)
}

// GetFile возвращает запись по id.
func (m *Mock) GetFile(ctx context.Context, id string) (*model.File, error) {
	f, err := m.store.Get(ctx, id)
	if err != nil {
		return nil, mapStoreError(err, id)
	}
	return f, nil
}

// CreateUpload сохраняет запись со статусом processing и подтверждает приём статусом queued.
func (m *Mock) CreateUpload(ctx context.Context, payload *model.UploadPayload) (*model.UploadResult, error) {
	if payload == nil || payload.File == nil {
		return nil, fmt.Errorf("%w: файл не передан", ErrValidation)
	}

	f, err := m.store.Create(ctx, payload)
	if err != nil {
		return nil, fmt.Errorf("mock createUpload: %w", err)
	}
	return &model.UploadResult{ID: f.ID, Status: model.StatusQueued}, nil
}

// UpdateFile применяет патч к записи.
func (m *Mock) UpdateFile(ctx context.Context, id string, patch model.FilePatch) (*model.File, error) {
	f, err := m.store.Update(ctx, id, patch)
	if err != nil {
		return nil, mapStoreError(err, id)
	}
	return f, nil
}

// DeleteFile удаляет запись. Отсутствующий id → false без ошибки.
func (m *Mock) DeleteFile(ctx context.Context, id string) (bool, error) {
	return m.store.Delete(ctx, id)
}

// PreviewURL возвращает детерминированный путь к mock-ассету.
func (m *Mock) PreviewURL(id string) string {
	return m.frontendURL + "/mock-preview/" + url.PathEscape(id) + ".mp4"
}

// mapStoreError переводит ошибки хранилища в таксономию клиента.
func mapStoreError(err error, id string) error {
	if errors.Is(err, mockstore.ErrNotFound) {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return err
}
