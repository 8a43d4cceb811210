// Пакет apiclient: единая точка доступа к файлам Content API.
//
// FileAPI имеет две реализации, выбираемые один раз при старте:
//   - Backend: HTTP-клиент к REST backend (CD_API_BASE)
//   - Mock: in-memory хранилище (mockstore), если backend не задан
//     или включён флаг mock-api
package apiclient

import (
	"context"
	"log/slog"
	"slices"
	"time"

	"github.com/bigkaa/goartstore/content-dashboard/internal/domain/model"
	"github.com/bigkaa/goartstore/content-dashboard/internal/mockstore"
)

// FlagMockAPI: feature flag, принудительно включающий mock-режим.
const FlagMockAPI = "mock-api"

// Mode: режим работы клиента.
type Mode string

const (
	ModeBackend Mode = "backend"
	ModeMock    Mode = "mock"
)

// FileAPI: операции над файлами, общие для backend и mock.
type FileAPI interface {
	// ListFiles возвращает файлы по фильтру. Пустой результат: не ошибка.
	ListFiles(ctx context.Context, filter model.FileFilter) (*model.FileList, error)
	// GetFile возвращает файл или ошибку, удовлетворяющую errors.Is(err, ErrNotFound).
	GetFile(ctx context.Context, id string) (*model.File, error)
	// CreateUpload загружает файл с метаданными. Требует payload.File.
	CreateUpload(ctx context.Context, payload *model.UploadPayload) (*model.UploadResult, error)
	// UpdateFile применяет частичное обновление и возвращает запись.
	UpdateFile(ctx context.Context, id string, patch model.FilePatch) (*model.File, error)
	// DeleteFile удаляет файл. false: файла не было (идемпотентно).
	DeleteFile(ctx context.Context, id string) (bool, error)
	// PreviewURL строит URL предпросмотра. Без побочных эффектов.
	PreviewURL(id string) string
	// Mode возвращает режим клиента.
	Mode() Mode
}

// Config: параметры выбора и настройки реализации.
type Config struct {
	// BaseURL: адрес backend API (пусто: mock)
	BaseURL string
	// FeatureFlags: список feature flags
	FeatureFlags []string
	// FrontendURL: публичный адрес dashboard (префикс mock preview)
	FrontendURL string
	// CACertPath: CA-сертификат для TLS к backend (опционально)
	CACertPath string
	// Timeout: таймаут HTTP-транспорта (0: без таймаута)
	Timeout time.Duration
}

// MockMode возвращает true, если должен использоваться mock.
func (c Config) MockMode() bool {
	return c.BaseURL == "" || slices.Contains(c.FeatureFlags, FlagMockAPI)
}

// New выбирает реализацию по конфигурации.
// store используется только в mock-режиме и должен быть не nil в нём.
// Возвращённый клиент обёрнут Prometheus-инструментацией.
func New(cfg Config, store *mockstore.Store, logger *slog.Logger) (FileAPI, error) {
	var api FileAPI
	if cfg.MockMode() {
		api = NewMock(store, cfg.FrontendURL)
		logger.Info("Content API: mock-режим",
			slog.Bool("base_url_set", cfg.BaseURL != ""),
			slog.Any("feature_flags", cfg.FeatureFlags),
		)
	} else {
		backend, err := NewBackend(cfg.BaseURL, cfg.CACertPath, cfg.Timeout, logger)
		if err != nil {
			return nil, err
		}
		api = backend
		logger.Info("Content API: backend-режим", slog.String("base_url", cfg.BaseURL))
	}
	return Instrument(api), nil
}
