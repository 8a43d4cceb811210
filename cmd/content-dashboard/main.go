// Точка входа Content Dashboard: панель управления контентом (TS-файлы).
// Загружает .env и конфигурацию, выбирает источник данных (backend или mock),
// запускает мониторинг backend через topologymetrics, монтирует UI,
// health и metrics, HTTP-сервер с graceful shutdown.
package main

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/bigkaa/goartstore/content-dashboard/internal/api/handlers"
	"github.com/bigkaa/goartstore/content-dashboard/internal/apiclient"
	"github.com/bigkaa/goartstore/content-dashboard/internal/config"
	"github.com/bigkaa/goartstore/content-dashboard/internal/mockstore"
	"github.com/bigkaa/goartstore/content-dashboard/internal/server"
	"github.com/bigkaa/goartstore/content-dashboard/internal/service"
	"github.com/bigkaa/goartstore/content-dashboard/internal/ui/forms"
	uihandlers "github.com/bigkaa/goartstore/content-dashboard/internal/ui/handlers"
	"github.com/bigkaa/goartstore/content-dashboard/internal/ui/i18n"
	uimiddleware "github.com/bigkaa/goartstore/content-dashboard/internal/ui/middleware"
	"github.com/bigkaa/goartstore/content-dashboard/internal/ui/session"
)

func main() {
	// 1. .env (опционально) и конфигурация из переменных окружения
	envErr := godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Ошибка загрузки конфигурации", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// 2. Настройка логирования
	logger := config.SetupLogger(cfg)
	logger.Info("Content Dashboard запускается",
		slog.String("version", config.Version),
		slog.Int("port", cfg.Port),
		slog.String("env", cfg.EnvLabel),
	)
	if envErr != nil && !errors.Is(envErr, fs.ErrNotExist) {
		logger.Warn("Ошибка чтения .env", slog.String("error", envErr.Error()))
	}

	// 3. Каталоги переводов
	bundle, err := i18n.Load(logger)
	if err != nil {
		logger.Error("Ошибка загрузки переводов", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// 4. Источник данных: mock-хранилище или HTTP-клиент backend
	var store *mockstore.Store
	if cfg.MockMode() {
		var opts []mockstore.Option
		if cfg.MockLatency {
			opts = append(opts, mockstore.WithLatency(mockstore.DefaultLatency()))
		}
		store = mockstore.New(logger, opts...)
		if cfg.MockSeed {
			store.Seed()
		}
		logger.Info("Mock-хранилище готово", slog.Int("files", store.Count()))
	}

	api, err := apiclient.New(cfg.APIConfig(), store, logger)
	if err != nil {
		logger.Error("Ошибка создания клиента Content API", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// 5. topologymetrics: мониторинг backend (только backend-режим)
	ctx := context.Background()
	var dephealthSvc *service.DephealthService
	var apiChecker handlers.ReadinessChecker
	if cfg.MockMode() {
		apiChecker = handlers.StaticReadiness(handlers.StatusOK, "mock-режим")
	} else {
		dephealthSvc, err = service.NewDephealthService(
			"content-dashboard",
			cfg.DephealthGroup,
			cfg.APIBase,
			cfg.APIHealthPath,
			cfg.DephealthCheckInterval,
			logger,
		)
		if err != nil {
			logger.Warn("topologymetrics недоступен, запуск без мониторинга зависимостей",
				slog.String("error", err.Error()),
			)
			dephealthSvc = nil
		} else if startErr := dephealthSvc.Start(ctx); startErr != nil {
			logger.Warn("Ошибка запуска topologymetrics", slog.String("error", startErr.Error()))
			dephealthSvc = nil
		}
		if dephealthSvc == nil {
			// Без мониторинга состояние backend неизвестно: сервис готов, но degraded
			apiChecker = handlers.StaticReadiness(handlers.StatusDegraded, "мониторинг content-api недоступен")
		} else {
			logger.Info("topologymetrics запущен",
				slog.String("group", cfg.DephealthGroup),
				slog.String("check_interval", cfg.DephealthCheckInterval.String()),
			)
			apiChecker = dephealthSvc
		}
	}

	// 6. UI: сессии, обработчики, переводы
	sessions := session.NewStore(api, cfg.SessionMax, cfg.SessionTTL, logger)
	ui := &server.UIComponents{
		Handler:  uihandlers.New(api, cfg.EnvLabel, forms.DefaultMaxMemory, logger),
		Sessions: uimiddleware.NewSessions(sessions, cfg.SessionTTL, cfg.SecureCookies(), logger),
		Bundle:   bundle,
	}

	// 7. HTTP-сервер
	srv := server.New(cfg, logger, handlers.NewHealthHandler(apiChecker), ui)
	if err := srv.Run(); err != nil {
		logger.Error("Ошибка сервера", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if dephealthSvc != nil {
		dephealthSvc.Stop()
	}
	logger.Info("Content Dashboard остановлен")
}
