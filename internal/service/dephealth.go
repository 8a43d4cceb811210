// dephealth.go: интеграция с topologymetrics SDK для мониторинга зависимостей.
//
// Content Dashboard мониторит одну зависимость: Content API (HTTP checker, critical).
// В mock-режиме внешней зависимости нет и сервис не создаётся.
//
// Метрики доступны на /metrics вместе с остальными Prometheus-метриками:
//   - app_dependency_health: состояние зависимости (1 = ok, 0 = fail)
//   - app_dependency_latency_seconds: задержка проверки
//   - app_dependency_status: категория статуса
//   - app_dependency_status_detail: детальный статус
package service

import (
	"context"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/BigKAA/topologymetrics/sdk-go/dephealth"
	_ "github.com/BigKAA/topologymetrics/sdk-go/dephealth/checks/httpcheck" // регистрация HTTP checker factory
	"github.com/prometheus/client_golang/prometheus"
)

// DependencyContentAPI: имя зависимости в метриках и в Health().
const DependencyContentAPI = "content-api"

// DephealthService: сервис мониторинга зависимостей через topologymetrics.
type DephealthService struct {
	dh     *dephealth.DepHealth
	logger *slog.Logger
}

// NewDephealthService создаёт сервис мониторинга Content API.
// Метрики регистрируются в глобальном Prometheus registry.
//
// Параметры:
//   - serviceID: имя вершины графа текущего приложения ("content-dashboard")
//   - group: имя группы в метриках (CD_DEPHEALTH_GROUP)
//   - apiBaseURL: базовый URL Content API
//   - healthPath: путь проверки относительно пути apiBaseURL (CD_API_HEALTH_PATH)
//   - checkInterval: интервал проверки (CD_DEPHEALTH_CHECK_INTERVAL)
func NewDephealthService(
	serviceID string,
	group string,
	apiBaseURL string,
	healthPath string,
	checkInterval time.Duration,
	logger *slog.Logger,
) (*DephealthService, error) {
	return newDephealthService(serviceID, group, apiBaseURL, healthPath, checkInterval, logger)
}

// NewDephealthServiceWithRegisterer создаёт сервис с указанным Prometheus registerer.
// Используется в тестах для изоляции метрик.
func NewDephealthServiceWithRegisterer(
	serviceID string,
	group string,
	apiBaseURL string,
	healthPath string,
	checkInterval time.Duration,
	logger *slog.Logger,
	registerer prometheus.Registerer,
) (*DephealthService, error) {
	return newDephealthService(serviceID, group, apiBaseURL, healthPath, checkInterval, logger,
		dephealth.WithRegisterer(registerer))
}

func newDephealthService(
	serviceID string,
	group string,
	apiBaseURL string,
	healthPath string,
	checkInterval time.Duration,
	logger *slog.Logger,
	extraOpts ...dephealth.Option,
) (*DephealthService, error) {
	depOpts := []dephealth.DependencyOption{
		dephealth.FromURL(apiBaseURL),
		dephealth.WithHTTPHealthPath(probePath(apiBaseURL, healthPath)),
		dephealth.CheckInterval(checkInterval),
		dephealth.Critical(true),
	}
	if parsed, err := url.Parse(apiBaseURL); err == nil && parsed.Scheme == "https" {
		depOpts = append(depOpts, dephealth.WithHTTPTLSSkipVerify(false))
	}

	opts := make([]dephealth.Option, 0, 2+len(extraOpts))
	opts = append(opts,
		dephealth.WithLogger(logger),
		dephealth.HTTP(DependencyContentAPI, depOpts...),
	)
	opts = append(opts, extraOpts...)

	dh, err := dephealth.New(serviceID, group, opts...)
	if err != nil {
		return nil, err
	}

	return &DephealthService{
		dh:     dh,
		logger: logger.With(slog.String("component", "dephealth")),
	}, nil
}

// probePath: путь проверки: путь базового URL + healthPath.
// https://api.example.com/v1 + /files → /v1/files.
func probePath(apiBaseURL, healthPath string) string {
	base := ""
	if parsed, err := url.Parse(apiBaseURL); err == nil {
		base = strings.TrimRight(parsed.Path, "/")
	}
	if healthPath == "" {
		healthPath = "/"
	}
	return base + healthPath
}

// Start запускает периодическую проверку зависимостей.
func (ds *DephealthService) Start(ctx context.Context) error {
	ds.logger.Info("Мониторинг зависимостей запущен (Content API)")
	return ds.dh.Start(ctx)
}

// Stop останавливает мониторинг зависимостей.
func (ds *DephealthService) Stop() {
	ds.dh.Stop()
	ds.logger.Info("Мониторинг зависимостей остановлен")
}

// Health возвращает текущее состояние зависимостей.
// Ключ: "dependency:host:port", значение: true если ok.
func (ds *DephealthService) Health() map[string]bool {
	return ds.dh.Health()
}

// CheckReady: readiness Content API по результатам последней проверки.
func (ds *DephealthService) CheckReady() (status string, message string) {
	return readiness(ds.Health())
}

// readiness переводит Health() в статус readiness probe.
// Пока проверка не выполнялась: degraded.
func readiness(health map[string]bool) (string, string) {
	healthy, found := findHealthByPrefix(health, DependencyContentAPI)
	switch {
	case !found:
		return "degraded", "проверка Content API ещё не выполнена"
	case !healthy:
		return "fail", "Content API недоступен"
	default:
		return "ok", ""
	}
}

// findHealthByPrefix ищет статус зависимости по имени.
// При нескольких endpoint результат true, только если все здоровы.
func findHealthByPrefix(health map[string]bool, name string) (healthy, found bool) {
	healthy = true
	for key, ok := range health {
		if key == name || strings.HasPrefix(key, name+":") {
			found = true
			healthy = healthy && ok
		}
	}
	return healthy && found, found
}
