// Пакет handlers: служебные HTTP endpoints Content Dashboard.
// health.go: обработчики health endpoints:
// /health/live: liveness probe (процесс жив)
// /health/ready: readiness probe (Content API доступен или включён mock-режим)
// /metrics: Prometheus метрики
package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/bigkaa/goartstore/content-dashboard/internal/config"
)

const serviceName = "content-dashboard"

// Статусы проверок.
const (
	StatusOK       = "ok"
	StatusDegraded = "degraded"
	StatusFail     = "fail"
)

// ReadinessChecker: интерфейс проверки готовности зависимости.
type ReadinessChecker interface {
	// CheckReady возвращает статус ("ok", "degraded", "fail") и сообщение.
	CheckReady() (status string, message string)
}

// ReadinessFunc: адаптер функции к ReadinessChecker.
type ReadinessFunc func() (string, string)

// CheckReady вызывает f.
func (f ReadinessFunc) CheckReady() (string, string) { return f() }

// StaticReadiness возвращает проверку с постоянным результатом.
func StaticReadiness(status, message string) ReadinessFunc {
	return func() (string, string) { return status, message }
}

// HealthHandler: обработчик health endpoints.
type HealthHandler struct {
	apiChecker  ReadinessChecker
	promHandler http.Handler
}

// NewHealthHandler создаёт обработчик health endpoints.
// apiChecker: проверка Content API; nil означает "не инициализирован" (fail).
func NewHealthHandler(apiChecker ReadinessChecker) *HealthHandler {
	return &HealthHandler{
		apiChecker:  apiChecker,
		promHandler: promhttp.Handler(),
	}
}

type healthCheckResult struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

type healthLiveResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Version   string `json:"version"`
	Service   string `json:"service"`
}

type healthReadyResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Version   string `json:"version"`
	Service   string `json:"service"`
	Checks    struct {
		ContentAPI healthCheckResult `json:"content_api"`
	} `json:"checks"`
}

// HealthLive: liveness probe. Возвращает 200 если процесс жив.
func (h *HealthHandler) HealthLive(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, healthLiveResponse{
		Status:    StatusOK,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Version:   config.Version,
		Service:   serviceName,
	})
}

// HealthReady: readiness probe. Возвращает 200 (ok/degraded) или 503 (fail).
func (h *HealthHandler) HealthReady(w http.ResponseWriter, _ *http.Request) {
	resp := healthReadyResponse{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Version:   config.Version,
		Service:   serviceName,
	}

	if h.apiChecker != nil {
		status, msg := h.apiChecker.CheckReady()
		resp.Checks.ContentAPI = healthCheckResult{Status: status, Message: msg}
	} else {
		resp.Checks.ContentAPI = healthCheckResult{Status: StatusFail, Message: "не инициализирован"}
	}
	resp.Status = overallStatus(resp.Checks.ContentAPI.Status)

	code := http.StatusOK
	if resp.Status == StatusFail {
		code = http.StatusServiceUnavailable
	}
	writeJSON(w, code, resp)
}

// GetMetrics: Prometheus метрики.
func (h *HealthHandler) GetMetrics(w http.ResponseWriter, r *http.Request) {
	h.promHandler.ServeHTTP(w, r)
}

// overallStatus определяет итоговый статус из статусов зависимостей:
// fail, если есть fail; degraded, если есть degraded; иначе ok.
func overallStatus(statuses ...string) string {
	hasDegraded := false
	for _, s := range statuses {
		if s == StatusFail {
			return StatusFail
		}
		if s == StatusDegraded {
			hasDegraded = true
		}
	}
	if hasDegraded {
		return StatusDegraded
	}
	return StatusOK
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
