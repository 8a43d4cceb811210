// metrics.go: Prometheus HTTP метрики для Content Dashboard.
// Регистрирует метрики: cd_http_requests_total, cd_http_request_duration_seconds.
package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP метрики
var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cd_http_requests_total",
			Help: "Общее количество HTTP-запросов к Content Dashboard",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "cd_http_request_duration_seconds",
			Help:    "Длительность HTTP-запросов к Content Dashboard в секундах",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)
)

// MetricsMiddleware возвращает HTTP middleware для сбора Prometheus метрик.
func MetricsMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			normalizedPath := normalizePath(r.URL.Path)

			wrapped := newResponseWriter(w)
			next.ServeHTTP(wrapped, r)

			status := strconv.Itoa(wrapped.statusCode)
			httpRequestsTotal.WithLabelValues(r.Method, normalizedPath, status).Inc()
			httpRequestDuration.WithLabelValues(r.Method, normalizedPath).Observe(time.Since(start).Seconds())
		})
	}
}

// knownPaths: пути, попадающие в лейбл как есть.
var knownPaths = map[string]bool{
	"/":               true,
	"/dashboard":      true,
	"/files":          true,
	"/uploads":        true,
	"/favicon.ico":    true,
	"/health/live":    true,
	"/health/ready":   true,
	"/metrics":        true,
	"/set-language":   true,
	"/toggle-theme":   true,
	"/actions/reload": true,
	"/actions/filter": true,
	"/actions/select": true,
	"/actions/close":  true,
	"/actions/title":  true,
	"/actions/delete": true,
	"/actions/upload": true,
}

// normalizePath сводит путь к шаблону маршрута для лейбла метрик.
// /preview/abc → /preview/{id}, /static/css/app.css → /static/*,
// любой другой путь (страница-заглушка) → other.
func normalizePath(path string) string {
	if knownPaths[path] {
		return path
	}
	switch {
	case strings.HasPrefix(path, "/preview/"):
		return "/preview/{id}"
	case strings.HasPrefix(path, "/static/"):
		return "/static/*"
	default:
		return "other"
	}
}
