// instrumented.go: Prometheus-метрики вызовов FileAPI.
// Регистрирует метрики: cd_api_calls_total, cd_api_call_duration_seconds.
package apiclient

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/bigkaa/goartstore/content-dashboard/internal/domain/model"
)

// Метрики вызовов
var (
	// apiCallsTotal: количество вызовов операций FileAPI.
	apiCallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cd_api_calls_total",
			Help: "Количество вызовов Content API по операциям",
		},
		[]string{"operation", "mode", "outcome"},
	)

	// apiCallDuration: гистограмма длительности вызовов.
	apiCallDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "cd_api_call_duration_seconds",
			Help:    "Длительность вызовов Content API в секундах",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation", "mode"},
	)
)

// Исходы вызова для лейбла outcome.
const (
	OutcomeOK            = "ok"
	OutcomeNotFound      = "not_found"
	OutcomeValidation    = "validation"
	OutcomeRequestFailed = "request_failed"
	OutcomeError         = "error"
)

// instrumented: декоратор FileAPI, считающий вызовы и длительность.
type instrumented struct {
	next FileAPI
}

// Instrument оборачивает api сбором метрик. Повторная обёртка не выполняется.
func Instrument(api FileAPI) FileAPI {
	if _, ok := api.(*instrumented); ok {
		return api
	}
	return &instrumented{next: api}
}

// Unwrap возвращает исходную реализацию.
func (i *instrumented) Unwrap() FileAPI { return i.next }

func (i *instrumented) Mode() Mode { return i.next.Mode() }

func (i *instrumented) PreviewURL(id string) string { return i.next.PreviewURL(id) }

func (i *instrumented) ListFiles(ctx context.Context, filter model.FileFilter) (*model.FileList, error) {
	start := time.Now()
	list, err := i.next.ListFiles(ctx, filter)
	i.observe("listFiles", start, err)
	return list, err
}

func (i *instrumented) GetFile(ctx context.Context, id string) (*model.File, error) {
	start := time.Now()
	f, err := i.next.GetFile(ctx, id)
	i.observe("getFile", start, err)
	return f, err
}

func (i *instrumented) CreateUpload(ctx context.Context, payload *model.UploadPayload) (*model.UploadResult, error) {
	start := time.Now()
	res, err := i.next.CreateUpload(ctx, payload)
	i.observe("createUpload", start, err)
	return res, err
}

func (i *instrumented) UpdateFile(ctx context.Context, id string, patch model.FilePatch) (*model.File, error) {
	start := time.Now()
	f, err := i.next.UpdateFile(ctx, id, patch)
	i.observe("updateFile", start, err)
	return f, err
}

func (i *instrumented) DeleteFile(ctx context.Context, id string) (bool, error) {
	start := time.Now()
	deleted, err := i.next.DeleteFile(ctx, id)
	i.observe("deleteFile", start, err)
	return deleted, err
}

func (i *instrumented) observe(operation string, start time.Time, err error) {
	mode := string(i.next.Mode())
	apiCallsTotal.WithLabelValues(operation, mode, Outcome(err)).Inc()
	apiCallDuration.WithLabelValues(operation, mode).Observe(time.Since(start).Seconds())
}

// Outcome классифицирует ошибку вызова.
func Outcome(err error) string {
	var reqErr *RequestError
	switch {
	case err == nil:
		return OutcomeOK
	case errors.Is(err, ErrNotFound):
		return OutcomeNotFound
	case errors.Is(err, ErrValidation):
		return OutcomeValidation
	case errors.As(err, &reqErr):
		return OutcomeRequestFailed
	default:
		return OutcomeError
	}
}
