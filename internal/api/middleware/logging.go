// logging.go: middleware логирования входящих HTTP-запросов через slog.
// Одна запись на запрос: статус, размер ответа, длительность и атрибуты,
// добавленные обработчиками через AddLogAttrs.
package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"
)

// responseWriter: обёртка для перехвата статус-кода ответа.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    int64
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	n, err := rw.ResponseWriter.Write(b)
	rw.written += int64(n)
	return n, err
}

// Unwrap позволяет http.ResponseController получить доступ к оригинальному ResponseWriter.
func (rw *responseWriter) Unwrap() http.ResponseWriter {
	return rw.ResponseWriter
}

// logAttrsKey: ключ контекста для атрибутов итоговой записи лога запроса.
type logAttrsKey struct{}

// requestAttrs: атрибуты, которые обработчики ниже по цепочке добавляют к записи запроса.
type requestAttrs struct {
	mu    sync.Mutex
	attrs []slog.Attr
}

// AddLogAttrs добавляет атрибуты к записи лога текущего запроса.
// Без RequestLogger выше по цепочке вызов ничего не делает.
func AddLogAttrs(ctx context.Context, attrs ...slog.Attr) {
	ra, ok := ctx.Value(logAttrsKey{}).(*requestAttrs)
	if !ok {
		return
	}
	ra.mu.Lock()
	ra.attrs = append(ra.attrs, attrs...)
	ra.mu.Unlock()
}

// RequestLogger возвращает middleware, логирующий каждый HTTP-запрос.
// Уровень выбирает requestLevel. К записи добавляются атрибуты из AddLogAttrs
// (например, UI-сессия).
func RequestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			wrapped := newResponseWriter(w)
			extra := &requestAttrs{}
			r = r.WithContext(context.WithValue(r.Context(), logAttrsKey{}, extra))

			next.ServeHTTP(wrapped, r)

			attrs := []slog.Attr{
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", wrapped.statusCode),
				slog.Duration("duration", time.Since(start)),
				slog.Int64("bytes", wrapped.written),
				slog.String("remote_addr", r.RemoteAddr),
			}
			extra.mu.Lock()
			attrs = append(attrs, extra.attrs...)
			extra.mu.Unlock()

			logger.LogAttrs(r.Context(), requestLevel(r.URL.Path, wrapped.statusCode), "HTTP запрос", attrs...)
		})
	}
}

// requestLevel: ERROR для 5xx, WARN для 4xx, DEBUG для запросов
// health и metrics, иначе INFO.
func requestLevel(path string, status int) slog.Level {
	switch {
	case status >= 500:
		return slog.LevelError
	case status >= 400:
		return slog.LevelWarn
	case path == "/metrics" || strings.HasPrefix(path, "/health/"):
		return slog.LevelDebug
	default:
		return slog.LevelInfo
	}
}
