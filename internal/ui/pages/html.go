// Пакет pages: HTML-компоненты Content Dashboard.
// Компоненты реализуют templ.Component и отрисовываются в общий Layout.
package pages

import (
	"context"
	"io"
	"net/url"
	"time"

	"github.com/a-h/templ"
	"github.com/dustin/go-humanize"

	"github.com/bigkaa/goartstore/content-dashboard/internal/domain/model"
)

// writer: накопитель первой ошибки записи.
type writer struct {
	w   io.Writer
	err error
}

// raw пишет разметку как есть.
func (h *writer) raw(parts ...string) {
	for _, p := range parts {
		if h.err != nil {
			return
		}
		_, h.err = io.WriteString(h.w, p)
	}
}

// text пишет экранированный текст (подходит и для значений атрибутов).
func (h *writer) text(parts ...string) {
	for _, p := range parts {
		h.raw(templ.EscapeString(p))
	}
}

func (h *writer) render(ctx context.Context, c templ.Component) {
	if h.err != nil || c == nil {
		return
	}
	h.err = c.Render(ctx, h.w)
}

// component: сокращение для templ.ComponentFunc поверх writer.
func component(fn func(ctx context.Context, h *writer)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &writer{w: w}
		fn(ctx, h)
		return h.err
	})
}

// hidden пишет скрытое поле формы.
func (h *writer) hidden(name, value string) {
	h.raw(`<input type="hidden" name="`)
	h.text(name)
	h.raw(`" value="`)
	h.text(value)
	h.raw(`">`)
}

// PreviewPath: путь редиректа на предпросмотр файла.
func PreviewPath(id string) string {
	return "/preview/" + url.PathEscape(id)
}

// statusColor: цвет бейджа статуса.
func statusColor(status model.FileStatus) string {
	switch status {
	case model.StatusReady:
		return "green"
	case model.StatusError:
		return "red"
	default:
		return "amber"
	}
}

// formatCreated форматирует createdAt; нераспознанное значение выводится как есть.
func formatCreated(createdAt string) (string, string) {
	t, err := time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return createdAt, ""
	}
	return t.Local().Format("2006-01-02 15:04"), humanize.Time(t)
}

// formatSize: размер в человекочитаемом виде.
func formatSize(size int64) string {
	if size <= 0 {
		return "—"
	}
	return humanize.IBytes(uint64(size))
}

func orDash(s string) string {
	if s == "" {
		return "—"
	}
	return s
}
