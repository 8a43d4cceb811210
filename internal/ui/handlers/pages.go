package handlers

import (
	"log/slog"
	"net/http"

	"github.com/a-h/templ"

	"github.com/bigkaa/goartstore/content-dashboard/internal/router"
	"github.com/bigkaa/goartstore/content-dashboard/internal/ui/pages"
)

// HandlePage обрабатывает GET любой страницы: сессия переходит на путь
// запроса и монтирует контроллер при смене маршрута.
func (h *Handler) HandlePage(w http.ResponseWriter, r *http.Request) {
	sess := h.sessionOrFail(w, r)
	if sess == nil {
		return
	}

	ctx := r.Context()
	page := sess.Visit(ctx, r.URL.Path)

	var body templ.Component
	switch page {
	case router.PageFiles:
		body = pages.FilesPage(sess.Files.View())
	case router.PageUploads:
		body = pages.UploadsPage(sess.Uploads.View())
	default:
		body = pages.DashboardPage(sess.Dashboard.View())
	}

	layout := pages.Layout(pages.LayoutData{
		Active:   page,
		EnvLabel: h.envLabel,
		Mode:     string(h.api.Mode()),
		Theme:    themeFromRequest(r),
	}, body)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := layout.Render(ctx, w); err != nil {
		h.logger.Error("Ошибка рендеринга страницы",
			slog.String("page", string(page)),
			slog.String("error", err.Error()),
		)
	}
}
