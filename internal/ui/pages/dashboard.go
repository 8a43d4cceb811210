package pages

import (
	"context"

	"github.com/a-h/templ"

	"github.com/bigkaa/goartstore/content-dashboard/internal/router"
	"github.com/bigkaa/goartstore/content-dashboard/internal/ui/controller"
	"github.com/bigkaa/goartstore/content-dashboard/internal/ui/i18n"
)

// DashboardPage: сводка и последние файлы.
func DashboardPage(v controller.DashboardView) templ.Component {
	return component(func(ctx context.Context, h *writer) {
		h.raw(`<div class="grid">`)
		h.render(ctx, FailureAlert(v.Failure))

		h.raw(`<section class="grid grid-3">`)
		h.render(ctx, StatCard("stats.total", v.Stats.Total, v.Busy, ""))
		h.render(ctx, StatCard("stats.ready", v.Stats.Ready, v.Busy, "value-ready"))
		h.render(ctx, StatCard("stats.processing", v.Stats.Processing, v.Busy, "value-processing"))
		h.raw(`</section>`)

		h.raw(`<section class="section">`)
		h.render(ctx, SectionHead(router.PageDashboard, "dashboard.recent"))
		h.render(ctx, FileGrid(router.PageDashboard, v.Recent, false))
		h.raw(`</section>`)

		h.render(ctx, FileDetailsModal(router.PageDashboard, v.Selected))
		h.raw(`</div>`)
	})
}

// SectionHead: заголовок секции с кнопкой перезагрузки данных страницы.
func SectionHead(page router.Page, titleKey string) templ.Component {
	return component(func(ctx context.Context, h *writer) {
		h.raw(`<div class="section-head"><h2>`)
		h.text(i18n.T(ctx, titleKey))
		h.raw(`</h2><form method="post" action="/actions/reload">`)
		h.hidden("page", string(page))
		h.raw(`<button class="btn" type="submit">`)
		h.text(i18n.T(ctx, "common.refresh"))
		h.raw(`</button></form></div>`)
	})
}
