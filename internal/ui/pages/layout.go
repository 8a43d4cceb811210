package pages

import (
	"context"

	"github.com/a-h/templ"

	"github.com/bigkaa/goartstore/content-dashboard/internal/router"
	"github.com/bigkaa/goartstore/content-dashboard/internal/ui/i18n"
)

// Тема оформления.
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// LayoutData: параметры общей оболочки страницы.
type LayoutData struct {
	Active   router.Page
	EnvLabel string
	// Mode: режим Content API (mock/backend), показывается в боковой панели
	Mode  string
	Theme string
}

// navIcons: значки пунктов меню.
var navIcons = map[router.Page]string{
	router.PageDashboard: "🏠",
	router.PageUploads:   "⬆️",
	router.PageFiles:     "🗂️",
}

// Layout: оболочка: боковая панель, верхняя панель и содержимое.
func Layout(data LayoutData, body templ.Component) templ.Component {
	return component(func(ctx context.Context, h *writer) {
		theme := data.Theme
		if theme != ThemeDark {
			theme = ThemeLight
		}
		lang := i18n.LangFromContext(ctx)

		h.raw(`<!DOCTYPE html><html lang="`)
		h.text(lang)
		h.raw(`" data-theme="`)
		h.text(theme)
		h.raw(`"><head><meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1"><title>`)
		h.text(i18n.T(ctx, "app.title"))
		h.raw(`</title><link rel="stylesheet" href="/static/css/app.css"></head><body><div class="app-shell">`)

		// Боковая панель
		h.raw(`<aside class="sidebar" aria-label="Primary"><div class="brand">📺 `)
		h.text(i18n.T(ctx, "app.brand"))
		h.raw(`</div><nav class="nav">`)
		for _, p := range router.Pages() {
			h.raw(`<a class="nav-link`)
			if p == data.Active {
				h.raw(` active" aria-current="page`)
			}
			h.raw(`" href="`)
			h.text(p.Path())
			h.raw(`">`)
			h.text(navIcons[p], " ", i18n.T(ctx, "nav."+string(p)))
			h.raw(`</a>`)
		}
		h.raw(`</nav><div class="sidebar-foot"><div class="badge">`)
		h.text(i18n.Tf(ctx, "app.environment", data.EnvLabel))
		h.raw(`</div>`)
		if data.Mode != "" {
			h.raw(`<div class="badge badge-gray">`)
			h.text(i18n.Tf(ctx, "app.api_mode", data.Mode))
			h.raw(`</div>`)
		}
		h.raw(`</div></aside>`)

		// Верхняя панель
		h.raw(`<div class="main"><header class="topbar" role="banner"><div class="title">`)
		h.text(i18n.T(ctx, "app.heading"))
		h.raw(`</div><div class="topbar-actions"><form method="post" action="/set-language">`)
		other := "ru"
		if lang == "ru" {
			other = "en"
		}
		h.hidden("lang", other)
		h.raw(`<button class="btn" type="submit">`)
		h.text(i18n.T(ctx, "lang.switch"))
		h.raw(`</button></form><form method="post" action="/toggle-theme"><button class="btn btn-secondary" type="submit" aria-label="`)
		h.text(i18n.T(ctx, "theme.toggle"))
		h.raw(`">`)
		if theme == ThemeLight {
			h.text("🌙 ", i18n.T(ctx, "theme.dark"))
		} else {
			h.text("☀️ ", i18n.T(ctx, "theme.light"))
		}
		h.raw(`</button></form></div></header><main class="content"><div class="container">`)
		h.render(ctx, body)
		h.raw(`</div></main></div></div></body></html>`)
	})
}
