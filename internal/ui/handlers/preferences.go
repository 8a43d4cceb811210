// preferences.go: переключение языка и темы UI (cookie).
package handlers

import (
	"net/http"

	"github.com/bigkaa/goartstore/content-dashboard/internal/ui/i18n"
	"github.com/bigkaa/goartstore/content-dashboard/internal/ui/pages"
)

// ThemeCookieName: cookie с темой оформления.
const ThemeCookieName = "theme"

// prefMaxAge: срок хранения настроек (1 год).
const prefMaxAge = 365 * 24 * 60 * 60

// HandleSetLanguage обрабатывает POST /set-language (lang=en|ru).
func HandleSetLanguage(w http.ResponseWriter, r *http.Request) {
	lang := r.FormValue("lang")
	if !i18n.Supported(lang) {
		lang = i18n.DefaultLang
	}
	setPrefCookie(w, i18n.LangCookieName, lang)
	redirectBack(w, r)
}

// HandleToggleTheme обрабатывает POST /toggle-theme.
func HandleToggleTheme(w http.ResponseWriter, r *http.Request) {
	next := pages.ThemeDark
	if themeFromRequest(r) == pages.ThemeDark {
		next = pages.ThemeLight
	}
	setPrefCookie(w, ThemeCookieName, next)
	redirectBack(w, r)
}

// themeFromRequest возвращает тему из cookie (по умолчанию светлая).
func themeFromRequest(r *http.Request) string {
	if c, err := r.Cookie(ThemeCookieName); err == nil && c.Value == pages.ThemeDark {
		return pages.ThemeDark
	}
	return pages.ThemeLight
}

func setPrefCookie(w http.ResponseWriter, name, value string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   prefMaxAge,
		SameSite: http.SameSiteLaxMode,
	})
}

// redirectBack возвращает на Referer или на главную.
func redirectBack(w http.ResponseWriter, r *http.Request) {
	referer := r.Header.Get("Referer")
	if referer == "" {
		referer = "/"
	}
	http.Redirect(w, r, referer, http.StatusSeeOther)
}
