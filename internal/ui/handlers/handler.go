// Пакет handlers: HTTP-обработчики UI dashboard.
// Страницы отрисовываются из состояния UI-сессии; действия меняют состояние
// контроллера страницы и перенаправляют (303) обратно на страницу.
package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/bigkaa/goartstore/content-dashboard/internal/apiclient"
	"github.com/bigkaa/goartstore/content-dashboard/internal/router"
	uimiddleware "github.com/bigkaa/goartstore/content-dashboard/internal/ui/middleware"
	"github.com/bigkaa/goartstore/content-dashboard/internal/ui/session"
)

// Handler: обработчики страниц, действий и настроек UI.
type Handler struct {
	api             apiclient.FileAPI
	envLabel        string
	maxUploadMemory int64
	logger          *slog.Logger
}

// New создаёт обработчики UI.
// envLabel: метка окружения в боковой панели, maxUploadMemory: порог multipart в памяти.
func New(api apiclient.FileAPI, envLabel string, maxUploadMemory int64, logger *slog.Logger) *Handler {
	return &Handler{
		api:             api,
		envLabel:        envLabel,
		maxUploadMemory: maxUploadMemory,
		logger:          logger.With(slog.String("component", "ui.handlers")),
	}
}

// Routes регистрирует маршруты UI. Ожидает UI-сессию в контексте.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/favicon.ico", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	r.Get("/preview/{id}", h.HandlePreview)

	r.Post("/set-language", HandleSetLanguage)
	r.Post("/toggle-theme", HandleToggleTheme)

	r.Route("/actions", func(r chi.Router) {
		r.Use(markActed)
		r.Post("/reload", h.HandleReload)
		r.Post("/filter", h.HandleFilter)
		r.Post("/select", h.HandleSelect)
		r.Post("/close", h.HandleClose)
		r.Post("/title", h.HandleTitle)
		r.Post("/delete", h.HandleDelete)
		r.Post("/upload", h.HandleUpload)
	})

	// Любой другой GET-путь: страница по маршруту (неизвестный → Dashboard)
	r.Get("/*", h.HandlePage)
}

// sessionOrFail возвращает сессию или отвечает 500.
func (h *Handler) sessionOrFail(w http.ResponseWriter, r *http.Request) *session.Session {
	sess := uimiddleware.SessionFromContext(r.Context())
	if sess == nil {
		h.logger.Error("UI-сессия отсутствует в контексте", slog.String("path", r.URL.Path))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
	return sess
}

// markActed отмечает в сессии, что следующий GET страницы будет
// возвратом после действия.
func markActed(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if sess := uimiddleware.SessionFromContext(r.Context()); sess != nil {
			sess.MarkActed()
		}
		next.ServeHTTP(w, r)
	})
}

// pageFromForm читает поле page. Неизвестное значение: Dashboard.
func pageFromForm(r *http.Request) router.Page {
	return router.Resolve("/" + r.FormValue("page"))
}

// backTo перенаправляет на страницу после действия.
func backTo(w http.ResponseWriter, r *http.Request, page router.Page) {
	http.Redirect(w, r, page.Path(), http.StatusSeeOther)
}
