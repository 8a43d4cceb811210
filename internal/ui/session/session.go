// Пакет session: UI-сессии dashboard.
// Сессия держит собственный Router и контроллеры страниц. Каждый показ страницы
// монтирует (загружает) её контроллер, кроме возврата после действия.
package session

import (
	"context"
	"log/slog"
	"sync"

	"github.com/bigkaa/goartstore/content-dashboard/internal/apiclient"
	"github.com/bigkaa/goartstore/content-dashboard/internal/router"
	"github.com/bigkaa/goartstore/content-dashboard/internal/ui/controller"
)

// loader: контроллер, загружаемый при монтировании страницы.
type loader interface {
	Load(ctx context.Context)
}

// Session: состояние одной UI-сессии.
type Session struct {
	ID string

	Router    *router.Router
	Dashboard *controller.Dashboard
	Files     *controller.FileList
	Uploads   *controller.Uploads

	mu      sync.Mutex
	pending bool
	// acted: следующий Visit является перенаправлением после действия
	acted   bool
	mounted map[router.Page]bool
}

// New создаёт сессию со стартовым маршрутом HomePath.
func New(id string, api apiclient.FileAPI, logger *slog.Logger) *Session {
	logger = logger.With(slog.String("session", id))
	s := &Session{
		ID:        id,
		Router:    router.New(router.NewMemoryLocation("")),
		Dashboard: controller.NewDashboard(api, logger.With(slog.String("page", string(router.PageDashboard)))),
		Files:     controller.NewFileList(api, logger.With(slog.String("page", string(router.PageFiles)))),
		Uploads:   controller.NewUploads(api, logger.With(slog.String("page", string(router.PageUploads)))),
		mounted:   make(map[router.Page]bool),
	}
	s.Router.Subscribe(func(string, router.Page) {
		s.mu.Lock()
		s.pending = true
		s.mu.Unlock()
	})
	return s
}

// Visit переходит на path и возвращает активную страницу.
// Контроллер страницы загружается при каждом показе. Исключение: возврат на тот же
// маршрут после MarkActed, когда состояние контроллера уже актуально.
// Пустой путь равен HomePath.
func (s *Session) Visit(ctx context.Context, path string) router.Page {
	if path == "" || path == "/" {
		path = router.HomePath
	}
	s.Router.Navigate(path)
	page := s.Router.Active()

	s.mu.Lock()
	mount := !s.acted || s.pending || !s.mounted[page]
	s.acted = false
	s.pending = false
	s.mounted[page] = true
	s.mu.Unlock()

	if mount {
		s.controller(page).Load(ctx)
	}
	return page
}

// MarkActed отмечает, что следующий показ страницы следует за действием.
// Действие само перезагружает данные, если это нужно.
func (s *Session) MarkActed() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.acted = true
}

// FileList возвращает контроллер списка для страницы Files или Uploads.
func (s *Session) FileList(page router.Page) (*controller.FileList, bool) {
	switch page {
	case router.PageFiles:
		return s.Files, true
	case router.PageUploads:
		return s.Uploads.FileList, true
	default:
		return nil, false
	}
}

func (s *Session) controller(page router.Page) loader {
	switch page {
	case router.PageFiles:
		return s.Files
	case router.PageUploads:
		return s.Uploads
	default:
		return s.Dashboard
	}
}
