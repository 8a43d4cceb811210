// Пакет router: выбор страницы dashboard по фрагменту пути
// и программная навигация с уведомлением подписчиков.
package router

import "sync"

// HomePath: путь по умолчанию при пустом фрагменте.
const HomePath = "/dashboard"

// Page: страница dashboard.
type Page string

const (
	PageDashboard Page = "dashboard"
	PageUploads   Page = "uploads"
	PageFiles     Page = "files"
)

// Path возвращает канонический путь страницы.
func (p Page) Path() string {
	return "/" + string(p)
}

// Pages возвращает страницы в порядке навигационного меню.
func Pages() []Page {
	return []Page{PageDashboard, PageUploads, PageFiles}
}

// Resolve сопоставляет путь странице. Неизвестный путь: Dashboard.
func Resolve(path string) Page {
	switch path {
	case "/uploads":
		return PageUploads
	case "/files":
		return PageFiles
	default:
		return PageDashboard
	}
}

// Router: состояние маршрутизации одной UI-сессии.
type Router struct {
	loc Location

	mu   sync.Mutex
	subs []func(path string, page Page)
}

// New создаёт Router поверх loc и подписывается на его изменения.
func New(loc Location) *Router {
	r := &Router{loc: loc}
	loc.OnChange(r.notify)
	return r
}

// CurrentPath возвращает текущий путь, HomePath при пустом фрагменте.
func (r *Router) CurrentPath() string {
	if p := r.loc.Fragment(); p != "" {
		return p
	}
	return HomePath
}

// Active возвращает страницу для текущего пути.
func (r *Router) Active() Page {
	return Resolve(r.CurrentPath())
}

// Navigate устанавливает фрагмент. Подписчики уведомляются, если путь изменился.
func (r *Router) Navigate(path string) {
	r.loc.SetFragment(path)
}

// Subscribe регистрирует обработчик смены пути.
func (r *Router) Subscribe(fn func(path string, page Page)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.subs = append(r.subs, fn)
}

func (r *Router) notify(fragment string) {
	path := fragment
	if path == "" {
		path = HomePath
	}

	r.mu.Lock()
	subs := append([]func(string, Page){}, r.subs...)
	r.mu.Unlock()

	page := Resolve(path)
	for _, fn := range subs {
		fn(path, page)
	}
}
