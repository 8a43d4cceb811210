package router

import (
	"slices"
	"strings"
	"sync"
)

// Location: источник текущего фрагмента пути и уведомлений о его смене.
// Аналог hash-части URL, не привязанный к браузеру.
type Location interface {
	// Fragment возвращает текущий фрагмент без ведущего '#'.
	Fragment() string
	// SetFragment устанавливает фрагмент. Подписчики уведомляются только при изменении.
	SetFragment(fragment string)
	// OnChange подписывает fn на изменения. Возвращает функцию отписки.
	OnChange(fn func(fragment string)) (unsubscribe func())
}

// MemoryLocation: потокобезопасная in-memory реализация Location.
type MemoryLocation struct {
	mu        sync.Mutex
	fragment  string
	listeners map[int]func(string)
	nextID    int
}

// NewMemoryLocation создаёт Location с начальным фрагментом.
func NewMemoryLocation(initial string) *MemoryLocation {
	return &MemoryLocation{
		fragment:  trimHash(initial),
		listeners: make(map[int]func(string)),
	}
}

// Fragment возвращает текущий фрагмент.
func (l *MemoryLocation) Fragment() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.fragment
}

// SetFragment меняет фрагмент и уведомляет подписчиков.
// Подписчики вызываются вне блокировки, в порядке подписки.
func (l *MemoryLocation) SetFragment(fragment string) {
	fragment = trimHash(fragment)

	l.mu.Lock()
	if fragment == l.fragment {
		l.mu.Unlock()
		return
	}
	l.fragment = fragment
	ids := make([]int, 0, len(l.listeners))
	for id := range l.listeners {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	fns := make([]func(string), 0, len(ids))
	for _, id := range ids {
		fns = append(fns, l.listeners[id])
	}
	l.mu.Unlock()

	for _, fn := range fns {
		fn(fragment)
	}
}

// OnChange регистрирует подписчика.
func (l *MemoryLocation) OnChange(fn func(fragment string)) func() {
	l.mu.Lock()
	defer l.mu.Unlock()

	id := l.nextID
	l.nextID++
	l.listeners[id] = fn

	return func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		delete(l.listeners, id)
	}
}

func trimHash(s string) string {
	return strings.TrimPrefix(strings.TrimSpace(s), "#")
}
