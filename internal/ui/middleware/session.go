// Пакет middleware: HTTP middleware UI dashboard.
// session.go: привязка запроса к UI-сессии по cookie.
package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	apimiddleware "github.com/bigkaa/goartstore/content-dashboard/internal/api/middleware"
	"github.com/bigkaa/goartstore/content-dashboard/internal/ui/session"
)

// SessionCookieName: cookie с id UI-сессии.
const SessionCookieName = "cd_session"

// contextKey: тип ключей контекста UI.
type contextKey string

const contextKeySession contextKey = "ui_session"

// Sessions: middleware, находящий или создающий UI-сессию.
type Sessions struct {
	store  *session.Store
	ttl    time.Duration
	secure bool
	logger *slog.Logger
}

// NewSessions создаёт middleware. secure: флаг Secure для cookie (HTTPS).
func NewSessions(store *session.Store, ttl time.Duration, secure bool, logger *slog.Logger) *Sessions {
	return &Sessions{
		store:  store,
		ttl:    ttl,
		secure: secure,
		logger: logger.With(slog.String("component", "ui_session_middleware")),
	}
}

// Middleware помещает сессию в контекст. Неизвестный или истёкший id: новая сессия.
func (s *Sessions) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var sess *session.Session
			if cookie, err := r.Cookie(SessionCookieName); err == nil && cookie.Value != "" {
				sess, _ = s.store.Get(cookie.Value)
			}

			if sess == nil {
				sess = s.store.Create()
				s.logger.Debug("Новая UI-сессия",
					slog.String("session", sess.ID),
					slog.String("remote_addr", r.RemoteAddr),
				)
			}

			// Cookie продлевается на каждый запрос вместе с TTL сессии
			http.SetCookie(w, &http.Cookie{
				Name:     SessionCookieName,
				Value:    sess.ID,
				Path:     "/",
				MaxAge:   int(s.ttl.Seconds()),
				HttpOnly: true,
				Secure:   s.secure,
				SameSite: http.SameSiteLaxMode,
			})

			apimiddleware.AddLogAttrs(r.Context(), slog.String("session", sess.ID))

			ctx := context.WithValue(r.Context(), contextKeySession, sess)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SessionFromContext извлекает UI-сессию из контекста.
// Возвращает nil, если middleware не применялся.
func SessionFromContext(ctx context.Context) *session.Session {
	sess, _ := ctx.Value(contextKeySession).(*session.Session)
	return sess
}

// WithSession помещает сессию в контекст (для тестов обработчиков).
func WithSession(ctx context.Context, sess *session.Session) context.Context {
	return context.WithValue(ctx, contextKeySession, sess)
}
