package session

import (
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/bigkaa/goartstore/content-dashboard/internal/apiclient"
)

// sessionsActive: количество живых UI-сессий.
var sessionsActive = promauto.NewGauge(prometheus.GaugeOpts{
	Name: "cd_ui_sessions_active",
	Help: "Количество активных UI-сессий Content Dashboard.",
})

// Store: LRU-хранилище UI-сессий с истечением по простою.
type Store struct {
	cache  *expirable.LRU[string, *Session]
	api    apiclient.FileAPI
	logger *slog.Logger
}

// NewStore создаёт хранилище на maxSessions сессий с TTL простоя ttl.
func NewStore(api apiclient.FileAPI, maxSessions int, ttl time.Duration, logger *slog.Logger) *Store {
	s := &Store{
		api:    api,
		logger: logger.With(slog.String("component", "ui_sessions")),
	}
	s.cache = expirable.NewLRU[string, *Session](maxSessions, s.onEvict, ttl)
	return s
}

// Get возвращает сессию по id и продлевает её TTL.
func (s *Store) Get(id string) (*Session, bool) {
	sess, ok := s.cache.Get(id)
	if !ok {
		return nil, false
	}
	s.cache.Add(id, sess)
	return sess, true
}

// Create создаёт новую сессию.
func (s *Store) Create() *Session {
	sess := New(uuid.NewString(), s.api, s.logger)
	s.cache.Add(sess.ID, sess)
	sessionsActive.Inc()
	s.logger.Debug("UI-сессия создана", slog.String("session", sess.ID))
	return sess
}

// Len возвращает число живых сессий.
func (s *Store) Len() int {
	return s.cache.Len()
}

func (s *Store) onEvict(id string, _ *Session) {
	sessionsActive.Dec()
	s.logger.Debug("UI-сессия завершена", slog.String("session", id))
}
