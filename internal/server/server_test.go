package server

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/bigkaa/goartstore/content-dashboard/internal/api/handlers"
	"github.com/bigkaa/goartstore/content-dashboard/internal/apiclient"
	"github.com/bigkaa/goartstore/content-dashboard/internal/mockstore"
	"github.com/bigkaa/goartstore/content-dashboard/internal/ui/forms"
	uihandlers "github.com/bigkaa/goartstore/content-dashboard/internal/ui/handlers"
	"github.com/bigkaa/goartstore/content-dashboard/internal/ui/i18n"
	uimiddleware "github.com/bigkaa/goartstore/content-dashboard/internal/ui/middleware"
	"github.com/bigkaa/goartstore/content-dashboard/internal/ui/session"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	store := mockstore.New(logger)
	store.Seed()
	api := apiclient.NewMock(store, "")

	bundle, err := i18n.Load(logger)
	if err != nil {
		t.Fatalf("i18n.Load: %v", err)
	}
	sessions := session.NewStore(api, 10, time.Minute, logger)

	health := handlers.NewHealthHandler(handlers.ReadinessFunc(func() (string, string) {
		return handlers.StatusOK, "mock"
	}))
	return NewRouter(logger, health, &UIComponents{
		Handler:  uihandlers.New(api, "test", forms.DefaultMaxMemory, logger),
		Sessions: uimiddleware.NewSessions(sessions, time.Minute, false, logger),
		Bundle:   bundle,
	})
}

func TestRouter(t *testing.T) {
	router := newTestRouter(t)

	tests := []struct {
		name       string
		path       string
		wantStatus int
		wantBody   string
		wantCookie bool
	}{
		{"liveness", "/health/live", http.StatusOK, `"status":"ok"`, false},
		{"readiness", "/health/ready", http.StatusOK, `"content_api"`, false},
		{"метрики", "/metrics", http.StatusOK, "cd_http_requests_total", false},
		{"стили", "/static/css/app.css", http.StatusOK, "", false},
		{"dashboard", "/", http.StatusOK, "Sample TS Stream", true},
		{"files", "/files", http.StatusOK, "Sample TS Stream", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))

			if rec.Code != tt.wantStatus {
				t.Fatalf("ожидался статус %d, получен %d", tt.wantStatus, rec.Code)
			}
			if tt.wantBody != "" && !strings.Contains(rec.Body.String(), tt.wantBody) {
				t.Errorf("ответ не содержит %q", tt.wantBody)
			}
			hasCookie := false
			for _, c := range rec.Result().Cookies() {
				if c.Name == uimiddleware.SessionCookieName {
					hasCookie = true
				}
			}
			if hasCookie != tt.wantCookie {
				t.Errorf("cookie сессии: %v, ожидается %v", hasCookie, tt.wantCookie)
			}
		})
	}
}
