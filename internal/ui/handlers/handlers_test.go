package handlers

import (
	"bytes"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/bigkaa/goartstore/content-dashboard/internal/apiclient"
	"github.com/bigkaa/goartstore/content-dashboard/internal/mockstore"
	"github.com/bigkaa/goartstore/content-dashboard/internal/ui/forms"
	"github.com/bigkaa/goartstore/content-dashboard/internal/ui/i18n"
	uimiddleware "github.com/bigkaa/goartstore/content-dashboard/internal/ui/middleware"
	"github.com/bigkaa/goartstore/content-dashboard/internal/ui/session"
)

// testApp: UI-маршрутизатор поверх mock-хранилища с одной демо-записью.
type testApp struct {
	handler http.Handler
	store   *mockstore.Store
	cookie  *http.Cookie
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	store := mockstore.New(logger)
	store.Seed()
	api := apiclient.NewMock(store, "http://front.test")

	bundle, err := i18n.Load(logger)
	if err != nil {
		t.Fatalf("i18n.Load: %v", err)
	}

	sessions := session.NewStore(api, 10, time.Minute, logger)
	r := chi.NewRouter()
	r.Use(i18n.Middleware(bundle))
	r.Use(uimiddleware.NewSessions(sessions, time.Minute, false, logger).Middleware())
	New(api, "test", forms.DefaultMaxMemory, logger).Routes(r)

	return &testApp{handler: r, store: store}
}

// do выполняет запрос в рамках одной UI-сессии.
func (a *testApp) do(req *http.Request) *httptest.ResponseRecorder {
	if a.cookie != nil {
		req.AddCookie(a.cookie)
	}
	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)
	for _, c := range rec.Result().Cookies() {
		if c.Name == uimiddleware.SessionCookieName {
			a.cookie = c
		}
	}
	return rec
}

func (a *testApp) get(path string) *httptest.ResponseRecorder {
	return a.do(httptest.NewRequest(http.MethodGet, path, nil))
}

func (a *testApp) post(path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return a.do(req)
}

func expectRedirect(t *testing.T, rec *httptest.ResponseRecorder, status int, location string) {
	t.Helper()
	if rec.Code != status {
		t.Fatalf("ожидался статус %d, получен %d", status, rec.Code)
	}
	if got := rec.Header().Get("Location"); got != location {
		t.Errorf("ожидался Location %q, получен %q", location, got)
	}
}

// TestHandlePage_Files проверяет отрисовку списка файлов.
func TestHandlePage_Files(t *testing.T) {
	app := newTestApp(t)

	rec := app.get("/files")
	if rec.Code != http.StatusOK {
		t.Fatalf("ожидался статус 200, получен %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("ожидался text/html, получен %q", ct)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Sample TS Stream") {
		t.Error("ожидалась карточка демо-записи")
	}
	if !strings.Contains(body, `href="/files">`) || !strings.Contains(body, `active" aria-current="page" href="/files"`) {
		t.Error("ожидался активный пункт меню Files")
	}
	if app.cookie == nil {
		t.Error("ожидался cookie сессии")
	}
}

// TestHandlePage_UnknownPathFallsBack проверяет показ Dashboard для неизвестного пути.
func TestHandlePage_UnknownPathFallsBack(t *testing.T) {
	app := newTestApp(t)

	for _, path := range []string{"/", "/nowhere"} {
		rec := app.get(path)
		if rec.Code != http.StatusOK {
			t.Fatalf("%s: ожидался статус 200, получен %d", path, rec.Code)
		}
		if !strings.Contains(rec.Body.String(), `active" aria-current="page" href="/dashboard"`) {
			t.Errorf("%s: ожидался активный пункт Dashboard", path)
		}
	}
}

// TestHandleFilter проверяет фильтр и редирект на страницу.
func TestHandleFilter(t *testing.T) {
	app := newTestApp(t)
	app.get("/files")

	rec := app.post("/actions/filter", url.Values{"page": {"files"}, "q": {"zzz"}})
	expectRedirect(t, rec, http.StatusSeeOther, "/files")

	body := app.get("/files").Body.String()
	if strings.Contains(body, "Sample TS Stream") {
		t.Error("запись не должна проходить фильтр")
	}
	if !strings.Contains(body, "No files found.") {
		t.Error("ожидалось сообщение о пустом списке")
	}
}

// TestHandleDelete_TwoStep проверяет удаление с подтверждением.
func TestHandleDelete_TwoStep(t *testing.T) {
	app := newTestApp(t)
	app.get("/files")

	rec := app.post("/actions/delete", url.Values{"page": {"files"}, "id": {"f1"}})
	expectRedirect(t, rec, http.StatusSeeOther, "/files")
	if app.store.Count() != 1 {
		t.Fatal("без подтверждения запись не должна удаляться")
	}
	if body := app.get("/files").Body.String(); !strings.Contains(body, `role="alertdialog"`) {
		t.Error("ожидался запрос подтверждения")
	}

	rec = app.post("/actions/delete", url.Values{"page": {"files"}, "id": {"f1"}, "confirm": {"yes"}})
	expectRedirect(t, rec, http.StatusSeeOther, "/files")
	if app.store.Count() != 0 {
		t.Errorf("ожидалось удаление записи, осталось %d", app.store.Count())
	}
}

// TestHandleSelectAndClose проверяет открытие и закрытие деталей.
func TestHandleSelectAndClose(t *testing.T) {
	app := newTestApp(t)
	app.get("/dashboard")

	expectRedirect(t, app.post("/actions/select", url.Values{"page": {"dashboard"}, "id": {"f1"}}),
		http.StatusSeeOther, "/dashboard")
	if body := app.get("/dashboard").Body.String(); !strings.Contains(body, `role="dialog"`) {
		t.Error("ожидалось окно деталей")
	}

	expectRedirect(t, app.post("/actions/close", url.Values{"page": {"dashboard"}}),
		http.StatusSeeOther, "/dashboard")
	if body := app.get("/dashboard").Body.String(); strings.Contains(body, `role="dialog"`) {
		t.Error("окно деталей должно быть закрыто")
	}
}

// TestHandleTitle проверяет переименование.
func TestHandleTitle(t *testing.T) {
	app := newTestApp(t)
	app.get("/files")

	rec := app.post("/actions/title", url.Values{"page": {"files"}, "id": {"f1"}, "title": {"Renamed <b>"}})
	expectRedirect(t, rec, http.StatusSeeOther, "/files")

	body := app.get("/files").Body.String()
	if !strings.Contains(body, "Renamed &lt;b&gt;") {
		t.Error("ожидалось новое экранированное название")
	}
}

// TestHandleReload проверяет перезагрузку списка с новыми данными хранилища.
func TestHandleReload(t *testing.T) {
	app := newTestApp(t)
	app.get("/files")

	if _, err := app.store.Delete(t.Context(), "f1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	expectRedirect(t, app.post("/actions/reload", url.Values{"page": {"files"}}), http.StatusSeeOther, "/files")
	if body := app.get("/files").Body.String(); strings.Contains(body, "Sample TS Stream") {
		t.Error("после перезагрузки запись не должна отображаться")
	}
}

// TestHandlePage_RepeatedGetRefetches проверяет, что повторный GET страницы
// (перезагрузка в браузере) показывает свежие данные.
func TestHandlePage_RepeatedGetRefetches(t *testing.T) {
	app := newTestApp(t)
	if body := app.get("/files").Body.String(); !strings.Contains(body, "Sample TS Stream") {
		t.Fatal("ожидалась запись до удаления")
	}

	if _, err := app.store.Delete(t.Context(), "f1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if body := app.get("/files").Body.String(); strings.Contains(body, "Sample TS Stream") {
		t.Error("повторный GET должен загрузить список заново")
	}
}

func multipartRequest(t *testing.T, fields map[string]string, filename string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			t.Fatalf("WriteField: %v", err)
		}
	}
	if filename != "" {
		part, err := mw.CreateFormFile("file", filename)
		if err != nil {
			t.Fatalf("CreateFormFile: %v", err)
		}
		_, _ = part.Write([]byte("ts-bytes"))
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, "/actions/upload", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

// TestHandleUpload_Submit проверяет загрузку нового файла.
func TestHandleUpload_Submit(t *testing.T) {
	app := newTestApp(t)
	app.get("/uploads")

	rec := app.do(multipartRequest(t, map[string]string{"page": "uploads", "title": "Match"}, "match.ts"))
	expectRedirect(t, rec, http.StatusSeeOther, "/uploads")
	if app.store.Count() != 2 {
		t.Fatalf("ожидалось 2 записи, получено %d", app.store.Count())
	}
	if body := app.get("/uploads").Body.String(); !strings.Contains(body, `role="status"`) {
		t.Error("ожидалось сообщение о принятой загрузке")
	}
}

// TestHandleUpload_Invalid проверяет сохранение черновика при ошибке проверки.
func TestHandleUpload_Invalid(t *testing.T) {
	app := newTestApp(t)
	app.get("/uploads")

	rec := app.do(multipartRequest(t, map[string]string{"title": "Draft title"}, "clip.mp4"))
	expectRedirect(t, rec, http.StatusSeeOther, "/uploads")
	if app.store.Count() != 1 {
		t.Fatal("некорректная форма не должна создавать запись")
	}
	body := app.get("/uploads").Body.String()
	if !strings.Contains(body, "Only .ts files are allowed") {
		t.Error("ожидалась ошибка расширения файла")
	}
	if !strings.Contains(body, `value="Draft title"`) {
		t.Error("ожидалось сохранение названия в черновике")
	}
}

// TestHandleUpload_RowAction проверяет добавление строки дорожки без загрузки.
func TestHandleUpload_RowAction(t *testing.T) {
	app := newTestApp(t)
	app.get("/uploads")

	rec := app.do(multipartRequest(t, map[string]string{"title": "Keep", "row_action": "add_audio"}, ""))
	expectRedirect(t, rec, http.StatusSeeOther, "/uploads")
	if app.store.Count() != 1 {
		t.Fatal("действие со строкой не должно загружать файл")
	}
	body := app.get("/uploads").Body.String()
	if !strings.Contains(body, `id="alang-1"`) {
		t.Error("ожидалась вторая строка аудио")
	}
	if !strings.Contains(body, `value="Keep"`) {
		t.Error("ожидалось сохранение черновика")
	}
}

// TestHandlePreview проверяет редирект на URL предпросмотра.
func TestHandlePreview(t *testing.T) {
	app := newTestApp(t)

	rec := app.get("/preview/f1")
	expectRedirect(t, rec, http.StatusFound, "http://front.test/mock-preview/f1.mp4")

	rec = app.get("/preview/a%2Fb")
	expectRedirect(t, rec, http.StatusFound, "http://front.test/mock-preview/a%2Fb.mp4")
}

// TestPreferences проверяет переключение языка и темы.
func TestPreferences(t *testing.T) {
	app := newTestApp(t)

	req := httptest.NewRequest(http.MethodPost, "/set-language", strings.NewReader("lang=ru"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Referer", "/files")
	rec := app.do(req)
	expectRedirect(t, rec, http.StatusSeeOther, "/files")

	var lang *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == i18n.LangCookieName {
			lang = c
		}
	}
	if lang == nil || lang.Value != "ru" {
		t.Fatalf("ожидался cookie lang=ru, получено %v", lang)
	}

	page := httptest.NewRequest(http.MethodGet, "/files", nil)
	page.AddCookie(lang)
	if body := app.do(page).Body.String(); !strings.Contains(body, `<html lang="ru"`) {
		t.Error("ожидалась русская локаль страницы")
	}

	rec = app.post("/toggle-theme", url.Values{})
	expectRedirect(t, rec, http.StatusSeeOther, "/")
	var theme *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == ThemeCookieName {
			theme = c
		}
	}
	if theme == nil || theme.Value != "dark" {
		t.Fatalf("ожидался cookie theme=dark, получено %v", theme)
	}
}

// TestSetLanguage_Unsupported проверяет откат на язык по умолчанию.
func TestSetLanguage_Unsupported(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/set-language", strings.NewReader("lang=de"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	HandleSetLanguage(rec, req)

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Value != i18n.DefaultLang {
		t.Errorf("ожидался cookie lang=%s, получено %v", i18n.DefaultLang, cookies)
	}
}
