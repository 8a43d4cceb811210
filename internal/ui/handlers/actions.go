package handlers

import (
	"log/slog"
	"net/http"

	"github.com/bigkaa/goartstore/content-dashboard/internal/domain/model"
	"github.com/bigkaa/goartstore/content-dashboard/internal/router"
	"github.com/bigkaa/goartstore/content-dashboard/internal/ui/forms"
)

// HandleReload обрабатывает POST /actions/reload: явная перезагрузка страницы.
func (h *Handler) HandleReload(w http.ResponseWriter, r *http.Request) {
	sess := h.sessionOrFail(w, r)
	if sess == nil {
		return
	}
	page := pageFromForm(r)
	if fl, ok := sess.FileList(page); ok {
		fl.Reload().Request(r.Context())
	} else {
		sess.Dashboard.Reload().Request(r.Context())
	}
	backTo(w, r, page)
}

// HandleFilter обрабатывает POST /actions/filter (q, status).
func (h *Handler) HandleFilter(w http.ResponseWriter, r *http.Request) {
	sess := h.sessionOrFail(w, r)
	if sess == nil {
		return
	}
	page := pageFromForm(r)
	if fl, ok := sess.FileList(page); ok {
		fl.SetFilter(r.Context(), model.FileFilter{
			Query:  r.FormValue("q"),
			Status: r.FormValue("status"),
		})
	}
	backTo(w, r, page)
}

// HandleSelect обрабатывает POST /actions/select (id): открыть детали.
func (h *Handler) HandleSelect(w http.ResponseWriter, r *http.Request) {
	sess := h.sessionOrFail(w, r)
	if sess == nil {
		return
	}
	page := pageFromForm(r)
	id := r.FormValue("id")
	if fl, ok := sess.FileList(page); ok {
		fl.Select(r.Context(), id)
	} else {
		sess.Dashboard.Select(id)
	}
	backTo(w, r, page)
}

// HandleClose обрабатывает POST /actions/close: закрыть детали или отменить удаление.
func (h *Handler) HandleClose(w http.ResponseWriter, r *http.Request) {
	sess := h.sessionOrFail(w, r)
	if sess == nil {
		return
	}
	page := pageFromForm(r)
	if fl, ok := sess.FileList(page); ok {
		fl.CloseDetails()
	} else {
		sess.Dashboard.CloseDetails()
	}
	backTo(w, r, page)
}

// HandleTitle обрабатывает POST /actions/title (id, title).
func (h *Handler) HandleTitle(w http.ResponseWriter, r *http.Request) {
	sess := h.sessionOrFail(w, r)
	if sess == nil {
		return
	}
	page := pageFromForm(r)
	if fl, ok := sess.FileList(page); ok {
		fl.EditTitle(r.Context(), r.FormValue("id"), r.FormValue("title"))
	}
	backTo(w, r, page)
}

// HandleDelete обрабатывает POST /actions/delete (id, confirm=yes).
// Без confirm показывается запрос подтверждения.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	sess := h.sessionOrFail(w, r)
	if sess == nil {
		return
	}
	page := pageFromForm(r)
	if fl, ok := sess.FileList(page); ok {
		id := r.FormValue("id")
		if fl.Delete(r.Context(), id, r.FormValue("confirm") == "yes") {
			h.logger.Info("Удаление файла из UI",
				slog.String("file_id", id),
				slog.String("session", sess.ID),
			)
		}
	}
	backTo(w, r, page)
}

// HandleUpload обрабатывает multipart POST /actions/upload.
// Поле row_action меняет строки дорожек без загрузки.
func (h *Handler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	sess := h.sessionOrFail(w, r)
	if sess == nil {
		return
	}

	form, err := forms.ParseUpload(r, h.maxUploadMemory)
	if err != nil {
		h.logger.Warn("Некорректная форма загрузки", slog.String("error", err.Error()))
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	defer func() {
		_ = form.Close()
		if r.MultipartForm != nil {
			_ = r.MultipartForm.RemoveAll()
		}
	}()

	if action := r.FormValue("row_action"); action != "" {
		sess.Uploads.EditForm(form, action)
	} else {
		sess.Uploads.Submit(r.Context(), form)
	}
	backTo(w, r, router.PageUploads)
}
