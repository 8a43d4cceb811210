package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
)

// HandlePreview обрабатывает GET /preview/{id}: редирект на URL предпросмотра.
func (h *Handler) HandlePreview(w http.ResponseWriter, r *http.Request) {
	var id string
	err := runtime.BindStyledParameterWithOptions("simple", "id", chi.URLParam(r, "id"), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil || id == "" {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	target := h.api.PreviewURL(id)
	if target == "" {
		http.NotFound(w, r)
		return
	}
	h.logger.Debug("Редирект на предпросмотр", slog.String("file_id", id), slog.String("url", target))
	http.Redirect(w, r, target, http.StatusFound)
}
