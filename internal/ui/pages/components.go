package pages

import (
	"context"
	"strconv"

	"github.com/a-h/templ"

	"github.com/bigkaa/goartstore/content-dashboard/internal/domain/model"
	"github.com/bigkaa/goartstore/content-dashboard/internal/router"
	"github.com/bigkaa/goartstore/content-dashboard/internal/ui/controller"
	"github.com/bigkaa/goartstore/content-dashboard/internal/ui/i18n"
)

// Badge: бейдж с цветом (green, red, amber, blue, gray).
func Badge(color, label string) templ.Component {
	return component(func(_ context.Context, h *writer) {
		h.raw(`<span class="badge badge-`)
		h.text(color)
		h.raw(`">`)
		h.text(label)
		h.raw(`</span>`)
	})
}

// StatusBadge: бейдж статуса файла.
func StatusBadge(status model.FileStatus) templ.Component {
	label := string(status)
	if label == "" {
		label = "unknown"
	}
	return Badge(statusColor(status), label)
}

// FailureAlert: inline-сообщение об ошибке. nil не отрисовывается.
func FailureAlert(f *controller.Failure) templ.Component {
	return component(func(ctx context.Context, h *writer) {
		if f == nil {
			return
		}
		h.raw(`<div role="alert" class="card alert">`)
		h.text(i18n.T(ctx, f.Key))
		if f.Detail != "" {
			h.raw(`: `)
			h.text(f.Detail)
		}
		h.raw(`</div>`)
	})
}

// StatCard: карточка сводки.
func StatCard(labelKey string, value int, busy bool, class string) templ.Component {
	return component(func(ctx context.Context, h *writer) {
		h.raw(`<div class="card stat"><div class="value `, class, `">`)
		if busy {
			h.raw(`…`)
		} else {
			h.text(strconv.Itoa(value))
		}
		h.raw(`</div><div class="label">`)
		h.text(i18n.T(ctx, labelKey))
		h.raw(`</div></div>`)
	})
}

// FileCard: карточка файла. На страницах со списком доступны правка и удаление.
func FileCard(page router.Page, f *model.File, editable bool) templ.Component {
	return component(func(ctx context.Context, h *writer) {
		created, ago := formatCreated(f.CreatedAt)
		title := f.Title
		if title == "" {
			title = i18n.T(ctx, "file.untitled")
		}

		h.raw(`<div class="card file-card"><div class="file-card-head"><div><div class="file-title">`)
		h.text(title)
		h.raw(`</div><div class="helper" title="`)
		h.text(ago)
		h.raw(`">`)
		h.text(created)
		h.raw(`</div></div>`)
		h.render(ctx, StatusBadge(f.Status))
		h.raw(`</div><div class="tags">`)
		for _, tag := range f.Tags {
			h.render(ctx, Badge("blue", "#"+tag))
		}
		h.raw(`</div><div class="actions">`)

		h.raw(`<form method="post" action="/actions/select">`)
		h.hidden("page", string(page))
		h.hidden("id", f.ID)
		h.raw(`<button class="btn btn-secondary" type="submit">`)
		h.text(i18n.T(ctx, "file.details"))
		h.raw(`</button></form>`)

		h.raw(`<a class="btn btn-primary" target="_blank" rel="noopener" href="`)
		h.text(PreviewPath(f.ID))
		h.raw(`">`)
		h.text(i18n.T(ctx, "file.preview"))
		h.raw(`</a>`)

		if editable {
			h.raw(`<form method="post" action="/actions/title" class="inline-edit">`)
			h.hidden("page", string(page))
			h.hidden("id", f.ID)
			h.raw(`<input class="input" name="title" aria-label="`)
			h.text(i18n.T(ctx, "file.new_title"))
			h.raw(`" value="`)
			h.text(f.Title)
			h.raw(`"><button class="btn" type="submit">`)
			h.text(i18n.T(ctx, "file.edit"))
			h.raw(`</button></form>`)

			h.raw(`<form method="post" action="/actions/delete">`)
			h.hidden("page", string(page))
			h.hidden("id", f.ID)
			h.raw(`<button class="btn btn-danger" type="submit">`)
			h.text(i18n.T(ctx, "file.delete"))
			h.raw(`</button></form>`)
		}
		h.raw(`</div></div>`)
	})
}

// FileGrid: сетка карточек.
func FileGrid(page router.Page, items []*model.File, editable bool) templ.Component {
	return component(func(ctx context.Context, h *writer) {
		if len(items) == 0 {
			h.raw(`<p class="helper">`)
			h.text(i18n.T(ctx, "files.empty"))
			h.raw(`</p>`)
			return
		}
		h.raw(`<div class="grid grid-3">`)
		for _, f := range items {
			h.render(ctx, FileCard(page, f, editable))
		}
		h.raw(`</div>`)
	})
}

// DeleteConfirm: запрос подтверждения удаления.
func DeleteConfirm(page router.Page, f *model.File) templ.Component {
	return component(func(ctx context.Context, h *writer) {
		if f == nil {
			return
		}
		h.raw(`<div role="alertdialog" class="card confirm"><p>`)
		h.text(i18n.Tf(ctx, "file.delete_confirm", orDash(f.Title)))
		h.raw(`</p><div class="actions"><form method="post" action="/actions/delete">`)
		h.hidden("page", string(page))
		h.hidden("id", f.ID)
		h.hidden("confirm", "yes")
		h.raw(`<button class="btn btn-danger" type="submit">`)
		h.text(i18n.T(ctx, "file.delete"))
		h.raw(`</button></form><form method="post" action="/actions/close">`)
		h.hidden("page", string(page))
		h.raw(`<button class="btn" type="submit">`)
		h.text(i18n.T(ctx, "common.cancel"))
		h.raw(`</button></form></div></div>`)
	})
}

// FileDetailsModal: окно деталей файла. nil не отрисовывается.
func FileDetailsModal(page router.Page, f *model.File) templ.Component {
	return component(func(ctx context.Context, h *writer) {
		if f == nil {
			return
		}
		created, _ := formatCreated(f.CreatedAt)

		h.raw(`<div class="modal-backdrop"><section class="modal" role="dialog" aria-modal="true" aria-labelledby="file-modal-title">`)
		h.raw(`<header class="modal-head"><h3 id="file-modal-title">`)
		h.text(i18n.T(ctx, "details.title"))
		h.raw(`</h3></header><div class="body"><div class="grid grid-2"><div class="card">`)

		field := func(key string) {
			h.raw(`<strong>`)
			h.text(i18n.T(ctx, key))
			h.raw(`</strong>`)
		}

		field("details.file_title")
		h.raw(`<div>`)
		h.text(f.Title)
		h.raw(`</div><hr class="divider">`)
		field("details.description")
		h.raw(`<div class="helper">`)
		h.text(orDash(f.Description))
		h.raw(`</div><hr class="divider">`)
		field("details.tags")
		h.raw(`<div class="tags">`)
		for _, tag := range f.Tags {
			h.render(ctx, Badge("blue", "#"+tag))
		}
		h.raw(`</div><hr class="divider">`)
		field("details.status")
		h.raw(`<div>`)
		h.render(ctx, StatusBadge(f.Status))
		h.raw(`</div><hr class="divider">`)
		field("details.created")
		h.raw(`<div class="helper">`)
		h.text(created)
		h.raw(`</div><hr class="divider">`)
		field("details.size")
		h.raw(`<div class="helper">`)
		h.text(formatSize(f.Size))
		h.raw(`</div></div><div class="card">`)

		field("details.video")
		h.raw(`<div class="helper">`)
		if v := f.Video; !v.IsEmpty() {
			bitrate := "—"
			if v.Bitrate > 0 {
				bitrate = strconv.Itoa(v.Bitrate) + " kbps"
			}
			h.text(orDash(v.Codec), " • ", orDash(v.Resolution), " • ", bitrate)
		} else {
			h.raw(`—`)
		}
		h.raw(`</div><hr class="divider">`)

		field("details.audios")
		h.raw(`<div class="helper">`)
		if len(f.Audios) == 0 {
			h.raw(`—`)
		} else {
			h.raw(`<ul>`)
			for _, a := range f.Audios {
				h.raw(`<li>`)
				h.text(orDash(a.Language), " • ", orDash(a.Codec), " • ", orDash(a.Channels))
				h.raw(`</li>`)
			}
			h.raw(`</ul>`)
		}
		h.raw(`</div><hr class="divider">`)

		field("details.subtitles")
		h.raw(`<div class="helper">`)
		if len(f.Subtitles) == 0 {
			h.raw(`—`)
		} else {
			h.raw(`<ul>`)
			for _, s := range f.Subtitles {
				h.raw(`<li>`)
				h.text(orDash(s.Language), " • ", orDash(s.Format))
				h.raw(`</li>`)
			}
			h.raw(`</ul>`)
		}
		h.raw(`</div></div></div></div>`)

		h.raw(`<footer class="modal-foot"><a class="btn btn-primary" target="_blank" rel="noopener" href="`)
		h.text(PreviewPath(f.ID))
		h.raw(`">`)
		h.text(i18n.T(ctx, "file.preview"))
		h.raw(`</a><form method="post" action="/actions/close">`)
		h.hidden("page", string(page))
		h.raw(`<button class="btn" type="submit" autofocus>`)
		h.text(i18n.T(ctx, "common.close"))
		h.raw(`</button></form></footer></section></div>`)
	})
}
