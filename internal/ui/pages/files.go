package pages

import (
	"context"
	"strconv"

	"github.com/a-h/templ"

	"github.com/bigkaa/goartstore/content-dashboard/internal/domain/model"
	"github.com/bigkaa/goartstore/content-dashboard/internal/router"
	"github.com/bigkaa/goartstore/content-dashboard/internal/ui/controller"
	"github.com/bigkaa/goartstore/content-dashboard/internal/ui/forms"
	"github.com/bigkaa/goartstore/content-dashboard/internal/ui/i18n"
)

// statusOptions: варианты фильтра статуса ("": любой).
var statusOptions = []model.FileStatus{"", model.StatusReady, model.StatusProcessing, model.StatusError}

// FileListSection: фильтр, ошибка, подтверждение удаления и сетка файлов.
func FileListSection(page router.Page, v controller.ListView) templ.Component {
	return component(func(ctx context.Context, h *writer) {
		h.raw(`<div class="grid"><form class="card filter" method="post" action="/actions/filter"><div class="grid grid-3">`)
		h.hidden("page", string(page))

		h.raw(`<div><label class="label" for="q">`)
		h.text(i18n.T(ctx, "filter.search"))
		h.raw(`</label><input id="q" name="q" class="input" placeholder="`)
		h.text(i18n.T(ctx, "filter.search_placeholder"))
		h.raw(`" value="`)
		h.text(v.Filter.Query)
		h.raw(`"></div>`)

		h.raw(`<div><label class="label" for="status">`)
		h.text(i18n.T(ctx, "filter.status"))
		h.raw(`</label><select id="status" name="status" class="select">`)
		for _, s := range statusOptions {
			h.raw(`<option value="`)
			h.text(string(s))
			h.raw(`"`)
			if string(s) == v.Filter.Status {
				h.raw(` selected`)
			}
			h.raw(`>`)
			key := "status.any"
			if s != "" {
				key = "status." + string(s)
			}
			h.text(i18n.T(ctx, key))
			h.raw(`</option>`)
		}
		h.raw(`</select></div><div><button class="btn btn-primary" type="submit"`)
		if v.Busy {
			h.raw(` disabled aria-busy="true">`)
			h.text(i18n.T(ctx, "common.loading"))
		} else {
			h.raw(`>`)
			h.text(i18n.T(ctx, "filter.apply"))
		}
		h.raw(`</button></div></div></form>`)

		h.render(ctx, FailureAlert(v.Failure))
		h.render(ctx, DeleteConfirm(page, v.PendingDelete))
		h.render(ctx, FileGrid(page, v.Items, true))
		h.raw(`</div>`)
	})
}

// FilesPage: поиск, фильтр, детали, правка и удаление.
func FilesPage(v controller.ListView) templ.Component {
	return component(func(ctx context.Context, h *writer) {
		h.raw(`<div class="grid"><section class="section">`)
		h.render(ctx, SectionHead(router.PageFiles, "files.title"))
		h.render(ctx, FileListSection(router.PageFiles, v))
		h.raw(`</section>`)
		h.render(ctx, FileDetailsModal(router.PageFiles, v.Selected))
		h.raw(`</div>`)
	})
}

// UploadsPage: форма загрузки и список файлов.
func UploadsPage(v controller.UploadsView) templ.Component {
	return component(func(ctx context.Context, h *writer) {
		h.raw(`<div class="grid">`)
		h.render(ctx, UploadForm(v.Form, v.FormFailure, v.Created))
		h.raw(`<section class="section">`)
		h.render(ctx, SectionHead(router.PageUploads, "uploads.all_files"))
		h.render(ctx, FileListSection(router.PageUploads, v.ListView))
		h.raw(`</section>`)
		h.render(ctx, FileDetailsModal(router.PageUploads, v.Selected))
		h.raw(`</div>`)
	})
}

// UploadForm: форма новой загрузки с метаданными дорожек.
// Кнопки добавления и удаления строк отправляют форму с полем row_action.
func UploadForm(form *forms.UploadForm, failure *controller.Failure, created *model.UploadResult) templ.Component {
	return component(func(ctx context.Context, h *writer) {
		if form == nil {
			form = forms.Blank()
		}

		input := func(id, name, labelKey, value, placeholder string) {
			h.raw(`<div><label class="label" for="`)
			h.text(id)
			h.raw(`">`)
			h.text(i18n.T(ctx, labelKey))
			h.raw(`</label><input id="`)
			h.text(id)
			h.raw(`" name="`)
			h.text(name)
			h.raw(`" class="input" value="`)
			h.text(value)
			h.raw(`" placeholder="`)
			h.text(placeholder)
			h.raw(`"></div>`)
		}
		rowButton := func(action, labelKey, class string) {
			h.raw(`<button type="submit" formnovalidate name="row_action" value="`)
			h.text(action)
			h.raw(`" class="btn `, class, `">`)
			h.text(i18n.T(ctx, labelKey))
			h.raw(`</button>`)
		}

		h.raw(`<form class="card" method="post" action="/actions/upload" enctype="multipart/form-data" aria-labelledby="upload-title">`)
		h.hidden("page", string(router.PageUploads))
		h.raw(`<header><h2 id="upload-title">`)
		h.text(i18n.T(ctx, "upload.title"))
		h.raw(`</h2><p class="helper">`)
		h.text(i18n.T(ctx, "upload.hint"))
		h.raw(`</p></header><div class="grid">`)

		h.raw(`<div><label class="label" for="file">`)
		h.text(i18n.T(ctx, "upload.file"))
		h.raw(`</label><input id="file" name="file" class="input" type="file" accept=".ts"></div>`)

		h.raw(`<div class="grid grid-2">`)
		input("title", "title", "upload.field_title", form.Title, "")
		input("tags", "tags", "upload.tags", form.Tags, "sports, 1080p")
		h.raw(`</div><div><label class="label" for="description">`)
		h.text(i18n.T(ctx, "upload.description"))
		h.raw(`</label><textarea id="description" name="description" class="textarea" rows="3">`)
		h.text(form.Description)
		h.raw(`</textarea></div>`)

		h.raw(`<div class="card"><h3>`)
		h.text(i18n.T(ctx, "upload.video"))
		h.raw(`</h3><div class="grid grid-3">`)
		input("vcodec", "video_codec", "track.codec", form.VideoCodec, "H.264")
		input("vres", "video_resolution", "track.resolution", form.VideoResolution, "1920x1080")
		input("vbit", "video_bitrate", "track.bitrate", form.VideoBitrate, "4500")
		h.raw(`</div></div>`)

		h.raw(`<div class="card"><h3>`)
		h.text(i18n.T(ctx, "upload.audios"))
		h.raw(`</h3>`)
		for i, row := range form.Audios {
			n := strconv.Itoa(i)
			h.raw(`<div class="grid grid-4 track-row">`)
			input("alang-"+n, "audio_language", "track.language", row.Language, "en")
			input("acodec-"+n, "audio_codec", "track.codec", row.Codec, "AAC")
			input("achan-"+n, "audio_channels", "track.channels", row.Channels, "2.0")
			h.raw(`<div>`)
			rowButton("remove_audio:"+n, "common.remove", "btn-danger")
			h.raw(`</div></div>`)
		}
		rowButton("add_audio", "upload.add_audio", "btn-primary")
		h.raw(`</div>`)

		h.raw(`<div class="card"><h3>`)
		h.text(i18n.T(ctx, "upload.subtitles"))
		h.raw(`</h3>`)
		for i, row := range form.Subtitles {
			n := strconv.Itoa(i)
			h.raw(`<div class="grid grid-3 track-row">`)
			input("slang-"+n, "subtitle_language", "track.language", row.Language, "en")
			input("sformat-"+n, "subtitle_format", "track.format", row.Format, "srt")
			h.raw(`<div>`)
			rowButton("remove_subtitle:"+n, "common.remove", "btn-danger")
			h.raw(`</div></div>`)
		}
		rowButton("add_subtitle", "upload.add_subtitle", "btn-primary")
		h.raw(`</div></div>`)

		h.raw(`<footer class="form-foot"><button type="submit" class="btn btn-primary">`)
		h.text(i18n.T(ctx, "upload.submit"))
		h.raw(`</button>`)
		if failure != nil {
			h.raw(`<span role="alert" class="form-error">`)
			h.text(i18n.T(ctx, failure.Key))
			if failure.Detail != "" {
				h.raw(`: `)
				h.text(failure.Detail)
			}
			h.raw(`</span>`)
		}
		if created != nil {
			h.raw(`<span role="status" class="form-ok">`)
			h.text(i18n.Tf(ctx, "upload.created", created.ID, string(created.Status)))
			h.raw(`</span>`)
		}
		h.raw(`</footer></form>`)
	})
}
