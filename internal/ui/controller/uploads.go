package controller

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/bigkaa/goartstore/content-dashboard/internal/apiclient"
	"github.com/bigkaa/goartstore/content-dashboard/internal/domain/model"
	"github.com/bigkaa/goartstore/content-dashboard/internal/ui/forms"
)

// UploadsView: снимок страницы загрузок: форма и список.
type UploadsView struct {
	ListView
	Form        *forms.UploadForm
	FormFailure *Failure
	// Created: подтверждение последней успешной загрузки
	Created *model.UploadResult
}

// Uploads: контроллер страницы загрузок: форма создания и список файлов.
type Uploads struct {
	*FileList

	mu          sync.Mutex
	form        *forms.UploadForm
	formFailure *Failure
	created     *model.UploadResult
}

// NewUploads создаёт контроллер страницы загрузок.
func NewUploads(api apiclient.FileAPI, logger *slog.Logger) *Uploads {
	return &Uploads{
		FileList: NewFileList(api, logger),
		form:     forms.Blank(),
	}
}

// Submit валидирует форму и создаёт загрузку.
// При ошибке введённые значения сохраняются, при успехе форма сбрасывается
// и список перезагружается.
func (u *Uploads) Submit(ctx context.Context, form *forms.UploadForm) bool {
	payload, err := form.Payload()
	if err != nil {
		u.keepForm(form, formFailure(err))
		return false
	}

	res, err := u.api.CreateUpload(ctx, payload)
	if err != nil {
		u.logger.Warn("Ошибка загрузки файла",
			slog.String("filename", form.Filename),
			slog.String("error", err.Error()),
		)
		u.keepForm(form, newFailure(MsgUploadFailed, err))
		return false
	}

	u.logger.Info("Файл загружен",
		slog.String("file_id", res.ID),
		slog.String("status", string(res.Status)),
	)

	u.mu.Lock()
	u.form = forms.Blank()
	u.formFailure = nil
	u.created = res
	u.mu.Unlock()

	u.reload.Request(ctx)
	return true
}

// EditForm применяет действие над строками дорожек, сохраняя введённые значения.
func (u *Uploads) EditForm(form *forms.UploadForm, action string) bool {
	draft := form.Draft()
	if !draft.ApplyRowAction(action) {
		return false
	}
	u.mu.Lock()
	defer u.mu.Unlock()
	u.form = draft
	u.formFailure = nil
	return true
}

// View возвращает снимок состояния страницы.
func (u *Uploads) View() UploadsView {
	list := u.FileList.View()

	u.mu.Lock()
	defer u.mu.Unlock()
	return UploadsView{
		ListView:    list,
		Form:        u.form,
		FormFailure: u.formFailure,
		Created:     u.created,
	}
}

func (u *Uploads) keepForm(form *forms.UploadForm, failure *Failure) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.form = form.Draft()
	u.formFailure = failure
	u.created = nil
}

// formFailure переводит ошибку валидации формы в Failure.
func formFailure(err error) *Failure {
	var fe *forms.FieldError
	if errors.As(err, &fe) {
		return &Failure{Key: fe.Key}
	}
	return newFailure(MsgUploadFailed, err)
}
