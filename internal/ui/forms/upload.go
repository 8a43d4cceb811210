// Пакет forms: разбор и валидация формы загрузки файла.
package forms

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/bigkaa/goartstore/content-dashboard/internal/apiclient"
	"github.com/bigkaa/goartstore/content-dashboard/internal/domain/model"
)

// Коды ошибок валидации (ключи i18n).
const (
	ErrKeyFileRequired  = "upload.error.file_required"
	ErrKeyTSOnly        = "upload.error.ts_only"
	ErrKeyTitleRequired = "upload.error.title_required"
	ErrKeyBitrate       = "upload.error.bitrate"
)

// DefaultMaxMemory: объём multipart-формы, хранимый в памяти; остальное: во временных файлах.
const DefaultMaxMemory = 32 << 20

// AudioRow: строка аудиодорожки в форме.
type AudioRow struct {
	Language string
	Codec    string
	Channels string
}

// SubtitleRow: строка субтитров в форме.
type SubtitleRow struct {
	Language string
	Format   string
}

// UploadForm: значения формы загрузки в том виде, в каком их ввёл пользователь.
type UploadForm struct {
	File            io.Reader `validate:"required"`
	Filename        string    `validate:"tsfile"`
	Size            int64
	Title           string `validate:"required"`
	Description     string
	Tags            string
	VideoCodec      string
	VideoResolution string
	VideoBitrate    string `validate:"omitempty,number"`
	Audios          []AudioRow
	Subtitles       []SubtitleRow

	closer io.Closer
}

// FieldError: ошибка валидации формы. Удовлетворяет errors.Is(err, apiclient.ErrValidation).
type FieldError struct {
	Field string
	// Key: код сообщения для пользователя
	Key string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("поле %s: %s", e.Field, e.Key)
}

func (e *FieldError) Unwrap() error { return apiclient.ErrValidation }

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Проверка расширения .ts без учёта регистра
	_ = v.RegisterValidation("tsfile", func(fl validator.FieldLevel) bool {
		return strings.HasSuffix(strings.ToLower(fl.Field().String()), ".ts")
	})
	return v
}

// Blank возвращает пустую форму с одной строкой аудио и субтитров.
func Blank() *UploadForm {
	return &UploadForm{
		Audios:    []AudioRow{{}},
		Subtitles: []SubtitleRow{{}},
	}
}

// ParseUpload разбирает multipart-запрос формы загрузки.
// Отсутствие файла не ошибка разбора: его отсутствие выявляет Validate.
func ParseUpload(r *http.Request, maxMemory int64) (*UploadForm, error) {
	if err := r.ParseMultipartForm(maxMemory); err != nil {
		return nil, fmt.Errorf("разбор формы загрузки: %w", err)
	}

	form := &UploadForm{
		Title:           strings.TrimSpace(r.FormValue("title")),
		Description:     strings.TrimSpace(r.FormValue("description")),
		Tags:            r.FormValue("tags"),
		VideoCodec:      strings.TrimSpace(r.FormValue("video_codec")),
		VideoResolution: strings.TrimSpace(r.FormValue("video_resolution")),
		VideoBitrate:    strings.TrimSpace(r.FormValue("video_bitrate")),
	}

	values := r.MultipartForm.Value
	aLang, aCodec, aChan := values["audio_language"], values["audio_codec"], values["audio_channels"]
	for i := range maxLen(aLang, aCodec, aChan) {
		form.Audios = append(form.Audios, AudioRow{
			Language: at(aLang, i),
			Codec:    at(aCodec, i),
			Channels: at(aChan, i),
		})
	}
	sLang, sFormat := values["subtitle_language"], values["subtitle_format"]
	for i := range maxLen(sLang, sFormat) {
		form.Subtitles = append(form.Subtitles, SubtitleRow{
			Language: at(sLang, i),
			Format:   at(sFormat, i),
		})
	}

	file, header, err := r.FormFile("file")
	switch {
	case errors.Is(err, http.ErrMissingFile):
	case err != nil:
		return nil, fmt.Errorf("чтение файла формы: %w", err)
	default:
		form.setFile(file, header)
	}

	return form, nil
}

func (f *UploadForm) setFile(file multipart.File, header *multipart.FileHeader) {
	// Пустое поле file браузер присылает с пустым именем
	if header.Filename == "" && header.Size == 0 {
		_ = file.Close()
		return
	}
	f.File = file
	f.Filename = header.Filename
	f.Size = header.Size
	f.closer = file
}

// Close освобождает файл формы.
func (f *UploadForm) Close() error {
	if f.closer == nil {
		return nil
	}
	err := f.closer.Close()
	f.closer = nil
	return err
}

// Validate проверяет форму. Возвращает первую ошибку в порядке полей.
func (f *UploadForm) Validate() error {
	err := validate.Struct(f)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}

	first := verrs[0]
	fe := &FieldError{Field: first.Field()}
	switch first.Field() {
	case "File":
		fe.Key = ErrKeyFileRequired
	case "Filename":
		fe.Key = ErrKeyTSOnly
	case "Title":
		fe.Key = ErrKeyTitleRequired
	case "VideoBitrate":
		fe.Key = ErrKeyBitrate
	default:
		fe.Key = first.Tag()
	}
	return fe
}

// Payload валидирует форму и строит данные createUpload.
// Пустые строки дорожек отбрасываются.
func (f *UploadForm) Payload() (*model.UploadPayload, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}

	payload := &model.UploadPayload{
		File:        f.File,
		Filename:    f.Filename,
		Size:        f.Size,
		Title:       f.Title,
		Description: f.Description,
		Tags:        f.Tags,
		Audios:      []model.AudioTrack{},
		Subtitles:   []model.SubtitleTrack{},
	}

	video := &model.VideoTrack{Codec: f.VideoCodec, Resolution: f.VideoResolution}
	if f.VideoBitrate != "" {
		bitrate, err := strconv.Atoi(f.VideoBitrate)
		if err != nil {
			return nil, &FieldError{Field: "VideoBitrate", Key: ErrKeyBitrate}
		}
		video.Bitrate = bitrate
	}
	if !video.IsEmpty() {
		payload.Video = video
	}

	for _, row := range f.Audios {
		track := model.AudioTrack{
			Language: strings.TrimSpace(row.Language),
			Codec:    strings.TrimSpace(row.Codec),
			Channels: strings.TrimSpace(row.Channels),
		}
		if !track.IsEmpty() {
			payload.Audios = append(payload.Audios, track)
		}
	}
	for _, row := range f.Subtitles {
		track := model.SubtitleTrack{
			Language: strings.TrimSpace(row.Language),
			Format:   strings.TrimSpace(row.Format),
		}
		if !track.IsEmpty() {
			payload.Subtitles = append(payload.Subtitles, track)
		}
	}

	return payload, nil
}

// Draft возвращает копию введённых значений без файла (для повторного показа формы).
// Гарантирует хотя бы одну строку аудио и субтитров.
func (f *UploadForm) Draft() *UploadForm {
	d := &UploadForm{
		Title:           f.Title,
		Description:     f.Description,
		Tags:            f.Tags,
		VideoCodec:      f.VideoCodec,
		VideoResolution: f.VideoResolution,
		VideoBitrate:    f.VideoBitrate,
		Audios:          append([]AudioRow{}, f.Audios...),
		Subtitles:       append([]SubtitleRow{}, f.Subtitles...),
	}
	if len(d.Audios) == 0 {
		d.Audios = []AudioRow{{}}
	}
	if len(d.Subtitles) == 0 {
		d.Subtitles = []SubtitleRow{{}}
	}
	return d
}

// ApplyRowAction добавляет или удаляет строку дорожки.
// action: "add_audio", "add_subtitle", "remove_audio:N", "remove_subtitle:N".
// Возвращает false, если action не распознан.
func (f *UploadForm) ApplyRowAction(action string) bool {
	kind, idxStr, hasIdx := strings.Cut(action, ":")
	switch {
	case kind == "add_audio" && !hasIdx:
		f.Audios = append(f.Audios, AudioRow{})
	case kind == "add_subtitle" && !hasIdx:
		f.Subtitles = append(f.Subtitles, SubtitleRow{})
	case kind == "remove_audio" && hasIdx:
		i, err := strconv.Atoi(idxStr)
		if err != nil || i < 0 || i >= len(f.Audios) {
			return false
		}
		f.Audios = append(f.Audios[:i], f.Audios[i+1:]...)
	case kind == "remove_subtitle" && hasIdx:
		i, err := strconv.Atoi(idxStr)
		if err != nil || i < 0 || i >= len(f.Subtitles) {
			return false
		}
		f.Subtitles = append(f.Subtitles[:i], f.Subtitles[i+1:]...)
	default:
		return false
	}
	return true
}

func maxLen(lists ...[]string) int {
	n := 0
	for _, l := range lists {
		n = max(n, len(l))
	}
	return n
}

func at(list []string, i int) string {
	if i < len(list) {
		return list[i]
	}
	return ""
}
