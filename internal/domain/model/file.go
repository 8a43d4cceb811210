// Пакет model: доменные типы Content Dashboard.
// File: медиа-ассет (transport stream) с метаданными дорожек.
package model

import (
	"io"
	"strings"
)

// FileStatus: статус обработки файла (выставляется backend-конвейером).
type FileStatus string

const (
	// StatusProcessing: файл принят и обрабатывается
	StatusProcessing FileStatus = "processing"
	// StatusReady: обработка завершена
	StatusReady FileStatus = "ready"
	// StatusError: ошибка обработки
	StatusError FileStatus = "error"
	// StatusQueued: подтверждение приёма загрузки (ответ createUpload)
	StatusQueued FileStatus = "queued"
)

// VideoTrack: метаданные видеодорожки.
type VideoTrack struct {
	Codec      string `json:"codec,omitempty"`
	Resolution string `json:"resolution,omitempty"`
	// Bitrate: битрейт в kbps (0: не задан)
	Bitrate int `json:"bitrate,omitempty"`
}

// IsEmpty возвращает true, если ни одно поле дорожки не задано.
func (v *VideoTrack) IsEmpty() bool {
	return v == nil || (v.Codec == "" && v.Resolution == "" && v.Bitrate == 0)
}

// AudioTrack: метаданные аудиодорожки.
type AudioTrack struct {
	Language string `json:"language"`
	Codec    string `json:"codec"`
	// Channels: раскладка каналов в виде строки ("2.0", "5.1")
	Channels string `json:"channels"`
}

// IsEmpty возвращает true, если ни одно поле дорожки не задано.
func (a AudioTrack) IsEmpty() bool {
	return a.Language == "" && a.Codec == "" && a.Channels == ""
}

// SubtitleTrack: метаданные дорожки субтитров.
type SubtitleTrack struct {
	Language string `json:"language"`
	Format   string `json:"format"`
}

// IsEmpty возвращает true, если ни одно поле дорожки не задано.
func (s SubtitleTrack) IsEmpty() bool {
	return s.Language == "" && s.Format == ""
}

// File: запись медиа-ассета.
// ID и CreatedAt неизменяемы после создания, Size задаётся при загрузке.
type File struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description,omitempty"`
	Tags        []string        `json:"tags"`
	CreatedAt   string          `json:"createdAt"`
	Size        int64           `json:"size"`
	Status      FileStatus      `json:"status"`
	Video       *VideoTrack     `json:"video,omitempty"`
	Audios      []AudioTrack    `json:"audios"`
	Subtitles   []SubtitleTrack `json:"subtitles"`
}

// Normalize заменяет отсутствующие последовательности пустыми.
// Tags, Audios и Subtitles никогда не бывают nil.
func (f *File) Normalize() {
	if f.Tags == nil {
		f.Tags = []string{}
	}
	if f.Audios == nil {
		f.Audios = []AudioTrack{}
	}
	if f.Subtitles == nil {
		f.Subtitles = []SubtitleTrack{}
	}
}

// Clone возвращает глубокую копию записи.
func (f *File) Clone() *File {
	c := *f
	c.Tags = append([]string{}, f.Tags...)
	c.Audios = append([]AudioTrack{}, f.Audios...)
	c.Subtitles = append([]SubtitleTrack{}, f.Subtitles...)
	if f.Video != nil {
		v := *f.Video
		c.Video = &v
	}
	return &c
}

// Matches проверяет запись на соответствие фильтру.
// Query: подстрока title или description без учёта регистра,
// Status: точное совпадение.
func (f *File) Matches(filter FileFilter) bool {
	if filter.Query != "" {
		q := strings.ToLower(filter.Query)
		if !strings.Contains(strings.ToLower(f.Title), q) &&
			!strings.Contains(strings.ToLower(f.Description), q) {
			return false
		}
	}
	if filter.Status != "" && string(f.Status) != filter.Status {
		return false
	}
	return true
}

// FileFilter: параметры listFiles. Пустые поля не фильтруют.
type FileFilter struct {
	Query  string
	Status string
}

// FileList: результат listFiles.
type FileList struct {
	Items []*File `json:"items"`
	Total int     `json:"total"`
}

// FilePatch: частичное обновление (shallow merge).
// nil-поле означает «не изменять».
type FilePatch struct {
	Title       *string          `json:"title,omitempty"`
	Description *string          `json:"description,omitempty"`
	Tags        *[]string        `json:"tags,omitempty"`
	Status      *FileStatus      `json:"status,omitempty"`
	Video       *VideoTrack      `json:"video,omitempty"`
	Audios      *[]AudioTrack    `json:"audios,omitempty"`
	Subtitles   *[]SubtitleTrack `json:"subtitles,omitempty"`
}

// HasTracks возвращает true, если патч затрагивает дорожки.
func (p FilePatch) HasTracks() bool {
	return p.Video != nil || p.Audios != nil || p.Subtitles != nil
}

// Apply применяет патч к записи. Незаданные поля не трогаются.
func (p FilePatch) Apply(f *File) {
	if p.Title != nil {
		f.Title = *p.Title
	}
	if p.Description != nil {
		f.Description = *p.Description
	}
	if p.Tags != nil {
		f.Tags = append([]string{}, (*p.Tags)...)
	}
	if p.Status != nil {
		f.Status = *p.Status
	}
	if p.Video != nil {
		v := *p.Video
		f.Video = &v
	}
	if p.Audios != nil {
		f.Audios = append([]AudioTrack{}, (*p.Audios)...)
	}
	if p.Subtitles != nil {
		f.Subtitles = append([]SubtitleTrack{}, (*p.Subtitles)...)
	}
}

// UploadPayload: данные createUpload: поток файла и метаданные.
type UploadPayload struct {
	// File: содержимое файла (обязательно)
	File io.Reader
	// Filename: исходное имя файла
	Filename string
	// Size: размер в байтах, если известен заранее (0: определить по потоку)
	Size        int64
	Title       string
	Description string
	// Tags: теги через запятую, как их вводит пользователь
	Tags      string
	Video     *VideoTrack
	Audios    []AudioTrack
	Subtitles []SubtitleTrack
}

// UploadResult: подтверждение createUpload.
type UploadResult struct {
	ID     string     `json:"id"`
	Status FileStatus `json:"status"`
}

// ParseTags разбирает строку тегов через запятую.
// Пробелы обрезаются, пустые элементы отбрасываются, порядок сохраняется.
func ParseTags(s string) []string {
	result := []string{}
	for _, t := range strings.Split(s, ",") {
		t = strings.TrimSpace(t)
		if t != "" {
			result = append(result, t)
		}
	}
	return result
}
