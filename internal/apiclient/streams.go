// streams.go: преобразование дорожек в массив streams backend API.
package apiclient

import (
	"strconv"
	"strings"

	"github.com/bigkaa/goartstore/content-dashboard/internal/domain/model"
)

// Типы потоков backend.
const (
	StreamVideo    = "video"
	StreamAudio    = "audio"
	StreamSubtitle = "subtitle"
)

// Stream: элемент streams в multipart и JSON запросах backend.
// Для субтитров Codec содержит формат (srt, vtt).
type Stream struct {
	Type       string  `json:"type"`
	Codec      string  `json:"codec,omitempty"`
	Language   string  `json:"language,omitempty"`
	Resolution string  `json:"resolution,omitempty"`
	Bitrate    int     `json:"bitrate,omitempty"`
	Channels   float64 `json:"channels,omitempty"`
}

// BuildStreams собирает streams из дорожек.
// Пустые дорожки пропускаются, видеопоток добавляется только если задано хотя бы одно поле.
// Нечисловое значение channels опускается.
func BuildStreams(video *model.VideoTrack, audios []model.AudioTrack, subtitles []model.SubtitleTrack) []Stream {
	streams := make([]Stream, 0, 1+len(audios)+len(subtitles))

	if !video.IsEmpty() {
		streams = append(streams, Stream{
			Type:       StreamVideo,
			Codec:      video.Codec,
			Resolution: video.Resolution,
			Bitrate:    video.Bitrate,
		})
	}

	for _, a := range audios {
		if a.IsEmpty() {
			continue
		}
		streams = append(streams, Stream{
			Type:     StreamAudio,
			Codec:    a.Codec,
			Language: a.Language,
			Channels: parseChannels(a.Channels),
		})
	}

	for _, s := range subtitles {
		if s.IsEmpty() {
			continue
		}
		streams = append(streams, Stream{
			Type:     StreamSubtitle,
			Codec:    s.Format,
			Language: s.Language,
		})
	}

	return streams
}

// parseChannels преобразует "5.1" → 5.1. Некорректное значение → 0.
func parseChannels(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || v < 0 {
		return 0
	}
	return v
}
