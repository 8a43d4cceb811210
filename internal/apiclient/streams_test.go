package apiclient

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bigkaa/goartstore/content-dashboard/internal/domain/model"
)

func TestBuildStreams(t *testing.T) {
	tests := []struct {
		name      string
		video     *model.VideoTrack
		audios    []model.AudioTrack
		subtitles []model.SubtitleTrack
		want      []Stream
	}{
		{
			name: "ничего не задано",
			want: []Stream{},
		},
		{
			name:  "пустое видео пропускается",
			video: &model.VideoTrack{},
			want:  []Stream{},
		},
		{
			name:  "только битрейт видео",
			video: &model.VideoTrack{Bitrate: 800},
			want:  []Stream{{Type: StreamVideo, Bitrate: 800}},
		},
		{
			name:   "некорректные каналы опускаются",
			audios: []model.AudioTrack{{Language: "en", Codec: "AAC", Channels: "stereo"}},
			want:   []Stream{{Type: StreamAudio, Codec: "AAC", Language: "en"}},
		},
		{
			name:      "порядок: видео, аудио, субтитры",
			video:     &model.VideoTrack{Codec: "H.264"},
			audios:    []model.AudioTrack{{}, {Language: "ru", Channels: "5.1"}},
			subtitles: []model.SubtitleTrack{{Language: "en", Format: "srt"}, {}},
			want: []Stream{
				{Type: StreamVideo, Codec: "H.264"},
				{Type: StreamAudio, Language: "ru", Channels: 5.1},
				{Type: StreamSubtitle, Codec: "srt", Language: "en"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BuildStreams(tt.video, tt.audios, tt.subtitles))
		})
	}
}
