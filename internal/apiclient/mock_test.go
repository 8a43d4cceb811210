package apiclient

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bigkaa/goartstore/content-dashboard/internal/domain/model"
	"github.com/bigkaa/goartstore/content-dashboard/internal/mockstore"
)

func newTestMock(t *testing.T) *Mock {
	t.Helper()
	store := mockstore.New(testLogger())
	store.Seed()
	return NewMock(store, "http://dash.local/")
}

func TestMock_ListFiles_Query(t *testing.T) {
	ctx := context.Background()
	api := newTestMock(t)

	all, err := api.ListFiles(ctx, model.FileFilter{})
	require.NoError(t, err)
	assert.Equal(t, 1, all.Total)

	// Регистронезависимая подстрока по title и description
	for _, q := range []string{"sample", "SAMPLE", "ts str"} {
		list, err := api.ListFiles(ctx, model.FileFilter{Query: q})
		require.NoError(t, err)
		assert.Len(t, list.Items, 1, "query %q", q)
	}

	list, err := api.ListFiles(ctx, model.FileFilter{Status: "unknown"})
	require.NoError(t, err)
	assert.NotNil(t, list.Items)
	assert.Empty(t, list.Items)
	assert.Equal(t, 0, list.Total)
}

func TestMock_CreateThenSearch(t *testing.T) {
	ctx := context.Background()
	api := NewMock(mockstore.New(testLogger()), "")

	res, err := api.CreateUpload(ctx, &model.UploadPayload{
		File:  strings.NewReader("data"),
		Title: "Sample",
	})
	require.NoError(t, err)
	assert.Equal(t, model.StatusQueued, res.Status)

	found, err := api.ListFiles(ctx, model.FileFilter{Query: "samp"})
	require.NoError(t, err)
	require.Len(t, found.Items, 1)
	assert.Equal(t, res.ID, found.Items[0].ID)

	none, err := api.ListFiles(ctx, model.FileFilter{Query: "zzz"})
	require.NoError(t, err)
	assert.Empty(t, none.Items)
}

func TestMock_CreateThenGet(t *testing.T) {
	ctx := context.Background()
	api := newTestMock(t)

	payload := &model.UploadPayload{
		File:        strings.NewReader("0123456789"),
		Filename:    "news.ts",
		Title:       "Evening news",
		Description: "Daily broadcast",
		Tags:        "news, daily",
		Video:       &model.VideoTrack{Codec: "H.265", Resolution: "3840x2160", Bitrate: 12000},
		Audios:      []model.AudioTrack{{Language: "ru", Codec: "AAC", Channels: "2.0"}},
		Subtitles:   []model.SubtitleTrack{{Language: "en", Format: "vtt"}},
	}
	res, err := api.CreateUpload(ctx, payload)
	require.NoError(t, err)

	f, err := api.GetFile(ctx, res.ID)
	require.NoError(t, err)
	assert.Equal(t, "Evening news", f.Title)
	assert.Equal(t, "Daily broadcast", f.Description)
	assert.Equal(t, []string{"news", "daily"}, f.Tags)
	assert.Equal(t, payload.Video, f.Video)
	assert.Equal(t, payload.Audios, f.Audios)
	assert.Equal(t, payload.Subtitles, f.Subtitles)
	assert.NotEqual(t, model.StatusReady, f.Status)

	// Новая запись: первая в списке
	list, err := api.ListFiles(ctx, model.FileFilter{})
	require.NoError(t, err)
	assert.Equal(t, res.ID, list.Items[0].ID)
}

func TestMock_CreateUpload_RequiresFile(t *testing.T) {
	api := newTestMock(t)

	_, err := api.CreateUpload(context.Background(), &model.UploadPayload{Title: "x"})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = api.CreateUpload(context.Background(), nil)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestMock_UpdateFile_OnlyTitle(t *testing.T) {
	ctx := context.Background()
	api := newTestMock(t)

	before, err := api.GetFile(ctx, "f1")
	require.NoError(t, err)

	title := "X"
	after, err := api.UpdateFile(ctx, "f1", model.FilePatch{Title: &title})
	require.NoError(t, err)

	expected := before.Clone()
	expected.Title = "X"
	assert.Equal(t, expected, after)

	_, err = api.UpdateFile(ctx, "missing", model.FilePatch{Title: &title})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMock_DeleteThenGet(t *testing.T) {
	ctx := context.Background()
	api := newTestMock(t)

	deleted, err := api.DeleteFile(ctx, "f1")
	require.NoError(t, err)
	assert.True(t, deleted)

	_, err = api.GetFile(ctx, "f1")
	assert.ErrorIs(t, err, ErrNotFound)

	// Повторное удаление: no-op
	deleted, err = api.DeleteFile(ctx, "f1")
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestMock_PreviewURL(t *testing.T) {
	api := newTestMock(t)
	assert.Equal(t, "http://dash.local/mock-preview/f1.mp4", api.PreviewURL("f1"))
	assert.Equal(t, "http://dash.local/mock-preview/a%2Fb.mp4", api.PreviewURL("a/b"))
	assert.Equal(t, api.PreviewURL("f1"), api.PreviewURL("f1"))
}
