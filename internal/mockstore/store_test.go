package mockstore

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bigkaa/goartstore/content-dashboard/internal/domain/model"
)

// testLogger возвращает логгер для тестов.
func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

// sequentialIDs: детерминированный генератор id.
func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

func newTestStore(opts ...Option) *Store {
	opts = append([]Option{WithIDGenerator(sequentialIDs())}, opts...)
	return New(testLogger(), opts...)
}

func TestStore_SeedAndGet(t *testing.T) {
	s := newTestStore()
	s.Seed()

	f, err := s.Get(context.Background(), "f1")
	require.NoError(t, err)
	assert.Equal(t, "Sample TS Stream", f.Title)
	assert.Equal(t, model.StatusReady, f.Status)
	assert.Len(t, f.Audios, 2)
	assert.Len(t, f.Subtitles, 1)
	require.NotNil(t, f.Video)
	assert.Equal(t, 4500, f.Video.Bitrate)
}

func TestStore_GetNotFound(t *testing.T) {
	s := newTestStore()

	_, err := s.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStore_CreatePrependsAndDefaults(t *testing.T) {
	s := newTestStore()
	s.Seed()
	ctx := context.Background()

	created, err := s.Create(ctx, &model.UploadPayload{
		File:        strings.NewReader("0123456789"),
		Filename:    "clip.ts",
		Title:       "Sample",
		Description: "evening news",
		Tags:        " news, , hd ",
		Video:       &model.VideoTrack{Codec: "H.265"},
		Audios:      []model.AudioTrack{{Language: "en", Codec: "AAC", Channels: "5.1"}},
	})
	require.NoError(t, err)

	assert.Equal(t, "id-1", created.ID)
	assert.Equal(t, model.StatusProcessing, created.Status)
	assert.Equal(t, int64(10), created.Size)
	assert.Equal(t, []string{"news", "hd"}, created.Tags)
	assert.NotNil(t, created.Subtitles, "subtitles должны быть пустым срезом, а не nil")
	assert.NotEmpty(t, created.CreatedAt)

	list, err := s.List(ctx, model.FileFilter{})
	require.NoError(t, err)
	require.Equal(t, 2, list.Total)
	assert.Equal(t, "id-1", list.Items[0].ID, "новая запись должна быть первой")
	assert.Equal(t, "f1", list.Items[1].ID)
}

func TestStore_CreateKnownSize(t *testing.T) {
	s := newTestStore()

	created, err := s.Create(context.Background(), &model.UploadPayload{
		File:  strings.NewReader("abc"),
		Size:  4096,
		Title: "sized",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(4096), created.Size)
}

func TestStore_ListFilters(t *testing.T) {
	s := newTestStore()
	s.Seed()
	ctx := context.Background()
	_, err := s.Create(ctx, &model.UploadPayload{File: strings.NewReader("x"), Title: "Football final", Description: "Sports HIGHLIGHTS"})
	require.NoError(t, err)

	tests := []struct {
		name   string
		filter model.FileFilter
		want   []string
	}{
		{name: "без фильтра", filter: model.FileFilter{}, want: []string{"id-1", "f1"}},
		{name: "подстрока title без учёта регистра", filter: model.FileFilter{Query: "FOOT"}, want: []string{"id-1"}},
		{name: "подстрока description", filter: model.FileFilter{Query: "highlights"}, want: []string{"id-1"}},
		{name: "нет совпадений", filter: model.FileFilter{Query: "zzz"}, want: []string{}},
		{name: "статус ready", filter: model.FileFilter{Status: "ready"}, want: []string{"f1"}},
		{name: "статус processing", filter: model.FileFilter{Status: "processing"}, want: []string{"id-1"}},
		{name: "неизвестный статус", filter: model.FileFilter{Status: "archived"}, want: []string{}},
		{name: "query и статус", filter: model.FileFilter{Query: "sample", Status: "processing"}, want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			list, err := s.List(ctx, tt.filter)
			require.NoError(t, err)
			ids := make([]string, 0, len(list.Items))
			for _, f := range list.Items {
				ids = append(ids, f.ID)
			}
			assert.Equal(t, tt.want, ids)
			assert.Equal(t, len(tt.want), list.Total)
		})
	}
}

func TestStore_UpdateMergesOnlySuppliedFields(t *testing.T) {
	s := newTestStore()
	s.Seed()
	ctx := context.Background()

	before, err := s.Get(ctx, "f1")
	require.NoError(t, err)

	title := "X"
	after, err := s.Update(ctx, "f1", model.FilePatch{Title: &title})
	require.NoError(t, err)

	assert.Equal(t, "X", after.Title)
	expected := before.Clone()
	expected.Title = "X"
	assert.Equal(t, expected, after)

	stored, err := s.Get(ctx, "f1")
	require.NoError(t, err)
	assert.Equal(t, after, stored)
}

func TestStore_UpdateNotFound(t *testing.T) {
	s := newTestStore()
	title := "X"

	_, err := s.Update(context.Background(), "nope", model.FilePatch{Title: &title})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStore_DeleteIsIdempotent(t *testing.T) {
	s := newTestStore()
	s.Seed()
	ctx := context.Background()

	removed, err := s.Delete(ctx, "f1")
	require.NoError(t, err)
	assert.True(t, removed)

	_, err = s.Get(ctx, "f1")
	assert.ErrorIs(t, err, ErrNotFound)

	removed, err = s.Delete(ctx, "f1")
	require.NoError(t, err)
	assert.False(t, removed, "повторное удаление должно вернуть false")
	assert.Equal(t, 0, s.Count())
}

func TestStore_ReturnsCopies(t *testing.T) {
	s := newTestStore()
	s.Seed()
	ctx := context.Background()

	f, err := s.Get(ctx, "f1")
	require.NoError(t, err)
	f.Title = "mutated"
	f.Tags[0] = "mutated"

	again, err := s.Get(ctx, "f1")
	require.NoError(t, err)
	assert.Equal(t, "Sample TS Stream", again.Title)
	assert.Equal(t, "sample", again.Tags[0])
}

func TestStore_LatencyRespectsContext(t *testing.T) {
	s := newTestStore(WithLatency(Latency{List: time.Hour}))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := s.List(ctx, model.FileFilter{})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), time.Second)
}

func TestStore_ConcurrentAccess(t *testing.T) {
	s := New(testLogger())
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			f, err := s.Create(ctx, &model.UploadPayload{File: strings.NewReader("data"), Title: fmt.Sprintf("t-%d", i)})
			if err != nil {
				t.Errorf("Create: %v", err)
				return
			}
			if _, err := s.List(ctx, model.FileFilter{Query: "t-"}); err != nil {
				t.Errorf("List: %v", err)
			}
			if i%2 == 0 {
				if _, err := s.Delete(ctx, f.ID); err != nil {
					t.Errorf("Delete: %v", err)
				}
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 10, s.Count())
}
