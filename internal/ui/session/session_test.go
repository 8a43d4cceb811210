package session

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bigkaa/goartstore/content-dashboard/internal/apiclient"
	"github.com/bigkaa/goartstore/content-dashboard/internal/domain/model"
	"github.com/bigkaa/goartstore/content-dashboard/internal/mockstore"
	"github.com/bigkaa/goartstore/content-dashboard/internal/router"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

// listCounter считает вызовы ListFiles.
type listCounter struct {
	apiclient.FileAPI
	calls atomic.Int32
}

func (c *listCounter) ListFiles(ctx context.Context, f model.FileFilter) (*model.FileList, error) {
	c.calls.Add(1)
	return c.FileAPI.ListFiles(ctx, f)
}

func newCountingAPI() *listCounter {
	store := mockstore.New(testLogger())
	store.Seed()
	return &listCounter{FileAPI: apiclient.NewMock(store, "")}
}

func TestSession_Visit_MountsOnRouteChange(t *testing.T) {
	ctx := context.Background()
	api := newCountingAPI()
	s := New("s1", api, testLogger())

	assert.Equal(t, router.PageDashboard, s.Visit(ctx, ""))
	assert.Equal(t, int32(1), api.calls.Load())
	assert.Len(t, s.Dashboard.View().Recent, 1)

	assert.Equal(t, router.PageFiles, s.Visit(ctx, "/files"))
	assert.Equal(t, int32(2), api.calls.Load())
	assert.Len(t, s.Files.View().Items, 1)

	// Неизвестный путь: Dashboard, маршрут сменился → загрузка
	assert.Equal(t, router.PageDashboard, s.Visit(ctx, "/unknown"))
	assert.Equal(t, int32(3), api.calls.Load())
	assert.Equal(t, "/unknown", s.Router.CurrentPath())

	assert.Equal(t, router.PageUploads, s.Visit(ctx, "/uploads"))
	assert.Len(t, s.Uploads.View().Items, 1)
}

func TestSession_Visit_RepeatedShowRefetches(t *testing.T) {
	ctx := context.Background()
	api := newCountingAPI()
	s := New("s1", api, testLogger())

	for range 3 {
		s.Visit(ctx, "/files")
	}
	assert.Equal(t, int32(3), api.calls.Load())
}

func TestSession_Visit_AfterActionSkipsReload(t *testing.T) {
	ctx := context.Background()
	api := newCountingAPI()
	s := New("s1", api, testLogger())

	s.Visit(ctx, "/files")
	require.Equal(t, int32(1), api.calls.Load())

	// Возврат на ту же страницу после действия: без загрузки
	s.MarkActed()
	s.Visit(ctx, "/files")
	assert.Equal(t, int32(1), api.calls.Load())

	// Флаг одноразовый
	s.Visit(ctx, "/files")
	assert.Equal(t, int32(2), api.calls.Load())

	// После действия, но на другой маршрут: загрузка
	s.MarkActed()
	s.Visit(ctx, "/uploads")
	assert.Equal(t, int32(3), api.calls.Load())
}

func TestSession_Visit_RecoversAfterFailure(t *testing.T) {
	ctx := context.Background()
	api := &failingOnce{FileAPI: newCountingAPI()}
	s := New("s1", api, testLogger())

	s.Visit(ctx, "/files")
	require.NotNil(t, s.Files.View().Failure)

	// Повторный показ страницы (перезагрузка браузера) снимает ошибку
	s.Visit(ctx, "/files")
	view := s.Files.View()
	assert.Nil(t, view.Failure)
	assert.Len(t, view.Items, 1)
}

// failingOnce возвращает ошибку на первый ListFiles.
type failingOnce struct {
	apiclient.FileAPI
	failed atomic.Bool
}

func (f *failingOnce) ListFiles(ctx context.Context, filter model.FileFilter) (*model.FileList, error) {
	if f.failed.CompareAndSwap(false, true) {
		return nil, errors.New("backend недоступен")
	}
	return f.FileAPI.ListFiles(ctx, filter)
}

func TestSession_FileList(t *testing.T) {
	s := New("s1", newCountingAPI(), testLogger())

	fl, ok := s.FileList(router.PageFiles)
	require.True(t, ok)
	assert.Same(t, s.Files, fl)

	fl, ok = s.FileList(router.PageUploads)
	require.True(t, ok)
	assert.Same(t, s.Uploads.FileList, fl)

	_, ok = s.FileList(router.PageDashboard)
	assert.False(t, ok)
}

func TestStore_CreateGet(t *testing.T) {
	store := NewStore(newCountingAPI(), 2, time.Minute, testLogger())

	a := store.Create()
	b := store.Create()
	assert.NotEqual(t, a.ID, b.ID)

	got, ok := store.Get(a.ID)
	require.True(t, ok)
	assert.Same(t, a, got)

	// Третья сессия вытесняет наименее используемую (b)
	store.Create()
	_, ok = store.Get(b.ID)
	assert.False(t, ok)
	_, ok = store.Get(a.ID)
	assert.True(t, ok)
	assert.Equal(t, 2, store.Len())

	_, ok = store.Get("unknown")
	assert.False(t, ok)
}

func TestStore_Expiry(t *testing.T) {
	store := NewStore(newCountingAPI(), 10, 50*time.Millisecond, testLogger())
	s := store.Create()

	time.Sleep(150 * time.Millisecond)
	_, ok := store.Get(s.ID)
	assert.False(t, ok)
}
