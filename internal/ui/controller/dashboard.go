package controller

import (
	"context"
	"log/slog"
	"sync"

	"github.com/bigkaa/goartstore/content-dashboard/internal/apiclient"
	"github.com/bigkaa/goartstore/content-dashboard/internal/domain/model"
)

// RecentLimit: количество последних файлов на главной.
const RecentLimit = 6

// Stats: сводка по загруженному списку.
type Stats struct {
	Total      int
	Ready      int
	Processing int
}

// DashboardView: снимок состояния главной страницы.
type DashboardView struct {
	Stats    Stats
	Recent   []*model.File
	Busy     bool
	Failure  *Failure
	Selected *model.File
}

// Dashboard: контроллер главной: полный список, сводка и последние файлы.
type Dashboard struct {
	api    apiclient.FileAPI
	logger *slog.Logger
	reload ReloadSignal

	mu       sync.Mutex
	seq      loadSeq
	items    []*model.File
	busy     bool
	failure  *Failure
	selected *model.File
}

// NewDashboard создаёт контроллер главной страницы.
func NewDashboard(api apiclient.FileAPI, logger *slog.Logger) *Dashboard {
	d := &Dashboard{
		api:    api,
		logger: logger,
		items:  []*model.File{},
	}
	d.reload.Subscribe(d.Load)
	return d
}

// Reload возвращает сигнал перезагрузки.
func (d *Dashboard) Reload() *ReloadSignal { return &d.reload }

// Load загружает полный список файлов.
func (d *Dashboard) Load(ctx context.Context) {
	d.mu.Lock()
	seq := d.seq.begin()
	d.busy = true
	d.failure = nil
	d.mu.Unlock()

	list, err := d.api.ListFiles(ctx, model.FileFilter{})

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.seq.stale(seq) {
		return
	}
	d.busy = false
	if err != nil {
		d.logger.Warn("Ошибка загрузки главной", slog.String("error", err.Error()))
		d.failure = newFailure(MsgLoadFailed, err)
		return
	}
	d.items = list.Items
}

// Select открывает детали файла из загруженного списка.
func (d *Dashboard) Select(id string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, f := range d.items {
		if f.ID == id {
			d.selected = f
			return
		}
	}
}

// CloseDetails закрывает окно деталей.
func (d *Dashboard) CloseDetails() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.selected = nil
}

// View возвращает снимок состояния.
func (d *Dashboard) View() DashboardView {
	d.mu.Lock()
	defer d.mu.Unlock()

	recent := d.items
	if len(recent) > RecentLimit {
		recent = recent[:RecentLimit]
	}
	return DashboardView{
		Stats:    ComputeStats(d.items),
		Recent:   append([]*model.File{}, recent...),
		Busy:     d.busy,
		Failure:  d.failure,
		Selected: d.selected,
	}
}

// ComputeStats считает сводку по списку.
func ComputeStats(items []*model.File) Stats {
	s := Stats{Total: len(items)}
	for _, f := range items {
		switch f.Status {
		case model.StatusReady:
			s.Ready++
		case model.StatusProcessing:
			s.Processing++
		}
	}
	return s
}
