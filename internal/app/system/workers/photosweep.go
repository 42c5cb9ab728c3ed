// internal/app/system/workers/photosweep.go
package workers

import (
	"context"
	"sync"
	"time"

	"github.com/dalemusser/kemahasiswaan/internal/domain/models"
	"go.uber.org/zap"
)

// PhotoSource lists and removes stored photos.
type PhotoSource interface {
	ListBefore(ctx context.Context, t time.Time) ([]string, error)
	Delete(ctx context.Context, ref string) error
}

// StructureSource lists saved structures.
type StructureSource interface {
	List(ctx context.Context, kind string) ([]models.OrgStructure, error)
}

// PhotoSweep is a background worker that removes stored photos no saved
// structure references. A save that failed halfway, or a cleanup that
// failed after a save, leaves such photos behind.
type PhotoSweep struct {
	photos     PhotoSource
	structures StructureSource
	log        *zap.Logger
	interval   time.Duration
	grace      time.Duration
	now        func() time.Time
	stopCh     chan struct{}
	wg         sync.WaitGroup
}

// NewPhotoSweep creates a photo sweep worker.
//
// Parameters:
//   - interval: how often to sweep (e.g., 1 hour)
//   - grace: minimum age of a photo before it may be swept; it must exceed
//     the longest save so in-flight uploads are never touched
func NewPhotoSweep(photos PhotoSource, structures StructureSource, logger *zap.Logger, interval, grace time.Duration) *PhotoSweep {
	return &PhotoSweep{
		photos:     photos,
		structures: structures,
		log:        logger,
		interval:   interval,
		grace:      grace,
		now:        time.Now,
		stopCh:     make(chan struct{}),
	}
}

// Start begins the background sweep loop.
func (w *PhotoSweep) Start() {
	w.wg.Add(1)
	go w.run()
	w.log.Info("photo sweep worker started",
		zap.Duration("interval", w.interval),
		zap.Duration("grace", w.grace))
}

// Stop signals the worker to stop and waits for it to finish.
func (w *PhotoSweep) Stop() {
	close(w.stopCh)
	w.wg.Wait()
	w.log.Info("photo sweep worker stopped")
}

func (w *PhotoSweep) run() {
	defer w.wg.Done()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.stopCh:
			return
		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
			if _, err := w.Sweep(ctx); err != nil {
				w.log.Error("photo sweep failed", zap.Error(err))
			}
			cancel()
		}
	}
}

// Sweep runs one pass and returns how many photos were removed.
func (w *PhotoSweep) Sweep(ctx context.Context) (int, error) {
	// Candidates are read before structures, so a photo stored and saved
	// between the two reads is seen as referenced.
	candidates, err := w.photos.ListBefore(ctx, w.now().Add(-w.grace))
	if err != nil {
		return 0, err
	}
	if len(candidates) == 0 {
		return 0, nil
	}

	all, err := w.structures.List(ctx, "")
	if err != nil {
		return 0, err
	}
	referenced := make(map[string]bool)
	for _, o := range all {
		for _, ref := range o.PhotoRefs() {
			referenced[ref] = true
		}
	}

	removed := 0
	for _, ref := range candidates {
		if referenced[ref] {
			continue
		}
		if err := w.photos.Delete(ctx, ref); err != nil {
			w.log.Warn("photo sweep: delete failed", zap.String("ref", ref), zap.Error(err))
			continue
		}
		removed++
	}
	if removed > 0 {
		w.log.Info("swept unreferenced photos", zap.Int("count", removed))
	}
	return removed, nil
}
