package workers

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/dalemusser/kemahasiswaan/internal/domain/models"
	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"
)

type fakePhotos struct {
	mu       sync.Mutex
	uploaded map[string]time.Time
	failOn   string
}

func (f *fakePhotos) ListBefore(_ context.Context, t time.Time) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []string
	for ref, at := range f.uploaded {
		if at.Before(t) {
			out = append(out, ref)
		}
	}
	sort.Strings(out)
	return out, nil
}

func (f *fakePhotos) Delete(_ context.Context, ref string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if ref == f.failOn {
		return errors.New("gridfs unavailable")
	}
	delete(f.uploaded, ref)
	return nil
}

func (f *fakePhotos) refs() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []string
	for ref := range f.uploaded {
		out = append(out, ref)
	}
	sort.Strings(out)
	return out
}

type fakeStructures struct {
	docs []models.OrgStructure
	err  error
}

func (f fakeStructures) List(context.Context, string) ([]models.OrgStructure, error) {
	return f.docs, f.err
}

func TestPhotoSweep_RemovesOnlyOldUnreferenced(t *testing.T) {
	now := time.Date(2025, 10, 1, 12, 0, 0, 0, time.UTC)
	photos := &fakePhotos{uploaded: map[string]time.Time{
		"photos/2025/09/aaaaaaaa-budi.png": now.Add(-48 * time.Hour), // referenced
		"photos/2025/09/bbbbbbbb-lama.png": now.Add(-48 * time.Hour), // orphan
		"photos/2025/10/cccccccc-baru.png": now.Add(-time.Minute),    // orphan, too recent
	}}
	structures := fakeStructures{docs: []models.OrgStructure{{
		Kind:      models.KindBEM,
		Period:    "2025-2026",
		Positions: []models.Position{{Title: "Ketua", Occupant: models.Person{Name: "Budi", Photo: "photos/2025/09/aaaaaaaa-budi.png"}}},
	}}}

	w := NewPhotoSweep(photos, structures, zap.NewNop(), time.Hour, 24*time.Hour)
	w.now = func() time.Time { return now }

	n, err := w.Sweep(context.Background())
	if err != nil {
		t.Fatalf("Sweep: %v", err)
	}
	if n != 1 {
		t.Errorf("removed: got %d, want 1", n)
	}
	want := []string{"photos/2025/09/aaaaaaaa-budi.png", "photos/2025/10/cccccccc-baru.png"}
	if diff := cmp.Diff(want, photos.refs()); diff != "" {
		t.Errorf("remaining photos (-want +got):\n%s", diff)
	}
}

func TestPhotoSweep_DeleteFailureContinues(t *testing.T) {
	now := time.Now()
	photos := &fakePhotos{
		uploaded: map[string]time.Time{
			"photos/a.png": now.Add(-time.Hour),
			"photos/b.png": now.Add(-time.Hour),
		},
		failOn: "photos/a.png",
	}

	w := NewPhotoSweep(photos, fakeStructures{}, zap.NewNop(), time.Hour, time.Minute)
	n, err := w.Sweep(context.Background())
	if err != nil {
		t.Fatalf("Sweep: %v", err)
	}
	if n != 1 {
		t.Errorf("removed: got %d, want 1", n)
	}
}

func TestPhotoSweep_ListError(t *testing.T) {
	photos := &fakePhotos{uploaded: map[string]time.Time{"photos/a.png": time.Now().Add(-time.Hour)}}
	w := NewPhotoSweep(photos, fakeStructures{err: errors.New("boom")}, zap.NewNop(), time.Hour, time.Minute)

	if _, err := w.Sweep(context.Background()); err == nil {
		t.Fatal("Sweep: expected error when structures cannot be listed")
	}
	if len(photos.refs()) != 1 {
		t.Error("photos removed although structures could not be listed")
	}
}

func TestPhotoSweep_StartStop(t *testing.T) {
	w := NewPhotoSweep(&fakePhotos{}, fakeStructures{}, zap.NewNop(), time.Millisecond, time.Minute)
	w.Start()
	time.Sleep(5 * time.Millisecond)
	w.Stop()
}
