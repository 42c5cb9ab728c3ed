package structurestore_test

import (
	"errors"
	"testing"

	structurestore "github.com/dalemusser/kemahasiswaan/internal/app/store/structures"
	"github.com/dalemusser/kemahasiswaan/internal/app/system/indexes"
	"github.com/dalemusser/kemahasiswaan/internal/domain/models"
	"github.com/dalemusser/kemahasiswaan/internal/testutil"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var structOpts = cmp.Options{
	cmpopts.IgnoreFields(models.OrgStructure{}, "ID", "Version", "CreatedAt", "UpdatedAt"),
	cmpopts.EquateEmpty(),
}

func TestStore_SaveCreatesThenReplaces(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := structurestore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	first := testutil.SampleStructure(models.KindBEM, "2025-2026")
	created, err := store.Save(ctx, first)
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if created.ID == primitive.NilObjectID {
		t.Error("expected ID to be assigned")
	}
	if created.CreatedAt.IsZero() || created.UpdatedAt.IsZero() {
		t.Error("expected timestamps to be set")
	}
	if diff := cmp.Diff(first, created, structOpts); diff != "" {
		t.Errorf("saved structure mismatch (-want +got):\n%s", diff)
	}

	if created.Version != 1 {
		t.Errorf("Version: got %d, want 1", created.Version)
	}

	second := created
	second.Groups = second.Groups[:1]
	second.Positions = nil
	updated, err := store.Save(ctx, second)
	if err != nil {
		t.Fatalf("second Save failed: %v", err)
	}
	if updated.ID != created.ID {
		t.Errorf("ID: got %v, want %v", updated.ID, created.ID)
	}
	if !updated.CreatedAt.Equal(created.CreatedAt) {
		t.Errorf("CreatedAt changed: got %v, want %v", updated.CreatedAt, created.CreatedAt)
	}
	if len(updated.Groups) != 1 {
		t.Errorf("Groups: got %d, want 1", len(updated.Groups))
	}
	if len(updated.Positions) != 0 {
		t.Errorf("Positions: got %d, want 0", len(updated.Positions))
	}
	if updated.Version != 2 {
		t.Errorf("Version: got %d, want 2", updated.Version)
	}
}

func TestStore_SaveRejectsStaleVersion(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := structurestore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	created, err := store.Save(ctx, testutil.SampleStructure(models.KindMPM, "2025-2026"))
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	// Two writers both read created; the first one wins.
	a, b := created, created
	a.Groups = a.Groups[:1]
	winner, err := store.Save(ctx, a)
	if err != nil {
		t.Fatalf("first writer Save failed: %v", err)
	}
	b.Positions = nil
	if _, err := store.Save(ctx, b); !errors.Is(err, structurestore.ErrConflict) {
		t.Fatalf("stale Save: got %v, want ErrConflict", err)
	}

	// A second create for the same key is a conflict too.
	if _, err := store.Save(ctx, testutil.SampleStructure(models.KindMPM, "2025-2026")); !errors.Is(err, structurestore.ErrConflict) {
		t.Errorf("duplicate create: got %v, want ErrConflict", err)
	}

	got, err := store.Get(ctx, models.KindMPM, "2025-2026")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Version != winner.Version {
		t.Errorf("Version: got %d, want %d", got.Version, winner.Version)
	}
	if diff := cmp.Diff(winner, got, structOpts); diff != "" {
		t.Errorf("stored structure mismatch (-want +got):\n%s", diff)
	}

	all, err := store.List(ctx, models.KindMPM)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(all) != 1 {
		t.Errorf("List: got %d documents, want 1", len(all))
	}
}

func TestStore_GetNotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := structurestore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	_, err := store.Get(ctx, models.KindMPM, "2030-2031")
	if !errors.Is(err, structurestore.ErrNotFound) {
		t.Errorf("Get: got %v, want ErrNotFound", err)
	}
}

func TestStore_KindIsCaseInsensitive(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := structurestore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := store.Save(ctx, testutil.SampleStructure("BEM", "2025-2026")); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	got, err := store.Get(ctx, "bem", "2025-2026")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Kind != models.KindBEM {
		t.Errorf("Kind: got %q, want %q", got.Kind, models.KindBEM)
	}
}

func TestStore_DeleteAndList(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := structurestore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fixtures.CreateStructure(ctx, testutil.SampleStructure(models.KindBEM, "2024-2025"))
	fixtures.CreateStructure(ctx, testutil.SampleStructure(models.KindBEM, "2025-2026"))
	fixtures.CreateStructure(ctx, testutil.SampleStructure(models.KindMPM, "2025-2026"))

	all, err := store.List(ctx, "")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	var got []string
	for _, o := range all {
		got = append(got, o.Kind+"/"+o.Period)
	}
	want := []string{"bem/2025-2026", "mpm/2025-2026", "bem/2024-2025"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("List order mismatch (-want +got):\n%s", diff)
	}

	if err := store.Delete(ctx, models.KindBEM, "2024-2025"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if err := store.Delete(ctx, models.KindBEM, "2024-2025"); !errors.Is(err, structurestore.ErrNotFound) {
		t.Errorf("second Delete: got %v, want ErrNotFound", err)
	}

	bem, err := store.List(ctx, models.KindBEM)
	if err != nil {
		t.Fatalf("List(bem) failed: %v", err)
	}
	if len(bem) != 1 || bem[0].Period != "2025-2026" {
		t.Errorf("List(bem): got %+v", bem)
	}
}
