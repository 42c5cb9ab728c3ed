package validators_test

import (
	"testing"
	"time"

	"github.com/dalemusser/kemahasiswaan/internal/app/system/validators"
	"github.com/dalemusser/kemahasiswaan/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestEnsureAll_Idempotent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := validators.EnsureAll(ctx, db); err != nil {
		t.Fatalf("First EnsureAll failed: %v", err)
	}
	if err := validators.EnsureAll(ctx, db); err != nil {
		t.Fatalf("Second EnsureAll failed: %v", err)
	}
}

func TestEnsureAll_CreatesCollections(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := validators.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	names, err := db.ListCollectionNames(ctx, bson.M{})
	if err != nil {
		t.Fatalf("ListCollectionNames failed: %v", err)
	}
	collMap := make(map[string]bool)
	for _, name := range names {
		collMap[name] = true
	}
	for _, expected := range []string{"org_structures", "photos.files", "photos.chunks"} {
		if !collMap[expected] {
			t.Errorf("expected collection %q to exist", expected)
		}
	}
}

func validStructure() bson.M {
	now := time.Now().UTC()
	return bson.M{
		"_id":    primitive.NewObjectID(),
		"kind":   "bem",
		"period": "2025-2026",
		"positions": bson.A{
			bson.M{"title": "Ketua", "occupant": bson.M{"name": "Budi"}},
		},
		"groups": bson.A{
			bson.M{
				"name":    "Komisi A",
				"leader":  bson.M{"name": "Rina", "photo": "photos/2025/01/aaaaaaaa-rina.jpg"},
				"members": bson.A{bson.M{"name": "Andi"}},
				"notes":   bson.A{"Rapat kerja"},
			},
		},
		"created_at": now,
		"updated_at": now,
	}
}

func TestStructuresValidator(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := validators.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}
	c := db.Collection("org_structures")

	if _, err := c.InsertOne(ctx, validStructure()); err != nil {
		t.Fatalf("valid structure rejected: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(bson.M)
	}{
		{"unknown kind", func(d bson.M) { d["kind"] = "dpm" }},
		{"bad period", func(d bson.M) { d["period"] = "2025" }},
		{"missing groups", func(d bson.M) { delete(d, "groups") }},
		{"group without name", func(d bson.M) {
			d["groups"] = bson.A{bson.M{"members": bson.A{}, "notes": bson.A{}}}
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := validStructure()
			tt.mutate(doc)
			if _, err := c.InsertOne(ctx, doc); err == nil {
				t.Error("expected document validation to reject the insert")
			}
		})
	}
}
