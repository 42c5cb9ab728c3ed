package testutil

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/dalemusser/kemahasiswaan/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// WithChiURLParams adds chi URL parameters (key, value pairs) to the
// request context. Use this in handler tests that read chi.URLParam.
func WithChiURLParams(r *http.Request, kv ...string) *http.Request {
	rctx := chi.NewRouteContext()
	for i := 0; i+1 < len(kv); i += 2 {
		rctx.URLParams.Add(kv[i], kv[i+1])
	}
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// SampleStructure returns a small BEM structure with one stored photo.
func SampleStructure(kind, period string) models.OrgStructure {
	return models.OrgStructure{
		Kind:   kind,
		Period: period,
		Positions: []models.Position{
			{Title: "Ketua", Occupant: models.Person{Name: "Budi Santoso", Photo: "photos/2025/01/aaaaaaaa-budi.jpg"}},
			{Title: "Wakil Ketua", Occupant: models.Person{Name: "Sari Wulandari"}},
		},
		Groups: []models.Group{
			{
				Name:    "Komisi A",
				Leader:  &models.Person{Name: "Rina"},
				Members: []models.Person{{Name: "Andi"}, {Name: "Dewi"}},
				Notes:   []string{"Rapat kerja", "Seminar kepemimpinan"},
			},
			{
				Name:    "Departemen Sosial Politik",
				Members: []models.Person{},
				Notes:   []string{},
			},
		},
	}
}

// CreateStructure inserts a structure directly into org_structures.
func (f *Fixtures) CreateStructure(ctx context.Context, o models.OrgStructure) models.OrgStructure {
	f.t.Helper()

	now := time.Now().UTC()
	o.ID = primitive.NewObjectID()
	o.CreatedAt = now
	o.UpdatedAt = now
	if _, err := f.db.Collection("org_structures").InsertOne(ctx, o); err != nil {
		f.t.Fatalf("failed to create test structure: %v", err)
	}
	return o
}
