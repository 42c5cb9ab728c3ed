// internal/app/store/structures/structurestore.go
package structurestore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/kemahasiswaan/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection is the name of the collection holding saved structures.
const Collection = "org_structures"

var (
	ErrNotFound = errors.New("organization structure not found")
	ErrConflict = errors.New("organization structure was changed by another save")
)

// Store provides access to the org_structures collection.
// There is one document per (kind, period).
type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection(Collection)}
}

func key(kind, period string) bson.M {
	return bson.M{"kind": text.Fold(kind), "period": period}
}

// Get returns the structure saved for kind and period.
func (s *Store) Get(ctx context.Context, kind, period string) (models.OrgStructure, error) {
	var o models.OrgStructure
	err := s.c.FindOne(ctx, key(kind, period)).Decode(&o)
	if err == mongo.ErrNoDocuments {
		return models.OrgStructure{}, ErrNotFound
	}
	if err != nil {
		return models.OrgStructure{}, err
	}
	return o, nil
}

// Save replaces the positions and groups of the structure identified by
// o.Kind and o.Period, creating it if needed. The stored document is returned.
//
// o.Version must be the version the caller read; zero means the structure
// has not been saved yet. When another save has happened since, nothing is
// written and ErrConflict is returned.
func (s *Store) Save(ctx context.Context, o models.OrgStructure) (models.OrgStructure, error) {
	now := time.Now().UTC()
	if o.Positions == nil {
		o.Positions = []models.Position{}
	}
	if o.Groups == nil {
		o.Groups = []models.Group{}
	}
	for i := range o.Groups {
		if o.Groups[i].Members == nil {
			o.Groups[i].Members = []models.Person{}
		}
		if o.Groups[i].Notes == nil {
			o.Groups[i].Notes = []string{}
		}
	}

	filter := key(o.Kind, o.Period)
	if o.Version == 0 {
		// Documents written before versioning have no version field.
		filter["version"] = bson.M{"$in": bson.A{nil, int64(0)}}
	} else {
		filter["version"] = o.Version
	}
	update := bson.M{
		"$set": bson.M{
			"positions":  o.Positions,
			"groups":     o.Groups,
			"updated_at": now,
		},
		"$inc": bson.M{"version": int64(1)},
		"$setOnInsert": bson.M{
			"_id":        primitive.NewObjectID(),
			"created_at": now,
		},
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	// A stale version misses the filter, so the upsert collides with the
	// stored document on the unique (kind, period) index.
	var saved models.OrgStructure
	if err := s.c.FindOneAndUpdate(ctx, filter, update, opts).Decode(&saved); err != nil {
		if wafflemongo.IsDup(err) {
			return models.OrgStructure{}, ErrConflict
		}
		return models.OrgStructure{}, err
	}
	return saved, nil
}

// Delete removes the structure for kind and period.
// Returns ErrNotFound when nothing was deleted.
func (s *Store) Delete(ctx context.Context, kind, period string) error {
	res, err := s.c.DeleteOne(ctx, key(kind, period))
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// List returns every saved structure, newest period first.
// An empty kind lists all kinds.
func (s *Store) List(ctx context.Context, kind string) ([]models.OrgStructure, error) {
	filter := bson.M{}
	if kind != "" {
		filter["kind"] = text.Fold(kind)
	}
	opts := options.Find().SetSort(bson.D{{Key: "period", Value: -1}, {Key: "kind", Value: 1}})

	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.OrgStructure{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
