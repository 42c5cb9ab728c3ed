// internal/domain/models/orgstructure.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Organization kinds. BEM is the student executive board, MPM the student
// representative assembly.
const (
	KindBEM = "bem"
	KindMPM = "mpm"
)

// OrgStructure is the saved organization chart of one organization for one
// period (e.g. BEM 2025-2026). There is exactly one document per
// (kind, period).
//
// Positions and groups are embedded; the whole tree is written on every save.
type OrgStructure struct {
	ID     primitive.ObjectID `bson:"_id" json:"id"`
	Kind   string             `bson:"kind" json:"kind"`
	Period string             `bson:"period" json:"period"` // "2025-2026"

	Positions []Position `bson:"positions" json:"positions"`
	Groups    []Group    `bson:"groups" json:"groups"`

	// Version is incremented on every save. A save naming an older version
	// than the stored one is rejected.
	Version int64 `bson:"version" json:"version"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// Person is an officer. Photo is a stored photo reference (see photostore);
// empty means no photo.
type Person struct {
	Name  string `bson:"name" json:"name"`
	Photo string `bson:"photo,omitempty" json:"photo,omitempty"`
}

// Group is a commission or department with an optional leader.
type Group struct {
	Name    string   `bson:"name" json:"name"`
	Leader  *Person  `bson:"leader,omitempty" json:"leader,omitempty"`
	Members []Person `bson:"members" json:"members"`
	Notes   []string `bson:"notes" json:"notes"` // work programs
}

// Position is a standalone office such as "Ketua".
type Position struct {
	Title    string `bson:"title" json:"title"`
	Occupant Person `bson:"occupant" json:"occupant"`
}

// PhotoRefs returns every stored photo reference in the structure.
func (o OrgStructure) PhotoRefs() []string {
	var refs []string
	add := func(p Person) {
		if p.Photo != "" {
			refs = append(refs, p.Photo)
		}
	}
	for _, pos := range o.Positions {
		add(pos.Occupant)
	}
	for _, g := range o.Groups {
		if g.Leader != nil {
			add(*g.Leader)
		}
		for _, m := range g.Members {
			add(m)
		}
	}
	return refs
}

// MemberCount counts every person in the structure, leaders and position
// holders included.
func (o OrgStructure) MemberCount() int {
	n := len(o.Positions)
	for _, g := range o.Groups {
		if g.Leader != nil {
			n++
		}
		n += len(g.Members)
	}
	return n
}
