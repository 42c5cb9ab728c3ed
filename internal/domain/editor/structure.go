// internal/domain/editor/structure.go
package editor

// Structure is the in-memory organization tree edited in one session
// (a BEM cabinet or an MPM assembly for one period).
//
// A Structure is treated as an immutable value: every operation returns a new
// Structure and leaves the receiver untouched. Slices that an operation does
// not touch are shared between the old and new value.
type Structure struct {
	Positions []Position
	Groups    []Group
}

// Group is a named sub-unit such as a commission ("Komisi A") or a
// department ("Departemen Sosial Politik").
type Group struct {
	Name    string
	Leader  *Person
	Members []Person
	Notes   []string // work programs, in display order
}

// Person is a named officer with an optional photo.
type Person struct {
	Name  string
	Photo Photo
}

// Position is a standalone office that is not part of a group,
// e.g. "Ketua" or "Sekretaris Jenderal".
type Position struct {
	Title    string
	Occupant Person
}

// Equal reports whether two people carry the same name and photo.
func (p Person) Equal(o Person) bool {
	return p.Name == o.Name && p.Photo.Equal(o.Photo)
}

// Equal compares groups field by field.
func (g Group) Equal(o Group) bool {
	if g.Name != o.Name {
		return false
	}
	if (g.Leader == nil) != (o.Leader == nil) {
		return false
	}
	if g.Leader != nil && !g.Leader.Equal(*o.Leader) {
		return false
	}
	if len(g.Members) != len(o.Members) || len(g.Notes) != len(o.Notes) {
		return false
	}
	for i := range g.Members {
		if !g.Members[i].Equal(o.Members[i]) {
			return false
		}
	}
	for i := range g.Notes {
		if g.Notes[i] != o.Notes[i] {
			return false
		}
	}
	return true
}

// Equal compares positions field by field.
func (p Position) Equal(o Position) bool {
	return p.Title == o.Title && p.Occupant.Equal(o.Occupant)
}

// Equal compares two structures field by field. A nil slice equals an empty one.
func (s Structure) Equal(o Structure) bool {
	if len(s.Groups) != len(o.Groups) || len(s.Positions) != len(o.Positions) {
		return false
	}
	for i := range s.Groups {
		if !s.Groups[i].Equal(o.Groups[i]) {
			return false
		}
	}
	for i := range s.Positions {
		if !s.Positions[i].Equal(o.Positions[i]) {
			return false
		}
	}
	return true
}

// Walk calls fn for every person in the structure together with the path of
// that person, in display order: positions first, then each group's leader
// followed by its members.
func (s Structure) Walk(fn func(path Path, p Person)) {
	for pi, pos := range s.Positions {
		fn(OccupantPath(pi), pos.Occupant)
	}
	for gi, g := range s.Groups {
		if g.Leader != nil {
			fn(LeaderPath(gi), *g.Leader)
		}
		for mi, m := range g.Members {
			fn(MemberPath(gi, mi), m)
		}
	}
}

// PersonAt returns the person addressed by a person path.
func (s Structure) PersonAt(p Path) (Person, bool) {
	switch p.Section {
	case SectionPositions:
		if p.Role != RoleOccupant || !inRange(p.Index, len(s.Positions)) {
			return Person{}, false
		}
		return s.Positions[p.Index].Occupant, true
	case SectionGroups:
		if !inRange(p.Index, len(s.Groups)) {
			return Person{}, false
		}
		g := s.Groups[p.Index]
		switch p.Role {
		case RoleLeader:
			if g.Leader == nil {
				return Person{}, false
			}
			return *g.Leader, true
		case RoleMember:
			if !inRange(p.Sub, len(g.Members)) {
				return Person{}, false
			}
			return g.Members[p.Sub], true
		}
	}
	return Person{}, false
}
