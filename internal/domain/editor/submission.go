// internal/domain/editor/submission.go
package editor

import (
	"fmt"
	"sort"
)

// Metadata is the JSON document sent with every save. It mirrors Structure,
// except that Photo is the stored reference or null. Pending photos are null
// here and travel as separate asset parts instead.
type Metadata struct {
	Positions []PositionMeta `json:"positions"`
	Groups    []GroupMeta    `json:"groups"`
}

type PersonMeta struct {
	Name  string  `json:"name"`
	Photo *string `json:"photo"`
}

type GroupMeta struct {
	Name    string       `json:"name"`
	Leader  *PersonMeta  `json:"leader"`
	Members []PersonMeta `json:"members"`
	Notes   []string     `json:"notes"`
}

type PositionMeta struct {
	Title    string     `json:"title"`
	Occupant PersonMeta `json:"occupant"`
}

// Submission is what a save transmits: the full metadata tree plus one asset
// per pending photo, keyed by the photo's path string.
type Submission struct {
	Metadata Metadata
	Assets   map[string]*Asset
}

// BuildSubmission serializes s in full. It does not validate; empty names and
// missing photos are sent as they are.
func BuildSubmission(s Structure) Submission {
	sub := Submission{
		Metadata: Metadata{
			Positions: make([]PositionMeta, 0, len(s.Positions)),
			Groups:    make([]GroupMeta, 0, len(s.Groups)),
		},
		Assets: make(map[string]*Asset),
	}

	person := func(path Path, p Person) PersonMeta {
		pm := PersonMeta{Name: p.Name}
		switch p.Photo.Kind() {
		case PhotoStored:
			ref, _ := p.Photo.StoredRef()
			pm.Photo = &ref
		case PhotoPending:
			a, _ := p.Photo.PendingAsset()
			sub.Assets[path.WithField(FieldPhoto).String()] = a
		}
		return pm
	}

	for pi, pos := range s.Positions {
		sub.Metadata.Positions = append(sub.Metadata.Positions, PositionMeta{
			Title:    pos.Title,
			Occupant: person(OccupantPath(pi), pos.Occupant),
		})
	}
	for gi, g := range s.Groups {
		gm := GroupMeta{
			Name:    g.Name,
			Members: make([]PersonMeta, 0, len(g.Members)),
			Notes:   append(make([]string, 0, len(g.Notes)), g.Notes...),
		}
		if g.Leader != nil {
			lm := person(LeaderPath(gi), *g.Leader)
			gm.Leader = &lm
		}
		for mi, m := range g.Members {
			gm.Members = append(gm.Members, person(MemberPath(gi, mi), m))
		}
		sub.Metadata.Groups = append(sub.Metadata.Groups, gm)
	}
	return sub
}

// AssetKeys returns the asset keys in sorted order.
func (sub Submission) AssetKeys() []string {
	keys := make([]string, 0, len(sub.Assets))
	for k := range sub.Assets {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Structure rebuilds a Structure from metadata. Null photos become Absent.
func (m Metadata) Structure() Structure {
	var s Structure
	if len(m.Positions) > 0 {
		s.Positions = make([]Position, 0, len(m.Positions))
	}
	for _, pm := range m.Positions {
		s.Positions = append(s.Positions, Position{Title: pm.Title, Occupant: pm.Occupant.person()})
	}
	if len(m.Groups) > 0 {
		s.Groups = make([]Group, 0, len(m.Groups))
	}
	for _, gm := range m.Groups {
		g := Group{Name: gm.Name}
		if gm.Leader != nil {
			l := gm.Leader.person()
			g.Leader = &l
		}
		if len(gm.Members) > 0 {
			g.Members = make([]Person, 0, len(gm.Members))
			for _, mm := range gm.Members {
				g.Members = append(g.Members, mm.person())
			}
		}
		if len(gm.Notes) > 0 {
			g.Notes = append([]string(nil), gm.Notes...)
		}
		s.Groups = append(s.Groups, g)
	}
	return s
}

func (pm PersonMeta) person() Person {
	p := Person{Name: pm.Name}
	if pm.Photo != nil {
		p.Photo = Stored(*pm.Photo)
	}
	return p
}

// AssetError reports an asset key that cannot be matched to a pending photo.
type AssetError struct {
	Key    string
	Reason string
}

func (e *AssetError) Error() string {
	return fmt.Sprintf("asset %s: %s", e.Key, e.Reason)
}

// Restore rebuilds the Structure the submission was built from, putting every
// asset back as a Pending photo at the node its key names. Keys that do not
// name the photo of an existing person whose metadata photo is null are
// reported and skipped.
func (sub Submission) Restore() (Structure, []*AssetError) {
	s := sub.Metadata.Structure()
	var problems []*AssetError
	for _, key := range sub.AssetKeys() {
		path, err := ParsePath(key)
		if err != nil || !path.IsPhoto() {
			problems = append(problems, &AssetError{Key: key, Reason: "not a photo path"})
			continue
		}
		person, ok := s.PersonAt(path.Person())
		if !ok {
			problems = append(problems, &AssetError{Key: key, Reason: "no such person"})
			continue
		}
		if !person.Photo.IsAbsent() {
			problems = append(problems, &AssetError{Key: key, Reason: "photo already stored"})
			continue
		}
		s, _ = s.SetPhoto(path, Pending(sub.Assets[key]))
	}
	return s, problems
}
