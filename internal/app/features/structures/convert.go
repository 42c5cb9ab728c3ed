// internal/app/features/structures/convert.go
package structures

import (
	"encoding/json"
	"net/http"

	"github.com/dalemusser/kemahasiswaan/internal/app/system/htmlsanitize"
	"github.com/dalemusser/kemahasiswaan/internal/domain/editor"
	"github.com/dalemusser/kemahasiswaan/internal/domain/models"
)

// sanitizeMetadata strips markup from every free-text field. Photo refs are
// left alone; they are checked against storage separately.
func sanitizeMetadata(m editor.Metadata) editor.Metadata {
	person := func(p editor.PersonMeta) editor.PersonMeta {
		p.Name = htmlsanitize.Name(p.Name)
		return p
	}
	out := editor.Metadata{
		Positions: make([]editor.PositionMeta, 0, len(m.Positions)),
		Groups:    make([]editor.GroupMeta, 0, len(m.Groups)),
	}
	for _, pos := range m.Positions {
		out.Positions = append(out.Positions, editor.PositionMeta{
			Title:    htmlsanitize.Name(pos.Title),
			Occupant: person(pos.Occupant),
		})
	}
	for _, g := range m.Groups {
		gm := editor.GroupMeta{
			Name:    htmlsanitize.Name(g.Name),
			Members: make([]editor.PersonMeta, 0, len(g.Members)),
			Notes:   make([]string, 0, len(g.Notes)),
		}
		if g.Leader != nil {
			l := person(*g.Leader)
			gm.Leader = &l
		}
		for _, mm := range g.Members {
			gm.Members = append(gm.Members, person(mm))
		}
		for _, n := range g.Notes {
			gm.Notes = append(gm.Notes, htmlsanitize.Text(n))
		}
		out.Groups = append(out.Groups, gm)
	}
	return out
}

func formFromMetadata(m editor.Metadata) structureForm {
	var f structureForm
	for _, pos := range m.Positions {
		f.Positions = append(f.Positions, positionForm{
			Title:    pos.Title,
			Occupant: personForm{Name: pos.Occupant.Name},
		})
	}
	for _, g := range m.Groups {
		gf := groupForm{Name: g.Name, Notes: g.Notes}
		if g.Leader != nil {
			gf.Leader = &personForm{Name: g.Leader.Name}
		}
		for _, mm := range g.Members {
			gf.Members = append(gf.Members, personForm{Name: mm.Name})
		}
		f.Groups = append(f.Groups, gf)
	}
	return f
}

func personFromModel(p models.Person) editor.Person {
	return editor.Person{Name: p.Name, Photo: editor.Stored(p.Photo)}
}

// structureFromModel turns a saved document into an editor structure whose
// photos are all stored (or absent).
func structureFromModel(o models.OrgStructure) editor.Structure {
	var s editor.Structure
	for _, pos := range o.Positions {
		s.Positions = append(s.Positions, editor.Position{Title: pos.Title, Occupant: personFromModel(pos.Occupant)})
	}
	for _, g := range o.Groups {
		eg := editor.Group{Name: g.Name, Notes: append([]string(nil), g.Notes...)}
		if g.Leader != nil {
			l := personFromModel(*g.Leader)
			eg.Leader = &l
		}
		for _, m := range g.Members {
			eg.Members = append(eg.Members, personFromModel(m))
		}
		s.Groups = append(s.Groups, eg)
	}
	return s
}

func personToModel(p editor.Person) models.Person {
	ref, _ := p.Photo.StoredRef()
	return models.Person{Name: p.Name, Photo: ref}
}

// modelFromStructure builds the document to save. Pending photos must have
// been stored before this is called; any left over are dropped.
func modelFromStructure(kind, period string, s editor.Structure) models.OrgStructure {
	o := models.OrgStructure{
		Kind:      kind,
		Period:    period,
		Positions: make([]models.Position, 0, len(s.Positions)),
		Groups:    make([]models.Group, 0, len(s.Groups)),
	}
	for _, pos := range s.Positions {
		o.Positions = append(o.Positions, models.Position{Title: pos.Title, Occupant: personToModel(pos.Occupant)})
	}
	for _, g := range s.Groups {
		mg := models.Group{
			Name:    g.Name,
			Members: make([]models.Person, 0, len(g.Members)),
			Notes:   append(make([]string, 0, len(g.Notes)), g.Notes...),
		}
		if g.Leader != nil {
			l := personToModel(*g.Leader)
			mg.Leader = &l
		}
		for _, m := range g.Members {
			mg.Members = append(mg.Members, personToModel(m))
		}
		o.Groups = append(o.Groups, mg)
	}
	return o
}

func metadataFromModel(o models.OrgStructure) editor.Metadata {
	return editor.BuildSubmission(structureFromModel(o)).Metadata
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
