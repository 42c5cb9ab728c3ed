// internal/app/features/structures/types.go
package structures

import (
	"time"

	"github.com/dalemusser/kemahasiswaan/internal/app/system/inputval"
	"github.com/dalemusser/kemahasiswaan/internal/domain/editor"
)

// Validation shapes. Json names follow the structure path convention, so
// error keys come out as "groups[0].members[1].name".

type personForm struct {
	Name string `json:"name" label:"Nama" validate:"notblank,max=200"`
}

type positionForm struct {
	Title    string     `json:"title" label:"Nama jabatan" validate:"notblank,max=200"`
	Occupant personForm `json:"occupant"`
}

type groupForm struct {
	Name    string       `json:"name" label:"Nama komisi" validate:"notblank,max=200"`
	Leader  *personForm  `json:"leader"`
	Members []personForm `json:"members" validate:"dive"`
	Notes   []string     `json:"notes" label:"Program kerja" validate:"dive,notblank,max=1000"`
}

type structureForm struct {
	Positions []positionForm `json:"positions" validate:"dive"`
	Groups    []groupForm    `json:"groups" validate:"dive"`
}

type targetForm struct {
	Kind   string `json:"kind" label:"Organisasi" validate:"orgkind"`
	Period string `json:"period" label:"Periode" validate:"period"`
}

// structureResponse is the canonical structure as metadata, plus any flash
// messages waiting for this browser session.
type structureResponse struct {
	editor.Metadata
	Flash []string `json:"flash,omitempty"`
}

type fieldErrorsResponse struct {
	Errors inputval.Errors `json:"errors"`
}

type listItem struct {
	Kind      string    `json:"kind"`
	Period    string    `json:"period"`
	Positions int       `json:"positions"`
	Groups    int       `json:"groups"`
	People    int       `json:"people"`
	UpdatedAt time.Time `json:"updated_at"`
}

type listResponse struct {
	Structures []listItem `json:"structures"`
}
