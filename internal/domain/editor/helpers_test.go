package editor_test

import (
	"github.com/dalemusser/kemahasiswaan/internal/domain/editor"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

var structOpts = cmp.Options{
	cmp.Comparer(func(a, b editor.Photo) bool { return a.Equal(b) }),
	cmpopts.EquateEmpty(),
}

// sample builds a structure with two positions and three populated groups.
func sample() editor.Structure {
	leader := editor.Person{Name: "Rina", Photo: editor.Stored("photos/2025/01/rina.jpg")}
	return editor.Structure{
		Positions: []editor.Position{
			{Title: "Ketua", Occupant: editor.Person{Name: "Budi", Photo: editor.Stored("photos/2025/01/budi.jpg")}},
			{Title: "Wakil Ketua", Occupant: editor.Person{Name: "Sari"}},
		},
		Groups: []editor.Group{
			{
				Name:    "Komisi A",
				Leader:  &leader,
				Members: []editor.Person{{Name: "Andi"}, {Name: "Dewi"}},
				Notes:   []string{"Rapat kerja", "Studi banding"},
			},
			{
				Name:    "Komisi B",
				Members: []editor.Person{{Name: "Eko"}},
			},
			{
				Name:  "Departemen Sosial Politik",
				Notes: []string{"Diskusi publik"},
			},
		},
	}
}
