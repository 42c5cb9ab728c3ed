package inputval

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type personInput struct {
	Name string `json:"name" label:"Nama" validate:"notblank,max=10"`
}

type groupInput struct {
	Name    string        `json:"name" label:"Nama komisi" validate:"notblank"`
	Leader  *personInput  `json:"leader"`
	Members []personInput `json:"members" validate:"dive"`
	Notes   []string      `json:"notes" label:"Program kerja" validate:"dive,notblank"`
}

type structureInput struct {
	Groups []groupInput `json:"groups" validate:"dive"`
}

type targetInput struct {
	Kind   string `json:"kind" label:"Organisasi" validate:"orgkind"`
	Period string `json:"period" label:"Periode" validate:"period"`
}

func TestStruct_Valid(t *testing.T) {
	in := structureInput{Groups: []groupInput{{
		Name:    "Komisi A",
		Leader:  &personInput{Name: "Rina"},
		Members: []personInput{{Name: "Andi"}},
		Notes:   []string{"Rapat kerja"},
	}}}
	if err := Struct(in); err != nil {
		t.Errorf("Struct: got %v, want nil", err)
	}
}

func TestStruct_PathsAndLabels(t *testing.T) {
	in := structureInput{Groups: []groupInput{
		{Name: "Komisi A"},
		{
			Name:    "  ",
			Leader:  &personInput{Name: ""},
			Members: []personInput{{Name: "Andi"}, {Name: "Nama yang terlalu panjang"}},
			Notes:   []string{"ok", " "},
		},
	}}
	err := Struct(&in)
	var got Errors
	if !errors.As(err, &got) {
		t.Fatalf("Struct: got %T %v, want Errors", err, err)
	}
	want := Errors{
		"groups[1].name":            "Nama komisi is required.",
		"groups[1].leader.name":     "Nama is required.",
		"groups[1].members[1].name": "Nama must be at most 10 characters.",
		"groups[1].notes[1]":        "Program kerja is required.",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("errors mismatch (-want +got):\n%s", diff)
	}
	if !strings.Contains(err.Error(), "groups[1].name: Nama komisi is required.") {
		t.Errorf("Error(): got %q", err.Error())
	}
}

func TestStruct_NilLeaderIsSkipped(t *testing.T) {
	in := structureInput{Groups: []groupInput{{Name: "Komisi B"}}}
	if err := Struct(in); err != nil {
		t.Errorf("Struct: got %v, want nil", err)
	}
}

func TestStruct_Target(t *testing.T) {
	err := Struct(targetInput{Kind: "dpm", Period: "2025-2027"})
	var got Errors
	if !errors.As(err, &got) {
		t.Fatalf("Struct: got %v, want Errors", err)
	}
	want := Errors{
		"kind":   "Organisasi must be BEM or MPM.",
		"period": "Periode must look like 2025-2026.",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("errors mismatch (-want +got):\n%s", diff)
	}
}

func TestIsValidOrgKind(t *testing.T) {
	tests := []struct {
		kind string
		want bool
	}{
		{"bem", true},
		{"MPM", true},
		{" Bem ", true},
		{"", false},
		{"dpm", false},
		{"hima", false},
	}
	for _, tt := range tests {
		t.Run(tt.kind, func(t *testing.T) {
			if got := IsValidOrgKind(tt.kind); got != tt.want {
				t.Errorf("IsValidOrgKind(%q) = %v, want %v", tt.kind, got, tt.want)
			}
		})
	}
}

func TestIsValidPeriod(t *testing.T) {
	tests := []struct {
		period string
		want   bool
	}{
		{"2025-2026", true},
		{"1999-2000", true},
		{"2025-2025", false},
		{"2025-2027", false},
		{"2025/2026", false},
		{"25-26", false},
		{"+025-+026", false},
		{"abcd-efgh", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.period, func(t *testing.T) {
			if got := IsValidPeriod(tt.period); got != tt.want {
				t.Errorf("IsValidPeriod(%q) = %v, want %v", tt.period, got, tt.want)
			}
		})
	}
}
