package htmlsanitize_test

import (
	"testing"

	"github.com/dalemusser/kemahasiswaan/internal/app/system/htmlsanitize"
)

func TestText(t *testing.T) {
	tests := []struct {
		name, in, want string
	}{
		{"empty", "", ""},
		{"plain", "Rapat kerja", "Rapat kerja"},
		{"trims", "  Andi  ", "Andi"},
		{"tags", "<b>Rina</b>", "Rina"},
		{"ampersand", "Budi & Sari", "Budi & Sari"},
		{"script", "<script>alert('x')</script>Budi", "Budi"},
		{"link", `<a href="javascript:alert(1)">Dewi</a>`, "Dewi"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := htmlsanitize.Text(tt.in); got != tt.want {
				t.Errorf("Text(%q): got %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestName_CollapsesWhitespace(t *testing.T) {
	got := htmlsanitize.Name("  Sari \n\t Wulandari ")
	if got != "Sari Wulandari" {
		t.Errorf("Name: got %q, want %q", got, "Sari Wulandari")
	}
}
