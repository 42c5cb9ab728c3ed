// internal/app/features/structures/validate.go
package structures

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/dalemusser/kemahasiswaan/internal/app/system/inputval"
	photostore "github.com/dalemusser/kemahasiswaan/internal/app/store/photos"
	"github.com/dalemusser/kemahasiswaan/internal/domain/editor"
	"github.com/dalemusser/kemahasiswaan/internal/domain/models"
	"github.com/go-chi/chi/v5"
)

// target reads and validates {kind}/{period}. On failure the response has
// been written.
func (h *Handler) target(w http.ResponseWriter, r *http.Request) (kind, period string, ok bool) {
	kind = strings.ToLower(strings.TrimSpace(chi.URLParam(r, "kind")))
	period = strings.TrimSpace(chi.URLParam(r, "period"))
	if err := inputval.Struct(targetForm{Kind: kind, Period: period}); err != nil {
		h.ErrLog.LogBadRequest(w, r, "invalid structure target", err, err.Error())
		return "", "", false
	}
	return kind, period, true
}

// validateSubmission checks a sanitized submission against the saved
// version prev and returns the structure to store, its pending photos still
// pending. Field problems come back keyed by structure path.
func (h *Handler) validateSubmission(sub editor.Submission, prev models.OrgStructure) (editor.Structure, inputval.Errors, error) {
	errs := inputval.Errors{}

	if err := inputval.Struct(formFromMetadata(sub.Metadata)); err != nil {
		var verrs inputval.Errors
		if !errors.As(err, &verrs) {
			return editor.Structure{}, nil, err
		}
		for k, v := range verrs {
			errs.Add(k, v)
		}
	}

	s, problems := sub.Restore()
	for _, p := range problems {
		errs.Add(p.Key, fmt.Sprintf("Foto cannot be attached here (%s).", p.Reason))
	}

	maxBytes := h.Photos.MaxBytes()
	for _, key := range sub.AssetKeys() {
		a := sub.Assets[key]
		if int64(len(a.Data)) > maxBytes {
			errs.Add(key, fmt.Sprintf("Foto must be at most %s.", humanBytes(maxBytes)))
			continue
		}
		if _, ok := photostore.DetectImageType(a.ContentType, a.Data); !ok {
			errs.Add(key, "Foto must be an image.")
		}
	}

	// Stored refs may only point at photos this structure already owns.
	known := make(map[string]bool)
	for _, ref := range prev.PhotoRefs() {
		known[ref] = true
	}
	s.Walk(func(path editor.Path, p editor.Person) {
		if ref, ok := p.Photo.StoredRef(); ok && !known[ref] {
			errs.Add(path.WithField(editor.FieldPhoto).String(), "Foto refers to an unknown photo.")
		}
	})

	if len(errs) == 0 {
		errs = nil
	}
	return s, errs, nil
}

func humanBytes(n int64) string {
	switch {
	case n >= 1<<20 && n%(1<<20) == 0:
		return fmt.Sprintf("%d MB", n>>20)
	case n >= 1<<10 && n%(1<<10) == 0:
		return fmt.Sprintf("%d KB", n>>10)
	}
	return fmt.Sprintf("%d bytes", n)
}
