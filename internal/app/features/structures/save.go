// internal/app/features/structures/save.go
package structures

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"

	structurestore "github.com/dalemusser/kemahasiswaan/internal/app/store/structures"
	"github.com/dalemusser/kemahasiswaan/internal/app/system/ratelimit"
	"github.com/dalemusser/kemahasiswaan/internal/app/system/timeouts"
	"github.com/dalemusser/kemahasiswaan/internal/domain/editor"
	"github.com/dalemusser/kemahasiswaan/internal/domain/models"
	"go.uber.org/zap"
)

// multipartMemory is how much of a submission is held in memory before
// parts spill to temporary files.
const multipartMemory = 8 << 20

// HandleSave accepts a full structure submission: a "metadata" JSON field
// plus one file part per new photo, named by the photo's path.
//
// 200 → canonical structure as metadata
// 400 → malformed request, 413 → request too large
// 409 → another save of the same structure won the race
// 422 → {"errors": {"groups[0].name": "..."}}
// 429 → too many saves from this client
//
// Route: POST /structures/{kind}/{period}
func (h *Handler) HandleSave(w http.ResponseWriter, r *http.Request) {
	kind, period, ok := h.target(w, r)
	if !ok || !h.allow(w, r) {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.MaxUploadBytes)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) || r.ContentLength > h.MaxUploadBytes {
			h.ErrLog.LogStatus(w, r, http.StatusRequestEntityTooLarge, "structure submission too large", err,
				fmt.Sprintf("Submission exceeds %s.", humanBytes(h.MaxUploadBytes)))
			return
		}
		h.ErrLog.LogBadRequest(w, r, "parse multipart failed", err, "Invalid form data.")
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	sub, err := editor.DecodeMultipart(r.MultipartForm)
	if err != nil {
		h.ErrLog.LogBadRequest(w, r, "decode submission failed", err, "Malformed structure submission.")
		return
	}
	sub.Metadata = sanitizeMetadata(sub.Metadata)

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Upload(), h.Log, "save structure")
	defer cancel()

	prev, err := h.Structures.Get(ctx, kind, period)
	if err != nil && !errors.Is(err, structurestore.ErrNotFound) {
		h.ErrLog.LogServerError(w, r, "load structure failed", err, "A database error occurred.")
		return
	}

	s, fieldErrs, err := h.validateSubmission(sub, prev)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "validate structure failed", err, "Unable to validate structure.")
		return
	}
	if len(fieldErrs) > 0 {
		h.Log.Info("structure rejected",
			zap.String("kind", kind),
			zap.String("period", period),
			zap.Int("errors", len(fieldErrs)))
		writeJSON(w, http.StatusUnprocessableEntity, fieldErrorsResponse{Errors: fieldErrs})
		return
	}

	s, uploaded, err := h.storePhotos(ctx, s)
	if err != nil {
		h.discardPhotos(uploaded)
		h.ErrLog.LogServerError(w, r, "store photos failed", err, "Unable to store photos.")
		return
	}

	next := modelFromStructure(kind, period, s)
	next.Version = prev.Version
	saved, err := h.Structures.Save(ctx, next)
	if errors.Is(err, structurestore.ErrConflict) {
		// prev is stale, so its photos may belong to the winning save.
		h.discardPhotos(uploaded)
		h.ErrLog.LogStatus(w, r, http.StatusConflict, "structure save conflict", err,
			"This structure was changed by another save. Reload it and try again.")
		return
	}
	if err != nil {
		h.discardPhotos(uploaded)
		h.ErrLog.LogServerError(w, r, "save structure failed", err, "A database error occurred.")
		return
	}

	orphans := orphanedRefs(prev, saved)
	h.discardPhotos(orphans)

	h.Log.Info("structure saved",
		zap.String("kind", kind),
		zap.String("period", period),
		zap.Int("photos_stored", len(uploaded)),
		zap.Int("photos_removed", len(orphans)))

	if h.Flash != nil {
		if err := h.Flash.Add(w, r, SavedMessage); err != nil {
			h.Log.Warn("flash add failed", zap.Error(err))
		}
	}
	writeJSON(w, http.StatusOK, structureResponse{Metadata: metadataFromModel(saved)})
}

// allow applies SaveLimiter. On refusal the 429 response has been written.
func (h *Handler) allow(w http.ResponseWriter, r *http.Request) bool {
	if h.SaveLimiter == nil {
		return true
	}
	ip := ratelimit.ClientIP(r)
	if h.SaveLimiter.Allow(ip) {
		return true
	}
	secs := int(math.Ceil(h.SaveLimiter.RetryAfter(ip).Seconds()))
	w.Header().Set("Retry-After", strconv.Itoa(secs))
	h.ErrLog.LogStatus(w, r, http.StatusTooManyRequests, "structure save rate limited", nil,
		"Too many saves. Please wait a moment before trying again.")
	return false
}

// storePhotos writes every pending photo to photo storage and replaces it
// with the stored reference. The refs written so far are returned even on
// error so the caller can remove them.
func (h *Handler) storePhotos(ctx context.Context, s editor.Structure) (editor.Structure, []string, error) {
	var pending []editor.Path
	s.Walk(func(path editor.Path, p editor.Person) {
		if p.Photo.Kind() == editor.PhotoPending {
			pending = append(pending, path.WithField(editor.FieldPhoto))
		}
	})

	var uploaded []string
	for _, path := range pending {
		p, _ := s.PersonAt(path.Person())
		a, _ := p.Photo.PendingAsset()
		ref, err := h.Photos.Put(ctx, a.Filename, a.ContentType, bytes.NewReader(a.Data))
		if err != nil {
			return s, uploaded, fmt.Errorf("store photo %s: %w", path, err)
		}
		uploaded = append(uploaded, ref)
		if s, err = s.SetPhoto(path, editor.Stored(ref)); err != nil {
			return s, uploaded, err
		}
	}
	return s, uploaded, nil
}

// discardPhotos removes photos under its own deadline, so cleanup still
// runs after the request context has expired. Failures are only logged.
func (h *Handler) discardPhotos(refs []string) {
	if len(refs) == 0 {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeouts.Medium())
	defer cancel()
	for _, ref := range refs {
		if err := h.Photos.Delete(ctx, ref); err != nil {
			h.Log.Warn("photo cleanup failed", zap.String("ref", ref), zap.Error(err))
		}
	}
}

// orphanedRefs lists photos prev referenced that next no longer does.
func orphanedRefs(prev, next models.OrgStructure) []string {
	keep := make(map[string]bool)
	for _, ref := range next.PhotoRefs() {
		keep[ref] = true
	}
	var out []string
	for _, ref := range prev.PhotoRefs() {
		if !keep[ref] {
			out = append(out, ref)
			keep[ref] = true
		}
	}
	return out
}
