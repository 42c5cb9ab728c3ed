// internal/app/features/structures/delete.go
package structures

import (
	"errors"
	"net/http"

	structurestore "github.com/dalemusser/kemahasiswaan/internal/app/store/structures"
	"github.com/dalemusser/kemahasiswaan/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// HandleDelete removes a structure and every photo it references.
//
// Route: POST /structures/{kind}/{period}/delete
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	kind, period, ok := h.target(w, r)
	if !ok || !h.allow(w, r) {
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "delete structure")
	defer cancel()

	o, err := h.Structures.Get(ctx, kind, period)
	if err == nil {
		err = h.Structures.Delete(ctx, kind, period)
	}
	if errors.Is(err, structurestore.ErrNotFound) {
		h.ErrLog.LogStatus(w, r, http.StatusNotFound, "structure delete: not found", err, "Structure not found.")
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "delete structure failed", err, "Unable to delete structure.")
		return
	}

	refs := o.PhotoRefs()
	h.discardPhotos(refs)
	h.Log.Info("structure deleted",
		zap.String("kind", kind),
		zap.String("period", period),
		zap.Int("photos_removed", len(refs)))

	w.WriteHeader(http.StatusNoContent)
}
