// internal/app/features/structures/view.go
package structures

import (
	"errors"
	"net/http"

	structurestore "github.com/dalemusser/kemahasiswaan/internal/app/store/structures"
	"github.com/dalemusser/kemahasiswaan/internal/app/system/timeouts"
)

// ServeView returns the saved structure as metadata, the same shape the
// editor submits. Flash messages queued by a save in this browser session
// are included once.
//
// Route: GET /structures/{kind}/{period}
func (h *Handler) ServeView(w http.ResponseWriter, r *http.Request) {
	kind, period, ok := h.target(w, r)
	if !ok {
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "load structure")
	defer cancel()

	o, err := h.Structures.Get(ctx, kind, period)
	if errors.Is(err, structurestore.ErrNotFound) {
		h.ErrLog.LogStatus(w, r, http.StatusNotFound, "structure not found", err, "Structure not found.")
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "load structure failed", err, "A database error occurred.")
		return
	}

	resp := structureResponse{Metadata: metadataFromModel(o)}
	if h.Flash != nil {
		resp.Flash = h.Flash.Pop(w, r)
	}
	writeJSON(w, http.StatusOK, resp)
}
