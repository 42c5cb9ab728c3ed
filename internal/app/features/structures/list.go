// internal/app/features/structures/list.go
package structures

import (
	"net/http"
	"strings"

	"github.com/dalemusser/kemahasiswaan/internal/app/system/inputval"
	"github.com/dalemusser/kemahasiswaan/internal/app/system/timeouts"
)

// ServeList lists saved structures, newest period first, with counts.
// ?kind=bem|mpm narrows the list.
//
// Route: GET /structures
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	kind := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("kind")))
	if kind != "" && !inputval.IsValidOrgKind(kind) {
		h.ErrLog.LogBadRequest(w, r, "invalid kind filter", nil, "Organisasi must be BEM or MPM.")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "list structures")
	defer cancel()

	all, err := h.Structures.List(ctx, kind)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list structures failed", err, "A database error occurred.")
		return
	}

	resp := listResponse{Structures: make([]listItem, 0, len(all))}
	for _, o := range all {
		resp.Structures = append(resp.Structures, listItem{
			Kind:      o.Kind,
			Period:    o.Period,
			Positions: len(o.Positions),
			Groups:    len(o.Groups),
			People:    o.MemberCount(),
			UpdatedAt: o.UpdatedAt,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}
