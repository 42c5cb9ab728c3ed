// internal/app/features/structures/photos.go
package structures

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	photostore "github.com/dalemusser/kemahasiswaan/internal/app/store/photos"
	"github.com/dalemusser/kemahasiswaan/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ServePhoto streams a stored photo. Refs are never reused, so responses
// may be cached for good.
//
// Route: GET /files/photos/*
func (h *Handler) ServePhoto(w http.ResponseWriter, r *http.Request) {
	rest := chi.URLParam(r, "*")
	if rest == "" || strings.Contains(rest, "..") {
		h.ErrLog.LogStatus(w, r, http.StatusNotFound, "bad photo path", nil, "Not found.")
		return
	}
	ref := photostore.Bucket + "/" + rest

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "serve photo")
	defer cancel()

	rc, info, err := h.Photos.Open(ctx, ref)
	if errors.Is(err, photostore.ErrNotFound) {
		h.ErrLog.LogStatus(w, r, http.StatusNotFound, "photo not found", err, "Not found.")
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "open photo failed", err, "Unable to load photo.")
		return
	}
	defer rc.Close()

	w.Header().Set("Content-Type", info.ContentType)
	if info.Size > 0 {
		w.Header().Set("Content-Length", strconv.FormatInt(info.Size, 10))
	}
	w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	if _, err := io.Copy(w, rc); err != nil {
		h.Log.Warn("photo stream interrupted", zap.String("ref", ref), zap.Error(err))
	}
}
