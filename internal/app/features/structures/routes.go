// internal/app/features/structures/routes.go
package structures

import "github.com/go-chi/chi/v5"

// Routes mounts the structure endpoints (typically under "/structures").
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.ServeList)
	r.Get("/{kind}/{period}", h.ServeView)
	r.Post("/{kind}/{period}", h.HandleSave)
	r.Post("/{kind}/{period}/delete", h.HandleDelete)

	return r
}

// FileRoutes serves stored photos (typically under "/files").
func FileRoutes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/photos/*", h.ServePhoto)
	return r
}
