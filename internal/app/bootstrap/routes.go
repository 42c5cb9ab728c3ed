// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	errorsfeature "github.com/dalemusser/kemahasiswaan/internal/app/features/errors"
	healthfeature "github.com/dalemusser/kemahasiswaan/internal/app/features/health"
	structuresfeature "github.com/dalemusser/kemahasiswaan/internal/app/features/structures"
	photostore "github.com/dalemusser/kemahasiswaan/internal/app/store/photos"
	structurestore "github.com/dalemusser/kemahasiswaan/internal/app/store/structures"
	"github.com/dalemusser/kemahasiswaan/internal/app/system/flash"
	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// Startup have completed. The router carries:
//   - /health: liveness and MongoDB connectivity
//   - /structures: list, view, save and delete organization structures
//   - /files/photos/*: stored photos referenced by saved structures
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	// Secure cookies are enabled in production mode.
	secure := coreCfg.Env == "prod"
	fl := flash.New(appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain, secure, logger)

	errLog := errorsfeature.NewErrorLogger(logger)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	if len(appCfg.CORSAllowedOrigins) > 0 {
		r.Use(corsHandler(appCfg.CORSAllowedOrigins))
	}
	r.NotFound(errorsfeature.NotFound)
	r.MethodNotAllowed(errorsfeature.MethodNotAllowed)

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	structuresHandler := structuresfeature.NewHandler(
		structurestore.New(deps.MongoDatabase),
		photostore.New(deps.MongoDatabase, appCfg.PhotoMaxBytes),
		fl, errLog, appCfg.MaxUploadBytes, logger)
	structuresHandler.SaveLimiter = newSaveLimiter(appCfg)
	r.Mount("/structures", structuresfeature.Routes(structuresHandler))
	r.Mount("/files", structuresfeature.FileRoutes(structuresHandler))

	return r, nil
}

// corsHandler lets the browser editor, served from another origin, post
// submissions with the flash cookie attached.
func corsHandler(origins []string) func(http.Handler) http.Handler {
	opts := cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{http.MethodGet, http.MethodHead, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Requested-With"},
		ExposedHeaders:   []string{"X-Request-Id"},
		AllowCredentials: true,
		MaxAge:           300,
	}
	if len(origins) == 1 && origins[0] == "*" {
		opts.AllowCredentials = false
	}
	return cors.Handler(opts)
}
