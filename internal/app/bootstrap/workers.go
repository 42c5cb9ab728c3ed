// internal/app/bootstrap/workers.go
package bootstrap

import (
	"sync"
	"time"

	photostore "github.com/dalemusser/kemahasiswaan/internal/app/store/photos"
	structurestore "github.com/dalemusser/kemahasiswaan/internal/app/store/structures"
	"github.com/dalemusser/kemahasiswaan/internal/app/system/ratelimit"
	"github.com/dalemusser/kemahasiswaan/internal/app/system/workers"
	"go.uber.org/zap"
)

// background tracks what Startup and BuildHandler leave running, so
// Shutdown can stop it.
var background struct {
	mu      sync.Mutex
	sweep   *workers.PhotoSweep
	limiter *ratelimit.Limiter
}

func startPhotoSweep(appCfg AppConfig, deps DBDeps, logger *zap.Logger) {
	if appCfg.PhotoSweepInterval <= 0 {
		logger.Info("photo sweep disabled")
		return
	}
	w := workers.NewPhotoSweep(
		photostore.New(deps.MongoDatabase, appCfg.PhotoMaxBytes),
		structurestore.New(deps.MongoDatabase),
		logger, appCfg.PhotoSweepInterval, appCfg.PhotoSweepGrace)
	w.Start()

	background.mu.Lock()
	background.sweep = w
	background.mu.Unlock()
}

func newSaveLimiter(appCfg AppConfig) *ratelimit.Limiter {
	if appCfg.SaveRateLimit <= 0 {
		return nil
	}
	l := ratelimit.New(appCfg.SaveRateLimit, time.Minute)

	background.mu.Lock()
	background.limiter = l
	background.mu.Unlock()
	return l
}

func stopBackground() {
	background.mu.Lock()
	defer background.mu.Unlock()
	if background.sweep != nil {
		background.sweep.Stop()
		background.sweep = nil
	}
	if background.limiter != nil {
		background.limiter.Stop()
		background.limiter = nil
	}
}
