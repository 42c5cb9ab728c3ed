package bootstrap

import (
	"context"
	"testing"
	"time"

	"github.com/dalemusser/kemahasiswaan/internal/testutil"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

func TestStartupShutdown_Background(t *testing.T) {
	db := testutil.SetupTestDB(t)
	deps := DBDeps{MongoDatabase: db}

	cfg := validAppConfig()
	cfg.PhotoSweepInterval = time.Hour
	cfg.SaveRateLimit = 10
	core := &config.CoreConfig{Env: "dev"}

	if err := Startup(context.Background(), core, cfg, deps, zap.NewNop()); err != nil {
		t.Fatalf("Startup: %v", err)
	}
	if l := newSaveLimiter(cfg); l == nil {
		t.Fatal("newSaveLimiter: got nil with a positive limit")
	}

	background.mu.Lock()
	running := background.sweep != nil && background.limiter != nil
	background.mu.Unlock()
	if !running {
		t.Fatal("background workers not recorded")
	}

	if err := Shutdown(context.Background(), core, cfg, deps, zap.NewNop()); err != nil {
		t.Fatalf("Shutdown: %v", err)
	}
	background.mu.Lock()
	defer background.mu.Unlock()
	if background.sweep != nil || background.limiter != nil {
		t.Error("background workers still recorded after Shutdown")
	}
}

func TestBackground_Disabled(t *testing.T) {
	cfg := validAppConfig()
	cfg.PhotoSweepInterval = 0
	cfg.SaveRateLimit = 0

	startPhotoSweep(cfg, DBDeps{}, zap.NewNop())
	if l := newSaveLimiter(cfg); l != nil {
		t.Error("newSaveLimiter: want nil when disabled")
	}
	background.mu.Lock()
	defer background.mu.Unlock()
	if background.sweep != nil {
		t.Error("sweep started although disabled")
	}
}
