// internal/app/bootstrap/config.go
package bootstrap

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
)

// appConfigKeys defines the configuration keys for the service.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: mongo_uri, session_name, etc.
//   - Environment variables: KEMAHASISWAAN_MONGO_URI, KEMAHASISWAAN_SESSION_NAME, etc.
//   - Command-line flags: --mongo_uri, --session_name, etc.
var appConfigKeys = []config.AppKey{
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "kemahasiswaan", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 100, Desc: "MongoDB max connection pool size (default: 100)"},
	{Name: "mongo_min_pool_size", Default: 5, Desc: "MongoDB min connection pool size (default: 5)"},
	{Name: "mongo_connect_retries", Default: 5, Desc: "MongoDB ping attempts at startup before giving up"},
	{Name: "session_key", Default: "dev-only-change-me-please-0123456789ABCDEF", Desc: "Flash cookie signing key (must be strong in production)"},
	{Name: "session_name", Default: "kemahasiswaan-session", Desc: "Flash cookie name"},
	{Name: "session_domain", Default: "", Desc: "Flash cookie domain (blank means current host)"},

	// Browser editor
	{Name: "cors_allowed_origins", Default: "", Desc: "Comma-separated origins allowed to call the API (blank disables CORS)"},

	// Upload limits
	{Name: "max_upload_mb", Default: 32, Desc: "Maximum size of one structure submission in MB"},
	{Name: "photo_max_bytes", Default: 5 << 20, Desc: "Maximum size of a single photo in bytes"},
	{Name: "save_rate_limit", Default: 30, Desc: "Saves and deletes per client IP per minute (0 disables)"},

	// Photo sweep
	{Name: "photo_sweep_interval", Default: "1h", Desc: "How often unreferenced photos are removed (0 disables)"},
	{Name: "photo_sweep_grace", Default: "24h", Desc: "Minimum age of a photo before the sweep may remove it"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// WAFFLE's config.LoadWithAppConfig handles .env files, config files,
// environment variables (WAFFLE_* for core, KEMAHASISWAAN_* for app) and
// flags, merged with precedence flags > env > files > defaults.
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "KEMAHASISWAAN", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		MongoURI:            appValues.String("mongo_uri"),
		MongoDatabase:       appValues.String("mongo_database"),
		MongoMaxPoolSize:    uint64(appValues.Int("mongo_max_pool_size")),
		MongoMinPoolSize:    uint64(appValues.Int("mongo_min_pool_size")),
		MongoConnectRetries: uint64(appValues.Int("mongo_connect_retries")),
		SessionKey:          appValues.String("session_key"),
		SessionName:         appValues.String("session_name"),
		SessionDomain:       appValues.String("session_domain"),

		CORSAllowedOrigins: splitList(appValues.String("cors_allowed_origins")),

		MaxUploadBytes: int64(appValues.Int("max_upload_mb")) << 20,
		PhotoMaxBytes:  int64(appValues.Int("photo_max_bytes")),
		SaveRateLimit:  appValues.Int("save_rate_limit"),

		PhotoSweepInterval: appValues.Duration("photo_sweep_interval", time.Hour),
		PhotoSweepGrace:    appValues.Duration("photo_sweep_grace", 24*time.Hour),
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation.
//
// The MongoDB URI is checked here to catch configuration errors before
// attempting to connect.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
		logger.Error("invalid MongoDB URI", zap.Error(err))
		return fmt.Errorf("invalid MongoDB URI: %w", err)
	}
	if strings.TrimSpace(appCfg.MongoDatabase) == "" {
		return errors.New("mongo_database must not be empty")
	}
	if appCfg.MongoMinPoolSize > appCfg.MongoMaxPoolSize {
		return fmt.Errorf("mongo_min_pool_size (%d) exceeds mongo_max_pool_size (%d)",
			appCfg.MongoMinPoolSize, appCfg.MongoMaxPoolSize)
	}
	if appCfg.PhotoMaxBytes <= 0 || appCfg.MaxUploadBytes <= 0 {
		return errors.New("max_upload_mb and photo_max_bytes must be positive")
	}
	if appCfg.PhotoMaxBytes > appCfg.MaxUploadBytes {
		return fmt.Errorf("photo_max_bytes (%d) exceeds the submission limit (%d)",
			appCfg.PhotoMaxBytes, appCfg.MaxUploadBytes)
	}
	if appCfg.SaveRateLimit < 0 {
		return errors.New("save_rate_limit must not be negative")
	}
	if appCfg.PhotoSweepInterval > 0 && appCfg.PhotoSweepGrace < time.Hour {
		return fmt.Errorf("photo_sweep_grace (%s) must be at least 1h", appCfg.PhotoSweepGrace)
	}
	if coreCfg != nil && coreCfg.Env == "prod" && len(appCfg.SessionKey) < 32 {
		return errors.New("session_key must be at least 32 characters in production")
	}
	return nil
}

// splitList turns "a, b,,c" into [a b c].
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
