// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). WAFFLE's CoreConfig covers the
// framework-level settings (ports, TLS, logging); everything here belongs to
// the structure editor service.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI            string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase       string // Database name within MongoDB
	MongoMaxPoolSize    uint64 // Maximum connections in the driver pool
	MongoMinPoolSize    uint64 // Connections the driver keeps warm
	MongoConnectRetries uint64 // Ping attempts before startup gives up

	// Flash cookie configuration
	SessionKey    string // Secret key for signing the flash cookie (must be strong in production)
	SessionName   string // Cookie name (default: kemahasiswaan-session)
	SessionDomain string // Cookie domain (blank means current host)

	// Browser editor origins allowed to call the API
	CORSAllowedOrigins []string

	// Upload limits
	MaxUploadBytes int64 // Whole multipart submission
	PhotoMaxBytes  int64 // Single photo

	// Saves and deletes allowed per client IP per minute (0 disables)
	SaveRateLimit int

	// Background removal of photos no structure references
	PhotoSweepInterval time.Duration // 0 disables the sweep
	PhotoSweepGrace    time.Duration // Minimum photo age before it may be swept
}
