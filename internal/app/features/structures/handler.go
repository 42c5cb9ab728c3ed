// internal/app/features/structures/handler.go
package structures

import (
	"context"
	"io"

	uierrors "github.com/dalemusser/kemahasiswaan/internal/app/features/errors"
	photostore "github.com/dalemusser/kemahasiswaan/internal/app/store/photos"
	"github.com/dalemusser/kemahasiswaan/internal/app/system/flash"
	"github.com/dalemusser/kemahasiswaan/internal/app/system/ratelimit"
	"github.com/dalemusser/kemahasiswaan/internal/domain/models"
	"go.uber.org/zap"
)

// SavedMessage is flashed after a successful save.
const SavedMessage = "Struktur berhasil disimpan."

// DefaultMaxUploadBytes bounds a whole multipart submission when no limit is
// configured.
const DefaultMaxUploadBytes int64 = 32 << 20

// StructureStore is implemented by structurestore.Store.
type StructureStore interface {
	Get(ctx context.Context, kind, period string) (models.OrgStructure, error)
	Save(ctx context.Context, o models.OrgStructure) (models.OrgStructure, error)
	Delete(ctx context.Context, kind, period string) error
	List(ctx context.Context, kind string) ([]models.OrgStructure, error)
}

// PhotoStore is implemented by photostore.Store.
type PhotoStore interface {
	Put(ctx context.Context, filename, contentType string, r io.Reader) (string, error)
	Open(ctx context.Context, ref string) (io.ReadCloser, photostore.Info, error)
	Delete(ctx context.Context, ref string) error
	MaxBytes() int64
}

// Handler serves the organization structure endpoints.
type Handler struct {
	Structures     StructureStore
	Photos         PhotoStore
	Flash          *flash.Store // optional
	ErrLog         *uierrors.ErrorLogger
	Log            *zap.Logger
	MaxUploadBytes int64

	// SaveLimiter throttles saves and deletes per client IP. Optional.
	SaveLimiter *ratelimit.Limiter
}

func NewHandler(structures StructureStore, photos PhotoStore, fl *flash.Store, errLog *uierrors.ErrorLogger, maxUploadBytes int64, logger *zap.Logger) *Handler {
	if maxUploadBytes <= 0 {
		maxUploadBytes = DefaultMaxUploadBytes
	}
	return &Handler{
		Structures:     structures,
		Photos:         photos,
		Flash:          fl,
		ErrLog:         errLog,
		Log:            logger,
		MaxUploadBytes: maxUploadBytes,
	}
}
