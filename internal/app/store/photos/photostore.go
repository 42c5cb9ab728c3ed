// internal/app/store/photos/photostore.go
package photostore

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/gridfs"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Bucket is the GridFS bucket holding officer photos.
const Bucket = "photos"

// DefaultMaxBytes is used when New is given a non-positive limit.
const DefaultMaxBytes int64 = 5 << 20

var (
	ErrNotFound = errors.New("photo not found")
	ErrTooLarge = errors.New("photo exceeds the size limit")
	ErrNotImage = errors.New("photo is not an image")
)

// Info describes a stored photo.
type Info struct {
	Ref         string
	ContentType string
	Size        int64
	UploadedAt  time.Time
}

// Store keeps photos in GridFS. The stored reference doubles as the GridFS
// filename, so photos can be streamed by ref without a separate lookup table.
type Store struct {
	db       *mongo.Database
	maxBytes int64
	now      func() time.Time
}

func New(db *mongo.Database, maxBytes int64) *Store {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	return &Store{db: db, maxBytes: maxBytes, now: time.Now}
}

// MaxBytes is the largest photo Put accepts.
func (s *Store) MaxBytes() int64 { return s.maxBytes }

func (s *Store) bucket(ctx context.Context) (*gridfs.Bucket, error) {
	b, err := gridfs.NewBucket(s.db, options.GridFSBucket().SetName(Bucket))
	if err != nil {
		return nil, err
	}
	if dl, ok := ctx.Deadline(); ok {
		if err := b.SetReadDeadline(dl); err != nil {
			return nil, err
		}
		if err := b.SetWriteDeadline(dl); err != nil {
			return nil, err
		}
	}
	return b, nil
}

// Put stores the photo read from r and returns its reference,
// photos/YYYY/MM/<id>-<name>. An empty or generic contentType is sniffed
// from the data.
func (s *Store) Put(ctx context.Context, filename, contentType string, r io.Reader) (string, error) {
	data, err := io.ReadAll(io.LimitReader(r, s.maxBytes+1))
	if err != nil {
		return "", fmt.Errorf("read photo: %w", err)
	}
	if int64(len(data)) > s.maxBytes {
		return "", ErrTooLarge
	}
	ct, ok := DetectImageType(contentType, data)
	if !ok {
		return "", ErrNotImage
	}

	ref := NewRef(s.now(), filename)
	b, err := s.bucket(ctx)
	if err != nil {
		return "", err
	}
	meta := bson.M{"content_type": ct, "original_name": filename}
	if _, err := b.UploadFromStream(ref, bytes.NewReader(data), options.GridFSUpload().SetMetadata(meta)); err != nil {
		return "", fmt.Errorf("upload photo %s: %w", ref, err)
	}
	return ref, nil
}

// Open streams the photo stored under ref. The caller closes the reader.
func (s *Store) Open(ctx context.Context, ref string) (io.ReadCloser, Info, error) {
	b, err := s.bucket(ctx)
	if err != nil {
		return nil, Info{}, err
	}
	ds, err := b.OpenDownloadStreamByName(ref)
	if err != nil {
		if errors.Is(err, gridfs.ErrFileNotFound) {
			return nil, Info{}, ErrNotFound
		}
		return nil, Info{}, err
	}
	f := ds.GetFile()
	info := Info{Ref: ref, Size: f.Length, UploadedAt: f.UploadDate, ContentType: "application/octet-stream"}
	if f.Metadata != nil {
		if ct, ok := f.Metadata.Lookup("content_type").StringValueOK(); ok && ct != "" {
			info.ContentType = ct
		}
	}
	return ds, info, nil
}

// Delete removes the photo stored under ref. A missing photo is not an error.
func (s *Store) Delete(ctx context.Context, ref string) error {
	b, err := s.bucket(ctx)
	if err != nil {
		return err
	}
	cur, err := b.Find(bson.M{"filename": ref})
	if err != nil {
		return err
	}
	defer cur.Close(ctx)

	var files []struct {
		ID interface{} `bson:"_id"`
	}
	if err := cur.All(ctx, &files); err != nil {
		return err
	}
	for _, f := range files {
		if err := b.Delete(f.ID); err != nil && !errors.Is(err, gridfs.ErrFileNotFound) {
			return fmt.Errorf("delete photo %s: %w", ref, err)
		}
	}
	return nil
}

// DetectImageType returns the content type to store for data and whether it
// is an image. An empty or generic declared type is sniffed from the data.
func DetectImageType(declared string, data []byte) (string, bool) {
	ct := strings.ToLower(strings.TrimSpace(declared))
	if ct == "" || ct == "application/octet-stream" {
		ct = http.DetectContentType(data)
	}
	return ct, strings.HasPrefix(ct, "image/")
}

// NewRef builds a fresh photo reference for an upload made at t.
func NewRef(t time.Time, filename string) string {
	t = t.UTC()
	id := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return fmt.Sprintf("%s/%04d/%02d/%s-%s", Bucket, t.Year(), int(t.Month()), id, SanitizeName(filename))
}

// SanitizeName reduces an uploaded filename to lowercase letters, digits,
// dots, dashes and underscores. Directory parts are dropped.
func SanitizeName(name string) string {
	if i := strings.LastIndexAny(name, `/\`); i >= 0 {
		name = name[i+1:]
	}
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '.', r == '_':
			b.WriteRune(r)
			dash = false
		default:
			if !dash && b.Len() > 0 {
				b.WriteByte('-')
				dash = true
			}
		}
	}
	out := strings.Trim(b.String(), "-.")
	if len(out) > 64 {
		out = strings.TrimRight(out[:64], "-.")
	}
	if out == "" {
		return "photo"
	}
	return out
}

// ListBefore returns the refs of photos uploaded before t.
func (s *Store) ListBefore(ctx context.Context, t time.Time) ([]string, error) {
	b, err := s.bucket(ctx)
	if err != nil {
		return nil, err
	}
	cur, err := b.Find(bson.M{"uploadDate": bson.M{"$lt": t}})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var files []struct {
		Name string `bson:"filename"`
	}
	if err := cur.All(ctx, &files); err != nil {
		return nil, err
	}
	refs := make([]string, 0, len(files))
	seen := make(map[string]bool, len(files))
	for _, f := range files {
		if !seen[f.Name] {
			seen[f.Name] = true
			refs = append(refs, f.Name)
		}
	}
	return refs, nil
}
