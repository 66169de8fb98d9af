package store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"

	"matmarket/internal/domain"
)

// DefaultMaxUploads caps how many blobs a single listing may carry.
const DefaultMaxUploads = 5

// UploadDirStore writes uploaded blobs into a flat directory.
//
// Same-named uploads overwrite each other unless unique naming is enabled, in
// which case every stored name is prefixed with a random UUID.
type UploadDirStore struct {
	dir    string
	unique bool
	mu     sync.Mutex
}

// UploadOption configures an UploadDirStore.
type UploadOption func(*UploadDirStore)

// WithUniqueNames prefixes every stored filename with a UUID.
func WithUniqueNames(enabled bool) UploadOption {
	return func(s *UploadDirStore) { s.unique = enabled }
}

// NewUploadDirStore returns an UploadDirStore rooted at dir.
func NewUploadDirStore(dir string, opts ...UploadOption) *UploadDirStore {
	s := &UploadDirStore{dir: dir}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Dir returns the upload directory.
func (s *UploadDirStore) Dir() string { return s.dir }

// StoreUploads writes at most maxCount blobs verbatim and returns the stored
// names in input order. A non-positive maxCount means DefaultMaxUploads. The
// directory is only created when there is something to write.
func (s *UploadDirStore) StoreUploads(ctx context.Context, blobs []domain.Blob, maxCount int) ([]string, error) {
	blobs = LimitBlobs(blobs, maxCount)
	names := make([]string, 0, len(blobs))
	if len(blobs) == 0 {
		return names, nil
	}

	// Resolve every name before touching the disk so a bad name writes nothing.
	for _, b := range blobs {
		name, err := UploadName(b.Name, s.unique)
		if err != nil {
			return nil, err
		}
		names = append(names, name)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", domain.ErrUnwritable, s.dir, err)
	}
	for i, b := range blobs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		path := filepath.Join(s.dir, names[i])
		if err := os.WriteFile(path, b.Data, 0o644); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", domain.ErrUnwritable, path, err)
		}
	}
	return names, nil
}

// OpenUpload opens a stored upload for reading.
func (s *UploadDirStore) OpenUpload(_ context.Context, name string) (io.ReadCloser, error) {
	clean, err := UploadName(name, false)
	if err != nil || clean != name {
		return nil, domain.ErrInvalidFilename
	}
	f, err := os.Open(filepath.Join(s.dir, clean))
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", domain.ErrUploadNotFound, name)
	}
	if err != nil {
		return nil, err
	}
	return f, nil
}

// LimitBlobs truncates blobs to maxCount entries, keeping input order. A
// non-positive maxCount means DefaultMaxUploads.
func LimitBlobs(blobs []domain.Blob, maxCount int) []domain.Blob {
	if maxCount <= 0 {
		maxCount = DefaultMaxUploads
	}
	if len(blobs) > maxCount {
		return blobs[:maxCount]
	}
	return blobs
}

// UploadName reduces an uploaded filename to its base name so it cannot escape
// the upload directory, optionally prefixing a UUID.
func UploadName(original string, unique bool) (string, error) {
	name := filepath.Base(filepath.Clean("/" + filepath.ToSlash(original)))
	if name == "/" || name == "." || name == ".." || name == "" {
		return "", fmt.Errorf("%w: %q", domain.ErrInvalidFilename, original)
	}
	if unique {
		name = uuid.NewString() + "_" + name
	}
	return name, nil
}

// Compile-time assertion that UploadDirStore implements domain.UploadStore.
var _ domain.UploadStore = (*UploadDirStore)(nil)
