package store_test

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"matmarket/internal/domain"
	"matmarket/internal/store"
)

func blobs(n int) []domain.Blob {
	out := make([]domain.Blob, n)
	for i := range out {
		out[i] = domain.Blob{Name: fmt.Sprintf("img-%d.png", i), Data: []byte{byte(i)}}
	}
	return out
}

func TestUploads_TruncatesToMaxCount(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "uploads")
	s := store.NewUploadDirStore(dir)

	names, err := s.StoreUploads(context.Background(), blobs(7), 5)
	require.NoError(t, err)
	assert.Equal(t, []string{"img-0.png", "img-1.png", "img-2.png", "img-3.png", "img-4.png"}, names)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 5)
}

func TestUploads_WritesVerbatim(t *testing.T) {
	dir := t.TempDir()
	s := store.NewUploadDirStore(dir)

	data := []byte("\x89PNG raw bytes")
	names, err := s.StoreUploads(context.Background(), []domain.Blob{{Name: "photo.png", Data: data}}, 0)
	require.NoError(t, err)
	require.Equal(t, []string{"photo.png"}, names)

	got, err := os.ReadFile(filepath.Join(dir, "photo.png"))
	require.NoError(t, err)
	assert.Equal(t, data, got)
}

func TestUploads_NoBlobs_DoesNotCreateDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "uploads")
	names, err := store.NewUploadDirStore(dir).StoreUploads(context.Background(), nil, 5)
	require.NoError(t, err)
	assert.Empty(t, names)

	_, err = os.Stat(dir)
	assert.True(t, os.IsNotExist(err))
}

func TestUploads_SameNameOverwrites(t *testing.T) {
	dir := t.TempDir()
	s := store.NewUploadDirStore(dir)
	ctx := context.Background()

	_, err := s.StoreUploads(ctx, []domain.Blob{{Name: "a.png", Data: []byte("one")}}, 5)
	require.NoError(t, err)
	_, err = s.StoreUploads(ctx, []domain.Blob{{Name: "a.png", Data: []byte("two")}}, 5)
	require.NoError(t, err)

	got, err := os.ReadFile(filepath.Join(dir, "a.png"))
	require.NoError(t, err)
	assert.Equal(t, "two", string(got))
}

func TestUploads_UniqueNames(t *testing.T) {
	dir := t.TempDir()
	s := store.NewUploadDirStore(dir, store.WithUniqueNames(true))
	ctx := context.Background()

	first, err := s.StoreUploads(ctx, []domain.Blob{{Name: "a.png", Data: []byte("one")}}, 5)
	require.NoError(t, err)
	second, err := s.StoreUploads(ctx, []domain.Blob{{Name: "a.png", Data: []byte("two")}}, 5)
	require.NoError(t, err)

	require.Len(t, first, 1)
	require.Len(t, second, 1)
	assert.NotEqual(t, first[0], second[0])
	assert.True(t, strings.HasSuffix(first[0], "_a.png"))
}

func TestUploads_PathsCannotEscapeDir(t *testing.T) {
	dir := t.TempDir()
	s := store.NewUploadDirStore(dir)

	names, err := s.StoreUploads(context.Background(), []domain.Blob{{Name: "../../etc/evil.png", Data: []byte("x")}}, 5)
	require.NoError(t, err)
	assert.Equal(t, []string{"evil.png"}, names)
	_, err = os.Stat(filepath.Join(dir, "evil.png"))
	assert.NoError(t, err)
}

func TestUploads_InvalidName_WritesNothing(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "uploads")
	s := store.NewUploadDirStore(dir)

	_, err := s.StoreUploads(context.Background(), []domain.Blob{
		{Name: "ok.png", Data: []byte("x")},
		{Name: "", Data: []byte("y")},
	}, 5)
	assert.ErrorIs(t, err, domain.ErrInvalidFilename)
	_, statErr := os.Stat(dir)
	assert.True(t, os.IsNotExist(statErr))
}

func TestUploads_OpenUpload(t *testing.T) {
	dir := t.TempDir()
	s := store.NewUploadDirStore(dir)
	ctx := context.Background()

	_, err := s.StoreUploads(ctx, []domain.Blob{{Name: "a.png", Data: []byte("hello")}}, 5)
	require.NoError(t, err)

	rc, err := s.OpenUpload(ctx, "a.png")
	require.NoError(t, err)
	defer rc.Close()
	b, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(b))

	_, err = s.OpenUpload(ctx, "missing.png")
	assert.ErrorIs(t, err, domain.ErrUploadNotFound)

	_, err = s.OpenUpload(ctx, "../a.png")
	assert.ErrorIs(t, err, domain.ErrInvalidFilename)
}

func TestLimitBlobs_DefaultCap(t *testing.T) {
	assert.Len(t, store.LimitBlobs(blobs(9), 0), store.DefaultMaxUploads)
	assert.Len(t, store.LimitBlobs(blobs(2), 5), 2)
}
