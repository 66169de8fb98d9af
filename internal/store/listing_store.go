package store

import (
	"errors"
	"log/slog"
	"sync"

	"matmarket/internal/domain"
)

// ListingFileStore persists the append-only listing collection to one file.
type ListingFileStore struct {
	path string
	log  *slog.Logger
	mu   sync.Mutex
}

// NewListingFileStore returns a ListingFileStore backed by path.
func NewListingFileStore(path string, log *slog.Logger) *ListingFileStore {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &ListingFileStore{path: path, log: log}
}

// Path returns the snapshot file location.
func (s *ListingFileStore) Path() string { return s.path }

// LoadListings returns all listings in insertion order. A missing or corrupt
// snapshot yields an empty slice.
func (s *ListingFileStore) LoadListings() ([]domain.Listing, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.load()
}

// SaveListings replaces the snapshot with listings.
func (s *ListingFileStore) SaveListings(listings []domain.Listing) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.save(listings)
}

// AppendListing loads the snapshot, appends listing and rewrites the file.
func (s *ListingFileStore) AppendListing(listing domain.Listing) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	listings, err := s.load()
	if err != nil {
		return err
	}
	return s.save(append(listings, listing))
}

func (s *ListingFileStore) load() ([]domain.Listing, error) {
	var listings []domain.Listing
	_, err := readJSON(s.path, &listings)
	if errors.Is(err, errCorrupt) {
		s.log.Warn("listing snapshot unreadable, treating as empty", "path", s.path, "error", err)
		return []domain.Listing{}, nil
	}
	if err != nil {
		return nil, err
	}
	if listings == nil {
		listings = []domain.Listing{}
	}
	return listings, nil
}

func (s *ListingFileStore) save(listings []domain.Listing) error {
	out := make([]domain.Listing, len(listings))
	copy(out, listings)
	for i := range out {
		if out[i].UploadedFiles == nil {
			out[i].UploadedFiles = []string{}
		}
	}
	return writeJSON(s.path, out, 0o644)
}

// Compile-time assertion that ListingFileStore implements domain.ListingStore.
var _ domain.ListingStore = (*ListingFileStore)(nil)
