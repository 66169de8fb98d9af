package interfaces

import (
	"context"
	"io"

	domaintypes "matmarket/internal/domain/types"
)

// CredentialStore persists the email to password snapshot.
type CredentialStore interface {
	// LoadCredentials returns the current snapshot. A missing snapshot is
	// initialised empty; an unreadable one is reported as empty.
	LoadCredentials() (domaintypes.Credentials, error)
	// SaveCredentials replaces the snapshot with creds.
	SaveCredentials(creds domaintypes.Credentials) error
	// AddCredential inserts email under a single read-modify-write. It reports
	// false without writing when email is already present.
	AddCredential(email, stored string) (bool, error)
}

// ListingStore persists the append-only listing snapshot.
type ListingStore interface {
	LoadListings() ([]domaintypes.Listing, error)
	SaveListings(listings []domaintypes.Listing) error
	AppendListing(listing domaintypes.Listing) error
}

// UploadStore writes uploaded blobs and serves them back by name.
type UploadStore interface {
	// StoreUploads writes at most maxCount blobs and returns their stored
	// names in input order.
	StoreUploads(ctx context.Context, blobs []domaintypes.Blob, maxCount int) ([]string, error)
	OpenUpload(ctx context.Context, name string) (io.ReadCloser, error)
}

// PasswordHasher converts passwords to their stored form and checks candidates.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(stored, candidate string) bool
}
