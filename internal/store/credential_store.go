package store

import (
	"errors"
	"log/slog"
	"sync"

	"matmarket/internal/domain"
)

// CredentialFileStore persists the email to password snapshot to one file.
type CredentialFileStore struct {
	path string
	log  *slog.Logger
	mu   sync.Mutex
}

// NewCredentialFileStore returns a CredentialFileStore backed by path.
func NewCredentialFileStore(path string, log *slog.Logger) *CredentialFileStore {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &CredentialFileStore{path: path, log: log}
}

// Path returns the snapshot file location.
func (s *CredentialFileStore) Path() string { return s.path }

// LoadCredentials returns the current snapshot. A missing snapshot is created
// empty on disk; a corrupt one is reported as empty and left untouched.
func (s *CredentialFileStore) LoadCredentials() (domain.Credentials, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.load()
}

// SaveCredentials replaces the snapshot with creds.
func (s *CredentialFileStore) SaveCredentials(creds domain.Credentials) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.save(creds)
}

// AddCredential inserts email with the stored password value unless the email
// is already present.
func (s *CredentialFileStore) AddCredential(email, stored string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	creds, err := s.load()
	if err != nil {
		return false, err
	}
	if _, taken := creds[email]; taken {
		return false, nil
	}
	creds[email] = stored
	if err := s.save(creds); err != nil {
		return false, err
	}
	return true, nil
}

func (s *CredentialFileStore) load() (domain.Credentials, error) {
	creds := make(domain.Credentials)
	found, err := readJSON(s.path, &creds)
	switch {
	case errors.Is(err, errCorrupt):
		s.log.Warn("credential snapshot unreadable, treating as empty", "path", s.path, "error", err)
		return make(domain.Credentials), nil
	case err != nil:
		return nil, err
	case !found:
		if err := s.save(creds); err != nil {
			return nil, err
		}
	}
	if creds == nil { // snapshot held JSON null
		creds = make(domain.Credentials)
	}
	return creds, nil
}

func (s *CredentialFileStore) save(creds domain.Credentials) error {
	if creds == nil {
		creds = domain.Credentials{}
	}
	return writeJSON(s.path, creds, 0o600)
}

// Compile-time assertion that CredentialFileStore implements domain.CredentialStore.
var _ domain.CredentialStore = (*CredentialFileStore)(nil)
