package account

import (
	"context"
	"log/slog"
	"strings"

	"matmarket/internal/domain"
)

// Service manages account creation and login checks using a backing store.
type Service struct {
	store  domain.CredentialStore
	hasher domain.PasswordHasher
	log    *slog.Logger
}

// New returns an account service backed by the given store and hasher.
func New(store domain.CredentialStore, hasher domain.PasswordHasher, log *slog.Logger) *Service {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Service{store: store, hasher: hasher, log: log}
}

// Register validates reg and, on success, stores the new account.
//
// Rules are checked in order and the first failure is returned as a
// *domain.ValidationError; the store is not modified on failure.
func (s *Service) Register(_ context.Context, reg domain.Registration) error {
	if err := validateRegistration(reg); err != nil {
		return err
	}

	// Cheap pre-check so a taken email does not pay for hashing.
	creds, err := s.store.LoadCredentials()
	if err != nil {
		return err
	}
	if _, taken := creds[reg.Email]; taken {
		return domain.Invalid(domain.ErrEmailTaken, "email")
	}

	stored, err := s.hasher.Hash(reg.Password)
	if err != nil {
		return err
	}
	added, err := s.store.AddCredential(reg.Email, stored)
	if err != nil {
		return err
	}
	if !added {
		return domain.Invalid(domain.ErrEmailTaken, "email")
	}

	s.log.Info("account registered", "email", reg.Email)
	return nil
}

// Authenticate checks email and password against the stored account. It
// issues no session; success only means the pair is valid.
func (s *Service) Authenticate(_ context.Context, email, password string) error {
	if email == "" || password == "" {
		return domain.Invalid(domain.ErrMissingFields, "")
	}

	creds, err := s.store.LoadCredentials()
	if err != nil {
		return err
	}
	stored, ok := creds[email]
	if !ok {
		return &domain.AuthError{Err: domain.ErrUserNotFound, Email: email}
	}
	if !s.hasher.Verify(stored, password) {
		return &domain.AuthError{Err: domain.ErrWrongPassword, Email: email}
	}
	return nil
}

func validateRegistration(reg domain.Registration) error {
	switch {
	case reg.Email == "":
		return domain.Invalid(domain.ErrMissingFields, "email")
	case reg.Password == "":
		return domain.Invalid(domain.ErrMissingFields, "password")
	case reg.ConfirmPassword == "":
		return domain.Invalid(domain.ErrMissingFields, "confirm_password")
	case !strings.Contains(reg.Email, "@"):
		return domain.Invalid(domain.ErrInvalidEmail, "email")
	case reg.Password != reg.ConfirmPassword:
		return domain.Invalid(domain.ErrPasswordMismatch, "confirm_password")
	case !reg.AcceptedTerms:
		return domain.Invalid(domain.ErrTermsNotAccepted, "accepted_terms")
	}
	return nil
}

// Compile-time assertion that Service implements domain.AccountService.
var _ domain.AccountService = (*Service)(nil)
