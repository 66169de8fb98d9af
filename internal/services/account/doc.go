// Package account registers and authenticates marketplace users.
//
// It enforces the signup rules (required fields, email shape, matching
// confirmation, accepted terms, unique email) and persists accounts via the
// domain.CredentialStore, converting passwords with a domain.PasswordHasher.
package account
