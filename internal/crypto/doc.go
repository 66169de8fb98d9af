// Package crypto holds the password storage strategies used by the account
// service.
//
// Contents
//
//   - Plaintext: stores passwords as given. This is the default and keeps
//     credential snapshots readable by older tooling; it offers no protection.
//   - Bcrypt: stores bcrypt hashes (golang.org/x/crypto/bcrypt).
//   - Scrypt: stores scrypt-derived keys with their salt and cost parameters.
//   - Best-effort wiping of derived key buffers (Wipe).
//
// All strategies satisfy domain.PasswordHasher, so the account service never
// knows which one is in use.
package crypto
