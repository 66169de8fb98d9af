package types

// Credentials maps an account email to its stored password value.
//
// The stored value is whatever the configured PasswordHasher produced; with the
// default strategy that is the plaintext password.
type Credentials map[string]string

// Registration is the raw signup input gathered by a collaborator.
type Registration struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
	AcceptedTerms   bool   `json:"accepted_terms"`
}
