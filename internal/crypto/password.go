package crypto

import (
	"crypto/subtle"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"matmarket/internal/domain"
)

// Strategy names accepted by NewPasswordHasher.
const (
	StrategyPlaintext = "plaintext"
	StrategyBcrypt    = "bcrypt"
	StrategyScrypt    = "scrypt"
)

// Plaintext stores passwords unchanged.
type Plaintext struct{}

// Hash returns password as-is.
func (Plaintext) Hash(password string) (string, error) { return password, nil }

// Verify compares in constant time.
func (Plaintext) Verify(stored, candidate string) bool {
	return subtle.ConstantTimeCompare([]byte(stored), []byte(candidate)) == 1
}

// Bcrypt stores bcrypt hashes at the configured cost.
type Bcrypt struct {
	Cost int
}

// NewBcrypt returns a Bcrypt hasher with cost clamped to bcrypt's valid range.
// A non-positive cost selects bcrypt.DefaultCost.
func NewBcrypt(cost int) *Bcrypt {
	if cost <= 0 {
		cost = bcrypt.DefaultCost
	}
	if cost < bcrypt.MinCost {
		cost = bcrypt.MinCost
	}
	if cost > bcrypt.MaxCost {
		cost = bcrypt.MaxCost
	}
	return &Bcrypt{Cost: cost}
}

// Hash produces a bcrypt hash of password.
func (h *Bcrypt) Hash(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), h.Cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Verify reports whether candidate matches the stored hash. A stored value
// that is not a bcrypt hash never matches.
func (h *Bcrypt) Verify(stored, candidate string) bool {
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(candidate)) == nil
}

// NewPasswordHasher selects a strategy by name.
func NewPasswordHasher(strategy string, bcryptCost int) (domain.PasswordHasher, error) {
	switch strategy {
	case "", StrategyPlaintext:
		return Plaintext{}, nil
	case StrategyBcrypt:
		return NewBcrypt(bcryptCost), nil
	case StrategyScrypt:
		return NewScrypt(), nil
	default:
		return nil, fmt.Errorf("unknown password strategy %q", strategy)
	}
}

var (
	_ domain.PasswordHasher = Plaintext{}
	_ domain.PasswordHasher = (*Bcrypt)(nil)
)
