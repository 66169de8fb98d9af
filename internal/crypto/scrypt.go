package crypto

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/crypto/scrypt"

	"matmarket/internal/domain"
)

const (
	scryptPrefix  = "scrypt"
	scryptSaltLen = 16
	scryptKeyLen  = 32

	// Ceilings for parameters read back from a stored hash. scrypt needs
	// 128*N*r bytes, so these cap a single Verify at 128 MiB.
	scryptMaxN      = 1 << 17
	scryptMaxR      = 8
	scryptMaxP      = 4
	scryptMaxKeyLen = 64
)

// Scrypt stores "scrypt$N$r$p$salt$key" with base64 salt and key. The cost
// parameters travel with each hash, so changing them does not invalidate
// existing accounts.
type Scrypt struct {
	N, R, P int
}

// NewScrypt returns a Scrypt hasher with the default cost parameters.
func NewScrypt() *Scrypt {
	return &Scrypt{N: 1 << 15, R: 8, P: 1}
}

func (h *Scrypt) Hash(password string) (string, error) {
	var salt [scryptSaltLen]byte
	if _, err := rand.Read(salt[:]); err != nil {
		return "", err
	}
	key, err := scrypt.Key([]byte(password), salt[:], h.N, h.R, h.P, scryptKeyLen)
	if err != nil {
		return "", err
	}
	enc := base64.RawStdEncoding
	return strings.Join([]string{
		scryptPrefix,
		strconv.Itoa(h.N), strconv.Itoa(h.R), strconv.Itoa(h.P),
		enc.EncodeToString(salt[:]), enc.EncodeToString(key),
	}, "$"), nil
}

// Verify re-derives the key with the parameters stored in the hash. Values
// that do not parse never match.
func (h *Scrypt) Verify(stored, candidate string) bool {
	n, r, p, salt, want, err := parseScrypt(stored)
	if err != nil {
		return false
	}
	got, err := scrypt.Key([]byte(candidate), salt, n, r, p, len(want))
	if err != nil {
		return false
	}
	defer Wipe(got)
	return subtle.ConstantTimeCompare(got, want) == 1
}

func parseScrypt(s string) (n, r, p int, salt, key []byte, err error) {
	parts := strings.Split(s, "$")
	if len(parts) != 6 || parts[0] != scryptPrefix {
		return 0, 0, 0, nil, nil, fmt.Errorf("not an scrypt hash")
	}
	params := make([]int, 3)
	for i, v := range parts[1:4] {
		if params[i], err = strconv.Atoi(v); err != nil {
			return 0, 0, 0, nil, nil, err
		}
	}
	enc := base64.RawStdEncoding
	if salt, err = enc.DecodeString(parts[4]); err != nil {
		return 0, 0, 0, nil, nil, err
	}
	if key, err = enc.DecodeString(parts[5]); err != nil {
		return 0, 0, 0, nil, nil, err
	}
	if len(key) == 0 || len(key) > scryptMaxKeyLen {
		return 0, 0, 0, nil, nil, fmt.Errorf("bad scrypt key length %d", len(key))
	}
	if params[0] < 2 || params[0] > scryptMaxN || params[1] < 1 || params[1] > scryptMaxR ||
		params[2] < 1 || params[2] > scryptMaxP {
		return 0, 0, 0, nil, nil, fmt.Errorf("scrypt parameters out of range")
	}
	return params[0], params[1], params[2], salt, key, nil
}

var _ domain.PasswordHasher = (*Scrypt)(nil)
