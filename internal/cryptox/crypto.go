// Package cryptox holds the password hashing used for credentials.
package cryptox

import (
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
	"hash"

	"github.com/s-r-jones/deep-dive-air/internal/common"
	"golang.org/x/crypto/pbkdf2"
)

// SaltSize is the number of random bytes in a salt, before hex encoding.
const SaltSize = 32

// Params configures PBKDF2.
type Params struct {
	Hash       func() hash.Hash
	Iterations int
	KeyLength  int
}

// DefaultParams produces 128 hex characters from HMAC-SHA-512 over 2050
// iterations.
var DefaultParams = Params{
	Hash:       sha512.New,
	Iterations: 2050,
	KeyLength:  64,
}

// WithIterations returns a copy of p using n iterations. Non-positive n
// keeps the current value.
func (p Params) WithIterations(n int) Params {
	if n > 0 {
		p.Iterations = n
	}
	return p
}

// GenerateSalt returns SaltSize bytes from crypto/rand as lowercase hex.
func GenerateSalt() (string, error) {
	return common.MakeRandHexString(SaltSize)
}

// HashPassword derives the stored hash for a password.
//
// The salt is fed to PBKDF2 as its hex text rather than as decoded bytes,
// so hashes created by earlier deployments keep verifying.
//
// Parameters:
//   - password: the plaintext password, used as is.
//   - salt: the hex salt from GenerateSalt.
//   - p: PBKDF2 parameters, normally DefaultParams.
//
// Returns the derived key as lowercase hex, 2*p.KeyLength characters long.
func HashPassword(password, salt string, p Params) string {
	key := pbkdf2.Key([]byte(password), []byte(salt), p.Iterations, p.KeyLength, p.Hash)
	return hex.EncodeToString(key)
}

// VerifyPassword recomputes the hash and compares it in constant time.
func VerifyPassword(password, salt, stored string, p Params) bool {
	got := HashPassword(password, salt, p)
	return subtle.ConstantTimeCompare([]byte(got), []byte(stored)) == 1
}
