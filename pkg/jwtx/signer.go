package jwtx

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// MinSecretSize is the smallest HMAC key accepted, matching the SHA-256
// output size.
const MinSecretSize = 32

// ErrWeakSecret is returned when the signing secret is missing or too short.
var ErrWeakSecret = fmt.Errorf("jwtx: signing secret must be at least %d bytes", MinSecretSize)

// Signer is our interface for anything that can sign JWTs.
type Signer interface {
	Alg() string
	Sign(Claims) (string, error)
}

// HS256Signer signs tokens with HMAC-SHA-256 and a shared secret.
type HS256Signer struct {
	key []byte
}

// NewSignerHS256 copies secret and validates its length. Construct it at
// startup so a bad secret stops the process before it serves traffic.
func NewSignerHS256(secret []byte) (*HS256Signer, error) {
	if len(secret) < MinSecretSize {
		return nil, ErrWeakSecret
	}
	key := make([]byte, len(secret))
	copy(key, secret)
	return &HS256Signer{key: key}, nil
}

func (s *HS256Signer) Alg() string { return jwt.SigningMethodHS256.Alg() }

// Sign serializes claims into a compact JWS.
func (s *HS256Signer) Sign(claims Claims) (string, error) {
	if s == nil || len(s.key) == 0 {
		return "", errors.New("jwtx: signer not initialised")
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.key)
}
