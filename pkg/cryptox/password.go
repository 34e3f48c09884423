package cryptox

import (
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

var (
	// ErrMismatch is returned when a password does not match the stored hash.
	ErrMismatch = errors.New("password does not match")

	// ErrMalformedHash is returned when the stored hash is not a PHC Argon2id string.
	ErrMalformedHash = errors.New("invalid hash format")
)

// Params are the Argon2id cost parameters.
type Params struct {
	Memory      uint32 // KiB
	Iterations  uint32
	Parallelism uint8
	KeyLength   uint32
	SaltLength  uint32
}

// DefaultParams follows the OWASP minimum recommendation for Argon2id.
var DefaultParams = Params{
	Memory:      19 * 1024,
	Iterations:  2,
	Parallelism: 1,
	KeyLength:   32,
	SaltLength:  16,
}

// Hasher hashes and verifies peppered passwords. It is immutable after
// construction and safe for concurrent use.
type Hasher struct {
	params Params
	pepper string

	// dummy is verified against when the account does not exist so the
	// unknown-user path costs the same as a wrong password.
	dummy string
}

// NewHasher builds a Hasher with the given pepper and cost parameters.
func NewHasher(pepper string, params Params) (*Hasher, error) {
	if params.KeyLength == 0 || params.SaltLength == 0 || params.Iterations == 0 || params.Parallelism == 0 {
		return nil, fmt.Errorf("cryptox: invalid argon2 params %+v", params)
	}

	h := &Hasher{params: params, pepper: pepper}

	dummy, err := h.Hash("not-a-real-password")
	if err != nil {
		return nil, err
	}
	h.dummy = dummy

	return h, nil
}

// Hash returns a PHC-format Argon2id string including salt and parameters.
func (h *Hasher) Hash(password string) (string, error) {
	salt, err := RandomBytes(int(h.params.SaltLength))
	if err != nil {
		return "", err
	}

	key := argon2.IDKey(
		[]byte(password+h.pepper),
		salt,
		h.params.Iterations,
		h.params.Memory,
		h.params.Parallelism,
		h.params.KeyLength,
	)

	return fmt.Sprintf(
		"$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		h.params.Memory,
		h.params.Iterations,
		h.params.Parallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	), nil
}

// Verify compares password against a PHC Argon2id hash in constant time.
// The parameters embedded in the hash are used, so hashes created with older
// cost settings keep verifying.
func (h *Hasher) Verify(password, encoded string) error {
	// ["", "argon2id", "v=19", "m=X,t=Y,p=Z", "salt", "hash"]
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 {
		return fmt.Errorf("%w: expected 6 parts", ErrMalformedHash)
	}
	if parts[1] != "argon2id" {
		return fmt.Errorf("%w: not argon2id", ErrMalformedHash)
	}
	if parts[2] != fmt.Sprintf("v=%d", argon2.Version) {
		return fmt.Errorf("%w: wrong version", ErrMalformedHash)
	}

	var mem, iters uint32
	var par uint8
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &mem, &iters, &par); err != nil {
		return fmt.Errorf("%w: parameters: %v", ErrMalformedHash, err)
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return fmt.Errorf("%w: salt: %v", ErrMalformedHash, err)
	}
	expected, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return fmt.Errorf("%w: hash: %v", ErrMalformedHash, err)
	}
	if len(expected) == 0 {
		return fmt.Errorf("%w: empty hash", ErrMalformedHash)
	}

	computed := argon2.IDKey(
		[]byte(password+h.pepper),
		salt,
		iters,
		mem,
		par,
		uint32(len(expected)), // #nosec G115 - hash lengths are tiny
	)

	if subtle.ConstantTimeCompare(computed, expected) == 1 {
		return nil
	}
	return ErrMismatch
}

// VerifyDummy burns the same work as a real verification and always fails.
func (h *Hasher) VerifyDummy(password string) error {
	_ = h.Verify(password, h.dummy)
	return ErrMismatch
}
