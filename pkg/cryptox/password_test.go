package cryptox

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// fastParams keeps the suite quick; production uses DefaultParams.
var fastParams = Params{Memory: 1024, Iterations: 1, Parallelism: 1, KeyLength: 32, SaltLength: 16}

func newTestHasher(t *testing.T, pepper string) *Hasher {
	t.Helper()
	h, err := NewHasher(pepper, fastParams)
	require.NoError(t, err)
	return h
}

func TestHash(t *testing.T) {
	h := newTestHasher(t, "pepper")

	tests := []struct {
		name     string
		password string
	}{
		{"simple password", "password123"},
		{"complex password", "P@ssw0rd!#$%^&*()"},
		{"long password", strings.Repeat("a", 100)},
		{"empty password", ""},
		{"unicode password", "пароль密码"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash, err := h.Hash(tt.password)
			require.NoError(t, err)
			require.True(t, strings.HasPrefix(hash, "$argon2id$v=19$"))

			parts := strings.Split(hash, "$")
			require.Len(t, parts, 6)
			require.Equal(t, "m=1024,t=1,p=1", parts[3])
			require.NotEmpty(t, parts[4])
			require.NotEmpty(t, parts[5])

			require.NoError(t, h.Verify(tt.password, hash))
		})
	}
}

func TestHash_UniqueSalts(t *testing.T) {
	h := newTestHasher(t, "pepper")

	a, err := h.Hash("samepassword")
	require.NoError(t, err)
	b, err := h.Hash("samepassword")
	require.NoError(t, err)

	require.NotEqual(t, a, b)
	require.NoError(t, h.Verify("samepassword", a))
	require.NoError(t, h.Verify("samepassword", b))
}

func TestVerify_WrongPassword(t *testing.T) {
	h := newTestHasher(t, "pepper")
	hash, err := h.Hash("Correct-Password1!")
	require.NoError(t, err)

	for _, wrong := range []string{"correct-password1!", "Correct-Password1! ", "", "Correct-Password1"} {
		require.ErrorIs(t, h.Verify(wrong, hash), ErrMismatch, "candidate %q", wrong)
	}
}

func TestVerify_PepperMatters(t *testing.T) {
	a := newTestHasher(t, "pepper-a")
	b := newTestHasher(t, "pepper-b")

	hash, err := a.Hash("Secret1!")
	require.NoError(t, err)

	require.NoError(t, a.Verify("Secret1!", hash))
	require.ErrorIs(t, b.Verify("Secret1!", hash), ErrMismatch)
}

func TestVerify_InvalidHashFormat(t *testing.T) {
	h := newTestHasher(t, "pepper")

	tests := []struct {
		name string
		hash string
	}{
		{"empty hash", ""},
		{"wrong algorithm", "$bcrypt$v=19$m=19456,t=2,p=1$c2FsdA$aGFzaA"},
		{"missing parts", "$argon2id$v=19$m=19456"},
		{"malformed parameters", "$argon2id$v=19$invalid$c2FsdA$aGFzaA"},
		{"invalid base64 salt", "$argon2id$v=19$m=19456,t=2,p=1$!!!invalid!!!$aGFzaA"},
		{"invalid base64 hash", "$argon2id$v=19$m=19456,t=2,p=1$c2FsdA$!!!invalid!!!"},
		{"wrong version", "$argon2id$v=18$m=19456,t=2,p=1$c2FsdA$aGFzaA"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.ErrorIs(t, h.Verify("test-password", tt.hash), ErrMalformedHash)
		})
	}
}

func TestVerifyDummyAlwaysFails(t *testing.T) {
	h := newTestHasher(t, "pepper")

	require.ErrorIs(t, h.VerifyDummy("not-a-real-password"), ErrMismatch)
	require.ErrorIs(t, h.VerifyDummy(""), ErrMismatch)
}

func TestNewHasherRejectsZeroParams(t *testing.T) {
	_, err := NewHasher("pepper", Params{})
	require.Error(t, err)
}

func TestLoadOrCreatePepper(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "pepper")

	first, err := LoadOrCreatePepper(path)
	require.NoError(t, err)
	require.NotEmpty(t, first)

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	second, err := LoadOrCreatePepper(path)
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestLoadOrCreatePepperRejectsEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pepper")
	require.NoError(t, os.WriteFile(path, []byte("  \n"), 0o600))

	_, err := LoadOrCreatePepper(path)
	require.Error(t, err)

	_, err = LoadOrCreatePepper("")
	require.Error(t, err)
}
