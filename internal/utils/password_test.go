package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashPassword_RoundTrip(t *testing.T) {
	t.Parallel()

	for _, password := range []string{"P4ssword!", "short1A", "päss wörd 123A"} {
		hash, err := HashPassword(password)
		require.NoError(t, err)
		require.NotEqual(t, password, hash)
		require.True(t, VerifyPassword(hash, password))
		require.False(t, VerifyPassword(hash, password+"x"))
	}
}

func TestHashPassword_LongInputPrehash(t *testing.T) {
	t.Parallel()

	// Over 72 bytes the password is replaced by its hex SHA-256 before
	// bcrypt, so hashing the digest directly must verify too.
	long := strings.Repeat("correct horse battery staple ", 4) // > 72 bytes
	require.Greater(t, len(long), 72)

	sum := sha256.Sum256([]byte(long))
	digest := hex.EncodeToString(sum[:])

	hash, err := HashPassword(long)
	require.NoError(t, err)
	require.True(t, VerifyPassword(hash, long))
	require.True(t, VerifyPassword(hash, digest), "long password and its digest must hash identically")
}

func TestHashPassword_LongInputsDifferingAfter72Bytes(t *testing.T) {
	t.Parallel()

	// Without the pre-hash bcrypt would truncate these to the same input.
	base := strings.Repeat("a", 72)
	h, err := HashPassword(base + "left")
	require.NoError(t, err)
	require.False(t, VerifyPassword(h, base+"right"))
}

func TestVerifyPassword_MalformedHash(t *testing.T) {
	t.Parallel()

	require.False(t, VerifyPassword("", "whatever"))
	require.False(t, VerifyPassword("not-a-bcrypt-hash", "whatever"))
}
