package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const testSecret = "unit-test-secret"

func newTestCodec(t *testing.T, bl *Blacklist) *Codec {
	t.Helper()
	var revoked interface{ IsRevoked(string) bool }
	if bl != nil {
		revoked = bl
	}
	c, err := NewCodec(testSecret, "HS256", 60, 7, revoked)
	require.NoError(t, err)
	return c
}

func TestNewCodec_Validation(t *testing.T) {
	t.Parallel()

	_, err := NewCodec("", "HS256", 60, 7, nil)
	require.Error(t, err)

	_, err = NewCodec(testSecret, "RS256", 60, 7, nil)
	require.Error(t, err, "asymmetric algorithms are rejected")

	_, err = NewCodec(testSecret, "none", 60, 7, nil)
	require.Error(t, err)

	for _, alg := range []string{"HS256", "HS384", "HS512"} {
		_, err = NewCodec(testSecret, alg, 60, 7, nil)
		require.NoError(t, err, alg)
	}
}

func TestCodec_IssueAndDecodeAccess(t *testing.T) {
	t.Parallel()

	c := newTestCodec(t, nil)
	raw, exp, err := c.IssueAccess(42, "ada", 3)
	require.NoError(t, err)
	require.WithinDuration(t, time.Now().Add(time.Hour), exp, 5*time.Second)

	claims, err := c.Decode(raw, true)
	require.NoError(t, err)
	require.Equal(t, uint64(42), claims.UserID)
	require.Equal(t, TypeAccess, claims.Type)
	require.Equal(t, "ada", claims.Username)
	require.Equal(t, 3, claims.Version)
	require.NotEmpty(t, claims.ID)
	require.WithinDuration(t, exp, claims.ExpiresAt, time.Second)
}

func TestCodec_IssueRefreshOmitsUsername(t *testing.T) {
	t.Parallel()

	c := newTestCodec(t, nil)
	raw, _, err := c.IssueRefresh(7, 0)
	require.NoError(t, err)

	claims, err := c.Decode(raw, true)
	require.NoError(t, err)
	require.Equal(t, TypeRefresh, claims.Type)
	require.Empty(t, claims.Username)
}

func TestCodec_UniqueTokenIDs(t *testing.T) {
	t.Parallel()

	c := newTestCodec(t, nil)
	a, _, err := c.IssueAccess(1, "u", 0)
	require.NoError(t, err)
	b, _, err := c.IssueAccess(1, "u", 0)
	require.NoError(t, err)

	ca, err := c.Decode(a, false)
	require.NoError(t, err)
	cb, err := c.Decode(b, false)
	require.NoError(t, err)
	require.NotEqual(t, ca.ID, cb.ID)
}

func TestCodec_DecodeRejections(t *testing.T) {
	t.Parallel()

	c := newTestCodec(t, nil)
	raw, _, err := c.IssueAccess(1, "u", 0)
	require.NoError(t, err)

	_, err = c.Decode("not.a.token", true)
	require.ErrorIs(t, err, ErrInvalidToken)

	other, err := NewCodec("a-different-secret", "HS256", 60, 7, nil)
	require.NoError(t, err)
	_, err = other.Decode(raw, true)
	require.ErrorIs(t, err, ErrInvalidToken, "wrong signing secret")

	hs512, err := NewCodec(testSecret, "HS512", 60, 7, nil)
	require.NoError(t, err)
	_, err = hs512.Decode(raw, true)
	require.ErrorIs(t, err, ErrInvalidToken, "algorithm mismatch")
}

func TestCodec_DecodeExpired(t *testing.T) {
	t.Parallel()

	c, err := NewCodec(testSecret, "HS256", -1, 7, nil)
	require.NoError(t, err)
	raw, _, err := c.IssueAccess(1, "u", 0)
	require.NoError(t, err)

	_, err = c.Decode(raw, true)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestCodec_DecodeRevoked(t *testing.T) {
	t.Parallel()

	bl := NewBlacklist()
	c := newTestCodec(t, bl)
	raw, exp, err := c.IssueRefresh(9, 0)
	require.NoError(t, err)

	claims, err := c.Decode(raw, true)
	require.NoError(t, err)

	bl.Revoke(claims.ID, exp)

	_, err = c.Decode(raw, true)
	require.ErrorIs(t, err, ErrInvalidToken)

	// Skipping the revocation check still decodes, as Logout needs.
	claims2, err := c.Decode(raw, false)
	require.NoError(t, err)
	require.Equal(t, claims.ID, claims2.ID)
}
