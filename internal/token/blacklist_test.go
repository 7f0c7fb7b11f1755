package token

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestBlacklist_RevokeAndLookup(t *testing.T) {
	t.Parallel()

	b := NewBlacklist()
	require.False(t, b.IsRevoked("a"))

	require.True(t, b.Revoke("a", time.Now().Add(time.Hour)))
	require.True(t, b.IsRevoked("a"))

	// Second revoke of the same id reports not-new: this is the
	// compare-and-revoke primitive rotation relies on.
	require.False(t, b.Revoke("a", time.Now().Add(time.Hour)))
}

func TestBlacklist_SweepRemovesOnlyExpired(t *testing.T) {
	t.Parallel()

	b := NewBlacklist()
	b.Revoke("expired", time.Now().Add(-time.Minute))
	b.Revoke("live", time.Now().Add(time.Hour))
	b.Revoke("forever", time.Time{}) // no expiry, kept until restart

	require.Equal(t, 1, b.Sweep())
	require.False(t, b.IsRevoked("expired"))
	require.True(t, b.IsRevoked("live"))
	require.True(t, b.IsRevoked("forever"))
	require.Equal(t, 2, b.Len())
}

func TestBlacklist_ConcurrentRevoke(t *testing.T) {
	t.Parallel()

	b := NewBlacklist()
	var wg sync.WaitGroup
	wins := make(chan bool, 64)
	for i := 0; i < 64; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			// All goroutines race on the same id plus one private id each.
			wins <- b.Revoke("shared", time.Now().Add(time.Hour))
			b.Revoke(fmt.Sprintf("id-%d", i), time.Now().Add(time.Hour))
		}(i)
	}
	wg.Wait()
	close(wins)

	won := 0
	for w := range wins {
		if w {
			won++
		}
	}
	require.Equal(t, 1, won, "exactly one revoker may observe first insertion")
	require.Equal(t, 65, b.Len())
}
