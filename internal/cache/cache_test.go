package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T, ttl time.Duration) *Store {
	t.Helper()
	s, err := Open(t.TempDir(), ttl)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStore_PutGet(t *testing.T) {
	s := openTestStore(t, time.Hour)

	key := Key("explain", "python", "def f():\n    pass")
	assert.Empty(t, s.Get(key), "miss before put")

	s.Put(key, "This defines a function f.")
	assert.Equal(t, "This defines a function f.", s.Get(key))
}

func TestStore_Expiry(t *testing.T) {
	s := openTestStore(t, time.Minute)

	base := time.Now()
	s.now = func() time.Time { return base }

	key := Key("explain", "python", "x = 1")
	s.Put(key, "assigns x")
	assert.Equal(t, "assigns x", s.Get(key))

	s.now = func() time.Time { return base.Add(2 * time.Minute) }
	assert.Empty(t, s.Get(key), "expired entry reads as miss")
}

func TestStore_ZeroTTLNeverExpires(t *testing.T) {
	s := openTestStore(t, 0)

	base := time.Now()
	s.now = func() time.Time { return base }
	key := Key("comment", "go", "func main() {}")
	s.Put(key, "commented")

	s.now = func() time.Time { return base.Add(1000 * time.Hour) }
	assert.Equal(t, "commented", s.Get(key))
}

func TestKey_DistinguishesOperations(t *testing.T) {
	code := "def f():\n    pass"
	assert.NotEqual(t, Key("explain", "python", code), Key("comment", "python", code))
	assert.NotEqual(t, Key("explain", "python", code), Key("explain", "ruby", code))
}
