package testdb

import (
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/dev-mohitbeniwal/ems/api/db"
)

const EncryptionKey = "0123456789abcdef0123456789abcdef"

// NewRedis points db.RedisClient at a fresh miniredis for the test.
func NewRedis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr := miniredis.RunT(t)
	db.RedisClient = redis.NewClient(&redis.Options{Addr: mr.Addr()})
	require.NoError(t, db.SetEncryptionKey(EncryptionKey))
	t.Cleanup(func() { _ = db.RedisClient.Close() })
	return mr
}
