package db

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dev-mohitbeniwal/ems/api/model"
)

func setupRedis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr := miniredis.RunT(t)
	RedisClient = redis.NewClient(&redis.Options{Addr: mr.Addr()})
	require.NoError(t, SetEncryptionKey("0123456789abcdef0123456789abcdef"))
	t.Cleanup(func() { _ = RedisClient.Close() })
	return mr
}

func TestSetEncryptionKey_RejectsShortKey(t *testing.T) {
	assert.Error(t, SetEncryptionKey("short"))
}

func TestPolicyCache(t *testing.T) {
	mr := setupRedis(t)
	ctx := context.Background()

	missing, err := GetCachedPolicy(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, missing)

	p := &model.Policy{ID: "p1", Title: "Remote Work", Status: model.PolicyStatusDraft, AppliesToRoles: []string{"employee"}}
	require.NoError(t, CachePolicy(ctx, p))

	raw, err := mr.Get("policy:p1")
	require.NoError(t, err)
	assert.NotContains(t, raw, "Remote Work", "cached payload is encrypted")

	got, err := GetCachedPolicy(ctx, "p1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Remote Work", got.Title)
	assert.Equal(t, []string{"employee"}, got.AppliesToRoles)

	require.NoError(t, DeleteCachedPolicy(ctx, "p1"))
	got, err = GetCachedPolicy(ctx, "p1")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSummaryCache_GenerationInvalidation(t *testing.T) {
	setupRedis(t)
	ctx := context.Background()

	s := &model.ComplianceSummary{UserID: "u1", Total: 2, Acknowledged: 1, Pending: 1, Percentage: 50}
	version, err := SummaryVersion(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "0.0", version)
	require.NoError(t, CacheSummary(ctx, s, version, time.Minute))

	got, err := GetCachedSummary(ctx, "u1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 50.0, got.Percentage)

	require.NoError(t, InvalidateSummaries(ctx))
	got, err = GetCachedSummary(ctx, "u1")
	require.NoError(t, err)
	assert.Nil(t, got)

	version, err = SummaryVersion(ctx, "u1")
	require.NoError(t, err)
	require.NoError(t, CacheSummary(ctx, s, version, time.Minute))
	require.NoError(t, DeleteCachedSummary(ctx, "u1"))
	got, err = GetCachedSummary(ctx, "u1")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSummaryCache_WriteAfterInvalidationIsNeverServed(t *testing.T) {
	setupRedis(t)
	ctx := context.Background()
	stale := &model.ComplianceSummary{UserID: "u1", Total: 0, Percentage: 100}

	t.Run("global", func(t *testing.T) {
		version, err := SummaryVersion(ctx, "u1")
		require.NoError(t, err)
		require.NoError(t, InvalidateSummaries(ctx))
		require.NoError(t, CacheSummary(ctx, stale, version, time.Minute))

		got, err := GetCachedSummary(ctx, "u1")
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("per user", func(t *testing.T) {
		version, err := SummaryVersion(ctx, "u1")
		require.NoError(t, err)
		require.NoError(t, DeleteCachedSummary(ctx, "u1"))
		require.NoError(t, CacheSummary(ctx, stale, version, time.Minute))

		got, err := GetCachedSummary(ctx, "u1")
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("other users keep their entries", func(t *testing.T) {
		version, err := SummaryVersion(ctx, "u2")
		require.NoError(t, err)
		require.NoError(t, CacheSummary(ctx, &model.ComplianceSummary{UserID: "u2", Total: 1}, version, time.Minute))
		require.NoError(t, DeleteCachedSummary(ctx, "u1"))

		got, err := GetCachedSummary(ctx, "u2")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, 1, got.Total)
	})
}

func TestRateLimit(t *testing.T) {
	setupRedis(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		allowed, err := RateLimit(ctx, "client-a", 3, time.Minute)
		require.NoError(t, err)
		assert.True(t, allowed)
	}
	allowed, err := RateLimit(ctx, "client-a", 3, time.Minute)
	require.NoError(t, err)
	assert.False(t, allowed)

	allowed, err = RateLimit(ctx, "client-b", 3, time.Minute)
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestLockResource(t *testing.T) {
	setupRedis(t)
	ctx := context.Background()

	ok, err := LockResource(ctx, "reminder-sweep", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = LockResource(ctx, "reminder-sweep", time.Minute)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, UnlockResource(ctx, "reminder-sweep"))
	ok, err = LockResource(ctx, "reminder-sweep", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)
}
