package util_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dev-mohitbeniwal/ems/api/model"
	"github.com/dev-mohitbeniwal/ems/api/test/testdb"
	"github.com/dev-mohitbeniwal/ems/api/util"
)

func TestCacheService_Summaries(t *testing.T) {
	mr := testdb.NewRedis(t)
	ctx := context.Background()
	cache := util.NewCacheService(time.Minute)

	version, err := cache.SummaryVersion(ctx, "u1")
	require.NoError(t, err)
	require.NoError(t, cache.SetSummary(ctx, model.ComplianceSummary{UserID: "u1", Total: 1, Percentage: 0}, version))
	got, err := cache.GetSummary(ctx, "u1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 1, got.Total)

	require.NoError(t, cache.InvalidateSummaries(ctx))
	got, err = cache.GetSummary(ctx, "u1")
	require.NoError(t, err)
	assert.Nil(t, got)

	version, err = cache.SummaryVersion(ctx, "u2")
	require.NoError(t, err)
	require.NoError(t, cache.SetSummary(ctx, model.ComplianceSummary{UserID: "u2"}, version))
	mr.FastForward(2 * time.Minute)
	got, err = cache.GetSummary(ctx, "u2")
	require.NoError(t, err)
	assert.Nil(t, got, "expired")
}

func TestCacheService_DisabledSummaryTTL(t *testing.T) {
	testdb.NewRedis(t)
	ctx := context.Background()
	cache := util.NewCacheService(0)

	require.NoError(t, cache.SetSummary(ctx, model.ComplianceSummary{UserID: "u1"}, "0.0"))
	got, err := cache.GetSummary(ctx, "u1")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestCacheService_Lock(t *testing.T) {
	testdb.NewRedis(t)
	ctx := context.Background()
	cache := util.NewCacheService(time.Minute)

	ok, err := cache.TryLock(ctx, "reminder-sweep", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = cache.TryLock(ctx, "reminder-sweep", time.Minute)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, cache.Unlock(ctx, "reminder-sweep"))
	ok, err = cache.TryLock(ctx, "reminder-sweep", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)
}
