// util/cache_service.go

package util

import (
	"context"
	"time"

	"github.com/dev-mohitbeniwal/ems/api/db"
	"github.com/dev-mohitbeniwal/ems/api/model"
)

// CacheService fronts the Redis helpers in package db.
type CacheService struct {
	summaryTTL time.Duration
}

func NewCacheService(summaryTTL time.Duration) *CacheService {
	return &CacheService{summaryTTL: summaryTTL}
}

func (c *CacheService) GetPolicy(ctx context.Context, policyID string) (*model.Policy, error) {
	return db.GetCachedPolicy(ctx, policyID)
}

func (c *CacheService) SetPolicy(ctx context.Context, policy model.Policy) error {
	return db.CachePolicy(ctx, &policy)
}

func (c *CacheService) DeletePolicy(ctx context.Context, policyID string) error {
	return db.DeleteCachedPolicy(ctx, policyID)
}

func (c *CacheService) GetSummary(ctx context.Context, userID string) (*model.ComplianceSummary, error) {
	return db.GetCachedSummary(ctx, userID)
}

// SummaryVersion must be read before the summary's inputs are loaded.
func (c *CacheService) SummaryVersion(ctx context.Context, userID string) (string, error) {
	return db.SummaryVersion(ctx, userID)
}

func (c *CacheService) SetSummary(ctx context.Context, summary model.ComplianceSummary, version string) error {
	if c.summaryTTL <= 0 {
		return nil
	}
	return db.CacheSummary(ctx, &summary, version, c.summaryTTL)
}

func (c *CacheService) DeleteSummary(ctx context.Context, userID string) error {
	return db.DeleteCachedSummary(ctx, userID)
}

// InvalidateSummaries drops every user's cached summary.
func (c *CacheService) InvalidateSummaries(ctx context.Context) error {
	return db.InvalidateSummaries(ctx)
}

// TryLock takes a named lock for ttl and reports whether it was acquired.
func (c *CacheService) TryLock(ctx context.Context, name string, ttl time.Duration) (bool, error) {
	return db.LockResource(ctx, name, ttl)
}

func (c *CacheService) Unlock(ctx context.Context, name string) error {
	return db.UnlockResource(ctx, name)
}
