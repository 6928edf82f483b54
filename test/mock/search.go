package mock

import (
	"context"
	"sync"

	"github.com/dev-mohitbeniwal/ems/api/model"
)

// FakeIndex records indexed documents and answers searches from Hits.
type FakeIndex struct {
	mu      sync.Mutex
	Docs    map[string]model.Policy
	Hits    []string
	Queries []model.PolicySearchCriteria
}

func NewFakeIndex() *FakeIndex {
	return &FakeIndex{Docs: map[string]model.Policy{}}
}

func (f *FakeIndex) IndexPolicy(ctx context.Context, policy *model.Policy) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Docs[policy.ID] = *policy
	return nil
}

func (f *FakeIndex) DeletePolicy(ctx context.Context, policyID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.Docs, policyID)
	return nil
}

func (f *FakeIndex) Search(ctx context.Context, criteria model.PolicySearchCriteria) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Queries = append(f.Queries, criteria)
	return append([]string(nil), f.Hits...), nil
}

// Doc returns the indexed copy of a policy.
func (f *FakeIndex) Doc(policyID string) (model.Policy, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.Docs[policyID]
	return p, ok
}
