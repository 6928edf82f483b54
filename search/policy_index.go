// search/policy_index.go
package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"github.com/dev-mohitbeniwal/ems/api/model"
)

const defaultSearchLimit = 20

// Index is the full-text view of the policy catalog.
type Index interface {
	IndexPolicy(ctx context.Context, policy *model.Policy) error
	DeletePolicy(ctx context.Context, policyID string) error
	Search(ctx context.Context, criteria model.PolicySearchCriteria) ([]string, error)
}

type policyDocument struct {
	ID             string   `json:"id"`
	Title          string   `json:"title"`
	Summary        string   `json:"summary"`
	Content        string   `json:"content"`
	Status         string   `json:"status"`
	Priority       string   `json:"priority"`
	AppliesToRoles []string `json:"applies_to_roles"`
}

type ElasticsearchIndex struct {
	esClient *elasticsearch.Client
	index    string
}

func NewElasticsearchIndex(esURL, index string) (*ElasticsearchIndex, error) {
	esClient, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{esURL},
	})
	if err != nil {
		return nil, err
	}
	return &ElasticsearchIndex{esClient: esClient, index: index}, nil
}

func (e *ElasticsearchIndex) IndexPolicy(ctx context.Context, policy *model.Policy) error {
	data, err := json.Marshal(policyDocument{
		ID:             policy.ID,
		Title:          policy.Title,
		Summary:        policy.Summary,
		Content:        policy.Content,
		Status:         string(policy.Status),
		Priority:       string(policy.Priority),
		AppliesToRoles: policy.AppliesToRoles,
	})
	if err != nil {
		return err
	}

	req := esapi.IndexRequest{
		Index:      e.index,
		DocumentID: policy.ID,
		Body:       bytes.NewReader(data),
		Refresh:    "true",
	}
	res, err := req.Do(ctx, e.esClient)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("error indexing policy %s: %s", policy.ID, res.String())
	}
	return nil
}

// DeletePolicy treats a missing document as already deleted.
func (e *ElasticsearchIndex) DeletePolicy(ctx context.Context, policyID string) error {
	req := esapi.DeleteRequest{
		Index:      e.index,
		DocumentID: policyID,
		Refresh:    "true",
	}
	res, err := req.Do(ctx, e.esClient)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.IsError() && res.StatusCode != http.StatusNotFound {
		return fmt.Errorf("error deleting policy %s: %s", policyID, res.String())
	}
	return nil
}

// Search returns matching policy IDs ordered by relevance.
func (e *ElasticsearchIndex) Search(ctx context.Context, criteria model.PolicySearchCriteria) ([]string, error) {
	limit := criteria.Limit
	if limit <= 0 {
		limit = defaultSearchLimit
	}

	boolQuery := map[string]interface{}{
		"must": []interface{}{
			map[string]interface{}{
				"multi_match": map[string]interface{}{
					"query":  criteria.Query,
					"fields": []string{"title^3", "summary^2", "content"},
				},
			},
		},
	}
	if criteria.Status != "" {
		boolQuery["filter"] = []interface{}{
			map[string]interface{}{"term": map[string]interface{}{"status": string(criteria.Status)}},
		}
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(map[string]interface{}{
		"size":    limit,
		"_source": []string{"id"},
		"query":   map[string]interface{}{"bool": boolQuery},
	}); err != nil {
		return nil, err
	}

	res, err := e.esClient.Search(
		e.esClient.Search.WithContext(ctx),
		e.esClient.Search.WithIndex(e.index),
		e.esClient.Search.WithBody(&buf),
	)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("error searching policies: %s", res.String())
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID string `json:"_id"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(parsed.Hits.Hits))
	for _, hit := range parsed.Hits.Hits {
		ids = append(ids, hit.ID)
	}
	return ids, nil
}
