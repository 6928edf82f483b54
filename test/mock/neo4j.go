// test/mock/neo4j.go
package mock

import (
	"context"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j/dbtype"
	"github.com/stretchr/testify/mock"
)

// MockCypherReader is a mock implementation of dao.CypherReader
type MockCypherReader struct {
	mock.Mock
}

func (m *MockCypherReader) Read(ctx context.Context, cypher string, params map[string]any) ([]*neo4j.Record, error) {
	args := m.Called(ctx, cypher, params)
	records, _ := args.Get(0).([]*neo4j.Record)
	return records, args.Error(1)
}

// UserRecord builds a directory record the way the user queries return it.
func UserRecord(props map[string]any, department string) *neo4j.Record {
	var dept any
	if department != "" {
		dept = department
	}
	return &neo4j.Record{
		Keys:   []string{"u", "department"},
		Values: []any{dbtype.Node{Labels: []string{"User"}, Props: props}, dept},
	}
}
