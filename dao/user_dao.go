// dao/user_dao.go
package dao

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap"

	ems_errors "github.com/dev-mohitbeniwal/ems/api/errors"
	logger "github.com/dev-mohitbeniwal/ems/api/logging"
	"github.com/dev-mohitbeniwal/ems/api/model"
	helper_util "github.com/dev-mohitbeniwal/ems/api/util/helper"
)

// CypherReader runs a read query and returns every record.
type CypherReader interface {
	Read(ctx context.Context, cypher string, params map[string]any) ([]*neo4j.Record, error)
}

type driverReader struct {
	driver neo4j.DriverWithContext
}

// NewCypherReader runs queries in managed read transactions on driver.
func NewCypherReader(driver neo4j.DriverWithContext) CypherReader {
	return &driverReader{driver: driver}
}

func (r *driverReader) Read(ctx context.Context, cypher string, params map[string]any) ([]*neo4j.Record, error) {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer func() {
		if err := session.Close(ctx); err != nil {
			logger.Error("Failed to close Neo4j session", zap.Error(err))
		}
	}()

	result, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, cypher, params)
		if err != nil {
			return nil, err
		}
		return res.Collect(ctx)
	})
	if err != nil {
		return nil, err
	}
	return result.([]*neo4j.Record), nil
}

// UserDAO reads the employee directory. Users are (:User) nodes linked to
// their (:Department) by BELONGS_TO.
type UserDAO struct {
	Reader CypherReader
}

func NewUserDAO(reader CypherReader) *UserDAO {
	return &UserDAO{Reader: reader}
}

const listActiveUsersQuery = `
MATCH (u:User)
WHERE coalesce(u.active, true) = true
  AND (size($roles) = 0 OR toLower(trim(u.role)) IN $roles)
OPTIONAL MATCH (u)-[:BELONGS_TO]->(d:Department)
RETURN u, d.name AS department
ORDER BY u.name, u.id
`

// ListActiveUsers returns active users, restricted to roles when non-empty.
func (dao *UserDAO) ListActiveUsers(ctx context.Context, roles []string) ([]model.Employee, error) {
	start := time.Now()
	normalized := make([]string, 0, len(roles))
	for _, r := range roles {
		normalized = append(normalized, strings.ToLower(strings.TrimSpace(r)))
	}
	roles = normalized

	records, err := dao.Reader.Read(ctx, listActiveUsersQuery, map[string]any{"roles": roles})
	if err != nil {
		logger.Error("Failed to list active users",
			zap.Error(err),
			zap.Strings("roles", roles),
			zap.Duration("duration", time.Since(start)))
		return nil, fmt.Errorf("failed to list active users: %w", err)
	}

	users := make([]model.Employee, 0, len(records))
	for _, record := range records {
		user, err := mapRecordToEmployee(record)
		if err != nil {
			logger.Warn("Skipping malformed directory entry", zap.Error(err))
			continue
		}
		users = append(users, *user)
	}

	logger.Debug("Active users listed",
		zap.Int("count", len(users)),
		zap.Strings("roles", roles),
		zap.Duration("duration", time.Since(start)))
	return users, nil
}

const getUserQuery = `
MATCH (u:User {id: $id})
OPTIONAL MATCH (u)-[:BELONGS_TO]->(d:Department)
RETURN u, d.name AS department
`

func (dao *UserDAO) GetUser(ctx context.Context, userID string) (*model.Employee, error) {
	records, err := dao.Reader.Read(ctx, getUserQuery, map[string]any{"id": userID})
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if len(records) == 0 {
		return nil, ems_errors.ErrUserNotFound
	}
	return mapRecordToEmployee(records[0])
}

func mapRecordToEmployee(record *neo4j.Record) (*model.Employee, error) {
	raw, ok := record.Get("u")
	if !ok {
		return nil, fmt.Errorf("record has no user column")
	}
	node, ok := raw.(neo4j.Node)
	if !ok {
		return nil, fmt.Errorf("unexpected user value %T", raw)
	}

	props := node.Props
	user := &model.Employee{Active: true}

	id, ok := props["id"].(string)
	if !ok || id == "" {
		return nil, fmt.Errorf("failed to assert type for user ID: %v", props["id"])
	}
	user.ID = id

	roleStr, _ := props["role"].(string)
	role, ok := model.ParseRole(roleStr)
	if !ok {
		return nil, fmt.Errorf("%w: %q for user %s", ems_errors.ErrInvalidRole, roleStr, id)
	}
	user.Role = role

	user.Name, _ = props["name"].(string)
	user.Email, _ = props["email"].(string)
	user.SlackID, _ = props["slackId"].(string)
	if active, ok := props["active"].(bool); ok {
		user.Active = active
	}
	if createdAt, err := helper_util.ParseNullableTime(props["createdAt"]); err == nil && createdAt != nil {
		user.CreatedAt = *createdAt
	}
	if dept, ok := record.Get("department"); ok {
		user.Department, _ = dept.(string)
	}
	return user, nil
}
