package dao_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/stretchr/testify/assert"
	testifymock "github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dev-mohitbeniwal/ems/api/dao"
	ems_errors "github.com/dev-mohitbeniwal/ems/api/errors"
	"github.com/dev-mohitbeniwal/ems/api/model"
	"github.com/dev-mohitbeniwal/ems/api/test/mock"
)

func TestUserDAO_ListActiveUsers(t *testing.T) {
	reader := &mock.MockCypherReader{}
	userDAO := dao.NewUserDAO(reader)

	reader.On("Read", testifymock.Anything, testifymock.AnythingOfType("string"), map[string]any{"roles": []string{"employee"}}).
		Return([]*neo4j.Record{
			mock.UserRecord(map[string]any{"id": "u1", "name": "Ana", "email": "ana@example.com", "role": "Employee"}, "Engineering"),
			mock.UserRecord(map[string]any{"id": "u2", "name": "Bo", "role": "employee", "active": true, "slackId": "U02"}, ""),
			mock.UserRecord(map[string]any{"id": "u3", "name": "Broken", "role": "contractor"}, ""),
		}, nil)

	users, err := userDAO.ListActiveUsers(context.Background(), []string{"employee"})
	require.NoError(t, err)
	require.Len(t, users, 2, "malformed entries are skipped")

	assert.Equal(t, model.Employee{ID: "u1", Name: "Ana", Email: "ana@example.com", Role: model.RoleEmployee, Department: "Engineering", Active: true}, users[0])
	assert.Equal(t, "U02", users[1].SlackID)
	reader.AssertExpectations(t)
}

func TestUserDAO_ListActiveUsers_PaddedRoles(t *testing.T) {
	reader := &mock.MockCypherReader{}
	userDAO := dao.NewUserDAO(reader)

	trimsStoredRole := testifymock.MatchedBy(func(query string) bool {
		return strings.Contains(query, "toLower(trim(u.role)) IN $roles")
	})
	reader.On("Read", testifymock.Anything, trimsStoredRole, map[string]any{"roles": []string{"employee"}}).
		Return([]*neo4j.Record{
			mock.UserRecord(map[string]any{"id": "u1", "name": "Ana", "role": " employee"}, ""),
		}, nil)

	users, err := userDAO.ListActiveUsers(context.Background(), []string{" Employee "})
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, model.RoleEmployee, users[0].Role)
	reader.AssertExpectations(t)
}

func TestUserDAO_ListActiveUsers_AllRoles(t *testing.T) {
	reader := &mock.MockCypherReader{}
	userDAO := dao.NewUserDAO(reader)

	reader.On("Read", testifymock.Anything, testifymock.Anything, map[string]any{"roles": []string{}}).
		Return([]*neo4j.Record{}, nil)

	users, err := userDAO.ListActiveUsers(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, users)
	reader.AssertExpectations(t)
}

func TestUserDAO_GetUser(t *testing.T) {
	reader := &mock.MockCypherReader{}
	userDAO := dao.NewUserDAO(reader)

	reader.On("Read", testifymock.Anything, testifymock.Anything, map[string]any{"id": "u1"}).
		Return([]*neo4j.Record{mock.UserRecord(map[string]any{"id": "u1", "role": "hr"}, "")}, nil)
	reader.On("Read", testifymock.Anything, testifymock.Anything, map[string]any{"id": "nobody"}).
		Return([]*neo4j.Record{}, nil)
	reader.On("Read", testifymock.Anything, testifymock.Anything, map[string]any{"id": "boom"}).
		Return(nil, errors.New("connection reset"))

	u, err := userDAO.GetUser(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, model.RoleHR, u.Role)

	_, err = userDAO.GetUser(context.Background(), "nobody")
	assert.ErrorIs(t, err, ems_errors.ErrUserNotFound)

	_, err = userDAO.GetUser(context.Background(), "boom")
	assert.Error(t, err)
}
