package dao_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dev-mohitbeniwal/ems/api/dao"
	ems_errors "github.com/dev-mohitbeniwal/ems/api/errors"
	"github.com/dev-mohitbeniwal/ems/api/model"
	"github.com/dev-mohitbeniwal/ems/api/test/testdb"
)

func TestCategoryDAO(t *testing.T) {
	gdb := testdb.New(t)
	categoryDAO := dao.NewCategoryDAO(gdb, nil)
	policyDAO := dao.NewPolicyDAO(gdb, nil)
	ctx := context.Background()

	security := &model.PolicyCategory{Name: "Security", Icon: "shield"}
	require.NoError(t, categoryDAO.CreateCategory(ctx, security, hrActor))
	require.NotEmpty(t, security.ID)

	err := categoryDAO.CreateCategory(ctx, &model.PolicyCategory{Name: "Security"}, hrActor)
	assert.ErrorIs(t, err, ems_errors.ErrCategoryConflict)

	require.NoError(t, categoryDAO.CreateCategory(ctx, &model.PolicyCategory{Name: "HR"}, hrActor))
	list, err := categoryDAO.ListCategories(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "HR", list[0].Name)

	p := newPolicy("Passwords")
	p.CategoryID = &security.ID
	require.NoError(t, policyDAO.CreatePolicy(ctx, p, hrActor))

	require.NoError(t, categoryDAO.DeleteCategory(ctx, security.ID, hrActor))
	_, err = categoryDAO.GetCategory(ctx, security.ID)
	assert.ErrorIs(t, err, ems_errors.ErrCategoryNotFound)

	got, err := policyDAO.GetPolicy(ctx, p.ID)
	require.NoError(t, err)
	assert.Nil(t, got.CategoryID, "deleting a category detaches its policies")

	assert.ErrorIs(t, categoryDAO.DeleteCategory(ctx, security.ID, hrActor), ems_errors.ErrCategoryNotFound)
}
