package dao_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dev-mohitbeniwal/ems/api/dao"
	ems_errors "github.com/dev-mohitbeniwal/ems/api/errors"
	"github.com/dev-mohitbeniwal/ems/api/model"
	"github.com/dev-mohitbeniwal/ems/api/test/testdb"
)

func publishedPolicy(t *testing.T, policyDAO *dao.PolicyDAO, requiresSignature bool, roles ...string) *model.Policy {
	t.Helper()
	p := newPolicy("Ledger Test", roles...)
	p.RequiresSignature = requiresSignature
	require.NoError(t, policyDAO.CreatePolicy(context.Background(), p, hrActor))
	published, err := policyDAO.PublishPolicy(context.Background(), p.ID, hrActor, time.Now())
	require.NoError(t, err)
	return published
}

func TestAcknowledgmentDAO_EnsureLedgerRows(t *testing.T) {
	gdb := testdb.New(t)
	policyDAO := dao.NewPolicyDAO(gdb, nil)
	ackDAO := dao.NewAcknowledgmentDAO(gdb, nil)
	ctx := context.Background()
	p := publishedPolicy(t, policyDAO, false)

	created, err := ackDAO.EnsureLedgerRows(ctx, p.ID, []string{"u1", "u2", "u2", "u3", ""}, 2)
	require.NoError(t, err)
	assert.EqualValues(t, 3, created)

	created, err = ackDAO.EnsureLedgerRows(ctx, p.ID, []string{"u1", "u2", "u3", "u4"}, 2)
	require.NoError(t, err)
	assert.EqualValues(t, 1, created, "only the missing row is inserted")

	total, acknowledged, err := ackDAO.CountByPolicy(ctx, p.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 4, total)
	assert.EqualValues(t, 0, acknowledged)

	rows, err := ackDAO.ListUnacknowledged(ctx, p.ID)
	require.NoError(t, err)
	assert.Len(t, rows, 4)
	for _, r := range rows {
		assert.False(t, r.Acknowledged)
		assert.Nil(t, r.AcknowledgedAt)
	}
}

func TestAcknowledgmentDAO_Acknowledge(t *testing.T) {
	gdb := testdb.New(t)
	policyDAO := dao.NewPolicyDAO(gdb, nil)
	ackDAO := dao.NewAcknowledgmentDAO(gdb, nil)
	ctx := context.Background()
	now := time.Date(2026, 6, 1, 8, 30, 0, 0, time.UTC)
	emp := model.Principal{ID: "emp-1", Role: model.RoleEmployee}

	p := publishedPolicy(t, policyDAO, true, "employee")

	t.Run("SignatureRequiredRollsBack", func(t *testing.T) {
		_, err := ackDAO.Acknowledge(ctx, p.ID, emp, model.AcknowledgeRequest{Signature: "   "}, now)
		assert.ErrorIs(t, err, ems_errors.ErrSignatureRequired)

		row, err := ackDAO.GetAcknowledgment(ctx, p.ID, emp.ID)
		require.NoError(t, err)
		assert.Nil(t, row, "rejected call leaves no ledger row behind")
	})

	t.Run("NotApplicable", func(t *testing.T) {
		_, err := ackDAO.Acknowledge(ctx, p.ID, model.Principal{ID: "mgr-1", Role: model.RoleManager}, model.AcknowledgeRequest{Signature: "M"}, now)
		assert.ErrorIs(t, err, ems_errors.ErrPolicyNotApplicable)
	})

	t.Run("Success", func(t *testing.T) {
		ack, err := ackDAO.Acknowledge(ctx, p.ID, emp, model.AcknowledgeRequest{
			Signature: "Emp One",
			Comments:  "read it",
			IPAddress: "10.0.0.7",
			UserAgent: "curl/8",
		}, now)
		require.NoError(t, err)
		assert.True(t, ack.Acknowledged)
		require.NotNil(t, ack.AcknowledgedAt)
		assert.True(t, now.Equal(*ack.AcknowledgedAt))
		assert.Equal(t, "Emp One", ack.Signature)
		assert.Equal(t, "10.0.0.7", ack.IPAddress)
		assert.Equal(t, "curl/8", ack.UserAgent)
	})

	t.Run("SecondCallRejectedAndUnchanged", func(t *testing.T) {
		_, err := ackDAO.Acknowledge(ctx, p.ID, emp, model.AcknowledgeRequest{Signature: "Other", Comments: "again"}, now.Add(time.Hour))
		assert.ErrorIs(t, err, ems_errors.ErrAlreadyAcknowledged)

		row, err := ackDAO.GetAcknowledgment(ctx, p.ID, emp.ID)
		require.NoError(t, err)
		require.NotNil(t, row)
		assert.Equal(t, "Emp One", row.Signature)
		assert.Equal(t, "read it", row.Comments)
		assert.True(t, now.Equal(*row.AcknowledgedAt))
	})

	t.Run("AcknowledgedPolicyIDs", func(t *testing.T) {
		ids, err := ackDAO.AcknowledgedPolicyIDs(ctx, emp.ID, []string{p.ID, "other"})
		require.NoError(t, err)
		assert.Equal(t, map[string]bool{p.ID: true}, ids)
	})
}

func TestAcknowledgmentDAO_StateChecksInOrder(t *testing.T) {
	gdb := testdb.New(t)
	policyDAO := dao.NewPolicyDAO(gdb, nil)
	ackDAO := dao.NewAcknowledgmentDAO(gdb, nil)
	ctx := context.Background()

	draft := newPolicy("Draft", "employee")
	require.NoError(t, policyDAO.CreatePolicy(ctx, draft, hrActor))

	// A draft that does not apply to the caller still reports the status failure first.
	_, err := ackDAO.Acknowledge(ctx, draft.ID, model.Principal{ID: "m", Role: model.RoleManager}, model.AcknowledgeRequest{}, time.Now())
	assert.ErrorIs(t, err, ems_errors.ErrPolicyNotAcknowledgeable)

	_, err = ackDAO.Acknowledge(ctx, "missing", model.Principal{ID: "m", Role: model.RoleManager}, model.AcknowledgeRequest{}, time.Now())
	assert.ErrorIs(t, err, ems_errors.ErrPolicyNotFound)
}

func TestAcknowledgmentDAO_ConcurrentAcknowledgeSerializes(t *testing.T) {
	gdb := testdb.New(t)
	policyDAO := dao.NewPolicyDAO(gdb, nil)
	ackDAO := dao.NewAcknowledgmentDAO(gdb, nil)
	ctx := context.Background()
	emp := model.Principal{ID: "emp-1", Role: model.RoleEmployee}
	p := publishedPolicy(t, policyDAO, false)

	const attempts = 8
	var wg sync.WaitGroup
	errs := make([]error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = ackDAO.Acknowledge(ctx, p.ID, emp, model.AcknowledgeRequest{Comments: string(rune('a' + i))}, time.Now())
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		} else {
			assert.ErrorIs(t, err, ems_errors.ErrAlreadyAcknowledged)
		}
	}
	assert.Equal(t, 1, succeeded)

	total, acknowledged, err := ackDAO.CountByPolicy(ctx, p.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.EqualValues(t, 1, acknowledged)
}
