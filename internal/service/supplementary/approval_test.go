package supplementary

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/workpulse/attendance-backend-go/internal/domain/supplementary"
)

// seedDetected runs the auto-detection path and returns the pending record.
func seedDetected(t *testing.T, env *testEnv) supplementary.SupplementaryDay {
	t.Helper()
	result := env.svc.OnCheckOut(context.Background(), checkOut(date(7, 9, 0), date(7, 14, 0)))
	require.True(t, result.Created)
	return *result.Record
}

func TestApprove_PendingRecord(t *testing.T) {
	env := newTestEnv()
	rec := seedDetected(t, env)

	resp, err := env.svc.Approve(context.Background(), testCompanyID, testActorID, supplementary.ApproveRequest{ID: rec.ID})
	require.NoError(t, err)

	assert.Equal(t, string(supplementary.StatusApproved), resp.Status)
	require.NotNil(t, resp.ApprovedHours)
	assert.Equal(t, "5", *resp.ApprovedHours) // defaults to detected hours
	require.NotNil(t, resp.ApprovedBy)
	assert.Equal(t, testActorID, *resp.ApprovedBy)
	assert.NotNil(t, resp.ApprovedAt)
}

func TestApprove_WithHoursOverride(t *testing.T) {
	env := newTestEnv()
	rec := seedDetected(t, env)

	hours := decimal.NewFromFloat(3.5)
	resp, err := env.svc.Approve(context.Background(), testCompanyID, testActorID, supplementary.ApproveRequest{
		ID:            rec.ID,
		ApprovedHours: &hours,
	})
	require.NoError(t, err)

	require.NotNil(t, resp.ApprovedHours)
	assert.Equal(t, "3.5", *resp.ApprovedHours)
	assert.Equal(t, "5", resp.Hours) // detected hours stay untouched
}

func TestApprove_NonPendingRejected(t *testing.T) {
	env := newTestEnv()
	rec := seedDetected(t, env)
	ctx := context.Background()

	_, err := env.svc.Approve(ctx, testCompanyID, testActorID, supplementary.ApproveRequest{ID: rec.ID})
	require.NoError(t, err)

	_, err = env.svc.Approve(ctx, testCompanyID, testActorID, supplementary.ApproveRequest{ID: rec.ID})
	assert.ErrorIs(t, err, supplementary.ErrNotPending)
}

func TestReject_RequiresReason(t *testing.T) {
	env := newTestEnv()
	rec := seedDetected(t, env)

	_, err := env.svc.Reject(context.Background(), testCompanyID, testActorID, supplementary.RejectRequest{ID: rec.ID})
	assert.Error(t, err)
}

func TestReject_PendingRecord(t *testing.T) {
	env := newTestEnv()
	rec := seedDetected(t, env)

	resp, err := env.svc.Reject(context.Background(), testCompanyID, testActorID, supplementary.RejectRequest{
		ID:     rec.ID,
		Reason: "not pre-authorized",
	})
	require.NoError(t, err)

	assert.Equal(t, string(supplementary.StatusRejected), resp.Status)
	require.NotNil(t, resp.RejectionReason)
	assert.Equal(t, "not pre-authorized", *resp.RejectionReason)
	assert.Nil(t, resp.ApprovedHours)
}

func TestRevokeApproval_ReturnsToPending(t *testing.T) {
	env := newTestEnv()
	rec := seedDetected(t, env)
	ctx := context.Background()

	_, err := env.svc.Approve(ctx, testCompanyID, testActorID, supplementary.ApproveRequest{ID: rec.ID})
	require.NoError(t, err)

	reason := "approved the wrong employee"
	resp, err := env.svc.RevokeApproval(ctx, testCompanyID, testActorID, supplementary.RevokeRequest{ID: rec.ID, Reason: &reason})
	require.NoError(t, err)

	assert.Equal(t, string(supplementary.StatusPending), resp.Status)
	assert.Nil(t, resp.ApprovedHours)
	assert.Nil(t, resp.ApprovedBy)
	assert.Nil(t, resp.ApprovedAt)
	require.NotNil(t, resp.Notes)
	assert.Contains(t, *resp.Notes, "approval revoked by "+testActorID)
	assert.Contains(t, *resp.Notes, reason)
}

func TestRevokeApproval_PendingRecordRejected(t *testing.T) {
	env := newTestEnv()
	rec := seedDetected(t, env)

	_, err := env.svc.RevokeApproval(context.Background(), testCompanyID, testActorID, supplementary.RevokeRequest{ID: rec.ID})
	assert.ErrorIs(t, err, supplementary.ErrNotApproved)
}

func TestRevokeApproval_ConvertedRecordRefused(t *testing.T) {
	env := newTestEnv()
	rec := seedDetected(t, env)
	ctx := context.Background()

	_, err := env.svc.Approve(ctx, testCompanyID, testActorID, supplementary.ApproveRequest{ID: rec.ID})
	require.NoError(t, err)

	_, err = env.svc.Convert(ctx, testCompanyID, testActorID, supplementary.ConvertRequest{
		EmployeeID: testEmployeeID,
		RecordIDs:  []string{rec.ID},
		Days:       decimal.NewFromFloat(0.5),
	})
	require.NoError(t, err)

	_, err = env.svc.RevokeApproval(ctx, testCompanyID, testActorID, supplementary.RevokeRequest{ID: rec.ID})
	assert.Error(t, err)
}

func TestRevokeRejection_ReturnsToPending(t *testing.T) {
	env := newTestEnv()
	rec := seedDetected(t, env)
	ctx := context.Background()

	_, err := env.svc.Reject(ctx, testCompanyID, testActorID, supplementary.RejectRequest{ID: rec.ID, Reason: "duplicate claim"})
	require.NoError(t, err)

	resp, err := env.svc.RevokeRejection(ctx, testCompanyID, testActorID, supplementary.RevokeRequest{ID: rec.ID})
	require.NoError(t, err)

	assert.Equal(t, string(supplementary.StatusPending), resp.Status)
	assert.Nil(t, resp.RejectionReason)
	assert.Nil(t, resp.ApprovedBy)
	require.NotNil(t, resp.Notes)
	assert.Contains(t, *resp.Notes, "rejection revoked by "+testActorID)

	// The revived record can go through approval again.
	_, err = env.svc.Approve(ctx, testCompanyID, testActorID, supplementary.ApproveRequest{ID: rec.ID})
	assert.NoError(t, err)
}

func TestRevokeRejection_NonRejectedRefused(t *testing.T) {
	env := newTestEnv()
	rec := seedDetected(t, env)

	_, err := env.svc.RevokeRejection(context.Background(), testCompanyID, testActorID, supplementary.RevokeRequest{ID: rec.ID})
	assert.ErrorIs(t, err, supplementary.ErrNotRejected)
}

func TestRecoveredIsTerminal(t *testing.T) {
	env := newTestEnv()
	rec := seedDetected(t, env)
	ctx := context.Background()

	_, err := env.svc.Approve(ctx, testCompanyID, testActorID, supplementary.ApproveRequest{ID: rec.ID})
	require.NoError(t, err)
	_, err = env.svc.Convert(ctx, testCompanyID, testActorID, supplementary.ConvertRequest{
		EmployeeID: testEmployeeID,
		RecordIDs:  []string{rec.ID},
		Days:       decimal.NewFromFloat(0.5),
	})
	require.NoError(t, err)

	_, err = env.svc.Approve(ctx, testCompanyID, testActorID, supplementary.ApproveRequest{ID: rec.ID})
	assert.ErrorIs(t, err, supplementary.ErrNotPending)

	_, err = env.svc.Reject(ctx, testCompanyID, testActorID, supplementary.RejectRequest{ID: rec.ID, Reason: "too late"})
	assert.ErrorIs(t, err, supplementary.ErrNotPending)

	_, err = env.svc.RevokeApproval(ctx, testCompanyID, testActorID, supplementary.RevokeRequest{ID: rec.ID})
	assert.Error(t, err)

	_, err = env.svc.RevokeRejection(ctx, testCompanyID, testActorID, supplementary.RevokeRequest{ID: rec.ID})
	assert.ErrorIs(t, err, supplementary.ErrNotRejected)
}

func TestTransition_UnknownRecord(t *testing.T) {
	env := newTestEnv()

	_, err := env.svc.Approve(context.Background(), testCompanyID, testActorID, supplementary.ApproveRequest{ID: "supp-missing"})
	assert.ErrorIs(t, err, supplementary.ErrNotFound)
}

func TestTransition_WrongTenantIsNotFound(t *testing.T) {
	env := newTestEnv()
	rec := seedDetected(t, env)

	_, err := env.svc.Approve(context.Background(), "company-other", testActorID, supplementary.ApproveRequest{ID: rec.ID})
	assert.ErrorIs(t, err, supplementary.ErrNotFound)
}
