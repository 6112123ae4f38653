package supplementary

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/workpulse/attendance-backend-go/internal/domain/recovery"
	"github.com/workpulse/attendance-backend-go/internal/domain/supplementary"
)

// seedApproved detects and approves one record per given day of June 2025.
func seedApproved(t *testing.T, env *testEnv, days ...int) []string {
	t.Helper()
	ctx := context.Background()

	ids := make([]string, 0, len(days))
	for _, d := range days {
		result := env.svc.OnCheckOut(ctx, checkOut(date(d, 9, 0), date(d, 17, 0)))
		require.True(t, result.Created, "day %d should be supplementary", d)

		_, err := env.svc.Approve(ctx, testCompanyID, testActorID, supplementary.ApproveRequest{ID: result.Record.ID})
		require.NoError(t, err)
		ids = append(ids, result.Record.ID)
	}
	return ids
}

func TestFloorToHalf(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0.0, "0"},
		{0.4, "0"},
		{0.5, "0.5"},
		{0.9, "0.5"},
		{1.0, "1"},
		{1.75, "1.5"},
		{2.49, "2"},
	}
	for _, tt := range tests {
		got := floorToHalf(decimal.NewFromFloat(tt.in))
		assert.Equal(t, tt.want, got.String(), "floorToHalf(%v)", tt.in)
	}
}

func TestBalance_SumsApprovedUnconverted(t *testing.T) {
	env := newTestEnv()
	// Two 8-hour approved days: 16h at 8h/day -> 2 days.
	seedApproved(t, env, 7, 8) // Saturday and Sunday

	balance, err := env.svc.Balance(context.Background(), testCompanyID, testEmployeeID)
	require.NoError(t, err)

	assert.Equal(t, "16", balance.AvailableHours)
	assert.Equal(t, "2", balance.AvailableDays)
	assert.Equal(t, 2, balance.RecordCount)
}

func TestBalance_UsesApprovedHoursOverride(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	result := env.svc.OnCheckOut(ctx, checkOut(date(7, 9, 0), date(7, 17, 0)))
	require.True(t, result.Created)

	hours := decimal.NewFromInt(4)
	_, err := env.svc.Approve(ctx, testCompanyID, testActorID, supplementary.ApproveRequest{
		ID:            result.Record.ID,
		ApprovedHours: &hours,
	})
	require.NoError(t, err)

	balance, err := env.svc.Balance(ctx, testCompanyID, testEmployeeID)
	require.NoError(t, err)

	assert.Equal(t, "4", balance.AvailableHours)
	assert.Equal(t, "0.5", balance.AvailableDays)
}

func TestBalance_EmptyPosition(t *testing.T) {
	env := newTestEnv()

	balance, err := env.svc.Balance(context.Background(), testCompanyID, testEmployeeID)
	require.NoError(t, err)

	assert.Equal(t, "0", balance.AvailableHours)
	assert.Equal(t, "0", balance.AvailableDays)
	assert.Equal(t, 0, balance.RecordCount)
}

func TestConvert_FlipsRecordsAndCreatesLedgerEntry(t *testing.T) {
	env := newTestEnv()
	ids := seedApproved(t, env, 7, 8)
	ctx := context.Background()

	resp, err := env.svc.Convert(ctx, testCompanyID, testActorID, supplementary.ConvertRequest{
		EmployeeID: testEmployeeID,
		RecordIDs:  ids,
		Days:       decimal.NewFromInt(2),
	})
	require.NoError(t, err)

	assert.Equal(t, "2", resp.Days)
	assert.Equal(t, "16", resp.HoursConverted)
	assert.ElementsMatch(t, ids, resp.RecordIDs)
	assert.Equal(t, 1, env.transactor.calls)

	require.Len(t, env.recRepo.entries, 1)
	entry := env.recRepo.entries[0]
	assert.Equal(t, resp.RecoveryDayID, entry.ID)
	assert.Equal(t, testEmployeeID, entry.EmployeeID)
	assert.Equal(t, recovery.SourceSupplementaryConversion, entry.SourceType)
	assert.Equal(t, testActorID, entry.CreatedBy)

	for _, id := range ids {
		rec, err := env.suppRepo.GetByID(ctx, id, testCompanyID)
		require.NoError(t, err)
		assert.Equal(t, supplementary.StatusRecovered, rec.Status)
		assert.True(t, rec.ConvertedToRecovery)
		require.NotNil(t, rec.RecoveryDayID)
		assert.Equal(t, entry.ID, *rec.RecoveryDayID)
	}

	// The converted hours left the balance.
	balance, err := env.svc.Balance(ctx, testCompanyID, testEmployeeID)
	require.NoError(t, err)
	assert.Equal(t, "0", balance.AvailableHours)
}

func TestConvert_HalfDayGranularity(t *testing.T) {
	env := newTestEnv()
	ids := seedApproved(t, env, 7)

	for _, days := range []float64{0, -1, 0.3, 1.25} {
		_, err := env.svc.Convert(context.Background(), testCompanyID, testActorID, supplementary.ConvertRequest{
			EmployeeID: testEmployeeID,
			RecordIDs:  ids,
			Days:       decimal.NewFromFloat(days),
		})
		assert.ErrorIs(t, err, supplementary.ErrInvalidDayGranularity, "days=%v", days)
	}
}

func TestConvert_InsufficientBalance(t *testing.T) {
	env := newTestEnv()
	ids := seedApproved(t, env, 7) // 8h -> at most 1 day

	_, err := env.svc.Convert(context.Background(), testCompanyID, testActorID, supplementary.ConvertRequest{
		EmployeeID: testEmployeeID,
		RecordIDs:  ids,
		Days:       decimal.NewFromFloat(1.5),
	})
	assert.ErrorIs(t, err, supplementary.ErrInsufficientBalance)
}

func TestConvert_PendingRecordRefused(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	result := env.svc.OnCheckOut(ctx, checkOut(date(7, 9, 0), date(7, 17, 0)))
	require.True(t, result.Created)

	_, err := env.svc.Convert(ctx, testCompanyID, testActorID, supplementary.ConvertRequest{
		EmployeeID: testEmployeeID,
		RecordIDs:  []string{result.Record.ID},
		Days:       decimal.NewFromFloat(0.5),
	})
	assert.ErrorIs(t, err, supplementary.ErrRecordNotConvertible)
}

func TestConvert_ForeignRecordRefused(t *testing.T) {
	env := newTestEnv()
	ids := seedApproved(t, env, 7)

	_, err := env.svc.Convert(context.Background(), testCompanyID, testActorID, supplementary.ConvertRequest{
		EmployeeID: "emp-other",
		RecordIDs:  ids,
		Days:       decimal.NewFromFloat(0.5),
	})
	assert.ErrorIs(t, err, supplementary.ErrRecordNotConvertible)
}

func TestConvert_DoubleConversionRefused(t *testing.T) {
	env := newTestEnv()
	ids := seedApproved(t, env, 7)
	ctx := context.Background()

	_, err := env.svc.Convert(ctx, testCompanyID, testActorID, supplementary.ConvertRequest{
		EmployeeID: testEmployeeID,
		RecordIDs:  ids,
		Days:       decimal.NewFromFloat(0.5),
	})
	require.NoError(t, err)

	_, err = env.svc.Convert(ctx, testCompanyID, testActorID, supplementary.ConvertRequest{
		EmployeeID: testEmployeeID,
		RecordIDs:  ids,
		Days:       decimal.NewFromFloat(0.5),
	})
	assert.ErrorIs(t, err, supplementary.ErrRecordNotConvertible)
}

func TestConvert_LedgerFailureLeavesRecordsUntouched(t *testing.T) {
	env := newTestEnv()
	ids := seedApproved(t, env, 7)
	env.recRepo.failErr = errors.New("ledger unavailable")
	ctx := context.Background()

	_, err := env.svc.Convert(ctx, testCompanyID, testActorID, supplementary.ConvertRequest{
		EmployeeID: testEmployeeID,
		RecordIDs:  ids,
		Days:       decimal.NewFromFloat(0.5),
	})
	require.Error(t, err)

	rec, err := env.suppRepo.GetByID(ctx, ids[0], testCompanyID)
	require.NoError(t, err)
	assert.Equal(t, supplementary.StatusApproved, rec.Status)
	assert.False(t, rec.ConvertedToRecovery)
}
