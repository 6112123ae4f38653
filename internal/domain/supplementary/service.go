package supplementary

import (
	"context"
	"time"
)

// Service is the supplementary-day engine: detection, reconciliation, the
// approval state machine, and conversion to recovery days.
//
// Tenant and actor identity are explicit arguments on every operation; the
// engine never reads ambient request state.
type Service interface {
	// OnCheckOut is the real-time path, invoked synchronously after an OUT
	// event is persisted. Every failure mode is captured in the result so
	// the attendance write is never blocked.
	OnCheckOut(ctx context.Context, event CheckOutEvent) DetectionResult

	// Reconcile is the batch safety net for one tenant over a date range.
	// Idempotent: rerunning over an overlapping window never double-creates.
	Reconcile(ctx context.Context, companyID string, startDate, endDate time.Time) (ReconcileResult, error)

	// ReconcileAll sweeps every tenant, isolating per-tenant failures.
	ReconcileAll(ctx context.Context, startDate, endDate time.Time) (map[string]ReconcileResult, error)

	// Management operations
	Create(ctx context.Context, companyID string, actorID string, req CreateRequest) (SupplementaryDayResponse, error)
	Get(ctx context.Context, companyID string, id string) (SupplementaryDayResponse, error)
	List(ctx context.Context, companyID string, filter Filter) (ListResponse, error)
	Delete(ctx context.Context, companyID string, id string) error
	Stats(ctx context.Context, companyID string) (DashboardStats, error)

	// Approval state machine
	Approve(ctx context.Context, companyID string, actorID string, req ApproveRequest) (SupplementaryDayResponse, error)
	Reject(ctx context.Context, companyID string, actorID string, req RejectRequest) (SupplementaryDayResponse, error)
	RevokeApproval(ctx context.Context, companyID string, actorID string, req RevokeRequest) (SupplementaryDayResponse, error)
	RevokeRejection(ctx context.Context, companyID string, actorID string, req RevokeRequest) (SupplementaryDayResponse, error)

	// Conversion ledger bridge
	Balance(ctx context.Context, companyID string, employeeID string) (BalanceResponse, error)
	Convert(ctx context.Context, companyID string, actorID string, req ConvertRequest) (ConvertResponse, error)
}
