package supplementary

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/workpulse/attendance-backend-go/internal/domain/supplementary"
)

// The approval lifecycle:
//
//	pending  -> approved | rejected
//	approved -> recovered (conversion) | pending (revoke, unless converted)
//	rejected -> pending (revoke)
//	recovered is terminal
//
// Every transition checks the record's current state first; a mismatch is a
// domain error for the caller, never a silent overwrite.

func (s *ServiceImpl) getForTransition(ctx context.Context, id string, companyID string) (supplementary.SupplementaryDay, error) {
	rec, err := s.Repository.GetByID(ctx, id, companyID)
	if err != nil {
		if errors.Is(err, supplementary.ErrNotFound) {
			return supplementary.SupplementaryDay{}, supplementary.ErrNotFound
		}
		return supplementary.SupplementaryDay{}, fmt.Errorf("failed to get supplementary day: %w", err)
	}
	return rec, nil
}

// appendNote adds a dated line to the audit trail without overwriting what
// is already there.
func appendNote(existing *string, line string) *string {
	stamped := time.Now().UTC().Format("2006-01-02 15:04:05") + " - " + line
	if existing == nil || *existing == "" {
		return &stamped
	}
	combined := *existing + "\n" + stamped
	return &combined
}

// Approve implements supplementary.Service.
func (s *ServiceImpl) Approve(ctx context.Context, companyID string, actorID string, req supplementary.ApproveRequest) (supplementary.SupplementaryDayResponse, error) {
	if err := req.Validate(); err != nil {
		return supplementary.SupplementaryDayResponse{}, err
	}

	rec, err := s.getForTransition(ctx, req.ID, companyID)
	if err != nil {
		return supplementary.SupplementaryDayResponse{}, err
	}
	if rec.Status != supplementary.StatusPending {
		return supplementary.SupplementaryDayResponse{}, supplementary.ErrNotPending
	}

	now := time.Now().UTC()
	approvedHours := rec.Hours
	if req.ApprovedHours != nil {
		approvedHours = *req.ApprovedHours
	}

	rec.Status = supplementary.StatusApproved
	rec.ApprovedHours = &approvedHours
	rec.ApprovedBy = &actorID
	rec.ApprovedAt = &now
	rec.RejectionReason = nil

	if err := s.Repository.Update(ctx, rec); err != nil {
		return supplementary.SupplementaryDayResponse{}, fmt.Errorf("failed to approve supplementary day: %w", err)
	}
	return mapToResponse(rec), nil
}

// Reject implements supplementary.Service.
func (s *ServiceImpl) Reject(ctx context.Context, companyID string, actorID string, req supplementary.RejectRequest) (supplementary.SupplementaryDayResponse, error) {
	if err := req.Validate(); err != nil {
		return supplementary.SupplementaryDayResponse{}, err
	}

	rec, err := s.getForTransition(ctx, req.ID, companyID)
	if err != nil {
		return supplementary.SupplementaryDayResponse{}, err
	}
	if rec.Status != supplementary.StatusPending {
		return supplementary.SupplementaryDayResponse{}, supplementary.ErrNotPending
	}

	now := time.Now().UTC()
	rec.Status = supplementary.StatusRejected
	rec.ApprovedHours = nil
	rec.ApprovedBy = &actorID
	rec.ApprovedAt = &now
	rec.RejectionReason = &req.Reason

	if err := s.Repository.Update(ctx, rec); err != nil {
		return supplementary.SupplementaryDayResponse{}, fmt.Errorf("failed to reject supplementary day: %w", err)
	}
	return mapToResponse(rec), nil
}

// RevokeApproval implements supplementary.Service. Forbidden once the record
// has been converted to recovery; the compensatory time already exists
// downstream.
func (s *ServiceImpl) RevokeApproval(ctx context.Context, companyID string, actorID string, req supplementary.RevokeRequest) (supplementary.SupplementaryDayResponse, error) {
	rec, err := s.getForTransition(ctx, req.ID, companyID)
	if err != nil {
		return supplementary.SupplementaryDayResponse{}, err
	}
	if rec.Status != supplementary.StatusApproved {
		return supplementary.SupplementaryDayResponse{}, supplementary.ErrNotApproved
	}
	if rec.ConvertedToRecovery {
		return supplementary.SupplementaryDayResponse{}, supplementary.ErrAlreadyConverted
	}

	line := fmt.Sprintf("approval revoked by %s", actorID)
	if req.Reason != nil && *req.Reason != "" {
		line += ": " + *req.Reason
	}

	rec.Status = supplementary.StatusPending
	rec.ApprovedHours = nil
	rec.ApprovedBy = nil
	rec.ApprovedAt = nil
	rec.Notes = appendNote(rec.Notes, line)

	if err := s.Repository.Update(ctx, rec); err != nil {
		return supplementary.SupplementaryDayResponse{}, fmt.Errorf("failed to revoke approval: %w", err)
	}
	return mapToResponse(rec), nil
}

// RevokeRejection implements supplementary.Service.
func (s *ServiceImpl) RevokeRejection(ctx context.Context, companyID string, actorID string, req supplementary.RevokeRequest) (supplementary.SupplementaryDayResponse, error) {
	rec, err := s.getForTransition(ctx, req.ID, companyID)
	if err != nil {
		return supplementary.SupplementaryDayResponse{}, err
	}
	if rec.Status != supplementary.StatusRejected {
		return supplementary.SupplementaryDayResponse{}, supplementary.ErrNotRejected
	}

	line := fmt.Sprintf("rejection revoked by %s", actorID)
	if req.Reason != nil && *req.Reason != "" {
		line += ": " + *req.Reason
	}

	rec.Status = supplementary.StatusPending
	rec.ApprovedBy = nil
	rec.ApprovedAt = nil
	rec.RejectionReason = nil
	rec.Notes = appendNote(rec.Notes, line)

	if err := s.Repository.Update(ctx, rec); err != nil {
		return supplementary.SupplementaryDayResponse{}, fmt.Errorf("failed to revoke rejection: %w", err)
	}
	return mapToResponse(rec), nil
}
