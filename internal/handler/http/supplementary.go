package http

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"
	"github.com/workpulse/attendance-backend-go/internal/domain/supplementary"
	"github.com/workpulse/attendance-backend-go/internal/handler/http/response"
)

type SupplementaryHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	Stats(w http.ResponseWriter, r *http.Request)

	Approve(w http.ResponseWriter, r *http.Request)
	Reject(w http.ResponseWriter, r *http.Request)
	RevokeApproval(w http.ResponseWriter, r *http.Request)
	RevokeRejection(w http.ResponseWriter, r *http.Request)

	Balance(w http.ResponseWriter, r *http.Request)
	Convert(w http.ResponseWriter, r *http.Request)
	Reconcile(w http.ResponseWriter, r *http.Request)
}

type SupplementaryHandlerImpl struct {
	supplementaryService supplementary.Service
}

func NewSupplementaryHandler(supplementaryService supplementary.Service) SupplementaryHandler {
	return &SupplementaryHandlerImpl{supplementaryService: supplementaryService}
}

// requestIdentity pulls tenant and actor out of JWT claims. Both are set by
// the identity service at login; handlers pass them to services explicitly.
func requestIdentity(r *http.Request) (companyID string, actorID string, ok bool) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return "", "", false
	}

	companyID, okCompany := claims["company_id"].(string)
	actorID, okActor := claims["user_id"].(string)
	if !okCompany || companyID == "" || !okActor || actorID == "" {
		return "", "", false
	}

	return companyID, actorID, true
}

// Create implements SupplementaryHandler.
func (h *SupplementaryHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	companyID, actorID, ok := requestIdentity(r)
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	var req supplementary.CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Create supplementary day decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	created, err := h.supplementaryService.Create(r.Context(), companyID, actorID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Supplementary day created successfully", created)
}

// List implements SupplementaryHandler.
func (h *SupplementaryHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	companyID, _, ok := requestIdentity(r)
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	filter := parseFilter(r)
	if err := filter.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	list, err := h.supplementaryService.List(r.Context(), companyID, filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	totalPages := list.TotalPages
	response.SuccessWithMeta(w, list, &response.Meta{
		Page:       list.Page,
		Limit:      list.Limit,
		TotalItems: list.TotalCount,
		TotalPages: totalPages,
	})
}

// Get implements SupplementaryHandler.
func (h *SupplementaryHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	companyID, _, ok := requestIdentity(r)
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Supplementary day ID is required", nil)
		return
	}

	record, err := h.supplementaryService.Get(r.Context(), companyID, id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, record)
}

// Delete implements SupplementaryHandler.
func (h *SupplementaryHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	companyID, _, ok := requestIdentity(r)
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Supplementary day ID is required", nil)
		return
	}

	if err := h.supplementaryService.Delete(r.Context(), companyID, id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Supplementary day deleted successfully", nil)
}

// Stats implements SupplementaryHandler.
func (h *SupplementaryHandlerImpl) Stats(w http.ResponseWriter, r *http.Request) {
	companyID, _, ok := requestIdentity(r)
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	stats, err := h.supplementaryService.Stats(r.Context(), companyID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, stats)
}

// Approve implements SupplementaryHandler.
func (h *SupplementaryHandlerImpl) Approve(w http.ResponseWriter, r *http.Request) {
	companyID, actorID, ok := requestIdentity(r)
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	var req supplementary.ApproveRequest
	// Body is optional: absent approved_hours means approve as detected.
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && err != io.EOF {
		slog.Error("Approve supplementary day decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	record, err := h.supplementaryService.Approve(r.Context(), companyID, actorID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Supplementary day approved successfully", record)
}

// Reject implements SupplementaryHandler.
func (h *SupplementaryHandlerImpl) Reject(w http.ResponseWriter, r *http.Request) {
	companyID, actorID, ok := requestIdentity(r)
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	var req supplementary.RejectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Reject supplementary day decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	record, err := h.supplementaryService.Reject(r.Context(), companyID, actorID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Supplementary day rejected successfully", record)
}

// RevokeApproval implements SupplementaryHandler.
func (h *SupplementaryHandlerImpl) RevokeApproval(w http.ResponseWriter, r *http.Request) {
	companyID, actorID, ok := requestIdentity(r)
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	var req supplementary.RevokeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && err != io.EOF {
		slog.Error("Revoke approval decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	record, err := h.supplementaryService.RevokeApproval(r.Context(), companyID, actorID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Approval revoked successfully", record)
}

// RevokeRejection implements SupplementaryHandler.
func (h *SupplementaryHandlerImpl) RevokeRejection(w http.ResponseWriter, r *http.Request) {
	companyID, actorID, ok := requestIdentity(r)
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	var req supplementary.RevokeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && err != io.EOF {
		slog.Error("Revoke rejection decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	record, err := h.supplementaryService.RevokeRejection(r.Context(), companyID, actorID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Rejection revoked successfully", record)
}

// Balance implements SupplementaryHandler.
func (h *SupplementaryHandlerImpl) Balance(w http.ResponseWriter, r *http.Request) {
	companyID, _, ok := requestIdentity(r)
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	employeeID := chi.URLParam(r, "employeeId")
	if employeeID == "" {
		response.BadRequest(w, "Employee ID is required", nil)
		return
	}

	balance, err := h.supplementaryService.Balance(r.Context(), companyID, employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, balance)
}

// Convert implements SupplementaryHandler.
func (h *SupplementaryHandlerImpl) Convert(w http.ResponseWriter, r *http.Request) {
	companyID, actorID, ok := requestIdentity(r)
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	var req supplementary.ConvertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Convert supplementary days decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.supplementaryService.Convert(r.Context(), companyID, actorID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Supplementary days converted successfully", result)
}

// Reconcile implements SupplementaryHandler.
func (h *SupplementaryHandlerImpl) Reconcile(w http.ResponseWriter, r *http.Request) {
	companyID, _, ok := requestIdentity(r)
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	var req supplementary.ReconcileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Reconcile decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	startDate, _ := time.Parse("2006-01-02", req.StartDate)
	endDate, _ := time.Parse("2006-01-02", req.EndDate)

	result, err := h.supplementaryService.Reconcile(r.Context(), companyID, startDate, endDate)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Reconciliation completed", result)
}

func parseFilter(r *http.Request) supplementary.Filter {
	q := r.URL.Query()

	filter := supplementary.Filter{
		SortBy:    q.Get("sort_by"),
		SortOrder: q.Get("sort_order"),
	}

	strParam := func(key string) *string {
		if v := q.Get(key); v != "" {
			return &v
		}
		return nil
	}

	filter.EmployeeID = strParam("employee_id")
	filter.Status = strParam("status")
	filter.Type = strParam("type")
	filter.StartDate = strParam("start_date")
	filter.EndDate = strParam("end_date")
	filter.BranchID = strParam("branch_id")
	filter.PositionID = strParam("position_id")

	if page, err := strconv.Atoi(q.Get("page")); err == nil {
		filter.Page = page
	}
	if limit, err := strconv.Atoi(q.Get("limit")); err == nil {
		filter.Limit = limit
	}

	return filter
}
