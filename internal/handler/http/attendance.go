package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/jwtauth/v5"
	"github.com/workpulse/attendance-backend-go/internal/domain/attendance"
	"github.com/workpulse/attendance-backend-go/internal/handler/http/response"
)

type AttendanceHandler interface {
	ClockIn(w http.ResponseWriter, r *http.Request)
	ClockOut(w http.ResponseWriter, r *http.Request)
}

type AttendanceHandlerImpl struct {
	clockService attendance.ClockService
}

func NewAttendanceHandler(clockService attendance.ClockService) AttendanceHandler {
	return &AttendanceHandlerImpl{clockService: clockService}
}

// employeeIdentity requires an employee-bound token; clock events always
// belong to the caller.
func employeeIdentity(r *http.Request) (companyID string, employeeID string, ok bool) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		slog.Error("Failed to get JWT claims", "error", err)
		return "", "", false
	}

	companyID, okCompany := claims["company_id"].(string)
	employeeID, okEmployee := claims["employee_id"].(string)
	if !okCompany || companyID == "" || !okEmployee || employeeID == "" {
		return "", "", false
	}

	return companyID, employeeID, true
}

// ClockIn implements AttendanceHandler.
func (h *AttendanceHandlerImpl) ClockIn(w http.ResponseWriter, r *http.Request) {
	companyID, employeeID, ok := employeeIdentity(r)
	if !ok {
		response.Forbidden(w, "Employee ID not found in token")
		return
	}

	result, err := h.clockService.ClockIn(r.Context(), companyID, employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Clocked in successfully", result)
}

// ClockOut implements AttendanceHandler.
func (h *AttendanceHandlerImpl) ClockOut(w http.ResponseWriter, r *http.Request) {
	companyID, employeeID, ok := employeeIdentity(r)
	if !ok {
		response.Forbidden(w, "Employee ID not found in token")
		return
	}

	result, err := h.clockService.ClockOut(r.Context(), companyID, employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Clocked out successfully", result)
}
