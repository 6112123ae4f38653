package employee

import (
	"time"
)

type Employee struct {
	ID                    string
	UserID                *string
	CompanyID             string
	BranchID              string
	PositionID            string
	EmployeeCode          string
	FullName              string
	EmploymentStatus      EmploymentStatus
	IsEligibleForOvertime bool
	HireDate              time.Time
	ResignationDate       *time.Time
	CreatedAt             time.Time
	UpdatedAt             time.Time
	DeletedAt             *time.Time
}

type EmploymentStatus string

const (
	EmploymentStatusActive   EmploymentStatus = "active"
	EmploymentStatusInactive EmploymentStatus = "inactive"
	EmploymentStatusResigned EmploymentStatus = "resigned"
)
