package employee

import (
	"time"
)

// Employee is read-only to this service; the record is owned by the HR core.
type Employee struct {
	ID               string
	FullName         string
	EmployeeCode     string
	EmploymentStatus EmploymentStatus
	PayGradeID       *string
	PayTypeID        *string
	HireDate         time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

type EmploymentStatus string

const (
	EmploymentStatusActive     EmploymentStatus = "active"
	EmploymentStatusProbation  EmploymentStatus = "probation"
	EmploymentStatusSuspended  EmploymentStatus = "suspended"
	EmploymentStatusInactive   EmploymentStatus = "inactive"
	EmploymentStatusRetired    EmploymentStatus = "retired"
	EmploymentStatusTerminated EmploymentStatus = "terminated"
)

// EligibleForPayroll reports whether the employee is included in draft
// generation. Suspended and inactive employees are excluded.
func (e Employee) EligibleForPayroll() bool {
	return e.EmploymentStatus != EmploymentStatusSuspended &&
		e.EmploymentStatus != EmploymentStatusInactive
}
