package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ApprovalStatus estado de aprobación de un registro de horas.
type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "PENDING"
	ApprovalApproved ApprovalStatus = "APPROVED"
	ApprovalRejected ApprovalStatus = "REJECTED"
)

// ParseApprovalStatus valida un estado recibido como string.
func ParseApprovalStatus(s string) (ApprovalStatus, bool) {
	switch ApprovalStatus(s) {
	case ApprovalPending, ApprovalApproved, ApprovalRejected:
		return ApprovalStatus(s), true
	}
	return "", false
}

// WorkLog registro de horas de un empleado contra un proyecto.
// Pasa por aprobación de supervisor y/o HOD.
type WorkLog struct {
	ID                 string
	EmployeeID         string
	ProjectID          string
	WorkDate           time.Time
	Hours              decimal.Decimal
	Notes              string
	SupervisorApproved bool
	HODApproved        bool
	ApprovalStatus     ApprovalStatus
	EmployeeName       string // denormalizado
	ProjectName        string
	CreatedAt          time.Time
}
