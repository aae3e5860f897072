package dto

// SubmitWorkLogRequest registro de horas contra un proyecto.
type SubmitWorkLogRequest struct {
	ProjectID string `json:"project_id"`
	WorkDate  string `json:"work_date"` // YYYY-MM-DD
	Hours     string `json:"hours"`
	Notes     string `json:"notes"`
}

// ApproveWorkLogRequest aprobación o rechazo de un registro de horas.
type ApproveWorkLogRequest struct {
	Approve bool `json:"approve"`
}

// WorkLogResponse fila de listado de registros de horas.
type WorkLogResponse struct {
	ID                 string `json:"id"`
	EmployeeName       string `json:"employee_name,omitempty"`
	ProjectName        string `json:"project_name,omitempty"`
	WorkDate           string `json:"work_date"`
	Hours              string `json:"hours"`
	Notes              string `json:"notes,omitempty"`
	SupervisorApproved bool   `json:"supervisor_approved"`
	HODApproved        bool   `json:"hod_approved"`
	ApprovalStatus     string `json:"approval_status"`
}
