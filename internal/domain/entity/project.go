package entity

import "time"

// ProjectStatus estados de un proyecto.
type ProjectStatus string

const (
	ProjectPlanning   ProjectStatus = "PLANNING"
	ProjectInProgress ProjectStatus = "IN_PROGRESS"
	ProjectCompleted  ProjectStatus = "COMPLETED"
	ProjectOnHold     ProjectStatus = "ON_HOLD"
)

// ParseProjectStatus valida un estado recibido como string.
func ParseProjectStatus(s string) (ProjectStatus, bool) {
	switch ProjectStatus(s) {
	case ProjectPlanning, ProjectInProgress, ProjectCompleted, ProjectOnHold:
		return ProjectStatus(s), true
	}
	return "", false
}

// Project proyecto departamental al que se imputan horas.
type Project struct {
	ID             string
	Name           string
	DepartmentID   string
	LocationID     string
	Status         ProjectStatus
	StartDate      *time.Time
	EndDate        *time.Time
	DepartmentName string // denormalizado
	LocationName   string
	CreatedAt      time.Time
}
