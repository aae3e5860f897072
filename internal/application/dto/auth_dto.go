package dto

import "time"

// LoginRequest credenciales de inicio de sesión.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// PersonResponse datos del usuario autenticado; jamás incluye la credencial.
type PersonResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone,omitempty"`
	Role         string    `json:"role"`
	RoleDisplay  string    `json:"role_display"`
	DepartmentID string    `json:"department_id,omitempty"`
	Permissions  []string  `json:"permissions"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
}

// LoginResponse token + usuario.
type LoginResponse struct {
	Token     string         `json:"token"`
	SessionID string         `json:"session_id"`
	ExpiresIn int            `json:"expires_in"` // segundos de inactividad permitidos
	User      PersonResponse `json:"user"`
}

// UpdatePasswordRequest restablecimiento de contraseña.
type UpdatePasswordRequest struct {
	Email       string `json:"email"`
	NewPassword string `json:"new_password"`
}
