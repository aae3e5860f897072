package auth

import (
	"context"
	"strings"

	"github.com/jhoicas/novaflow-api/internal/application/dto"
	"github.com/jhoicas/novaflow-api/internal/domain"
	"github.com/jhoicas/novaflow-api/internal/domain/entity"
	"github.com/jhoicas/novaflow-api/internal/domain/rbac"
	"github.com/jhoicas/novaflow-api/internal/domain/repository"
	"github.com/jhoicas/novaflow-api/pkg/jwt"
	"github.com/jhoicas/novaflow-api/pkg/logger"
	"github.com/jhoicas/novaflow-api/pkg/passhash"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// UseCase autenticación y gestión de contraseñas.
type UseCase struct {
	people   repository.PersonRepository
	sessions *SessionManager
	jwtCfg   JWTConfig
	log      *logger.Logger
}

// NewUseCase construye el caso de uso de auth.
func NewUseCase(people repository.PersonRepository, sessions *SessionManager, jwtCfg JWTConfig, log *logger.Logger) *UseCase {
	return &UseCase{people: people, sessions: sessions, jwtCfg: jwtCfg, log: log}
}

// Sessions expone el manager para el middleware HTTP.
func (uc *UseCase) Sessions() *SessionManager {
	return uc.sessions
}

// Authenticate verifica email/contraseña, abre sesión y genera el JWT.
// Email desconocido y contraseña incorrecta devuelven el mismo
// ErrInvalidCredentials: la respuesta no debe permitir enumerar cuentas.
// Una cuenta desactivada sí se distingue (ErrAccountDeactivated).
func (uc *UseCase) Authenticate(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	email := NormalizeEmail(in.Email)
	if email == "" || in.Password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	person, err := uc.people.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if person == nil {
		uc.log.Warn().Str("email", email).Msg("intento de login con email desconocido")
		return nil, domain.ErrInvalidCredentials
	}
	if !person.IsActive {
		uc.log.Warn().Str("email", email).Msg("intento de login sobre cuenta desactivada")
		return nil, domain.ErrAccountDeactivated
	}
	if !passhash.Verify(in.Password, person.PasswordHash) {
		uc.log.Warn().Str("email", email).Msg("login fallido")
		return nil, domain.ErrInvalidCredentials
	}

	session := uc.sessions.Create(person.ID, person.Role)
	token, err := jwt.Generate(uc.jwtCfg.Secret, person.ID, string(person.Role), session.ID, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		uc.sessions.Invalidate(session.ID)
		return nil, err
	}

	uc.log.Info().Str("user", person.Name).Str("role", string(person.Role)).Msg("usuario autenticado")
	return &dto.LoginResponse{
		Token:     token,
		SessionID: session.ID,
		ExpiresIn: int(uc.sessions.timeout.Seconds()),
		User:      ToPersonResponse(person),
	}, nil
}

// Logout invalida la sesión de inmediato, aunque el token siga sin expirar.
func (uc *UseCase) Logout(sessionID string) {
	uc.sessions.Invalidate(sessionID)
}

// UpdatePassword escribe la nueva credencial siempre en formato con salt.
// Devuelve false si el email no corresponde a ninguna cuenta; el handler no
// debe trasladar esa distinción al cliente (resistencia a enumeración).
func (uc *UseCase) UpdatePassword(ctx context.Context, email, newPassword string) (bool, error) {
	email = NormalizeEmail(email)
	if email == "" || len(newPassword) < 8 {
		return false, domain.ErrInvalidInput
	}
	affected, err := uc.people.UpdatePassword(ctx, email, passhash.Hash(newPassword))
	if err != nil {
		return false, err
	}
	if affected == 0 {
		uc.log.Warn().Str("email", email).Msg("reset de contraseña sobre email inexistente")
		return false, nil
	}
	uc.log.Info().Str("email", email).Msg("contraseña actualizada")
	return true, nil
}

// NormalizeEmail recorta espacios y pasa a minúsculas.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ToPersonResponse proyecta la entidad sin la credencial.
func ToPersonResponse(p *entity.Person) dto.PersonResponse {
	perms := rbac.PermissionsFor(p.Role)
	tokens := make([]string, 0, len(perms))
	for _, perm := range perms {
		tokens = append(tokens, string(perm))
	}
	return dto.PersonResponse{
		ID:           p.ID,
		Name:         p.Name,
		Email:        p.Email,
		Phone:        p.Phone,
		Role:         string(p.Role),
		RoleDisplay:  p.Role.DisplayName(),
		DepartmentID: p.DepartmentID,
		Permissions:  tokens,
		IsActive:     p.IsActive,
		CreatedAt:    p.CreatedAt,
	}
}
