package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/novaflow-api/internal/application/dto"
	"github.com/jhoicas/novaflow-api/internal/domain"
	"github.com/jhoicas/novaflow-api/internal/domain/entity"
	"github.com/jhoicas/novaflow-api/internal/domain/rbac"
	"github.com/jhoicas/novaflow-api/internal/domain/repository"
	"github.com/jhoicas/novaflow-api/pkg/logger"
	"github.com/jhoicas/novaflow-api/pkg/passhash"
)

// fakePersonRepo implementación en memoria de PersonRepository para los tests
// de auth. Solo los métodos que el caso de uso toca hacen algo.
type fakePersonRepo struct {
	byEmail map[string]*entity.Person
}

func newFakePersonRepo(people ...*entity.Person) *fakePersonRepo {
	r := &fakePersonRepo{byEmail: make(map[string]*entity.Person)}
	for _, p := range people {
		r.byEmail[p.Email] = p
	}
	return r
}

func (r *fakePersonRepo) GetByEmail(_ context.Context, email string) (*entity.Person, error) {
	return r.byEmail[email], nil
}

func (r *fakePersonRepo) UpdatePassword(_ context.Context, email, hash string) (int64, error) {
	p, ok := r.byEmail[email]
	if !ok {
		return 0, nil
	}
	p.PasswordHash = hash
	return 1, nil
}

func (r *fakePersonRepo) GetByID(context.Context, string) (*entity.Person, error) { return nil, nil }
func (r *fakePersonRepo) List(context.Context, repository.EmployeeFilter) ([]entity.EmployeeRow, error) {
	return nil, nil
}
func (r *fakePersonRepo) ListByRole(context.Context, rbac.Role) ([]entity.Person, error) {
	return nil, nil
}
func (r *fakePersonRepo) Insert(context.Context, *entity.Person) error { return nil }
func (r *fakePersonRepo) Update(context.Context, *entity.Person) error { return nil }
func (r *fakePersonRepo) SetActive(context.Context, string, bool) error {
	return nil
}
func (r *fakePersonRepo) InsertCompensation(context.Context, string, rbac.Role, entity.Compensation) error {
	return nil
}
func (r *fakePersonRepo) UpdateCompensation(context.Context, string, rbac.Role, entity.Compensation) error {
	return nil
}
func (r *fakePersonRepo) GetCompensation(context.Context, string, rbac.Role) (*entity.Compensation, error) {
	return nil, nil
}
func (r *fakePersonRepo) LinkSupervisor(context.Context, string, string) error { return nil }

var _ repository.PersonRepository = (*fakePersonRepo)(nil)

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Env: "production", Level: "error"})
}

func testUseCase(t *testing.T, people ...*entity.Person) *UseCase {
	t.Helper()
	return NewUseCase(
		newFakePersonRepo(people...),
		NewSessionManager(30*time.Minute),
		JWTConfig{Secret: "test-secret", ExpMinutes: 60, Issuer: "novaflow-test"},
		testLogger(),
	)
}

func activePerson(email, password string) *entity.Person {
	return &entity.Person{
		ID:           "p-1",
		Name:         "Ana Gómez",
		Email:        email,
		Role:         rbac.RoleSalesman,
		PasswordHash: passhash.Hash(password),
		IsActive:     true,
	}
}

func TestAuthenticate_Exitoso(t *testing.T) {
	uc := testUseCase(t, activePerson("ana@novaflow.test", "clave-segura"))

	out, err := uc.Authenticate(context.Background(), dto.LoginRequest{
		Email:    "  Ana@NovaFlow.test ", // se normaliza
		Password: "clave-segura",
	})
	require.NoError(t, err)
	require.NotNil(t, out)

	assert.NotEmpty(t, out.Token)
	assert.Equal(t, "SALESMAN", out.User.Role)
	assert.True(t, uc.Sessions().IsValid(out.SessionID), "la sesión recién creada debe ser válida")
	assert.Contains(t, out.User.Permissions, "manage_orders")
}

// Email desconocido y contraseña incorrecta son indistinguibles para el cliente.
func TestAuthenticate_SinEnumeracionDeCuentas(t *testing.T) {
	uc := testUseCase(t, activePerson("ana@novaflow.test", "clave-segura"))

	_, errDesconocido := uc.Authenticate(context.Background(), dto.LoginRequest{
		Email: "nadie@novaflow.test", Password: "lo-que-sea",
	})
	_, errClaveMala := uc.Authenticate(context.Background(), dto.LoginRequest{
		Email: "ana@novaflow.test", Password: "incorrecta",
	})

	assert.ErrorIs(t, errDesconocido, domain.ErrInvalidCredentials)
	assert.ErrorIs(t, errClaveMala, domain.ErrInvalidCredentials)
	assert.Equal(t, errDesconocido, errClaveMala,
		"email inexistente y contraseña mala deben producir el mismo error")
}

func TestAuthenticate_CuentaDesactivada(t *testing.T) {
	p := activePerson("ana@novaflow.test", "clave-segura")
	p.IsActive = false
	uc := testUseCase(t, p)

	_, err := uc.Authenticate(context.Background(), dto.LoginRequest{
		Email: "ana@novaflow.test", Password: "clave-segura",
	})
	assert.ErrorIs(t, err, domain.ErrAccountDeactivated)
}

// El hash legacy sin salt sigue autenticando durante la migración.
func TestAuthenticate_CredencialLegacy(t *testing.T) {
	p := activePerson("ana@novaflow.test", "ignorada")
	p.PasswordHash = passhash.LegacyHash("clave-vieja")
	uc := testUseCase(t, p)

	out, err := uc.Authenticate(context.Background(), dto.LoginRequest{
		Email: "ana@novaflow.test", Password: "clave-vieja",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, out.Token)
}

// La respuesta de login nunca incluye la credencial.
func TestAuthenticate_NoExponeCredencial(t *testing.T) {
	uc := testUseCase(t, activePerson("ana@novaflow.test", "clave-segura"))

	out, err := uc.Authenticate(context.Background(), dto.LoginRequest{
		Email: "ana@novaflow.test", Password: "clave-segura",
	})
	require.NoError(t, err)
	// PersonResponse no tiene campo de credencial; verificamos que el DTO
	// proyectado coincide con la entidad sin más datos sensibles.
	assert.Equal(t, "ana@novaflow.test", out.User.Email)
	assert.Equal(t, "Ana Gómez", out.User.Name)
}

func TestUpdatePassword_SiempreFormatoConSalt(t *testing.T) {
	p := activePerson("ana@novaflow.test", "ignorada")
	p.PasswordHash = passhash.LegacyHash("clave-vieja") // formato legacy previo
	repo := newFakePersonRepo(p)
	uc := NewUseCase(repo, NewSessionManager(30*time.Minute),
		JWTConfig{Secret: "s", ExpMinutes: 60, Issuer: "t"}, testLogger())

	ok, err := uc.UpdatePassword(context.Background(), "Ana@NovaFlow.test", "clave-nueva-123")
	require.NoError(t, err)
	require.True(t, ok)

	assert.True(t, passhash.IsSalted(p.PasswordHash),
		"tras el reset la credencial debe quedar en formato con salt")
	assert.True(t, passhash.Verify("clave-nueva-123", p.PasswordHash))
}

func TestUpdatePassword_EmailInexistente(t *testing.T) {
	uc := testUseCase(t)

	ok, err := uc.UpdatePassword(context.Background(), "nadie@novaflow.test", "clave-nueva-123")
	require.NoError(t, err, "email inexistente no es un error: solo devuelve false")
	assert.False(t, ok)
}

func TestUpdatePassword_ClaveCorta(t *testing.T) {
	uc := testUseCase(t, activePerson("ana@novaflow.test", "x"))

	_, err := uc.UpdatePassword(context.Background(), "ana@novaflow.test", "corta")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Sesiones
// ──────────────────────────────────────────────────────────────────────────────

func TestSession_ExpiraPorInactividad(t *testing.T) {
	m := NewSessionManager(30 * time.Minute)
	current := time.Now()
	m.now = func() time.Time { return current }

	s := m.Create("p-1", rbac.RoleHOD)
	assert.True(t, m.IsValid(s.ID), "válida recién creada")

	current = current.Add(29 * time.Minute)
	assert.True(t, m.IsValid(s.ID), "aún dentro del timeout")

	current = current.Add(2 * time.Minute)
	assert.False(t, m.IsValid(s.ID), "expirada tras superar el timeout sin refresh")
}

func TestSession_RefreshReiniciaElContador(t *testing.T) {
	m := NewSessionManager(30 * time.Minute)
	current := time.Now()
	m.now = func() time.Time { return current }

	s := m.Create("p-1", rbac.RoleSupervisor)

	current = current.Add(25 * time.Minute)
	require.True(t, m.Refresh(s.ID))

	current = current.Add(25 * time.Minute)
	assert.True(t, m.IsValid(s.ID), "el refresh debe reiniciar la ventana de inactividad")
}

func TestSession_RefreshSobreExpiradaFalla(t *testing.T) {
	m := NewSessionManager(time.Minute)
	current := time.Now()
	m.now = func() time.Time { return current }

	s := m.Create("p-1", rbac.RoleSalesman)
	current = current.Add(2 * time.Minute)

	assert.False(t, m.Refresh(s.ID), "no se puede refrescar una sesión ya expirada")
}

func TestSession_LogoutInvalidaDeInmediato(t *testing.T) {
	uc := testUseCase(t, activePerson("ana@novaflow.test", "clave-segura"))
	out, err := uc.Authenticate(context.Background(), dto.LoginRequest{
		Email: "ana@novaflow.test", Password: "clave-segura",
	})
	require.NoError(t, err)

	uc.Logout(out.SessionID)
	assert.False(t, uc.Sessions().IsValid(out.SessionID),
		"logout invalida sin esperar el timeout")
}
