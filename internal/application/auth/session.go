package auth

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/novaflow-api/internal/domain/rbac"
)

// Session sesión en memoria de un usuario autenticado. No se persiste:
// muere con el logout o con el proceso.
type Session struct {
	ID       string
	PersonID string
	Role     rbac.Role
	Start    time.Time
}

// SessionManager mantiene las sesiones activas del proceso. Es la única
// pieza de estado mutable compartido fuera del storage, por eso el mutex.
// El timeout es consultivo: se comprueba en cada acceso, sin timers.
type SessionManager struct {
	mu       sync.Mutex
	sessions map[string]*Session
	timeout  time.Duration
	now      func() time.Time // inyectable en tests
}

// NewSessionManager construye el manager con el timeout de inactividad dado.
func NewSessionManager(timeout time.Duration) *SessionManager {
	return &SessionManager{
		sessions: make(map[string]*Session),
		timeout:  timeout,
		now:      time.Now,
	}
}

// Create inicia una sesión nueva para la persona autenticada.
func (m *SessionManager) Create(personID string, role rbac.Role) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := &Session{
		ID:       uuid.New().String(),
		PersonID: personID,
		Role:     role,
		Start:    m.now(),
	}
	m.sessions[s.ID] = s
	return s
}

// Get devuelve la sesión si existe.
func (m *SessionManager) Get(id string) (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	return s, ok
}

// IsValid true sii la sesión existe y no ha superado el timeout de inactividad.
func (m *SessionManager) IsValid(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return false
	}
	return m.now().Sub(s.Start) < m.timeout
}

// Refresh reinicia el contador de inactividad (llamar en cada actividad del
// usuario). Devuelve false si la sesión ya no existe o ya expiró.
func (m *SessionManager) Refresh(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok || m.now().Sub(s.Start) >= m.timeout {
		return false
	}
	s.Start = m.now()
	return true
}

// Invalidate destruye la sesión de inmediato, sin esperar el timeout.
func (m *SessionManager) Invalidate(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
}
