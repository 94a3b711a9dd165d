package permission

import (
	"sync"

	"github.com/google/uuid"
)

// Principal identifies an authenticated user for the duration of a request.
// ClientID is set only for customer accounts, EmployeeID only for staff.
type Principal struct {
	UserID     uuid.UUID
	Username   string
	Role       Role
	ClientID   *uuid.UUID
	EmployeeID *uuid.UUID
}

// Anonymous returns the principal used before any login succeeds.
func Anonymous() Principal {
	return Principal{Role: RoleAnonymous}
}

// Session holds the current principal and answers capability checks against
// the registry. A Session is an explicit value carried per request (or per
// test), never a package-level singleton. Reads are guarded so a session
// shared across goroutines stays consistent.
type Session struct {
	mu        sync.RWMutex
	registry  *Registry
	principal *Principal
}

// NewSession creates an unauthenticated session bound to a registry.
func NewSession(registry *Registry) *Session {
	return &Session{registry: registry}
}

// Login installs the principal for this session.
func (s *Session) Login(p Principal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.principal = &p
}

// Logout clears the session unconditionally. Idempotent.
func (s *Session) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.principal = nil
}

// Principal returns the current principal, or the anonymous principal when
// nobody is logged in.
func (s *Session) Principal() Principal {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.principal == nil {
		return Anonymous()
	}
	return *s.principal
}

// Can reports whether the current principal holds the capability. With no
// principal present this is the anonymous role: always false.
func (s *Session) Can(cap Capability) bool {
	return s.registry.Allows(s.Principal().Role, cap)
}

// Capabilities lists everything the current principal's role may do.
func (s *Session) Capabilities() []Capability {
	return s.registry.CapabilitiesFor(s.Principal().Role)
}

// CurrentClientID returns the linked client id for customer principals,
// used to scope self-service queries. Staff and anonymous sessions have no
// linked client.
func (s *Session) CurrentClientID() (uuid.UUID, bool) {
	p := s.Principal()
	if p.Role != RoleCustomer || p.ClientID == nil {
		return uuid.Nil, false
	}
	return *p.ClientID, true
}
