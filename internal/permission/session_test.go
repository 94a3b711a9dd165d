package permission

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestSessionDeniesBeforeLogin(t *testing.T) {
	s := NewSession(NewRegistry())

	assert.False(t, s.Can(CapCreateRental))
	assert.Equal(t, RoleAnonymous, s.Principal().Role)
}

func TestSessionLoginGrantsRoleCapabilities(t *testing.T) {
	s := NewSession(NewRegistry())
	s.Login(Principal{UserID: uuid.New(), Username: "ana", Role: RoleFrontDesk})

	assert.True(t, s.Can(CapCreateRental))
	assert.False(t, s.Can(CapManageUsers))
	assert.Equal(t, "ana", s.Principal().Username)
}

func TestSessionLogoutIsIdempotent(t *testing.T) {
	s := NewSession(NewRegistry())
	s.Login(Principal{UserID: uuid.New(), Role: RoleSupervisor})

	s.Logout()
	assert.False(t, s.Can(CapCreateRental))

	// A second logout on an already-anonymous session must not fail
	s.Logout()
	assert.Equal(t, RoleAnonymous, s.Principal().Role)
}

func TestSessionReLoginReplacesPrincipal(t *testing.T) {
	s := NewSession(NewRegistry())
	s.Login(Principal{UserID: uuid.New(), Username: "sup", Role: RoleSupervisor})
	s.Login(Principal{UserID: uuid.New(), Username: "cust", Role: RoleCustomer})

	assert.False(t, s.Can(CapManageUsers))
	assert.True(t, s.Can(CapViewOwnRentals))
	assert.Equal(t, "cust", s.Principal().Username)
}

func TestCurrentClientIDOnlyForCustomers(t *testing.T) {
	s := NewSession(NewRegistry())

	_, ok := s.CurrentClientID()
	assert.False(t, ok, "anonymous session has no client")

	clientID := uuid.New()
	s.Login(Principal{UserID: uuid.New(), Role: RoleCustomer, ClientID: &clientID})
	got, ok := s.CurrentClientID()
	assert.True(t, ok)
	assert.Equal(t, clientID, got)

	// Staff sessions never expose a client id even when one is linked
	s.Login(Principal{UserID: uuid.New(), Role: RoleFrontDesk, ClientID: &clientID})
	_, ok = s.CurrentClientID()
	assert.False(t, ok)
}

func TestSessionCapabilities(t *testing.T) {
	s := NewSession(NewRegistry())
	assert.Empty(t, s.Capabilities())

	s.Login(Principal{UserID: uuid.New(), Role: RoleCustomer})
	assert.Len(t, s.Capabilities(), 3)
}
