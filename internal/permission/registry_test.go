package permission

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRole(t *testing.T) {
	assert.Equal(t, RoleSupervisor, ParseRole("supervisor"))
	assert.Equal(t, RoleFrontDesk, ParseRole("frontdesk"))
	assert.Equal(t, RoleCustomer, ParseRole("customer"))

	// Unknown or stale values never grant anything
	assert.Equal(t, RoleAnonymous, ParseRole("admin"))
	assert.Equal(t, RoleAnonymous, ParseRole(""))
	assert.Equal(t, RoleAnonymous, ParseRole("SUPERVISOR"))
}

func TestSupervisorGrants(t *testing.T) {
	r := NewRegistry()

	for _, cap := range []Capability{
		CapCreateRental, CapCloseRental, CapCancelRental, CapViewRentals,
		CapOverrideRentalCost, CapManageFines, CapRegisterClient,
		CapManageEmployees, CapManageVehicles, CapManageReservations,
		CapViewReports, CapManageUsers,
	} {
		assert.True(t, r.Allows(RoleSupervisor, cap), "supervisor should hold %s", cap)
	}
	assert.False(t, r.Allows(RoleSupervisor, CapViewOwnRentals))
}

func TestFrontDeskGrants(t *testing.T) {
	r := NewRegistry()

	assert.True(t, r.Allows(RoleFrontDesk, CapCreateRental))
	assert.True(t, r.Allows(RoleFrontDesk, CapManageFines))
	assert.True(t, r.Allows(RoleFrontDesk, CapOverrideRentalCost))

	// Reserved for the supervisor
	assert.False(t, r.Allows(RoleFrontDesk, CapViewReports))
	assert.False(t, r.Allows(RoleFrontDesk, CapManageUsers))
	assert.False(t, r.Allows(RoleFrontDesk, CapManageEmployees))
}

func TestCustomerGrants(t *testing.T) {
	r := NewRegistry()

	assert.True(t, r.Allows(RoleCustomer, CapViewOwnRentals))
	assert.True(t, r.Allows(RoleCustomer, CapViewOwnFines))
	assert.True(t, r.Allows(RoleCustomer, CapManageReservations))

	assert.False(t, r.Allows(RoleCustomer, CapCreateRental))
	assert.False(t, r.Allows(RoleCustomer, CapViewRentals))
	assert.False(t, r.Allows(RoleCustomer, CapManageFines))
}

func TestAnonymousHasNothing(t *testing.T) {
	r := NewRegistry()

	for _, cap := range []Capability{
		CapCreateRental, CapViewRentals, CapViewOwnRentals, CapManageReservations,
	} {
		assert.False(t, r.Allows(RoleAnonymous, cap))
	}
	assert.Empty(t, r.CapabilitiesFor(RoleAnonymous))
}

func TestCapabilitiesForReturnsCopy(t *testing.T) {
	r := NewRegistry()

	caps := r.CapabilitiesFor(RoleCustomer)
	for i := range caps {
		caps[i] = CapManageUsers
	}
	assert.False(t, r.Allows(RoleCustomer, CapManageUsers))
	assert.Len(t, r.CapabilitiesFor(RoleCustomer), 3)
}

func TestUnknownRole(t *testing.T) {
	r := NewRegistry()
	assert.False(t, r.Allows(Role("root"), CapManageUsers))
	assert.Nil(t, r.CapabilitiesFor(Role("root")))
}
