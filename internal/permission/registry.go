package permission

// Role is the closed set of principal roles. Anything outside this set
// behaves like RoleAnonymous: no capabilities at all.
type Role string

const (
	RoleSupervisor Role = "supervisor"
	RoleFrontDesk  Role = "frontdesk"
	RoleCustomer   Role = "customer"
	RoleAnonymous  Role = "anonymous"
)

// ParseRole maps a stored role string onto the closed Role set. Unknown
// values degrade to RoleAnonymous rather than failing, so a bad token or a
// stale database row can never grant capabilities.
func ParseRole(s string) Role {
	switch Role(s) {
	case RoleSupervisor, RoleFrontDesk, RoleCustomer:
		return Role(s)
	default:
		return RoleAnonymous
	}
}

// StaffRoles lists the roles backed by an employee record.
func StaffRoles() []Role {
	return []Role{RoleSupervisor, RoleFrontDesk}
}

// Capability names an operation class a role may be granted.
type Capability string

const (
	CapCreateRental       Capability = "rentals.create"
	CapCloseRental        Capability = "rentals.close"
	CapCancelRental       Capability = "rentals.cancel"
	CapViewRentals        Capability = "rentals.read"
	CapViewOwnRentals     Capability = "rentals.read_own"
	CapOverrideRentalCost Capability = "rentals.override_cost"
	CapManageFines        Capability = "fines.manage"
	CapViewOwnFines       Capability = "fines.read_own"
	CapRegisterClient     Capability = "clients.manage"
	CapManageEmployees    Capability = "employees.manage"
	CapManageVehicles     Capability = "vehicles.manage"
	CapManageReservations Capability = "reservations.manage"
	CapViewReports        Capability = "reports.read"
	CapManageUsers        Capability = "users.manage"
)

// Registry is the immutable role→capability table. Build it once at startup
// with NewRegistry and pass it by reference; it is never mutated afterwards.
type Registry struct {
	grants map[Role]map[Capability]struct{}
}

// NewRegistry builds the static capability table.
//
// Front desk staff can do everything the supervisor can except read reports
// and administer accounts. Customers only see their own rentals and fines
// and manage their own reservations.
func NewRegistry() *Registry {
	grants := map[Role][]Capability{
		RoleSupervisor: {
			CapCreateRental, CapCloseRental, CapCancelRental, CapViewRentals,
			CapOverrideRentalCost, CapManageFines, CapRegisterClient,
			CapManageEmployees, CapManageVehicles, CapManageReservations,
			CapViewReports, CapManageUsers,
		},
		RoleFrontDesk: {
			CapCreateRental, CapCloseRental, CapCancelRental, CapViewRentals,
			CapOverrideRentalCost, CapManageFines, CapRegisterClient,
			CapManageVehicles, CapManageReservations,
		},
		RoleCustomer: {
			CapViewOwnRentals, CapViewOwnFines, CapManageReservations,
		},
		RoleAnonymous: {},
	}

	r := &Registry{grants: make(map[Role]map[Capability]struct{}, len(grants))}
	for role, caps := range grants {
		set := make(map[Capability]struct{}, len(caps))
		for _, c := range caps {
			set[c] = struct{}{}
		}
		r.grants[role] = set
	}
	return r
}

// Allows reports whether the role is granted the capability. Pure and total:
// unknown roles resolve to no capabilities.
func (r *Registry) Allows(role Role, cap Capability) bool {
	set, ok := r.grants[role]
	if !ok {
		return false
	}
	_, ok = set[cap]
	return ok
}

// CapabilitiesFor returns the capability set granted to a role. The returned
// slice is a copy; callers cannot alter the table through it.
func (r *Registry) CapabilitiesFor(role Role) []Capability {
	set, ok := r.grants[role]
	if !ok {
		return nil
	}
	caps := make([]Capability, 0, len(set))
	for c := range set {
		caps = append(caps, c)
	}
	return caps
}
