package enums

// Capability is an atomic named right granted in bulk per role.
type Capability string

const (
	CapReadUsers          Capability = "read_users"
	CapCreateUsers        Capability = "create_users"
	CapUpdateUsers        Capability = "update_users"
	CapDeleteUsers        Capability = "delete_users"
	CapReadCenters        Capability = "read_centers"
	CapCreateCenters      Capability = "create_centers"
	CapUpdateCenters      Capability = "update_centers"
	CapDeleteCenters      Capability = "delete_centers"
	CapReadTests          Capability = "read_tests"
	CapCreateTests        Capability = "create_tests"
	CapUpdateTests        Capability = "update_tests"
	CapDeleteTests        Capability = "delete_tests"
	CapReadAppointments   Capability = "read_appointments"
	CapCreateAppointments Capability = "create_appointments"
	CapUpdateAppointments Capability = "update_appointments"
	CapDeleteAppointments Capability = "delete_appointments"
	CapManageSystem       Capability = "manage_system"
	CapManageIAM          Capability = "manage_iam"
)

// String implements fmt.Stringer.
func (c Capability) String() string {
	return string(c)
}

var permissionsByRole = map[Role][]Capability{
	RoleSuperAdmin: {
		CapReadUsers, CapCreateUsers, CapUpdateUsers, CapDeleteUsers,
		CapReadCenters, CapCreateCenters, CapUpdateCenters, CapDeleteCenters,
		CapReadTests, CapCreateTests, CapUpdateTests, CapDeleteTests,
		CapReadAppointments, CapCreateAppointments, CapUpdateAppointments, CapDeleteAppointments,
		CapManageSystem, CapManageIAM,
	},
	RoleAdmin: {
		CapReadUsers, CapCreateUsers, CapUpdateUsers,
		CapReadCenters, CapCreateCenters, CapUpdateCenters,
		CapReadTests, CapCreateTests, CapUpdateTests,
		CapReadAppointments, CapCreateAppointments, CapUpdateAppointments,
	},
	RoleDiagnosticCenterAdmin: {
		CapReadTests, CapCreateTests, CapUpdateTests,
		CapReadAppointments, CapUpdateAppointments,
	},
	RolePatient: {
		CapReadCenters, CapReadTests, CapCreateAppointments,
	},
}

// Permissions returns the fixed capability set derived from the role. The
// result is a fresh slice; callers may mutate it freely. Unknown roles map to
// the empty set.
func (r Role) Permissions() []Capability {
	caps, ok := permissionsByRole[r]
	if !ok {
		return []Capability{}
	}
	return append([]Capability(nil), caps...)
}
