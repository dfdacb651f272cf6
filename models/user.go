package models

// Role is the closed set of staff roles. Permission checks go through
// capability sets rather than ad-hoc role comparisons in handlers.
type Role string

const (
	RoleSales       Role = "Sales"
	RoleReservation Role = "Reservation"
	RoleOperation   Role = "Operation"
	RoleAdmin       Role = "Admin"
	RoleSuperAdmin  Role = "Super Admin"
)

// Capability names one permitted action group.
type Capability string

const (
	CapViewDashboard   Capability = "view_dashboard"
	CapManageLeads     Capability = "manage_leads"
	CapBuildProposals  Capability = "build_proposals"
	CapManageFleet     Capability = "manage_fleet"
	CapEditContent     Capability = "edit_content"
	CapManageSettings  Capability = "manage_settings"
)

var roleCapabilities = map[Role][]Capability{
	RoleSales:       {CapViewDashboard, CapManageLeads, CapBuildProposals},
	RoleReservation: {CapViewDashboard, CapManageLeads, CapBuildProposals},
	RoleOperation:   {CapViewDashboard, CapManageLeads, CapBuildProposals, CapManageFleet},
	RoleAdmin:       {CapViewDashboard, CapManageLeads, CapBuildProposals, CapManageFleet, CapManageSettings},
	RoleSuperAdmin:  {CapViewDashboard, CapManageLeads, CapBuildProposals, CapManageFleet, CapManageSettings, CapEditContent},
}

// Can reports whether the role grants the capability.
func (r Role) Can(c Capability) bool {
	for _, cap := range roleCapabilities[r] {
		if cap == c {
			return true
		}
	}
	return false
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	_, ok := roleCapabilities[r]
	return ok
}

// User is a staff account. Password hashes never leave the repository
// layer; this struct is what controllers and tokens carry.
type User struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	Role           Role   `json:"role"`
	HierarchyLevel int    `json:"hierarchyLevel"`
}
