package ankaa

// Privilege is the access level granted by a sector. Levels are ordered;
// a sector with a higher level implies every lower one, except External,
// which grants nothing beyond itself.
type Privilege string

const (
	PrivilegeExternal       Privilege = "EXTERNAL"
	PrivilegeBasic          Privilege = "BASIC"
	PrivilegeMaintenance    Privilege = "MAINTENANCE"
	PrivilegeWarehouse      Privilege = "WAREHOUSE"
	PrivilegeProduction     Privilege = "PRODUCTION"
	PrivilegeLeader         Privilege = "LEADER"
	PrivilegeHumanResources Privilege = "HUMAN_RESOURCES"
	PrivilegeFinancial      Privilege = "FINANCIAL"
	PrivilegeAdmin          Privilege = "ADMIN"
)

var privilegeRank = map[Privilege]int{
	PrivilegeExternal:       0,
	PrivilegeBasic:          1,
	PrivilegeMaintenance:    2,
	PrivilegeWarehouse:      3,
	PrivilegeProduction:     4,
	PrivilegeLeader:         5,
	PrivilegeHumanResources: 6,
	PrivilegeFinancial:      7,
	PrivilegeAdmin:          8,
)

// Valid reports whether p is a known privilege level.
func (p Privilege) Valid() bool {
	_, ok := privilegeRank[p]
	return ok
}

// AtLeast reports whether p grants at least the required level. Unknown
// levels grant nothing.
func (p Privilege) AtLeast(required Privilege) bool {
	rank, ok := privilegeRank[p]
	if !ok {
		return false
	}
	requiredRank, ok := privilegeRank[required]
	if !ok {
		return false
	}
	if p == PrivilegeExternal {
		return required == PrivilegeExternal
	}
	return rank >= requiredRank
}

// HasPrivilege reports whether the user's sector grants the required
// level. Users without a sector have no privileges.
func (u User) HasPrivilege(required Privilege) bool {
	if u.Sector == nil {
		return false
	}
	return u.Sector.Privileges.AtLeast(required)
}

// CanManageSector reports whether the user may administer the given
// sector: admins manage every sector, leaders only their own.
func (u User) CanManageSector(sectorID string) bool {
	if u.HasPrivilege(PrivilegeAdmin) {
		return true
	}
	if !u.HasPrivilege(PrivilegeLeader) {
		return false
	}
	return u.SectorID != nil && *u.SectorID == sectorID
}
