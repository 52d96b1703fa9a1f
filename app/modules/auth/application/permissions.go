package authservice

import (
	"github.com/exhuma/powonline-sub000/internal/apperrors"
)

// Role is one of the closed set of user roles.
type Role string

const (
	RoleAdmin          Role = "admin"
	RoleStaff          Role = "staff"
	RoleStationManager Role = "station_manager"
)

// Permission is one of the closed set of capabilities a role grants.
type Permission string

const (
	PermAdminTeams        Permission = "admin_teams"
	PermAdminStations     Permission = "admin_stations"
	PermAdminRoutes       Permission = "admin_routes"
	PermManageStation     Permission = "manage_station"
	PermManagePermissions Permission = "manage_permissions"
	PermViewAuditLog      Permission = "view_audit_log"
	PermViewTeamContact   Permission = "view_team_contact"
	PermAdminFiles        Permission = "admin_files"
)

// rolePermissions is the static role table. Effective permissions of a caller
// are the union over their roles.
var rolePermissions = map[Role][]Permission{
	RoleAdmin: {
		PermAdminTeams,
		PermAdminStations,
		PermAdminRoutes,
		PermManageStation,
		PermManagePermissions,
		PermViewAuditLog,
		PermViewTeamContact,
		PermAdminFiles,
	},
	RoleStaff: {
		PermManageStation,
		PermViewAuditLog,
		PermViewTeamContact,
	},
	RoleStationManager: {
		PermManageStation,
	},
}

// Caller identifies an authenticated request. The zero value is the anonymous
// caller. Stations holds the caller's station assignments, loaded per request
// rather than baked into the token.
type Caller struct {
	Name     string
	Roles    []Role
	Stations []string
}

// Anonymous is the unauthenticated caller.
var Anonymous = Caller{}

func (c Caller) IsAnonymous() bool { return c.Name == "" }

// HasPermission reports whether any of the caller's roles grants p.
func (c Caller) HasPermission(p Permission) bool {
	for _, role := range c.Roles {
		for _, granted := range rolePermissions[role] {
			if granted == p {
				return true
			}
		}
	}
	return false
}

// Permissions returns the caller's effective permission set.
func (c Caller) Permissions() []Permission {
	seen := make(map[Permission]bool)
	var out []Permission
	for _, role := range c.Roles {
		for _, granted := range rolePermissions[role] {
			if !seen[granted] {
				seen[granted] = true
				out = append(out, granted)
			}
		}
	}
	return out
}

// IsAssignedTo reports whether the caller is assigned to the named station.
func (c Caller) IsAssignedTo(station string) bool {
	for _, s := range c.Stations {
		if s == station {
			return true
		}
	}
	return false
}

// RequirePermission fails with AccessDenied when the caller lacks p.
func RequirePermission(c Caller, p Permission) error {
	if c.IsAnonymous() {
		return &apperrors.AccessDeniedError{Reason: apperrors.ReasonNotAuthenticated, Permission: string(p)}
	}
	if !c.HasPermission(p) {
		return &apperrors.AccessDeniedError{Reason: apperrors.ReasonAccessDenied, Permission: string(p)}
	}
	return nil
}

// RequireStationPermission enforces station-scoped mutation: the caller needs
// manage_station and must be assigned to the station. Holding admin_stations
// bypasses the per-station assignment check.
func RequireStationPermission(c Caller, station string) error {
	if err := RequirePermission(c, PermManageStation); err != nil {
		return err
	}
	if c.HasPermission(PermAdminStations) {
		return nil
	}
	if !c.IsAssignedTo(station) {
		return &apperrors.AccessDeniedError{Reason: apperrors.ReasonAccessDenied, Permission: string(PermManageStation)}
	}
	return nil
}
