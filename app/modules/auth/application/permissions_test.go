package authservice

import (
	"errors"
	"testing"

	"github.com/exhuma/powonline-sub000/internal/apperrors"
)

func TestHasPermission(t *testing.T) {
	tests := []struct {
		name   string
		caller Caller
		perm   Permission
		want   bool
	}{
		{
			name:   "admin holds every permission",
			caller: Caller{Name: "root", Roles: []Role{RoleAdmin}},
			perm:   PermManagePermissions,
			want:   true,
		},
		{
			name:   "station manager can manage stations only",
			caller: Caller{Name: "sam", Roles: []Role{RoleStationManager}},
			perm:   PermManageStation,
			want:   true,
		},
		{
			name:   "station manager cannot administrate teams",
			caller: Caller{Name: "sam", Roles: []Role{RoleStationManager}},
			perm:   PermAdminTeams,
			want:   false,
		},
		{
			name:   "permissions union over roles",
			caller: Caller{Name: "pat", Roles: []Role{RoleStationManager, RoleStaff}},
			perm:   PermViewTeamContact,
			want:   true,
		},
		{
			name:   "anonymous has nothing",
			caller: Anonymous,
			perm:   PermManageStation,
			want:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.caller.HasPermission(tt.perm); got != tt.want {
				t.Errorf("HasPermission(%s) = %v, want %v", tt.perm, got, tt.want)
			}
		})
	}
}

func TestRequirePermission(t *testing.T) {
	err := RequirePermission(Anonymous, PermViewAuditLog)
	var denied *apperrors.AccessDeniedError
	if !errors.As(err, &denied) {
		t.Fatalf("expected AccessDeniedError, got %v", err)
	}
	if denied.Reason != apperrors.ReasonNotAuthenticated {
		t.Errorf("expected reason not_authenticated, got %q", denied.Reason)
	}

	err = RequirePermission(Caller{Name: "sam", Roles: []Role{RoleStationManager}}, PermViewAuditLog)
	if !errors.As(err, &denied) {
		t.Fatalf("expected AccessDeniedError, got %v", err)
	}
	if denied.Reason != apperrors.ReasonAccessDenied {
		t.Errorf("expected reason access_denied, got %q", denied.Reason)
	}

	if err := RequirePermission(Caller{Name: "root", Roles: []Role{RoleAdmin}}, PermViewAuditLog); err != nil {
		t.Errorf("expected admin to pass, got %v", err)
	}
}

func TestRequireStationPermission(t *testing.T) {
	manager := Caller{Name: "sam", Roles: []Role{RoleStationManager}, Stations: []string{"mid"}}

	if err := RequireStationPermission(manager, "mid"); err != nil {
		t.Errorf("expected assigned manager to pass on mid, got %v", err)
	}

	err := RequireStationPermission(manager, "start")
	var denied *apperrors.AccessDeniedError
	if !errors.As(err, &denied) {
		t.Fatalf("expected AccessDeniedError on unassigned station, got %v", err)
	}

	// admin_stations widens manage_station to every station.
	admin := Caller{Name: "root", Roles: []Role{RoleAdmin}}
	if err := RequireStationPermission(admin, "start"); err != nil {
		t.Errorf("expected admin_stations bypass, got %v", err)
	}

	if err := RequireStationPermission(Anonymous, "mid"); err == nil {
		t.Error("expected anonymous caller to be rejected")
	}
}

func TestParseRoles(t *testing.T) {
	if _, err := ParseRoles([]string{"admin", "staff"}); err != nil {
		t.Errorf("expected known roles to parse, got %v", err)
	}
	if _, err := ParseRoles([]string{"superuser"}); err == nil {
		t.Error("expected unknown role to fail")
	}
}
