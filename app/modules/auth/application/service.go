package authservice

import (
	"context"
	"log/slog"

	"github.com/uptrace/bun"
	"golang.org/x/crypto/bcrypt"

	userdb "github.com/exhuma/powonline-sub000/app/modules/auth/infrastructure/repositories"
	"github.com/exhuma/powonline-sub000/internal/apperrors"
	"github.com/exhuma/powonline-sub000/internal/observability"
	"github.com/exhuma/powonline-sub000/pkg/jwt"
)

const module = "auth"

// Service is the authentication and user-administration surface.
type Service interface {
	Login(ctx context.Context, username, password string) (string, error)
	CallerFor(ctx context.Context, username string, roles []string) (Caller, error)

	CreateUser(ctx context.Context, caller Caller, username, password string, roles []string) error
	SetUserRoles(ctx context.Context, caller Caller, username string, roles []string) error
	DeleteUser(ctx context.Context, caller Caller, username string) error
	ListUsers(ctx context.Context, caller Caller) ([]userdb.User, error)
	AssignStationToUser(ctx context.Context, caller Caller, username, station string) error
	UnassignStationFromUser(ctx context.Context, caller Caller, username, station string) error
}

// AuthService implements Service.
type AuthService struct {
	db     *bun.DB
	repo   userdb.Repository
	tokens jwt.Service
	obs    observability.Observer
}

var _ Service = (*AuthService)(nil)

func NewAuthService(db *bun.DB, repo userdb.Repository, tokens jwt.Service, obs observability.Observer) *AuthService {
	return &AuthService{db: db, repo: repo, tokens: tokens, obs: obs}
}

// ParseRoles validates role names against the closed role set.
func ParseRoles(names []string) ([]Role, error) {
	roles := make([]Role, 0, len(names))
	for _, name := range names {
		role := Role(name)
		if _, ok := rolePermissions[role]; !ok {
			return nil, apperrors.NewValidation("unknown role %q", name)
		}
		roles = append(roles, role)
	}
	return roles, nil
}

// Login verifies credentials and issues a token carrying the user's roles.
// Unknown user and wrong password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	return observability.Observe(ctx, s.obs, module, "Login", func(ctx context.Context) (string, error) {
		user, err := s.repo.GetUser(ctx, s.db, username)
		if err != nil {
			if apperrors.IsNotFound(err) {
				return "", &apperrors.AccessDeniedError{Reason: apperrors.ReasonNotAuthenticated}
			}
			return "", err
		}
		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
			s.obs.Logger.WarnContext(ctx, "failed login attempt", slog.String("username", username))
			return "", &apperrors.AccessDeniedError{Reason: apperrors.ReasonNotAuthenticated}
		}
		return s.tokens.GenerateToken(user.Name, user.Roles, 0)
	})
}

// CallerFor builds the request caller from validated token claims, loading the
// user's current station assignments.
func (s *AuthService) CallerFor(ctx context.Context, username string, roleNames []string) (Caller, error) {
	roles, err := ParseRoles(roleNames)
	if err != nil {
		return Anonymous, err
	}
	stations, err := s.repo.StationsForUser(ctx, s.db, username)
	if err != nil {
		return Anonymous, err
	}
	return Caller{Name: username, Roles: roles, Stations: stations}, nil
}

func (s *AuthService) CreateUser(ctx context.Context, caller Caller, username, password string, roleNames []string) error {
	_, err := observability.Observe(ctx, s.obs, module, "CreateUser", func(ctx context.Context) (struct{}, error) {
		if err := RequirePermission(caller, PermManagePermissions); err != nil {
			return struct{}{}, err
		}
		if username == "" || password == "" {
			return struct{}{}, apperrors.NewValidation("username and password must not be empty")
		}
		if _, err := ParseRoles(roleNames); err != nil {
			return struct{}{}, err
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return struct{}{}, err
		}
		user := &userdb.User{Name: username, PasswordHash: string(hash), Roles: roleNames}
		return struct{}{}, s.repo.CreateUser(ctx, s.db, user)
	})
	return err
}

func (s *AuthService) SetUserRoles(ctx context.Context, caller Caller, username string, roleNames []string) error {
	_, err := observability.Observe(ctx, s.obs, module, "SetUserRoles", func(ctx context.Context) (struct{}, error) {
		if err := RequirePermission(caller, PermManagePermissions); err != nil {
			return struct{}{}, err
		}
		if _, err := ParseRoles(roleNames); err != nil {
			return struct{}{}, err
		}
		return struct{}{}, s.repo.SetRoles(ctx, s.db, username, roleNames)
	})
	return err
}

func (s *AuthService) DeleteUser(ctx context.Context, caller Caller, username string) error {
	_, err := observability.Observe(ctx, s.obs, module, "DeleteUser", func(ctx context.Context) (struct{}, error) {
		if err := RequirePermission(caller, PermManagePermissions); err != nil {
			return struct{}{}, err
		}
		return struct{}{}, s.repo.DeleteUser(ctx, s.db, username)
	})
	return err
}

func (s *AuthService) ListUsers(ctx context.Context, caller Caller) ([]userdb.User, error) {
	return observability.Observe(ctx, s.obs, module, "ListUsers", func(ctx context.Context) ([]userdb.User, error) {
		if err := RequirePermission(caller, PermManagePermissions); err != nil {
			return nil, err
		}
		return s.repo.ListUsers(ctx, s.db)
	})
}

func (s *AuthService) AssignStationToUser(ctx context.Context, caller Caller, username, station string) error {
	_, err := observability.Observe(ctx, s.obs, module, "AssignStationToUser", func(ctx context.Context) (struct{}, error) {
		if err := RequirePermission(caller, PermManagePermissions); err != nil {
			return struct{}{}, err
		}
		return struct{}{}, s.repo.AssignStation(ctx, s.db, username, station)
	})
	return err
}

func (s *AuthService) UnassignStationFromUser(ctx context.Context, caller Caller, username, station string) error {
	_, err := observability.Observe(ctx, s.obs, module, "UnassignStationFromUser", func(ctx context.Context) (struct{}, error) {
		if err := RequirePermission(caller, PermManagePermissions); err != nil {
			return struct{}{}, err
		}
		return struct{}{}, s.repo.UnassignStation(ctx, s.db, username, station)
	})
	return err
}
