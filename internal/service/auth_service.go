package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/emberworks/studio-portal/internal/auth"
	"github.com/emberworks/studio-portal/internal/config"
	"github.com/emberworks/studio-portal/internal/domain"
	"github.com/emberworks/studio-portal/internal/repository"
	apperrors "github.com/emberworks/studio-portal/pkg/util"
)

const minPasswordLength = 8

// AuthService coordinates registration and session issuance.
type AuthService struct {
	users      repository.UserRepository
	roles      repository.RoleRepository
	perms      repository.PermissionRepository
	tokenMgr   *auth.TokenManager
	throttle   *LoginThrottle
	bcryptCost int
	logger     *zap.Logger
}

// AuthDependencies encapsulates collaborator requirements for auth service.
type AuthDependencies struct {
	UserRepo       repository.UserRepository
	RoleRepo       repository.RoleRepository
	PermissionRepo repository.PermissionRepository
	Throttle       *LoginThrottle
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, deps AuthDependencies, logger *zap.Logger) *AuthService {
	return &AuthService{
		users:      deps.UserRepo,
		roles:      deps.RoleRepo,
		perms:      deps.PermissionRepo,
		tokenMgr:   auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.SessionTTL()),
		throttle:   deps.Throttle,
		bcryptCost: cfg.Auth.BcryptCost,
		logger:     logger,
	}
}

// TokenManager exposes the underlying token manager for gate wiring.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

// Login verifies credentials and issues a session token carrying a snapshot
// of the user's role and permission names. Unknown email, wrong password and
// a missing or malformed stored hash all yield the same InvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password, clientIP string) (*domain.User, string, time.Time, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, "", time.Time{}, apperrors.NewValidationError("email and password are required", nil)
	}

	if err := s.throttle.Allow(ctx, email, clientIP); err != nil {
		return nil, "", time.Time{}, err
	}

	user, err := s.users.GetByEmail(ctx, email)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, "", time.Time{}, apperrors.NewInvalidCredentials()
	}
	if err != nil {
		// fail closed: an unreachable credential store never authenticates
		return nil, "", time.Time{}, apperrors.NewUpstreamUnavailable("credential store", err)
	}

	if user.PasswordHash == "" {
		return nil, "", time.Time{}, apperrors.NewInvalidCredentials()
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		// a malformed stored hash lands here too, indistinguishably
		return nil, "", time.Time{}, apperrors.NewInvalidCredentials()
	}

	roleName, permissions := s.resolveGrants(ctx, user)

	token, expiresAt, err := s.tokenMgr.Generate(user.ID, roleName, permissions)
	if err != nil {
		return nil, "", time.Time{}, apperrors.NewInternalError(err)
	}

	s.throttle.Reset(ctx, email, clientIP)
	return user, token, expiresAt, nil
}

// resolveGrants resolves the role name and permission names snapshotted into
// the token. A missing or invalid role reference does not fail the login;
// it downgrades to the default role with no permissions. Any fault in the
// permission lookup likewise degrades to an empty list.
func (s *AuthService) resolveGrants(ctx context.Context, user *domain.User) (string, []string) {
	if user.RoleID == "" {
		return domain.DefaultRoleName, []string{}
	}

	role, err := s.roles.GetByID(ctx, user.RoleID)
	if err != nil {
		s.logger.Warn("role lookup failed during login; falling back to default role",
			zap.String("user_id", user.ID),
			zap.String("role_id", user.RoleID),
			zap.Error(err),
		)
		return domain.DefaultRoleName, []string{}
	}

	permissionIDs := make([]string, 0, len(role.PermissionIDs))
	for _, id := range role.PermissionIDs {
		if _, err := uuid.Parse(id); err != nil {
			// malformed references are filtered out, not fatal
			continue
		}
		permissionIDs = append(permissionIDs, id)
	}

	perms, err := s.perms.ListByIDs(ctx, permissionIDs)
	if err != nil {
		s.logger.Warn("permission lookup failed during login; issuing token without permissions",
			zap.String("user_id", user.ID),
			zap.String("role", role.Name),
			zap.Error(err),
		)
		return role.Name, []string{}
	}

	names := make([]string, 0, len(perms))
	for _, perm := range perms {
		names = append(names, perm.Name)
	}
	return role.Name, names
}

// Register creates a new account with the default role.
func (s *AuthService) Register(ctx context.Context, email, password string) (*domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, apperrors.NewValidationError("a valid email is required", nil)
	}
	if len(password) < minPasswordLength {
		return nil, apperrors.NewValidationError("password must be at least 8 characters long", nil)
	}

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, apperrors.NewConflict("user with this email already exists", nil)
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.MapError(err)
	}

	defaultRole, err := s.roles.GetByName(ctx, domain.DefaultRoleName)
	if err != nil {
		// a missing default role is a setup fault, not a caller error
		s.logger.Error("default role not found; seed the database", zap.Error(err))
		return nil, apperrors.NewInternalError(err)
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	user := &domain.User{
		Email:        email,
		PasswordHash: hash,
		RoleID:       defaultRole.ID,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, apperrors.MapError(err)
	}
	return user, nil
}
