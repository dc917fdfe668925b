package service

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/emberworks/studio-portal/internal/auth"
	"github.com/emberworks/studio-portal/internal/domain"
	"github.com/emberworks/studio-portal/internal/repository"
	apperrors "github.com/emberworks/studio-portal/pkg/util"
)

// UserService covers the administrative account surface.
type UserService struct {
	users      repository.UserRepository
	roles      repository.RoleRepository
	auditor    AuditRecorder
	bcryptCost int
}

// NewUserService builds the service.
func NewUserService(users repository.UserRepository, roles repository.RoleRepository, auditor AuditRecorder, bcryptCost int) *UserService {
	return &UserService{users: users, roles: roles, auditor: auditor, bcryptCost: bcryptCost}
}

// List returns all accounts with role names resolved, password hashes omitted.
func (s *UserService) List(ctx context.Context) ([]repository.UserWithRole, error) {
	out, err := s.users.ListWithRoles(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return out, nil
}

// Create provisions an account with an explicit role. The action is audited
// after the write commits.
func (s *UserService) Create(ctx context.Context, actorID, email, password, roleID string) (*domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" || roleID == "" {
		return nil, apperrors.NewValidationError("email, password and role are required", nil)
	}

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, apperrors.NewConflict("user with this email already exists", nil)
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.MapError(err)
	}

	role, err := s.roles.GetByID(ctx, roleID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NewValidationError("invalid role specified", nil)
	}
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	user := &domain.User{
		Email:        email,
		PasswordHash: hash,
		RoleID:       role.ID,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.auditor.Record(ctx, actorID, domain.AuditCreateUser, map[string]any{
		"createdEmail": email,
		"assignedRole": role.Name,
	}, user.ID)
	return user, nil
}
