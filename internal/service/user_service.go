package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/balayogigmcs/labms/internal/auth"
	"github.com/balayogigmcs/labms/internal/domain"
	"github.com/balayogigmcs/labms/internal/repository"
	apperrors "github.com/balayogigmcs/labms/pkg/util"
)

// Roles an account manager may hand out. head is deliberately absent: it has
// no account-creation path.
var assignableRoles = map[domain.Role]struct{}{
	domain.RoleEmployee:  {},
	domain.RoleClient:    {},
	domain.RoleFrontdesk: {},
}

// UserService manages workflow accounts. All operations are restricted to
// admin/administrator callers.
type UserService struct {
	users      repository.UserRepository
	bcryptCost int
}

// NewUserService builds the service.
func NewUserService(users repository.UserRepository, bcryptCost int) *UserService {
	return &UserService{users: users, bcryptCost: bcryptCost}
}

// CreateUserInput describes account creation payload.
type CreateUserInput struct {
	Email      string
	Password   string
	Role       domain.Role
	Department domain.Department
	ClientName string
}

// CreateUser provisions an employee, client, or frontdesk account.
func (s *UserService) CreateUser(ctx context.Context, actorRole domain.Role, input CreateUserInput) (*domain.User, error) {
	if !actorRole.CanManageAccounts() {
		return nil, apperrors.NewPermissionDenied("role may not manage accounts")
	}
	if _, ok := assignableRoles[input.Role]; !ok {
		return nil, apperrors.NewValidationError("role cannot be assigned", map[string]any{"role": input.Role})
	}
	email := strings.TrimSpace(strings.ToLower(input.Email))
	if email == "" || input.Password == "" {
		return nil, apperrors.NewValidationError("email and password required", nil)
	}
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, apperrors.NewConflict("email already registered", nil)
	} else if !errors.Is(err, repository.ErrDocumentNotFound) {
		return nil, err
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	user := &domain.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
		Role:         input.Role,
		Department:   input.Department,
		ClientName:   input.ClientName,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.users.Save(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// ListUsers returns all accounts.
func (s *UserService) ListUsers(ctx context.Context, actorRole domain.Role) ([]domain.User, error) {
	if !actorRole.CanManageAccounts() {
		return nil, apperrors.NewPermissionDenied("role may not manage accounts")
	}
	return s.users.ListAll(ctx)
}

// UpdateUserRole reassigns a user's role and department.
func (s *UserService) UpdateUserRole(ctx context.Context, actorRole domain.Role, userID string, newRole domain.Role, newDepartment domain.Department) (*domain.User, error) {
	if !actorRole.CanManageAccounts() {
		return nil, apperrors.NewPermissionDenied("role may not manage accounts")
	}
	if _, ok := assignableRoles[newRole]; !ok {
		return nil, apperrors.NewValidationError("role cannot be assigned", map[string]any{"role": newRole})
	}
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrDocumentNotFound) {
			return nil, apperrors.NewNotFound("user", map[string]any{"id": userID})
		}
		return nil, err
	}
	user.Role = newRole
	user.Department = newDepartment
	user.UpdatedAt = time.Now()
	if err := s.users.Save(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// RemoveUser deletes an account.
func (s *UserService) RemoveUser(ctx context.Context, actorRole domain.Role, userID string) error {
	if !actorRole.CanManageAccounts() {
		return apperrors.NewPermissionDenied("role may not manage accounts")
	}
	if err := s.users.Delete(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrDocumentNotFound) {
			return apperrors.NewNotFound("user", map[string]any{"id": userID})
		}
		return err
	}
	return nil
}
