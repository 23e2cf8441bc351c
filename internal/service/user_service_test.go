package service

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/balayogigmcs/labms/internal/domain"
	"github.com/balayogigmcs/labms/internal/repository"
	apperrors "github.com/balayogigmcs/labms/pkg/util"
)

type memoryUserRepository struct {
	mu   sync.Mutex
	byID map[string]domain.User
}

func newMemoryUserRepository() *memoryUserRepository {
	return &memoryUserRepository{byID: make(map[string]domain.User)}
}

func (r *memoryUserRepository) Save(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[user.ID] = *user
	return nil
}

func (r *memoryUserRepository) GetByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.byID[id]
	if !ok {
		return nil, repository.ErrDocumentNotFound
	}
	return &user, nil
}

func (r *memoryUserRepository) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.byID {
		if strings.EqualFold(user.Email, email) {
			found := user
			return &found, nil
		}
	}
	return nil, repository.ErrDocumentNotFound
}

func (r *memoryUserRepository) ListAll(_ context.Context) ([]domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.User, 0, len(r.byID))
	for _, user := range r.byID {
		out = append(out, user)
	}
	return out, nil
}

func (r *memoryUserRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return repository.ErrDocumentNotFound
	}
	delete(r.byID, id)
	return nil
}

// low cost keeps bcrypt fast in tests
const testBcryptCost = 4

func TestCreateUserGatedOnAccountManagers(t *testing.T) {
	svc := NewUserService(newMemoryUserRepository(), testBcryptCost)
	input := CreateUserInput{Email: "lab@example.com", Password: "pw", Role: domain.RoleEmployee}

	for _, role := range []domain.Role{domain.RoleClient, domain.RoleEmployee, domain.RoleFrontdesk, domain.RoleHead} {
		_, err := svc.CreateUser(context.Background(), role, input)
		assert.True(t, apperrors.HasCode(err, apperrors.CodePermissionDenied), "role %s", role)
	}

	user, err := svc.CreateUser(context.Background(), domain.RoleAdmin, input)
	require.NoError(t, err)
	assert.Equal(t, "lab@example.com", user.Email)
	assert.NotEqual(t, "pw", user.PasswordHash)
}

func TestCreateUserRejectsUnassignableRoles(t *testing.T) {
	svc := NewUserService(newMemoryUserRepository(), testBcryptCost)

	for _, role := range []domain.Role{domain.RoleHead, domain.RoleAdmin, domain.RoleAdministrator, domain.Role("intern")} {
		_, err := svc.CreateUser(context.Background(), domain.RoleAdmin, CreateUserInput{
			Email:    "x@example.com",
			Password: "pw",
			Role:     role,
		})
		assert.True(t, apperrors.HasCode(err, apperrors.CodeValidationFailed), "role %s", role)
	}
}

func TestCreateUserNormalizesEmailAndRejectsDuplicates(t *testing.T) {
	svc := NewUserService(newMemoryUserRepository(), testBcryptCost)

	user, err := svc.CreateUser(context.Background(), domain.RoleAdministrator, CreateUserInput{
		Email:    "  Lab@Example.COM ",
		Password: "pw",
		Role:     domain.RoleClient,
	})
	require.NoError(t, err)
	assert.Equal(t, "lab@example.com", user.Email)

	_, err = svc.CreateUser(context.Background(), domain.RoleAdministrator, CreateUserInput{
		Email:    "lab@example.com",
		Password: "pw2",
		Role:     domain.RoleClient,
	})
	assert.True(t, apperrors.HasCode(err, apperrors.CodeConflict))
}

func TestUpdateUserRole(t *testing.T) {
	repo := newMemoryUserRepository()
	svc := NewUserService(repo, testBcryptCost)

	user, err := svc.CreateUser(context.Background(), domain.RoleAdmin, CreateUserInput{
		Email:      "tech@example.com",
		Password:   "pw",
		Role:       domain.RoleEmployee,
		Department: domain.DepartmentMicro,
	})
	require.NoError(t, err)

	updated, err := svc.UpdateUserRole(context.Background(), domain.RoleAdmin, user.ID, domain.RoleFrontdesk, domain.DepartmentFrontdesk)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleFrontdesk, updated.Role)
	assert.Equal(t, domain.DepartmentFrontdesk, updated.Department)

	_, err = svc.UpdateUserRole(context.Background(), domain.RoleAdmin, "missing", domain.RoleClient, "")
	assert.True(t, apperrors.HasCode(err, apperrors.CodeNotFound))
}

func TestRemoveUser(t *testing.T) {
	repo := newMemoryUserRepository()
	svc := NewUserService(repo, testBcryptCost)

	user, err := svc.CreateUser(context.Background(), domain.RoleAdmin, CreateUserInput{
		Email:    "gone@example.com",
		Password: "pw",
		Role:     domain.RoleClient,
	})
	require.NoError(t, err)

	require.NoError(t, svc.RemoveUser(context.Background(), domain.RoleAdmin, user.ID))
	err = svc.RemoveUser(context.Background(), domain.RoleAdmin, user.ID)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeNotFound))
}
