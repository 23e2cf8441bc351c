package repository

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/balayogigmcs/labms/internal/domain"
)

// UserRepository adapts the document store to user accounts.
type UserRepository interface {
	Save(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	ListAll(ctx context.Context) ([]domain.User, error)
	Delete(ctx context.Context, id string) error
}

type userRepository struct {
	store DocumentStore
}

// NewUserRepository instantiates the repository.
func NewUserRepository(store DocumentStore) UserRepository {
	return &userRepository{store: store}
}

func (r *userRepository) Save(ctx context.Context, user *domain.User) error {
	doc, err := json.Marshal(user)
	if err != nil {
		return err
	}
	return r.store.CreateOrMerge(ctx, CollectionUsers, user.ID, doc)
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	doc, err := r.store.GetByID(ctx, CollectionUsers, id)
	if err != nil {
		return nil, err
	}
	var user domain.User
	if err := json.Unmarshal(doc, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByEmail scans the collection; the store has no secondary indexes and the
// account population is small.
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	users, err := r.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if strings.EqualFold(users[i].Email, email) {
			return &users[i], nil
		}
	}
	return nil, ErrDocumentNotFound
}

func (r *userRepository) ListAll(ctx context.Context) ([]domain.User, error) {
	docs, err := r.store.QueryAll(ctx, CollectionUsers)
	if err != nil {
		return nil, err
	}
	users := make([]domain.User, 0, len(docs))
	for _, doc := range docs {
		var user domain.User
		if err := json.Unmarshal(doc, &user); err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, nil
}

func (r *userRepository) Delete(ctx context.Context, id string) error {
	return r.store.Delete(ctx, CollectionUsers, id)
}
