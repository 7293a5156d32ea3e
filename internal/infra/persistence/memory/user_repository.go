package memory

import (
	"context"

	"minex/internal/domain/entity"
	"minex/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// userRepository implements repository.UserRepository over the Store.
type userRepository struct {
	acc access
}

// NewUserRepository returns a repository that locks the store per call.
func NewUserRepository(store *Store) repository.UserRepository {
	return &userRepository{acc: access{store: store}}
}

func (repo *userRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	var out *entity.User
	err := repo.acc.read(func(s *state) error {
		u, ok := s.users[id]
		if !ok {
			return repository.ErrUserNotFound
		}
		out = u.Clone()

		return nil
	})

	return out, err
}

func (repo *userRepository) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	var out *entity.User
	err := repo.acc.read(func(s *state) error {
		u := findByEmail(s, email)
		if u == nil {
			return repository.ErrUserNotFound
		}
		out = u.Clone()

		return nil
	})

	return out, err
}

func (repo *userRepository) List(_ context.Context) ([]*entity.User, error) {
	var out []*entity.User
	err := repo.acc.read(func(s *state) error {
		out = make([]*entity.User, 0, len(s.userOrder))
		for _, id := range s.userOrder {
			out = append(out, s.users[id].Clone())
		}

		return nil
	})

	return out, err
}

func (repo *userRepository) FindFollowers(_ context.Context, userID uuid.UUID) ([]*entity.User, error) {
	var out []*entity.User
	err := repo.acc.read(func(s *state) error {
		for _, id := range s.userOrder {
			if u := s.users[id]; u.Follows(userID) {
				out = append(out, u.Clone())
			}
		}

		return nil
	})

	return out, err
}

func (repo *userRepository) Create(_ context.Context, user *entity.User) error {
	if user == nil || user.ID == uuid.Nil {
		return errors.New("user with an id is required")
	}

	return repo.acc.write(func(s *state) error {
		if _, exists := s.users[user.ID]; exists {
			return errors.Errorf("user %s already exists", user.ID)
		}
		if findByEmail(s, user.Email) != nil {
			return repository.ErrEmailTaken
		}
		s.users[user.ID] = user.Clone()
		s.userOrder = prepend(s.userOrder, user.ID)

		return nil
	})
}

func (repo *userRepository) Update(_ context.Context, user *entity.User) error {
	if user == nil {
		return errors.New("user is required")
	}

	return repo.acc.write(func(s *state) error {
		current, ok := s.users[user.ID]
		if !ok {
			return repository.ErrUserNotFound
		}
		if other := findByEmail(s, user.Email); other != nil && other.ID != user.ID {
			return repository.ErrEmailTaken
		}
		updated := user.Clone()
		updated.CreatedAt = current.CreatedAt
		s.users[user.ID] = updated

		return nil
	})
}

func findByEmail(s *state, email string) *entity.User {
	for _, u := range s.users {
		if u.Email == email {
			return u
		}
	}

	return nil
}

// credentialRepository implements repository.CredentialRepository over the Store.
type credentialRepository struct {
	acc access
}

func NewCredentialRepository(store *Store) repository.CredentialRepository {
	return &credentialRepository{acc: access{store: store}}
}

func (repo *credentialRepository) FindByUserID(_ context.Context, userID uuid.UUID) (*entity.Credential, error) {
	var out *entity.Credential
	err := repo.acc.read(func(s *state) error {
		c, ok := s.credentials[userID]
		if !ok {
			return repository.ErrCredentialNotFound
		}
		cp := *c
		out = &cp

		return nil
	})

	return out, err
}

func (repo *credentialRepository) Save(_ context.Context, credential *entity.Credential) error {
	if credential == nil || credential.UserID == uuid.Nil {
		return errors.New("credential with a user id is required")
	}

	return repo.acc.write(func(s *state) error {
		if _, ok := s.users[credential.UserID]; !ok {
			return repository.ErrUserNotFound
		}
		cp := *credential
		s.credentials[credential.UserID] = &cp

		return nil
	})
}
