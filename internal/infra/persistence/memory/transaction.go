package memory

import (
	"context"

	"minex/internal/domain/repository"

	"github.com/pkg/errors"
)

type transactionManager struct {
	store *Store
}

// repositoryFactory hands out repositories bound to one working copy.
type repositoryFactory struct {
	acc access
}

// NewTransactionManager is the constructor for the in-memory TransactionManager.
func NewTransactionManager(store *Store) repository.TransactionManager {
	return &transactionManager{store: store}
}

// Execute holds the write lock for the whole unit of work. fn sees a private copy of the
// state; the copy becomes the live state only when fn returns nil. A panic in fn leaves
// the live state untouched and is re-raised after the lock is released.
func (tm *transactionManager) Execute(ctx context.Context, fn func(repoFactory repository.RepositoryFactory) error) error {
	if err := ctx.Err(); err != nil {
		return errors.Wrap(err, "transaction not started")
	}

	tm.store.mu.Lock()
	defer tm.store.mu.Unlock()

	work := tm.store.state.clone()
	if err := fn(&repositoryFactory{acc: access{store: tm.store, tx: work}}); err != nil {
		return err
	}

	tm.store.state = work

	return nil
}

func (f *repositoryFactory) UserRepo() repository.UserRepository {
	return &userRepository{acc: f.acc}
}

func (f *repositoryFactory) CredentialRepo() repository.CredentialRepository {
	return &credentialRepository{acc: f.acc}
}

func (f *repositoryFactory) PostRepo() repository.PostRepository {
	return &postRepository{acc: f.acc}
}

func (f *repositoryFactory) ChatRepo() repository.ChatRepository {
	return &chatRepository{acc: f.acc}
}

func (f *repositoryFactory) GroupRepo() repository.GroupRepository {
	return &groupRepository{acc: f.acc}
}

func (f *repositoryFactory) MineralRepo() repository.MineralRepository {
	return &mineralRepository{acc: f.acc}
}

func (f *repositoryFactory) NotificationRepo() repository.NotificationRepository {
	return &notificationRepository{acc: f.acc}
}

func (f *repositoryFactory) SessionRepo() repository.SessionRepository {
	return &sessionRepository{acc: f.acc}
}
