package repository

import "context"

// TransactionManager defines the interface for applying a unit of work atomically.
// This allows the use case layer to group mutations without depending on a specific store.
type TransactionManager interface {
	// Execute runs a function within a transaction.
	// If the function returns an error, every change made through the factory is discarded. Otherwise, it's committed.
	// Writers are serialised, so reads made through the factory observe a stable snapshot.
	Execute(ctx context.Context, fn func(txRepoFactory RepositoryFactory) error) error
}

// RepositoryFactory provides repository instances that are bound to a specific transaction.
type RepositoryFactory interface {
	UserRepo() UserRepository
	CredentialRepo() CredentialRepository
	PostRepo() PostRepository
	ChatRepo() ChatRepository
	GroupRepo() GroupRepository
	MineralRepo() MineralRepository
	NotificationRepo() NotificationRepository
	SessionRepo() SessionRepository
}
