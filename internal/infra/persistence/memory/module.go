package memory

import "go.uber.org/fx"

// Module provides the store, its repositories and the transaction manager.
//
//nolint:gochecknoglobals
var Module = fx.Options(
	fx.Provide(
		NewStore,
		NewTransactionManager,
		NewUserRepository,
		NewCredentialRepository,
		NewPostRepository,
		NewChatRepository,
		NewGroupRepository,
		NewMineralRepository,
		NewNotificationRepository,
		NewSessionRepository,
	),
)
