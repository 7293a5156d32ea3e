package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"minex/config"
	"minex/internal/domain/entity"
	"minex/internal/domain/service"
	"minex/internal/infra/auth"
	"minex/internal/infra/persistence/memory"
	"minex/internal/infra/qrcode"
	"minex/internal/infra/sanitize"
	mockSvc "minex/internal/mocks/service"
	"minex/internal/usecase"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestConfig(verifyPasswords bool) *config.Config {
	cfg := &config.Config{
		Auth: &config.AuthConfig{
			BcryptCost:        4,
			VerifyPasswords:   verifyPasswords,
			MinPasswordLength: 1,
			SessionTTL:        time.Hour,
		},
		Media:  &config.MediaConfig{PlaceholderImage: "https://img.test/placeholder.png"},
		QRCode: &config.QRCodeConfig{Size: 128, ErrorCorrectionLevel: "medium", BaseURL: "minex://follow"},
	}
	cfg.SecretKey.Session = "test-session-secret"

	return cfg
}

// storeFixtures wires every service over one in-memory store.
type storeFixtures struct {
	store     *memory.Store
	publisher *mockSvc.MockEventPublisher
	hasher    service.PasswordHasher

	identity      usecase.IdentityUsecase
	posts         usecase.PostUsecase
	social        usecase.SocialUsecase
	chats         usecase.ChatUsecase
	groups        usecase.GroupUsecase
	marketplace   usecase.MarketplaceUsecase
	notifications usecase.NotificationUsecase
	admin         usecase.AdminUsecase
}

func newStoreFixtures(t *testing.T, cfg *config.Config) storeFixtures {
	t.Helper()

	publisher := mockSvc.NewMockEventPublisher(t)
	publisher.EXPECT().PublishNotificationEvent(mock.Anything, mock.Anything).Return(nil).Maybe()

	return newStoreFixturesWithPublisher(t, cfg, publisher)
}

func newStoreFixturesWithPublisher(t *testing.T, cfg *config.Config, publisher *mockSvc.MockEventPublisher) storeFixtures {
	t.Helper()

	store := memory.NewStore()
	txManager := memory.NewTransactionManager(store)
	userRepo := memory.NewUserRepository(store)
	postRepo := memory.NewPostRepository(store)
	sessionRepo := memory.NewSessionRepository(store)
	notificationRepo := memory.NewNotificationRepository(store)

	hasher := auth.NewBcryptHasher(cfg)
	tokens, err := auth.NewJWTService(cfg)
	require.NoError(t, err)
	sanitizer := sanitize.NewTextSanitizer()
	logger := newDiscardLogger()

	return storeFixtures{
		store:     store,
		publisher: publisher,
		hasher:    hasher,
		identity: NewIdentityService(IdentityServiceParams{
			TxManager:      txManager,
			UserRepo:       userRepo,
			CredentialRepo: memory.NewCredentialRepository(store),
			SessionRepo:    sessionRepo,
			Hasher:         hasher,
			TokenService:   tokens,
			Sanitizer:      sanitizer,
			Publisher:      publisher,
			Config:         cfg,
			Logger:         logger,
		}),
		posts: NewPostService(PostServiceParams{
			TxManager:   txManager,
			PostRepo:    postRepo,
			UserRepo:    userRepo,
			SessionRepo: sessionRepo,
			Sanitizer:   sanitizer,
			Publisher:   publisher,
			Config:      cfg,
			Logger:      logger,
		}),
		social: NewSocialService(SocialServiceParams{
			TxManager:   txManager,
			UserRepo:    userRepo,
			PostRepo:    postRepo,
			SessionRepo: sessionRepo,
			QRCode:      qrcode.NewQRCodeService(cfg),
			Logger:      logger,
		}),
		chats: NewChatService(ChatServiceParams{
			TxManager:   txManager,
			ChatRepo:    memory.NewChatRepository(store),
			UserRepo:    userRepo,
			SessionRepo: sessionRepo,
			Sanitizer:   sanitizer,
			Logger:      logger,
		}),
		groups: NewGroupService(GroupServiceParams{
			TxManager: txManager,
			GroupRepo: memory.NewGroupRepository(store),
			PostRepo:  postRepo,
			Sanitizer: sanitizer,
			Logger:    logger,
		}),
		marketplace: NewMarketplaceService(MarketplaceServiceParams{
			TxManager:   txManager,
			MineralRepo: memory.NewMineralRepository(store),
			Sanitizer:   sanitizer,
			Logger:      logger,
		}),
		notifications: NewNotificationService(txManager, notificationRepo, publisher, nil, logger),
		admin: NewAdminService(AdminServiceParams{
			TxManager: txManager,
			Logger:    logger,
		}),
	}
}

// register creates an account and fails the test on error.
func (f storeFixtures) register(t *testing.T, name, email string, role entity.Role) *entity.User {
	t.Helper()

	user, err := f.identity.Register(context.Background(), &usecase.RegisterInput{
		Name:     name,
		Email:    email,
		Password: "pw",
		Role:     role.String(),
	})
	require.NoError(t, err)

	return user
}

// signIn authenticates with the fixture password.
func (f storeFixtures) signIn(t *testing.T, email string) *usecase.AuthenticateOutput {
	t.Helper()

	out, err := f.identity.Authenticate(context.Background(), &usecase.AuthenticateInput{Email: email, Password: "pw"})
	require.NoError(t, err)

	return out
}

// seed loads the demo community into the store.
func (f storeFixtures) seed(t *testing.T) {
	t.Helper()
	require.NoError(t, memory.Seed(context.Background(), f.store, f.hasher, "", time.Now()))
}

// signInSeed authenticates a seeded account.
func (f storeFixtures) signInSeed(t *testing.T, email string) *usecase.AuthenticateOutput {
	t.Helper()

	out, err := f.identity.Authenticate(context.Background(), &usecase.AuthenticateInput{Email: email, Password: memory.SeedPassword})
	require.NoError(t, err)

	return out
}
