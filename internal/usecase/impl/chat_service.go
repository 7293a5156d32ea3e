package impl

import (
	"context"
	"log/slog"
	"time"

	deliverycontext "minex/internal/delivery/context"
	"minex/internal/domain/constants"
	"minex/internal/domain/entity"
	domainerrors "minex/internal/domain/errors"
	"minex/internal/domain/repository"
	"minex/internal/domain/service"
	"minex/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// chatService implements the ChatUsecase interface.
type chatService struct {
	txManager   repository.TransactionManager
	chatRepo    repository.ChatRepository
	userRepo    repository.UserRepository
	sessionRepo repository.SessionRepository
	sanitizer   service.TextSanitizer
	metrics     service.MetricsRecorder
	logger      *slog.Logger
}

// ChatServiceParams holds dependencies for ChatService, injected by Fx.
type ChatServiceParams struct {
	fx.In

	TxManager   repository.TransactionManager
	ChatRepo    repository.ChatRepository
	UserRepo    repository.UserRepository
	SessionRepo repository.SessionRepository
	Sanitizer   service.TextSanitizer
	Metrics     service.MetricsRecorder `optional:"true"`
	Logger      *slog.Logger
}

// NewChatService is the constructor for chatService.
func NewChatService(params ChatServiceParams) usecase.ChatUsecase {
	return &chatService{
		txManager:   params.TxManager,
		chatRepo:    params.ChatRepo,
		userRepo:    params.UserRepo,
		sessionRepo: params.SessionRepo,
		sanitizer:   params.Sanitizer,
		metrics:     params.Metrics,
		logger:      params.Logger,
	}
}

func (srv *chatService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// OpenOrCreateChat never creates a second chat for the same unordered pair.
func (srv *chatService) OpenOrCreateChat(ctx context.Context, otherUserID uuid.UUID) (chat *entity.Chat, err error) {
	defer recordOf(srv.metrics, constants.OpOpenChat, &err)()

	err = srv.txManager.Execute(ctx, func(f repository.RepositoryFactory) error {
		actor, err := actorIn(ctx, f)
		if err != nil {
			return err
		}
		if actor.ID == otherUserID {
			return domainerrors.ErrSelfReference.WithDetails("cannot chat with yourself")
		}
		if _, err := f.UserRepo().FindByID(ctx, otherUserID); err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return domainerrors.ErrUserNotFound.WithDetails(otherUserID.String())
			}

			return errors.Wrap(err, "failed to find chat counterpart")
		}

		existing, err := f.ChatRepo().FindByPair(ctx, actor.ID, otherUserID)
		if err == nil {
			chat = existing

			return nil
		}
		if !errors.Is(err, repository.ErrChatNotFound) {
			return errors.Wrap(err, "failed to find chat by pair")
		}

		chat = &entity.Chat{
			ID:        uuid.New(),
			UserA:     actor.ID,
			UserB:     otherUserID,
			Messages:  []entity.Message{},
			CreatedAt: time.Now(),
		}

		return errors.Wrap(f.ChatRepo().Create(ctx, chat), "failed to create chat")
	})
	if err != nil {
		return nil, logFailure(srv.log(ctx), "open chat", err)
	}

	return chat, nil
}

// SendMessage prepends a message from the actor.
func (srv *chatService) SendMessage(ctx context.Context, chatID uuid.UUID, body string) (chat *entity.Chat, err error) {
	defer recordOf(srv.metrics, constants.OpSendMessage, &err)()

	body = clean(srv.sanitizer, body)
	err = srv.txManager.Execute(ctx, func(f repository.RepositoryFactory) error {
		actor, err := actorIn(ctx, f)
		if err != nil {
			return err
		}
		if body == "" {
			return domainerrors.ErrValidationFailed.WithDetails("body: field is required")
		}

		chat, err = f.ChatRepo().FindByID(ctx, chatID)
		if errors.Is(err, repository.ErrChatNotFound) {
			return domainerrors.ErrChatNotFound.WithDetails(chatID.String())
		}
		if err != nil {
			return errors.Wrap(err, "failed to find chat")
		}
		if !chat.Involves(actor.ID) {
			return domainerrors.ErrForbidden.WithDetails("not a participant of this chat")
		}

		message := entity.Message{SenderID: actor.ID, Body: body, CreatedAt: time.Now()}
		chat.Messages = append([]entity.Message{message}, chat.Messages...)

		return errors.Wrap(f.ChatRepo().Update(ctx, chat), "failed to update chat")
	})
	if err != nil {
		return nil, logFailure(srv.log(ctx), "send message", err)
	}

	return chat, nil
}

func (srv *chatService) ListChats(ctx context.Context) ([]*entity.Chat, error) {
	actor, err := resolveActor(ctx, srv.sessionRepo, srv.userRepo)
	if err != nil {
		return nil, err
	}

	chats, err := srv.chatRepo.ListForUser(ctx, actor.ID)

	return chats, errors.Wrap(err, "failed to list chats")
}

// GetChat is restricted to the chat's participants.
func (srv *chatService) GetChat(ctx context.Context, chatID uuid.UUID) (*entity.Chat, error) {
	actor, err := resolveActor(ctx, srv.sessionRepo, srv.userRepo)
	if err != nil {
		return nil, err
	}

	chat, err := srv.chatRepo.FindByID(ctx, chatID)
	if errors.Is(err, repository.ErrChatNotFound) {
		return nil, domainerrors.ErrChatNotFound.WithDetails(chatID.String())
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find chat")
	}
	if !chat.Involves(actor.ID) {
		return nil, domainerrors.ErrForbidden.WithDetails("not a participant of this chat")
	}

	return chat, nil
}
