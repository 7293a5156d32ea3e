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
	"minex/internal/validation"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// groupService implements the GroupUsecase interface.
type groupService struct {
	txManager repository.TransactionManager
	groupRepo repository.GroupRepository
	postRepo  repository.PostRepository
	sanitizer service.TextSanitizer
	metrics   service.MetricsRecorder
	logger    *slog.Logger
}

// GroupServiceParams holds dependencies for GroupService, injected by Fx.
type GroupServiceParams struct {
	fx.In

	TxManager repository.TransactionManager
	GroupRepo repository.GroupRepository
	PostRepo  repository.PostRepository
	Sanitizer service.TextSanitizer
	Metrics   service.MetricsRecorder `optional:"true"`
	Logger    *slog.Logger
}

// NewGroupService is the constructor for groupService.
func NewGroupService(params GroupServiceParams) usecase.GroupUsecase {
	return &groupService{
		txManager: params.TxManager,
		groupRepo: params.GroupRepo,
		postRepo:  params.PostRepo,
		sanitizer: params.Sanitizer,
		metrics:   params.Metrics,
		logger:    params.Logger,
	}
}

func (srv *groupService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// CreateGroup requires a session; the creator becomes the only member.
func (srv *groupService) CreateGroup(ctx context.Context, input *usecase.CreateGroupInput) (group *entity.Group, err error) {
	defer recordOf(srv.metrics, constants.OpCreateGroup, &err)()

	if input == nil {
		return nil, domainerrors.ErrValidationFailed.WithDetails("input is required")
	}
	input.Name = clean(srv.sanitizer, input.Name)
	input.Description = clean(srv.sanitizer, input.Description)
	if err := validation.Struct(input); err != nil {
		return nil, err
	}

	err = srv.txManager.Execute(ctx, func(f repository.RepositoryFactory) error {
		actor, err := actorIn(ctx, f)
		if err != nil {
			return err
		}

		group = &entity.Group{
			ID:          uuid.New(),
			Name:        input.Name,
			Description: input.Description,
			Members:     []uuid.UUID{actor.ID},
			CreatedAt:   time.Now(),
		}

		return errors.Wrap(f.GroupRepo().Create(ctx, group), "failed to create group")
	})
	if err != nil {
		return nil, logFailure(srv.log(ctx), "create group", err)
	}

	srv.log(ctx).Debug("Group created", slog.Any("groupID", group.ID))

	return group, nil
}

// JoinGroup adds the actor to the members when absent.
func (srv *groupService) JoinGroup(ctx context.Context, groupID uuid.UUID) (group *entity.Group, err error) {
	defer recordOf(srv.metrics, constants.OpJoinGroup, &err)()

	err = srv.txManager.Execute(ctx, func(f repository.RepositoryFactory) error {
		actor, err := actorIn(ctx, f)
		if err != nil {
			return err
		}

		group, err = f.GroupRepo().FindByID(ctx, groupID)
		if errors.Is(err, repository.ErrGroupNotFound) {
			return domainerrors.ErrGroupNotFound.WithDetails(groupID.String())
		}
		if err != nil {
			return errors.Wrap(err, "failed to find group")
		}

		if !group.AddMember(actor.ID) {
			return nil
		}

		return errors.Wrap(f.GroupRepo().Update(ctx, group), "failed to update group")
	})
	if err != nil {
		return nil, logFailure(srv.log(ctx), "join group", err)
	}

	return group, nil
}

func (srv *groupService) ListGroups(ctx context.Context) ([]*entity.Group, error) {
	groups, err := srv.groupRepo.List(ctx)

	return groups, errors.Wrap(err, "failed to list groups")
}

// GroupFeed returns the posts shared to the group, most recent first.
func (srv *groupService) GroupFeed(ctx context.Context, groupID uuid.UUID) ([]*entity.Post, error) {
	if _, err := srv.groupRepo.FindByID(ctx, groupID); err != nil {
		if errors.Is(err, repository.ErrGroupNotFound) {
			return nil, domainerrors.ErrGroupNotFound.WithDetails(groupID.String())
		}

		return nil, errors.Wrap(err, "failed to find group")
	}

	posts, err := srv.postRepo.ListByGroup(ctx, groupID)

	return posts, errors.Wrap(err, "failed to list group posts")
}
