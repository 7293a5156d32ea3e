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

// socialService implements the SocialUsecase interface.
type socialService struct {
	txManager   repository.TransactionManager
	userRepo    repository.UserRepository
	postRepo    repository.PostRepository
	sessionRepo repository.SessionRepository
	qrCode      service.QRCodeService
	metrics     service.MetricsRecorder
	logger      *slog.Logger
}

// SocialServiceParams holds dependencies for SocialService, injected by Fx.
type SocialServiceParams struct {
	fx.In

	TxManager   repository.TransactionManager
	UserRepo    repository.UserRepository
	PostRepo    repository.PostRepository
	SessionRepo repository.SessionRepository
	QRCode      service.QRCodeService
	Metrics     service.MetricsRecorder `optional:"true"`
	Logger      *slog.Logger
}

// NewSocialService is the constructor for socialService.
func NewSocialService(params SocialServiceParams) usecase.SocialUsecase {
	return &socialService{
		txManager:   params.TxManager,
		userRepo:    params.UserRepo,
		postRepo:    params.PostRepo,
		sessionRepo: params.SessionRepo,
		qrCode:      params.QRCode,
		metrics:     params.Metrics,
		logger:      params.Logger,
	}
}

func (srv *socialService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// ToggleFollow flips the target in the actor's following set.
func (srv *socialService) ToggleFollow(ctx context.Context, targetUserID uuid.UUID) (following bool, err error) {
	defer recordOf(srv.metrics, constants.OpToggleFollow, &err)()

	err = srv.txManager.Execute(ctx, func(f repository.RepositoryFactory) error {
		var err error
		following, err = srv.follow(ctx, f, targetUserID, true)

		return err
	})
	if err != nil {
		return false, logFailure(srv.log(ctx), "toggle follow", err)
	}

	srv.log(ctx).Debug("Follow toggled", slog.Any("targetID", targetUserID), slog.Bool("following", following))

	return following, nil
}

// follow updates the actor's following set. With toggle unset an existing follow is kept.
func (srv *socialService) follow(ctx context.Context, f repository.RepositoryFactory, targetID uuid.UUID, toggle bool) (bool, error) {
	actor, err := actorIn(ctx, f)
	if err != nil {
		return false, err
	}
	if actor.ID == targetID {
		return false, domainerrors.ErrSelfReference.WithDetails("cannot follow yourself")
	}
	if _, err := f.UserRepo().FindByID(ctx, targetID); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return false, domainerrors.ErrUserNotFound.WithDetails(targetID.String())
		}

		return false, errors.Wrap(err, "failed to find target user")
	}

	if !toggle && actor.Follows(targetID) {
		return true, nil
	}

	following := actor.ToggleFollow(targetID)
	actor.UpdatedAt = time.Now()
	if err := f.UserRepo().Update(ctx, actor); err != nil {
		return false, errors.Wrap(err, "failed to update following")
	}

	return following, nil
}

// FollowByLink resolves a scanned follow link and follows its user.
func (srv *socialService) FollowByLink(ctx context.Context, link string) (target *entity.User, err error) {
	defer recordOf(srv.metrics, constants.OpToggleFollow, &err)()

	targetID, err := srv.qrCode.ParseFollowQR(link)
	if err != nil {
		srv.log(ctx).Warn("Unreadable follow link", slog.String("link", link), slog.Any("error", err))

		return nil, domainerrors.ErrValidationFailed.WithDetails("link: not a follow link")
	}

	err = srv.txManager.Execute(ctx, func(f repository.RepositoryFactory) error {
		if _, err := srv.follow(ctx, f, targetID, false); err != nil {
			return err
		}
		reloaded, err := f.UserRepo().FindByID(ctx, targetID)
		if err != nil {
			return errors.Wrap(err, "failed to reload target user")
		}
		target = reloaded

		return nil
	})
	if err != nil {
		return nil, logFailure(srv.log(ctx), "follow by link", err)
	}

	return target, nil
}

// GetProfile assembles a member page. Anonymous viewers are allowed.
func (srv *socialService) GetProfile(ctx context.Context, userID uuid.UUID) (*usecase.ProfileOutput, error) {
	user, err := srv.findUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	posts, err := srv.postRepo.ListByAuthor(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list posts by author")
	}
	followers, err := srv.userRepo.FindFollowers(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find followers")
	}
	viewer, err := optionalViewer(ctx, srv.sessionRepo, srv.userRepo)
	if err != nil {
		return nil, err
	}

	return &usecase.ProfileOutput{
		User:             user,
		Posts:            posts,
		FollowerCount:    len(followers),
		FollowedByViewer: viewer != nil && viewer.Follows(userID),
	}, nil
}

func (srv *socialService) ListUsers(ctx context.Context) ([]*entity.User, error) {
	users, err := srv.userRepo.List(ctx)

	return users, errors.Wrap(err, "failed to list users")
}

func (srv *socialService) ListStories(ctx context.Context, userID uuid.UUID) ([]entity.Story, error) {
	user, err := srv.findUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	return user.Stories, nil
}

func (srv *socialService) FollowQRCode(ctx context.Context, userID uuid.UUID) ([]byte, error) {
	if _, err := srv.findUser(ctx, userID); err != nil {
		return nil, err
	}

	png, err := srv.qrCode.GenerateFollowQR(userID)
	if err != nil {
		srv.log(ctx).Error("Failed to generate follow QR code", slog.Any("userID", userID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to generate follow QR code")
	}

	return png, nil
}

func (srv *socialService) findUser(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	user, err := srv.userRepo.FindByID(ctx, userID)
	if errors.Is(err, repository.ErrUserNotFound) {
		return nil, domainerrors.ErrUserNotFound.WithDetails(userID.String())
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find user")
	}

	return user, nil
}
