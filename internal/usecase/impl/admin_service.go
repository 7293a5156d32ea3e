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

// adminService implements the AdminUsecase interface.
type adminService struct {
	txManager repository.TransactionManager
	metrics   service.MetricsRecorder
	logger    *slog.Logger
}

// AdminServiceParams holds dependencies for AdminService, injected by Fx.
type AdminServiceParams struct {
	fx.In

	TxManager repository.TransactionManager
	Metrics   service.MetricsRecorder `optional:"true"`
	Logger    *slog.Logger
}

// NewAdminService is the constructor for adminService.
func NewAdminService(params AdminServiceParams) usecase.AdminUsecase {
	return &adminService{
		txManager: params.TxManager,
		metrics:   params.Metrics,
		logger:    params.Logger,
	}
}

func (srv *adminService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

func (srv *adminService) VerifyUser(ctx context.Context, userID uuid.UUID) (user *entity.User, err error) {
	defer recordOf(srv.metrics, constants.OpVerifyUser, &err)()

	user, err = srv.moderate(ctx, "verify user", userID, func(target *entity.User) error {
		target.Verified = true

		return nil
	})

	return user, err
}

// SuspendUser blocks future sign-ins. The active session always belongs to the admin
// actor, who cannot target themselves, so no session needs ending.
func (srv *adminService) SuspendUser(ctx context.Context, userID uuid.UUID) (user *entity.User, err error) {
	defer recordOf(srv.metrics, constants.OpSuspendUser, &err)()

	user, err = srv.moderate(ctx, "suspend user", userID, func(target *entity.User) error {
		target.Suspended = true

		return nil
	})

	return user, err
}

// moderate loads the target for an admin actor, applies change and stores the result.
func (srv *adminService) moderate(
	ctx context.Context,
	op string,
	userID uuid.UUID,
	change func(target *entity.User) error,
) (*entity.User, error) {
	var target *entity.User
	err := srv.txManager.Execute(ctx, func(f repository.RepositoryFactory) error {
		actor, err := actorIn(ctx, f)
		if err != nil {
			return err
		}
		if actor.Role != entity.RoleAdmin {
			return domainerrors.ErrForbidden.WithDetails("admin role required")
		}
		if actor.ID == userID {
			return domainerrors.ErrSelfReference.WithDetails("cannot moderate your own account")
		}

		target, err = f.UserRepo().FindByID(ctx, userID)
		if errors.Is(err, repository.ErrUserNotFound) {
			return domainerrors.ErrUserNotFound.WithDetails(userID.String())
		}
		if err != nil {
			return errors.Wrap(err, "failed to find user")
		}

		if err := change(target); err != nil {
			return err
		}
		target.UpdatedAt = time.Now()

		return errors.Wrap(f.UserRepo().Update(ctx, target), "failed to update user")
	})
	if err != nil {
		return nil, logFailure(srv.log(ctx), op, err)
	}

	srv.log(ctx).Info("Moderation applied", slog.String("operation", op), slog.Any("userID", userID))

	return target, nil
}
