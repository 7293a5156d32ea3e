// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"strings"

	"minex/internal/domain/entity"
	domainerrors "minex/internal/domain/errors"
	"minex/internal/domain/repository"
	"minex/internal/domain/service"

	"github.com/pkg/errors"
)

// resolveActor returns the user behind the active session. The session only holds an ID,
// so the user record is always read fresh from the user collection.
func resolveActor(ctx context.Context, sessions repository.SessionRepository, users repository.UserRepository) (*entity.User, error) {
	session, err := sessions.Current(ctx)
	if errors.Is(err, repository.ErrNoActiveSession) {
		return nil, errors.Wrap(domainerrors.ErrUnauthenticated, "no active session")
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to read session")
	}

	user, err := users.FindByID(ctx, session.UserID)
	if errors.Is(err, repository.ErrUserNotFound) {
		return nil, errors.Wrap(domainerrors.ErrUnauthenticated, "session user no longer exists")
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to load session user")
	}

	return user, nil
}

// actorIn resolves the actor inside a unit of work.
func actorIn(ctx context.Context, f repository.RepositoryFactory) (*entity.User, error) {
	return resolveActor(ctx, f.SessionRepo(), f.UserRepo())
}

// optionalViewer is like resolveActor but treats a missing session as an anonymous viewer.
func optionalViewer(ctx context.Context, sessions repository.SessionRepository, users repository.UserRepository) (*entity.User, error) {
	viewer, err := resolveActor(ctx, sessions, users)
	if errors.Is(err, domainerrors.ErrUnauthenticated) {
		return nil, nil
	}

	return viewer, err
}

// clean trims and strips markup from user supplied text.
func clean(sanitizer service.TextSanitizer, text string) string {
	return strings.TrimSpace(sanitizer.Sanitize(text))
}

// recordOf returns a deferred metrics hook. Pass a pointer to the named error return.
func recordOf(metrics service.MetricsRecorder, operation string, errp *error) func() {
	return func() {
		if metrics != nil {
			metrics.RecordOperation(operation, *errp)
		}
	}
}

// logFailure returns domain errors unchanged after a Warn, and wraps anything else after an Error.
func logFailure(logger *slog.Logger, op string, err error) error {
	var appErr domainerrors.AppError
	if errors.As(err, &appErr) {
		logger.Warn("Operation rejected", slog.String("operation", op), slog.String("code", appErr.ErrorCode()), slog.Any("error", err))

		return err
	}

	logger.Error("Operation failed", slog.String("operation", op), slog.Any("error", err))

	return errors.Wrapf(err, "failed to %s", op)
}
