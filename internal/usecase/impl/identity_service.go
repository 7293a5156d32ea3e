package impl

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"minex/config"
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

// identityService implements the IdentityUsecase interface.
type identityService struct {
	txManager       repository.TransactionManager
	userRepo        repository.UserRepository
	credentialRepo  repository.CredentialRepository
	sessionRepo     repository.SessionRepository
	hasher          service.PasswordHasher
	tokenService    service.TokenService
	sanitizer       service.TextSanitizer
	metrics         service.MetricsRecorder
	notifier        *notifier
	verifyPasswords bool
	logger          *slog.Logger
}

// IdentityServiceParams holds dependencies for IdentityService, injected by Fx.
type IdentityServiceParams struct {
	fx.In

	TxManager      repository.TransactionManager
	UserRepo       repository.UserRepository
	CredentialRepo repository.CredentialRepository
	SessionRepo    repository.SessionRepository
	Hasher         service.PasswordHasher
	TokenService   service.TokenService
	Sanitizer      service.TextSanitizer
	Publisher      service.EventPublisher
	Metrics        service.MetricsRecorder `optional:"true"`
	Config         *config.Config
	Logger         *slog.Logger
}

// NewIdentityService is the constructor for identityService.
func NewIdentityService(params IdentityServiceParams) usecase.IdentityUsecase {
	verify := true
	if params.Config != nil && params.Config.Auth != nil {
		verify = params.Config.Auth.VerifyPasswords
	}

	return &identityService{
		txManager:       params.TxManager,
		userRepo:        params.UserRepo,
		credentialRepo:  params.CredentialRepo,
		sessionRepo:     params.SessionRepo,
		hasher:          params.Hasher,
		tokenService:    params.TokenService,
		sanitizer:       params.Sanitizer,
		metrics:         params.Metrics,
		notifier:        newNotifier(params.Publisher, params.Logger),
		verifyPasswords: verify,
		logger:          params.Logger,
	}
}

func (srv *identityService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// normalizeEmail folds case so that uniqueness is checked on the canonical form.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates an unverified account with a hashed credential.
func (srv *identityService) Register(ctx context.Context, input *usecase.RegisterInput) (user *entity.User, err error) {
	defer recordOf(srv.metrics, constants.OpRegister, &err)()

	if input == nil {
		return nil, domainerrors.ErrValidationFailed.WithDetails("input is required")
	}
	input.Email = normalizeEmail(input.Email)
	if err := validation.Struct(input); err != nil {
		srv.log(ctx).Warn("Rejected registration input", slog.String("email", input.Email), slog.Any("error", err))

		return nil, err
	}

	// Hashing is CPU bound and stays outside the unit of work.
	if err := srv.hasher.ValidatePasswordStrength(input.Password); err != nil {
		return nil, err
	}
	hash, err := srv.hasher.Hash(input.Password)
	if err != nil {
		srv.log(ctx).Error("Failed to hash password during registration", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to hash password during registration")
	}

	role := entity.Role(input.Role)
	if role == "" {
		role = entity.RoleBuyer
	}
	name := clean(srv.sanitizer, input.Name)
	if name == "" {
		name, _, _ = strings.Cut(input.Email, "@")
	}

	now := time.Now()
	newUser := &entity.User{
		ID:        uuid.New(),
		Email:     input.Email,
		Name:      name,
		Role:      role,
		Following: []uuid.UUID{},
		Bookmarks: []uuid.UUID{},
		Stories:   []entity.Story{},
		CreatedAt: now,
		UpdatedAt: now,
	}

	err = srv.txManager.Execute(ctx, func(f repository.RepositoryFactory) error {
		if err := f.UserRepo().Create(ctx, newUser); err != nil {
			if errors.Is(err, repository.ErrEmailTaken) {
				return domainerrors.ErrDuplicateEmail.WithDetails(input.Email)
			}

			return errors.Wrap(err, "failed to create user")
		}

		return errors.Wrap(f.CredentialRepo().Save(ctx, &entity.Credential{
			UserID:       newUser.ID,
			PasswordHash: hash,
			UpdatedAt:    now,
		}), "failed to store credential")
	})
	if errors.Is(err, domainerrors.ErrDuplicateEmail) {
		srv.log(ctx).Warn("Email already registered", slog.String("email", input.Email))

		return nil, err
	}
	if err != nil {
		srv.log(ctx).Error("Failed to execute registration transaction", slog.String("email", input.Email), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute registration transaction")
	}

	srv.log(ctx).Debug("Registration completed", slog.Any("userID", newUser.ID), slog.Any("role", role))

	return newUser, nil
}

// Authenticate establishes the process-wide session and welcomes the user.
func (srv *identityService) Authenticate(ctx context.Context, input *usecase.AuthenticateInput) (out *usecase.AuthenticateOutput, err error) {
	defer recordOf(srv.metrics, constants.OpAuthenticate, &err)()

	if input == nil {
		return nil, domainerrors.ErrValidationFailed.WithDetails("input is required")
	}
	input.Email = normalizeEmail(input.Email)
	if err := validation.Struct(input); err != nil {
		return nil, err
	}

	user, err := srv.userRepo.FindByEmail(ctx, input.Email)
	if errors.Is(err, repository.ErrUserNotFound) {
		srv.log(ctx).Warn("Sign in for unknown email", slog.String("email", input.Email))

		return nil, domainerrors.ErrUserNotFound.WithDetails(input.Email)
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find user by email")
	}
	if user.Suspended {
		srv.log(ctx).Warn("Sign in blocked for suspended user", slog.Any("userID", user.ID))

		return nil, errors.Wrap(domainerrors.ErrSuspended, "suspended user cannot sign in")
	}

	if srv.verifyPasswords {
		if err := srv.checkPassword(ctx, user.ID, input.Password); err != nil {
			return nil, err
		}
	}

	session := &entity.Session{ID: uuid.New(), UserID: user.ID, StartedAt: time.Now()}
	token, err := srv.tokenService.GenerateSessionToken(user.ID, session.ID, user.Role.String())
	if err != nil {
		srv.log(ctx).Error("Failed to generate session token", slog.Any("userID", user.ID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to generate session token")
	}

	var welcome *entity.Notification
	err = srv.txManager.Execute(ctx, func(f repository.RepositoryFactory) error {
		// The user may have been suspended since it was read.
		current, err := f.UserRepo().FindByID(ctx, user.ID)
		if err != nil {
			return errors.Wrap(err, "failed to reload user")
		}
		if current.Suspended {
			return errors.Wrap(domainerrors.ErrSuspended, "suspended user cannot sign in")
		}
		user = current

		if err := f.SessionRepo().Start(ctx, session); err != nil {
			return errors.Wrap(err, "failed to start session")
		}

		welcome, err = srv.notifier.stage(ctx, f.NotificationRepo(), &usecase.NotifyInput{
			UserID: user.ID,
			Kind:   entity.NotificationWelcome,
			Title:  constants.WelcomeTitle,
			Body:   fmt.Sprintf("Welcome back, %s", user.Name),
		})

		return err
	})
	if errors.Is(err, domainerrors.ErrSuspended) {
		return nil, err
	}
	if err != nil {
		srv.log(ctx).Error("Failed to execute sign in transaction", slog.Any("userID", user.ID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute sign in transaction")
	}

	srv.notifier.publish(ctx, welcome)
	srv.log(ctx).Debug("Session started", slog.Any("userID", user.ID), slog.Any("sessionID", session.ID))

	return &usecase.AuthenticateOutput{User: user, Session: session, Token: token}, nil
}

func (srv *identityService) checkPassword(ctx context.Context, userID uuid.UUID, password string) error {
	credential, err := srv.credentialRepo.FindByUserID(ctx, userID)
	if errors.Is(err, repository.ErrCredentialNotFound) {
		srv.log(ctx).Warn("User has no password credential", slog.Any("userID", userID))

		return errors.Wrap(domainerrors.ErrInvalidCredentials, "no password credential")
	}
	if err != nil {
		return errors.Wrap(err, "failed to find credential")
	}

	if !srv.hasher.Check(password, credential.PasswordHash) {
		srv.log(ctx).Warn("Password mismatch", slog.Any("userID", userID))

		return errors.Wrap(domainerrors.ErrInvalidCredentials, "password mismatch")
	}

	return nil
}

// EndSession clears the session unconditionally.
func (srv *identityService) EndSession(ctx context.Context) (err error) {
	defer recordOf(srv.metrics, constants.OpEndSession, &err)()

	if err := srv.sessionRepo.End(ctx); err != nil {
		return errors.Wrap(err, "failed to end session")
	}
	srv.log(ctx).Debug("Session ended")

	return nil
}

// CurrentUser returns the user behind the active session.
func (srv *identityService) CurrentUser(ctx context.Context) (*entity.User, error) {
	return resolveActor(ctx, srv.sessionRepo, srv.userRepo)
}

// ResolveSession accepts a token only while the session it was issued for is active.
func (srv *identityService) ResolveSession(ctx context.Context, token string) (*entity.User, error) {
	claims, err := srv.tokenService.ValidateToken(token)
	if err != nil {
		srv.log(ctx).Debug("Rejected session token", slog.Any("error", err))

		return nil, errors.Wrap(domainerrors.ErrSessionInvalid, err.Error())
	}

	session, err := srv.sessionRepo.Current(ctx)
	if errors.Is(err, repository.ErrNoActiveSession) {
		return nil, errors.Wrap(domainerrors.ErrSessionInvalid, "session has ended")
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to read session")
	}
	if session.ID != claims.SessionID || session.UserID != claims.UserID {
		return nil, errors.Wrap(domainerrors.ErrSessionInvalid, "token belongs to a replaced session")
	}

	user, err := srv.userRepo.FindByID(ctx, session.UserID)
	if errors.Is(err, repository.ErrUserNotFound) {
		return nil, errors.Wrap(domainerrors.ErrSessionInvalid, "session user no longer exists")
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to load session user")
	}

	return user, nil
}
