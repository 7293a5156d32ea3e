package middleware

import (
	"log/slog"
	"strings"

	"minex/internal/delivery/api/response"
	deliverycontext "minex/internal/delivery/context"
	"minex/internal/domain/entity"
	domainerrors "minex/internal/domain/errors"
	"minex/internal/usecase"

	"github.com/labstack/echo/v4"
)

// SessionMiddleware checks the bearer token against the active session.
type SessionMiddleware struct {
	identity usecase.IdentityUsecase
	logger   *slog.Logger
}

// NewSessionMiddleware is the constructor for SessionMiddleware.
func NewSessionMiddleware(identity usecase.IdentityUsecase, logger *slog.Logger) *SessionMiddleware {
	return &SessionMiddleware{identity: identity, logger: logger}
}

// Authenticate rejects requests without a token bound to the active session
// and stores the signed-in user on the echo context.
func (m *SessionMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token, ok := bearerToken(c)
		if !ok {
			return response.Unauthorized(c, domainerrors.ErrUnauthenticated.ErrorCode(), domainerrors.ErrUnauthenticated.Message())
		}

		ctx := c.Request().Context()
		user, err := m.identity.ResolveSession(ctx, token)
		if err != nil {
			deliverycontext.GetLoggerOrDefault(ctx, m.logger).Debug("Rejected session token", slog.Any("error", err))

			return response.HandleAppError(c, err)
		}

		deliverycontext.SetUser(c, user)

		return next(c)
	}
}

// RequireRole only lets the given role through. It must be used after Authenticate.
func (m *SessionMiddleware) RequireRole(role entity.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, ok := CurrentUser(c)
			if !ok || user.Role != role {
				return response.Forbidden(c, domainerrors.ErrForbidden.ErrorCode(), "Permission denied: require '"+role.String()+"' role")
			}

			return next(c)
		}
	}
}

// CurrentUser returns the user stored by Authenticate.
func CurrentUser(c echo.Context) (*entity.User, bool) {
	return deliverycontext.GetUser(c)
}

func bearerToken(c echo.Context) (string, bool) {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	token, found := strings.CutPrefix(header, "Bearer ")
	token = strings.TrimSpace(token)

	return token, found && token != ""
}
