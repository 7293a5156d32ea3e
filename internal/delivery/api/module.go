package api

import (
	apimiddleware "minex/internal/delivery/api/middleware"
	"minex/internal/delivery/api/router/handler"

	"go.uber.org/fx"
)

// Module provides the API middleware and handlers. The server itself is provided by the caller
// so it can be tagged into the deliveries group.
//
//nolint:gochecknoglobals
var Module = fx.Options(
	fx.Provide(
		apimiddleware.NewSessionMiddleware,
		handler.NewIdentityHandler,
		handler.NewSocialHandler,
		handler.NewPostHandler,
		handler.NewChatHandler,
		handler.NewGroupHandler,
		handler.NewMarketplaceHandler,
		handler.NewNotificationHandler,
		handler.NewAdminHandler,
	),
)
