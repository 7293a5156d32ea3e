// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"minex/config"
	"minex/internal/delivery/api/middleware"
	"minex/internal/delivery/api/router/handler"
	"minex/internal/domain/entity"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	IdentityHandler     *handler.IdentityHandler
	SocialHandler       *handler.SocialHandler
	PostHandler         *handler.PostHandler
	ChatHandler         *handler.ChatHandler
	GroupHandler        *handler.GroupHandler
	MarketplaceHandler  *handler.MarketplaceHandler
	NotificationHandler *handler.NotificationHandler
	AdminHandler        *handler.AdminHandler
	SessionMiddleware   *middleware.SessionMiddleware
	Config              *config.Config
}

// router holds all the handlers that need to be registered.
type router struct {
	identityHandler     *handler.IdentityHandler
	socialHandler       *handler.SocialHandler
	postHandler         *handler.PostHandler
	chatHandler         *handler.ChatHandler
	groupHandler        *handler.GroupHandler
	marketplaceHandler  *handler.MarketplaceHandler
	notificationHandler *handler.NotificationHandler
	adminHandler        *handler.AdminHandler
	sessionMiddleware   *middleware.SessionMiddleware
	config              *config.Config
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		identityHandler:     params.IdentityHandler,
		socialHandler:       params.SocialHandler,
		postHandler:         params.PostHandler,
		chatHandler:         params.ChatHandler,
		groupHandler:        params.GroupHandler,
		marketplaceHandler:  params.MarketplaceHandler,
		notificationHandler: params.NotificationHandler,
		adminHandler:        params.AdminHandler,
		sessionMiddleware:   params.SessionMiddleware,
		config:              params.Config,
	}
}

// RegisterRoutes sets up all the API routes for the application.
// Reads are public; anything acting as the signed-in member needs the session token.
func (r *router) RegisterRoutes(e *echo.Echo) {
	authenticate := r.sessionMiddleware.Authenticate

	e.GET("/health", handler.HealthCheck)

	var loginRate float64
	if r.config.Auth != nil {
		loginRate = r.config.Auth.LoginRateLimit
	}
	authGroup := e.Group("/auth", middleware.RateLimit(loginRate))
	{
		authGroup.POST("/register", r.identityHandler.Register)
		authGroup.POST("/login", r.identityHandler.Login)
		authGroup.POST("/logout", r.identityHandler.Logout, authenticate)
		authGroup.GET("/session", r.identityHandler.Session, authenticate)
	}

	usersGroup := e.Group("/users")
	{
		usersGroup.GET("", r.socialHandler.ListUsers)
		usersGroup.GET("/:id", r.socialHandler.GetProfile)
		usersGroup.GET("/:id/stories", r.socialHandler.ListStories)
		usersGroup.GET("/:id/qrcode", r.socialHandler.FollowQRCode)
		usersGroup.POST("/:id/follow", r.socialHandler.ToggleFollow, authenticate)
		usersGroup.POST("/follow-link", r.socialHandler.FollowByLink, authenticate)
	}

	postsGroup := e.Group("/posts")
	{
		postsGroup.GET("", r.postHandler.ListPosts)
		postsGroup.GET("/:id", r.postHandler.GetPost)
		postsGroup.POST("", r.postHandler.CreatePost, authenticate)
		postsGroup.DELETE("/:id", r.postHandler.DeletePost, authenticate)
		postsGroup.POST("/:id/like", r.postHandler.LikePost, authenticate)
		postsGroup.POST("/:id/comments", r.postHandler.AddComment, authenticate)
		postsGroup.POST("/:id/bookmark", r.postHandler.ToggleBookmark, authenticate)
	}

	meGroup := e.Group("/me", authenticate)
	{
		meGroup.GET("/bookmarks", r.postHandler.ListBookmarks)
	}

	chatsGroup := e.Group("/chats", authenticate)
	{
		chatsGroup.GET("", r.chatHandler.ListChats)
		chatsGroup.POST("", r.chatHandler.OpenChat)
		chatsGroup.GET("/:id", r.chatHandler.GetChat)
		chatsGroup.POST("/:id/messages", r.chatHandler.SendMessage)
	}

	groupsGroup := e.Group("/groups")
	{
		groupsGroup.GET("", r.groupHandler.ListGroups)
		groupsGroup.GET("/:id/posts", r.groupHandler.GroupFeed)
		groupsGroup.POST("", r.groupHandler.CreateGroup, authenticate)
		groupsGroup.POST("/:id/join", r.groupHandler.JoinGroup, authenticate)
	}

	mineralsGroup := e.Group("/minerals")
	{
		mineralsGroup.GET("", r.marketplaceHandler.ListMinerals)
		mineralsGroup.POST("", r.marketplaceHandler.ListMineral, authenticate)
	}

	notificationsGroup := e.Group("/notifications", authenticate)
	{
		notificationsGroup.GET("", r.notificationHandler.ListNotifications)
		notificationsGroup.POST("/read", r.notificationHandler.MarkAllRead)
	}

	adminGroup := e.Group("/admin", authenticate, r.sessionMiddleware.RequireRole(entity.RoleAdmin))
	{
		adminGroup.POST("/users/:id/verify", r.adminHandler.VerifyUser)
		adminGroup.POST("/users/:id/suspend", r.adminHandler.SuspendUser)
	}
}
