// Package constants holds values shared across layers.
package constants

// EnvLocal is the env.env value of a developer machine.
const EnvLocal = "local"

const (
	PubSubProviderLocal  = "local"
	PubSubProviderGoogle = "google"
	PubSubProviderNoop   = "noop"
)

// Operation names recorded by the metrics recorder.
const (
	OpRegister       = "register"
	OpAuthenticate   = "authenticate"
	OpEndSession     = "end_session"
	OpCreatePost     = "create_post"
	OpLikePost       = "like_post"
	OpAddComment     = "add_comment"
	OpDeletePost     = "delete_post"
	OpToggleBookmark = "toggle_bookmark"
	OpToggleFollow   = "toggle_follow"
	OpOpenChat       = "open_chat"
	OpSendMessage    = "send_message"
	OpCreateGroup    = "create_group"
	OpJoinGroup      = "join_group"
	OpListMineral    = "list_mineral"
	OpNotify         = "notify"
	OpMarkAllRead    = "mark_all_read"
	OpVerifyUser     = "verify_user"
	OpSuspendUser    = "suspend_user"
)

// Notification copy.
const (
	WelcomeTitle    = "Welcome"
	NewPostTitle    = "New post"
	NewCommentTitle = "New comment"
)
