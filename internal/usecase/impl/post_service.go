package impl

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strconv"
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

const defaultMineralName = "Mineral"

// postService implements the PostUsecase interface.
type postService struct {
	txManager   repository.TransactionManager
	postRepo    repository.PostRepository
	userRepo    repository.UserRepository
	sessionRepo repository.SessionRepository
	sanitizer   service.TextSanitizer
	metrics     service.MetricsRecorder
	notifier    *notifier
	placeholder string
	logger      *slog.Logger
}

// PostServiceParams holds dependencies for PostService, injected by Fx.
type PostServiceParams struct {
	fx.In

	TxManager   repository.TransactionManager
	PostRepo    repository.PostRepository
	UserRepo    repository.UserRepository
	SessionRepo repository.SessionRepository
	Sanitizer   service.TextSanitizer
	Publisher   service.EventPublisher
	Metrics     service.MetricsRecorder `optional:"true"`
	Config      *config.Config
	Logger      *slog.Logger
}

// NewPostService is the constructor for postService.
func NewPostService(params PostServiceParams) usecase.PostUsecase {
	placeholder := ""
	if params.Config != nil && params.Config.Media != nil {
		placeholder = params.Config.Media.PlaceholderImage
	}

	return &postService{
		txManager:   params.TxManager,
		postRepo:    params.PostRepo,
		userRepo:    params.UserRepo,
		sessionRepo: params.SessionRepo,
		sanitizer:   params.Sanitizer,
		metrics:     params.Metrics,
		notifier:    newNotifier(params.Publisher, params.Logger),
		placeholder: placeholder,
		logger:      params.Logger,
	}
}

func (srv *postService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// CreatePost publishes a post and notifies every follower of the author.
func (srv *postService) CreatePost(ctx context.Context, input *usecase.CreatePostInput) (post *entity.Post, err error) {
	defer recordOf(srv.metrics, constants.OpCreatePost, &err)()

	if input == nil {
		return nil, domainerrors.ErrValidationFailed.WithDetails("input is required")
	}
	input.Title = clean(srv.sanitizer, input.Title)
	input.Body = clean(srv.sanitizer, input.Body)
	if err := validation.Struct(input); err != nil {
		srv.log(ctx).Warn("Rejected post input", slog.Any("error", err))

		return nil, err
	}

	image := strings.TrimSpace(input.Image)
	if image == "" {
		image = srv.placeholder
	}

	var fanOut []*entity.Notification
	err = srv.txManager.Execute(ctx, func(f repository.RepositoryFactory) error {
		author, err := actorIn(ctx, f)
		if err != nil {
			return err
		}

		post = &entity.Post{
			ID:        uuid.New(),
			AuthorID:  author.ID,
			Title:     input.Title,
			Body:      input.Body,
			Image:     image,
			CreatedAt: time.Now(),
			Comments:  []entity.Comment{},
			Minerals:  srv.buildMinerals(input.Minerals),
		}
		if input.GroupID != nil && *input.GroupID != uuid.Nil {
			if _, err := f.GroupRepo().FindByID(ctx, *input.GroupID); err != nil {
				if errors.Is(err, repository.ErrGroupNotFound) {
					return domainerrors.ErrGroupNotFound.WithDetails(input.GroupID.String())
				}

				return errors.Wrap(err, "failed to find group")
			}
			groupID := *input.GroupID
			post.GroupID = &groupID
		}

		if err := f.PostRepo().Create(ctx, post); err != nil {
			return errors.Wrap(err, "failed to create post")
		}

		// Followers are read inside the unit of work so the recipients are a stable snapshot.
		followers, err := f.UserRepo().FindFollowers(ctx, author.ID)
		if err != nil {
			return errors.Wrap(err, "failed to find followers")
		}
		for _, follower := range followers {
			n, err := srv.notifier.stage(ctx, f.NotificationRepo(), &usecase.NotifyInput{
				UserID: follower.ID,
				Kind:   entity.NotificationNewPost,
				Title:  constants.NewPostTitle,
				Body:   fmt.Sprintf("%s posted: %s", author.Name, post.Title),
			})
			if err != nil {
				return err
			}
			fanOut = append(fanOut, n)
		}

		return nil
	})
	if err != nil {
		return nil, srv.failure(ctx, "create post", err)
	}

	srv.notifier.publish(ctx, fanOut...)
	srv.log(ctx).Debug("Post created", slog.Any("postID", post.ID), slog.Int("notified", len(fanOut)))

	return post, nil
}

func (srv *postService) buildMinerals(items []usecase.MineralItemInput) []entity.MineralItem {
	minerals := make([]entity.MineralItem, 0, len(items))
	for _, item := range items {
		name := clean(srv.sanitizer, item.Name)
		if name == "" {
			name = defaultMineralName
		}
		minerals = append(minerals, entity.MineralItem{
			ID:      uuid.New(),
			Name:    name,
			Grade:   clean(srv.sanitizer, item.Grade),
			Tonnage: item.Tonnage,
		})
	}

	return minerals
}

// ParseMineralItems reads "name|grade|tonnage" segments separated by ";".
// Missing parts fall back to "Mineral", "" and 0. Extra parts are ignored.
func (srv *postService) ParseMineralItems(spec string) ([]usecase.MineralItemInput, error) {
	items := []usecase.MineralItemInput{}
	for _, segment := range strings.Split(spec, ";") {
		if strings.TrimSpace(segment) == "" {
			continue
		}

		parts := strings.Split(segment, "|")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}

		item := usecase.MineralItemInput{Name: defaultMineralName}
		if parts[0] != "" {
			item.Name = parts[0]
		}
		if len(parts) > 1 {
			item.Grade = parts[1]
		}
		if len(parts) > 2 && parts[2] != "" {
			tonnage, err := parseQuantity("tonnage", parts[2])
			if err != nil {
				return nil, err
			}
			item.Tonnage = tonnage
		}
		items = append(items, item)
	}

	return items, nil
}

// parseQuantity accepts finite, non-negative decimal numbers only.
func parseQuantity(field, raw string) (float64, error) {
	value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, domainerrors.ErrValidationFailed.WithDetails(fmt.Sprintf("%s: must be a number", field))
	}
	if value < 0 {
		return 0, domainerrors.ErrValidationFailed.WithDetails(fmt.Sprintf("%s: must not be negative", field))
	}

	return value, nil
}

// LikePost increments the like counter. Unknown posts are silently ignored.
func (srv *postService) LikePost(ctx context.Context, postID uuid.UUID) (err error) {
	defer recordOf(srv.metrics, constants.OpLikePost, &err)()

	err = srv.txManager.Execute(ctx, func(f repository.RepositoryFactory) error {
		post, err := f.PostRepo().FindByID(ctx, postID)
		if errors.Is(err, repository.ErrPostNotFound) {
			srv.log(ctx).Debug("Like on unknown post ignored", slog.Any("postID", postID))

			return nil
		}
		if err != nil {
			return errors.Wrap(err, "failed to find post")
		}
		post.Likes++

		return errors.Wrap(f.PostRepo().Update(ctx, post), "failed to update post")
	})
	if err != nil {
		return srv.failure(ctx, "like post", err)
	}

	return nil
}

// AddComment prepends a comment and notifies the post's author.
func (srv *postService) AddComment(ctx context.Context, postID uuid.UUID, body string) (post *entity.Post, err error) {
	defer recordOf(srv.metrics, constants.OpAddComment, &err)()

	body = clean(srv.sanitizer, body)
	var notification *entity.Notification
	err = srv.txManager.Execute(ctx, func(f repository.RepositoryFactory) error {
		actor, err := actorIn(ctx, f)
		if err != nil {
			return err
		}
		if body == "" {
			return domainerrors.ErrValidationFailed.WithDetails("body: field is required")
		}

		post, err = f.PostRepo().FindByID(ctx, postID)
		if errors.Is(err, repository.ErrPostNotFound) {
			return domainerrors.ErrPostNotFound.WithDetails(postID.String())
		}
		if err != nil {
			return errors.Wrap(err, "failed to find post")
		}

		comment := entity.Comment{ID: uuid.New(), AuthorID: actor.ID, Body: body, CreatedAt: time.Now()}
		post.Comments = append([]entity.Comment{comment}, post.Comments...)
		if err := f.PostRepo().Update(ctx, post); err != nil {
			return errors.Wrap(err, "failed to update post")
		}

		notification, err = srv.notifier.stage(ctx, f.NotificationRepo(), &usecase.NotifyInput{
			UserID: post.AuthorID,
			Kind:   entity.NotificationComment,
			Title:  constants.NewCommentTitle,
			Body:   fmt.Sprintf("%s commented on your post", actor.Name),
		})

		return err
	})
	if err != nil {
		return nil, srv.failure(ctx, "add comment", err)
	}

	srv.notifier.publish(ctx, notification)

	return post, nil
}

// DeletePost removes a post. Only its author may do so.
func (srv *postService) DeletePost(ctx context.Context, postID uuid.UUID) (err error) {
	defer recordOf(srv.metrics, constants.OpDeletePost, &err)()

	err = srv.txManager.Execute(ctx, func(f repository.RepositoryFactory) error {
		actor, err := actorIn(ctx, f)
		if err != nil {
			return err
		}

		post, err := f.PostRepo().FindByID(ctx, postID)
		if errors.Is(err, repository.ErrPostNotFound) {
			return domainerrors.ErrPostNotFound.WithDetails(postID.String())
		}
		if err != nil {
			return errors.Wrap(err, "failed to find post")
		}
		if post.AuthorID != actor.ID {
			return domainerrors.ErrForbidden.WithDetails("only the author can delete a post")
		}

		return errors.Wrap(f.PostRepo().Delete(ctx, postID), "failed to delete post")
	})
	if err != nil {
		return srv.failure(ctx, "delete post", err)
	}

	srv.log(ctx).Debug("Post deleted", slog.Any("postID", postID))

	return nil
}

// ToggleBookmark flips the post in the actor's bookmarks.
func (srv *postService) ToggleBookmark(ctx context.Context, postID uuid.UUID) (saved bool, err error) {
	defer recordOf(srv.metrics, constants.OpToggleBookmark, &err)()

	err = srv.txManager.Execute(ctx, func(f repository.RepositoryFactory) error {
		actor, err := actorIn(ctx, f)
		if err != nil {
			return err
		}
		if _, err := f.PostRepo().FindByID(ctx, postID); err != nil {
			if errors.Is(err, repository.ErrPostNotFound) {
				return domainerrors.ErrPostNotFound.WithDetails(postID.String())
			}

			return errors.Wrap(err, "failed to find post")
		}

		saved = actor.ToggleBookmark(postID)
		actor.UpdatedAt = time.Now()

		return errors.Wrap(f.UserRepo().Update(ctx, actor), "failed to update bookmarks")
	})
	if err != nil {
		return false, srv.failure(ctx, "toggle bookmark", err)
	}

	return saved, nil
}

func (srv *postService) GetPost(ctx context.Context, postID uuid.UUID) (*entity.Post, error) {
	post, err := srv.postRepo.FindByID(ctx, postID)
	if errors.Is(err, repository.ErrPostNotFound) {
		return nil, domainerrors.ErrPostNotFound.WithDetails(postID.String())
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find post")
	}

	return post, nil
}

func (srv *postService) ListPosts(ctx context.Context) ([]*entity.Post, error) {
	posts, err := srv.postRepo.List(ctx)

	return posts, errors.Wrap(err, "failed to list posts")
}

// ListBookmarks returns the actor's saved posts, most recently saved first.
func (srv *postService) ListBookmarks(ctx context.Context) ([]*entity.Post, error) {
	actor, err := resolveActor(ctx, srv.sessionRepo, srv.userRepo)
	if err != nil {
		return nil, err
	}

	posts := make([]*entity.Post, 0, len(actor.Bookmarks))
	for _, id := range actor.Bookmarks {
		post, err := srv.postRepo.FindByID(ctx, id)
		if errors.Is(err, repository.ErrPostNotFound) {
			continue
		}
		if err != nil {
			return nil, errors.Wrap(err, "failed to find bookmarked post")
		}
		posts = append(posts, post)
	}

	return posts, nil
}

// Search is recomputed on every call and never stored.
func (srv *postService) Search(ctx context.Context, query string) ([]*entity.Post, error) {
	posts, err := srv.postRepo.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list posts")
	}

	needle := strings.ToLower(strings.TrimSpace(query))
	if needle == "" {
		return posts, nil
	}

	matches := make([]*entity.Post, 0, len(posts))
	for _, post := range posts {
		if post.Matches(needle) {
			matches = append(matches, post)
		}
	}

	return matches, nil
}

// failure logs the error at the level its kind deserves and passes domain errors through.
func (srv *postService) failure(ctx context.Context, op string, err error) error {
	return logFailure(srv.log(ctx), op, err)
}
