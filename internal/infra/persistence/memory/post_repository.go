package memory

import (
	"context"

	"minex/internal/domain/entity"
	"minex/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// postRepository implements repository.PostRepository over the Store.
type postRepository struct {
	acc access
}

func NewPostRepository(store *Store) repository.PostRepository {
	return &postRepository{acc: access{store: store}}
}

func (repo *postRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.Post, error) {
	var out *entity.Post
	err := repo.acc.read(func(s *state) error {
		p, ok := s.posts[id]
		if !ok {
			return repository.ErrPostNotFound
		}
		out = p.Clone()

		return nil
	})

	return out, err
}

func (repo *postRepository) List(_ context.Context) ([]*entity.Post, error) {
	return repo.filter(func(*entity.Post) bool { return true })
}

func (repo *postRepository) ListByAuthor(_ context.Context, authorID uuid.UUID) ([]*entity.Post, error) {
	return repo.filter(func(p *entity.Post) bool { return p.AuthorID == authorID })
}

func (repo *postRepository) ListByGroup(_ context.Context, groupID uuid.UUID) ([]*entity.Post, error) {
	return repo.filter(func(p *entity.Post) bool { return p.InGroup(groupID) })
}

func (repo *postRepository) filter(keep func(*entity.Post) bool) ([]*entity.Post, error) {
	out := []*entity.Post{}
	err := repo.acc.read(func(s *state) error {
		for _, id := range s.postOrder {
			if p := s.posts[id]; keep(p) {
				out = append(out, p.Clone())
			}
		}

		return nil
	})

	return out, err
}

func (repo *postRepository) Create(_ context.Context, post *entity.Post) error {
	if post == nil || post.ID == uuid.Nil {
		return errors.New("post with an id is required")
	}

	return repo.acc.write(func(s *state) error {
		if _, exists := s.posts[post.ID]; exists {
			return errors.Errorf("post %s already exists", post.ID)
		}
		s.posts[post.ID] = post.Clone()
		s.postOrder = prepend(s.postOrder, post.ID)

		return nil
	})
}

func (repo *postRepository) Update(_ context.Context, post *entity.Post) error {
	if post == nil {
		return errors.New("post is required")
	}

	return repo.acc.write(func(s *state) error {
		if _, ok := s.posts[post.ID]; !ok {
			return repository.ErrPostNotFound
		}
		s.posts[post.ID] = post.Clone()

		return nil
	})
}

// Delete removes the post and drops it from every user's bookmarks.
func (repo *postRepository) Delete(_ context.Context, id uuid.UUID) error {
	return repo.acc.write(func(s *state) error {
		if _, ok := s.posts[id]; !ok {
			return repository.ErrPostNotFound
		}
		delete(s.posts, id)
		s.postOrder = without(s.postOrder, id)
		for _, u := range s.users {
			u.RemoveBookmark(id)
		}

		return nil
	})
}
