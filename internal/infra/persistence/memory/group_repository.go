package memory

import (
	"context"

	"minex/internal/domain/entity"
	"minex/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// groupRepository implements repository.GroupRepository over the Store.
type groupRepository struct {
	acc access
}

func NewGroupRepository(store *Store) repository.GroupRepository {
	return &groupRepository{acc: access{store: store}}
}

func (repo *groupRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.Group, error) {
	var out *entity.Group
	err := repo.acc.read(func(s *state) error {
		g, ok := s.groups[id]
		if !ok {
			return repository.ErrGroupNotFound
		}
		out = g.Clone()

		return nil
	})

	return out, err
}

func (repo *groupRepository) List(_ context.Context) ([]*entity.Group, error) {
	out := []*entity.Group{}
	err := repo.acc.read(func(s *state) error {
		for _, id := range s.groupOrder {
			out = append(out, s.groups[id].Clone())
		}

		return nil
	})

	return out, err
}

func (repo *groupRepository) Create(_ context.Context, group *entity.Group) error {
	if group == nil || group.ID == uuid.Nil {
		return errors.New("group with an id is required")
	}

	return repo.acc.write(func(s *state) error {
		if _, exists := s.groups[group.ID]; exists {
			return errors.Errorf("group %s already exists", group.ID)
		}
		s.groups[group.ID] = group.Clone()
		s.groupOrder = prepend(s.groupOrder, group.ID)

		return nil
	})
}

func (repo *groupRepository) Update(_ context.Context, group *entity.Group) error {
	if group == nil {
		return errors.New("group is required")
	}

	return repo.acc.write(func(s *state) error {
		if _, ok := s.groups[group.ID]; !ok {
			return repository.ErrGroupNotFound
		}
		s.groups[group.ID] = group.Clone()

		return nil
	})
}

// mineralRepository implements repository.MineralRepository over the Store.
type mineralRepository struct {
	acc access
}

func NewMineralRepository(store *Store) repository.MineralRepository {
	return &mineralRepository{acc: access{store: store}}
}

func (repo *mineralRepository) List(_ context.Context) ([]*entity.MineralListing, error) {
	var out []*entity.MineralListing
	err := repo.acc.read(func(s *state) error {
		out = make([]*entity.MineralListing, 0, len(s.minerals))
		for _, m := range s.minerals {
			cp := *m
			out = append(out, &cp)
		}

		return nil
	})

	return out, err
}

func (repo *mineralRepository) Create(_ context.Context, listing *entity.MineralListing) error {
	if listing == nil || listing.ID == uuid.Nil {
		return errors.New("listing with an id is required")
	}

	return repo.acc.write(func(s *state) error {
		cp := *listing
		s.minerals = append([]*entity.MineralListing{&cp}, s.minerals...)

		return nil
	})
}
