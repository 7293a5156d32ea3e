package memory

import (
	"context"
	"log/slog"
	"time"

	"minex/config"
	"minex/internal/domain/entity"
	"minex/internal/domain/service"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// SeedPassword is the password of every seeded account.
const SeedPassword = "demo"

// seedNamespace keeps seeded IDs stable across restarts.
var seedNamespace = uuid.MustParse("6f1d7c52-3c1e-4d4c-9a51-0b6c1c7f5e21")

// SeedID derives the stable ID of a seeded record from its short key.
func SeedID(key string) uuid.UUID {
	return uuid.NewSHA1(seedNamespace, []byte(key))
}

// Seeded record IDs.
var (
	SeedRyanID    = SeedID("user:ryan")
	SeedMinaID    = SeedID("user:mina")
	SeedAdminID   = SeedID("user:admin")
	SeedPostID    = SeedID("post:chrome")
	SeedGroupID   = SeedID("group:johannesburg")
	SeedListingID = SeedID("listing:chrome")
)

// SeedParams holds dependencies for Seed, injected by Fx
type SeedParams struct {
	fx.In

	Store  *Store
	Hasher service.PasswordHasher
	Config *config.Config
	Logger *slog.Logger
}

// RunSeed loads the demo data when seed.enabled is set.
func RunSeed(ctx context.Context, params SeedParams) error {
	if params.Config.Seed == nil || !params.Config.Seed.Enabled {
		return nil
	}

	placeholder := ""
	if params.Config.Media != nil {
		placeholder = params.Config.Media.PlaceholderImage
	}

	if err := Seed(ctx, params.Store, params.Hasher, placeholder, time.Now()); err != nil {
		return err
	}
	params.Logger.Info("Seeded demo data", slog.String("password", SeedPassword))

	return nil
}

// Seed replaces the store contents with the demo community.
func Seed(ctx context.Context, store *Store, hasher service.PasswordHasher, image string, now time.Time) error {
	if err := ctx.Err(); err != nil {
		return errors.WithStack(err)
	}

	hash, err := hasher.Hash(SeedPassword)
	if err != nil {
		return errors.Wrap(err, "failed to hash seed password")
	}

	s := newState()

	users := []*entity.User{
		{
			ID:        SeedAdminID,
			Email:     "admin@example.com",
			Name:      "Admin",
			Role:      entity.RoleAdmin,
			Verified:  true,
			Following: []uuid.UUID{},
			Bookmarks: []uuid.UUID{},
			Stories:   []entity.Story{},
		},
		{
			ID:        SeedMinaID,
			Email:     "mina@example.com",
			Name:      "Mina",
			Role:      entity.RoleMiner,
			Following: []uuid.UUID{},
			Bookmarks: []uuid.UUID{},
			Stories: []entity.Story{
				{ID: SeedID("story:pit"), Image: image, Title: "Pit"},
			},
		},
		{
			ID:        SeedRyanID,
			Email:     "ryan@example.com",
			Name:      "Ryan Finch",
			Role:      entity.RoleDealer,
			Verified:  true,
			Following: []uuid.UUID{SeedMinaID},
			Bookmarks: []uuid.UUID{},
			Stories: []entity.Story{
				{ID: SeedID("story:site-visit"), Image: image, Title: "Site visit"},
				{ID: SeedID("story:samples"), Image: image, Title: "Samples"},
			},
		},
	}
	// Listed most recent first, so Ryan heads the directory.
	for i := len(users) - 1; i >= 0; i-- {
		u := users[i]
		u.CreatedAt, u.UpdatedAt = now, now
		s.users[u.ID] = u
		s.userOrder = append(s.userOrder, u.ID)
		s.credentials[u.ID] = &entity.Credential{UserID: u.ID, PasswordHash: hash, UpdatedAt: now}
	}

	s.posts[SeedPostID] = &entity.Post{
		ID:        SeedPostID,
		AuthorID:  SeedRyanID,
		Title:     "Chrome concentrate — 50t",
		Body:      "Fresh Chrome concentrate available in Johannesburg. Contact for pricing.",
		Image:     image,
		Likes:     3,
		CreatedAt: now,
		Comments: []entity.Comment{
			{ID: SeedID("comment:grade"), AuthorID: SeedMinaID, Body: "What's the grade?", CreatedAt: now},
		},
		Minerals: []entity.MineralItem{
			{ID: SeedID("item:chrome"), Name: "Chrome", Grade: "45% Cr2O3", Tonnage: 50},
		},
	}
	s.postOrder = []uuid.UUID{SeedPostID}

	s.groups[SeedGroupID] = &entity.Group{
		ID:          SeedGroupID,
		Name:        "Johannesburg Traders",
		Description: "Local market",
		Members:     []uuid.UUID{SeedRyanID, SeedMinaID},
		CreatedAt:   now,
	}
	s.groupOrder = []uuid.UUID{SeedGroupID}

	s.minerals = []*entity.MineralListing{
		{
			ID:          SeedListingID,
			SellerID:    SeedRyanID,
			Name:        "Chrome Concentrate",
			Grade:       "45% Cr2O3",
			Tonnage:     50,
			PricePerTon: 200,
			CreatedAt:   now,
		},
	}

	store.mu.Lock()
	store.state = s
	store.mu.Unlock()

	return nil
}
