package impl

import (
	"context"
	"log/slog"
	"strings"
	"time"

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

// marketplaceService implements the MarketplaceUsecase interface.
type marketplaceService struct {
	txManager   repository.TransactionManager
	mineralRepo repository.MineralRepository
	sanitizer   service.TextSanitizer
	metrics     service.MetricsRecorder
	logger      *slog.Logger
}

// MarketplaceServiceParams holds dependencies for MarketplaceService, injected by Fx.
type MarketplaceServiceParams struct {
	fx.In

	TxManager   repository.TransactionManager
	MineralRepo repository.MineralRepository
	Sanitizer   service.TextSanitizer
	Metrics     service.MetricsRecorder `optional:"true"`
	Logger      *slog.Logger
}

// NewMarketplaceService is the constructor for marketplaceService.
func NewMarketplaceService(params MarketplaceServiceParams) usecase.MarketplaceUsecase {
	return &marketplaceService{
		txManager:   params.TxManager,
		mineralRepo: params.MineralRepo,
		sanitizer:   params.Sanitizer,
		metrics:     params.Metrics,
		logger:      params.Logger,
	}
}

func (srv *marketplaceService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// ListMineral offers material on the marketplace. Blank numbers count as zero.
func (srv *marketplaceService) ListMineral(ctx context.Context, input *usecase.ListMineralInput) (listing *entity.MineralListing, err error) {
	defer recordOf(srv.metrics, constants.OpListMineral, &err)()

	if input == nil {
		return nil, domainerrors.ErrValidationFailed.WithDetails("input is required")
	}
	input.Name = clean(srv.sanitizer, input.Name)
	input.Grade = clean(srv.sanitizer, input.Grade)
	if err := validation.Struct(input); err != nil {
		return nil, err
	}

	tonnage, err := optionalQuantity("tonnage", input.Tonnage)
	if err != nil {
		return nil, err
	}
	price, err := optionalQuantity("price_per_ton", input.PricePerTon)
	if err != nil {
		return nil, err
	}

	err = srv.txManager.Execute(ctx, func(f repository.RepositoryFactory) error {
		seller, err := actorIn(ctx, f)
		if err != nil {
			return err
		}

		listing = &entity.MineralListing{
			ID:          uuid.New(),
			SellerID:    seller.ID,
			Name:        input.Name,
			Grade:       input.Grade,
			Tonnage:     tonnage,
			PricePerTon: price,
			CreatedAt:   time.Now(),
		}

		return errors.Wrap(f.MineralRepo().Create(ctx, listing), "failed to create listing")
	})
	if err != nil {
		return nil, logFailure(srv.log(ctx), "list mineral", err)
	}

	srv.log(ctx).Debug("Mineral listed", slog.Any("listingID", listing.ID), slog.Float64("total", listing.TotalValue()))

	return listing, nil
}

func (srv *marketplaceService) ListMinerals(ctx context.Context) ([]*entity.MineralListing, error) {
	listings, err := srv.mineralRepo.List(ctx)

	return listings, errors.Wrap(err, "failed to list minerals")
}

func optionalQuantity(field, raw string) (float64, error) {
	if strings.TrimSpace(raw) == "" {
		return 0, nil
	}

	return parseQuantity(field, raw)
}
