package usecase

import (
	"context"

	"minex/internal/domain/entity"
)

// ListMineralInput carries the numeric fields as text so they are parsed explicitly.
type ListMineralInput struct {
	Name        string `json:"name" validate:"required,max=120"`
	Grade       string `json:"grade" validate:"max=120"`
	Tonnage     string `json:"tonnage"`
	PricePerTon string `json:"price_per_ton"`
}

// MarketplaceUsecase covers mineral listings.
type MarketplaceUsecase interface {
	ListMineral(ctx context.Context, input *ListMineralInput) (*entity.MineralListing, error)
	ListMinerals(ctx context.Context) ([]*entity.MineralListing, error)
}
