package impl

import (
	"context"
	"testing"

	"minex/internal/domain/constants"
	"minex/internal/domain/entity"
	domainerrors "minex/internal/domain/errors"
	"minex/internal/infra/persistence/memory"
	"minex/internal/infra/sanitize"
	mockSvc "minex/internal/mocks/service"
	"minex/internal/usecase"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestMarketplaceService_ListMineral(t *testing.T) {
	f := newStoreFixtures(t, newTestConfig(true))
	ada := f.register(t, "Ada", "a@x.com", entity.RoleMiner)
	ctx := context.Background()

	_, err := f.marketplace.ListMineral(ctx, &usecase.ListMineralInput{Name: "Chrome", Tonnage: "50", PricePerTon: "200"})
	assert.ErrorIs(t, err, domainerrors.ErrUnauthenticated)

	f.signIn(t, "a@x.com")

	listing, err := f.marketplace.ListMineral(ctx, &usecase.ListMineralInput{Name: "Chrome", Grade: "45%", Tonnage: "50", PricePerTon: "200.5"})
	require.NoError(t, err)
	assert.Equal(t, ada.ID, listing.SellerID)
	assert.InDelta(t, 50.0, listing.Tonnage, 1e-9)
	assert.InDelta(t, 10025.0, listing.TotalValue(), 1e-9)

	blank, err := f.marketplace.ListMineral(ctx, &usecase.ListMineralInput{Name: "Iron"})
	require.NoError(t, err)
	assert.Zero(t, blank.Tonnage)
	assert.Zero(t, blank.PricePerTon)

	listings, err := f.marketplace.ListMinerals(ctx)
	require.NoError(t, err)
	require.Len(t, listings, 2)
	assert.Equal(t, "Iron", listings[0].Name, "listings are most recent first")
}

func TestMarketplaceService_ListMineral_ValidationErrors(t *testing.T) {
	tests := []struct {
		name  string
		input *usecase.ListMineralInput
	}{
		{name: "missing name", input: &usecase.ListMineralInput{Tonnage: "1"}},
		{name: "markup only name", input: &usecase.ListMineralInput{Name: "<b></b>"}},
		{name: "non numeric tonnage", input: &usecase.ListMineralInput{Name: "Chrome", Tonnage: "fifty"}},
		{name: "negative price", input: &usecase.ListMineralInput{Name: "Chrome", PricePerTon: "-3"}},
		{name: "nan price", input: &usecase.ListMineralInput{Name: "Chrome", PricePerTon: "NaN"}},
		{name: "infinite tonnage", input: &usecase.ListMineralInput{Name: "Chrome", Tonnage: "+Inf"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newStoreFixtures(t, newTestConfig(true))
			f.register(t, "Ada", "a@x.com", entity.RoleMiner)
			f.signIn(t, "a@x.com")

			_, err := f.marketplace.ListMineral(context.Background(), tt.input)

			assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)

			listings, err := f.marketplace.ListMinerals(context.Background())
			require.NoError(t, err)
			assert.Empty(t, listings)
		})
	}
}

func TestMarketplaceService_RecordsOperationOutcome(t *testing.T) {
	store := memory.NewStore()
	metrics := mockSvc.NewMockMetricsRecorder(t)
	srv := NewMarketplaceService(MarketplaceServiceParams{
		TxManager:   memory.NewTransactionManager(store),
		MineralRepo: memory.NewMineralRepository(store),
		Sanitizer:   sanitize.NewTextSanitizer(),
		Metrics:     metrics,
		Logger:      newDiscardLogger(),
	})

	metrics.EXPECT().
		RecordOperation(constants.OpListMineral, mock.MatchedBy(func(err error) bool {
			return errors.Is(err, domainerrors.ErrUnauthenticated)
		})).
		Once()

	_, err := srv.ListMineral(context.Background(), &usecase.ListMineralInput{Name: "Chrome"})

	assert.ErrorIs(t, err, domainerrors.ErrUnauthenticated)
}
