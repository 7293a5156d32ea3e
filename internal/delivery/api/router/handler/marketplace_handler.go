package handler

import (
	"bytes"
	"encoding/json"
	"net/http"

	"minex/internal/delivery/api/response"
	"minex/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// MarketplaceHandlerParams holds dependencies for MarketplaceHandler, injected by Fx.
type MarketplaceHandlerParams struct {
	fx.In

	MarketplaceUC usecase.MarketplaceUsecase
}

// MarketplaceHandler serves mineral listings.
type MarketplaceHandler struct {
	marketplaceUC usecase.MarketplaceUsecase
}

// NewMarketplaceHandler is the constructor for MarketplaceHandler
func NewMarketplaceHandler(params MarketplaceHandlerParams) *MarketplaceHandler {
	return &MarketplaceHandler{marketplaceUC: params.MarketplaceUC}
}

// quantity accepts a JSON number or string so form-style clients can send raw text.
type quantity string

func (q *quantity) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*q = ""

		return nil
	}

	var text string
	if err := json.Unmarshal(data, &text); err == nil {
		*q = quantity(text)

		return nil
	}

	var number json.Number
	if err := json.Unmarshal(data, &number); err != nil {
		return errors.Wrap(err, "quantity must be a number or a string")
	}
	*q = quantity(number.String())

	return nil
}

// ListMineralRequest is the body of a new listing.
type ListMineralRequest struct {
	Name        string   `json:"name"`
	Grade       string   `json:"grade"`
	Tonnage     quantity `json:"tonnage"`
	PricePerTon quantity `json:"price_per_ton"`
}

func (h *MarketplaceHandler) ListMinerals(c echo.Context) error {
	listings, err := h.marketplaceUC.ListMinerals(c.Request().Context())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, listings)
}

// ListMineral lists material for sale as the signed-in user.
func (h *MarketplaceHandler) ListMineral(c echo.Context) error {
	var req ListMineralRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "Invalid listing input")
	}

	listing, err := h.marketplaceUC.ListMineral(c.Request().Context(), &usecase.ListMineralInput{
		Name:        req.Name,
		Grade:       req.Grade,
		Tonnage:     string(req.Tonnage),
		PricePerTon: string(req.PricePerTon),
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, listing)
}
