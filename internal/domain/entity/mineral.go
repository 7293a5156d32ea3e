package entity

import (
	"time"

	"github.com/google/uuid"
)

// MineralListing is a marketplace offer, independent of mineral items embedded in posts.
type MineralListing struct {
	ID          uuid.UUID `json:"id"`
	SellerID    uuid.UUID `json:"seller_id"`
	Name        string    `json:"name"`
	Grade       string    `json:"grade"`
	Tonnage     float64   `json:"tonnage"`
	PricePerTon float64   `json:"price_per_ton"`
	CreatedAt   time.Time `json:"created_at"`
}

// TotalValue is the asking price for the whole lot.
func (m *MineralListing) TotalValue() float64 {
	return m.Tonnage * m.PricePerTon
}
