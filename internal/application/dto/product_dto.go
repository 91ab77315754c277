package dto

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto.
type CreateProductRequest struct {
	Name            string           `json:"name" validate:"required,min=1,max=200"`
	Description     string           `json:"description" validate:"max=5000"`
	Price           decimal.Decimal  `json:"price"`
	DiscountedPrice *decimal.Decimal `json:"discounted_price"`
	Sizes           []string         `json:"sizes" validate:"max=30,dive,min=1,max=20"`
	Colors          []string         `json:"colors" validate:"max=30,dive,min=1,max=40"`
	Categories      []string         `json:"categories" validate:"max=20,dive,min=1,max=60"`
	VideoURL        string           `json:"video_url" validate:"omitempty,url"`
	Attributes      json.RawMessage  `json:"attributes" swaggertype:"object"`
	IsActive        *bool            `json:"is_active"`
}

// UpdateProductRequest entrada para actualizar un producto; campos nil no cambian.
type UpdateProductRequest struct {
	Name            *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Description     *string          `json:"description" validate:"omitempty,max=5000"`
	Price           *decimal.Decimal `json:"price"`
	DiscountedPrice *decimal.Decimal `json:"discounted_price"`
	ClearDiscount   bool             `json:"clear_discount"`
	Sizes           []string         `json:"sizes" validate:"omitempty,max=30,dive,min=1,max=20"`
	Colors          []string         `json:"colors" validate:"omitempty,max=30,dive,min=1,max=40"`
	Categories      []string         `json:"categories" validate:"omitempty,max=20,dive,min=1,max=60"`
	VideoURL        *string          `json:"video_url" validate:"omitempty"`
	Attributes      json.RawMessage  `json:"attributes" swaggertype:"object"`
	IsActive        *bool            `json:"is_active"`
}

// ProductResponse salida de un producto con su galería y escalas.
type ProductResponse struct {
	ID              string              `json:"id"`
	UserID          string              `json:"user_id"`
	Name            string              `json:"name"`
	Description     string              `json:"description"`
	Price           decimal.Decimal     `json:"price"`
	DiscountedPrice *decimal.Decimal    `json:"discounted_price,omitempty"`
	Sizes           []string            `json:"sizes"`
	Colors          []string            `json:"colors"`
	Categories      []string            `json:"categories"`
	VideoURL        string              `json:"video_url,omitempty"`
	Attributes      json.RawMessage     `json:"attributes" swaggertype:"object"`
	IsActive        bool                `json:"is_active"`
	Images          []ImageResponse     `json:"images"`
	PriceTiers      []PriceTierResponse `json:"price_tiers"`
	CreatedAt       time.Time           `json:"created_at"`
	UpdatedAt       time.Time           `json:"updated_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// PriceTierInput una escala en la carga de escalas del producto.
type PriceTierInput struct {
	MinQuantity         int              `json:"min_quantity" validate:"required,min=1"`
	UnitPrice           decimal.Decimal  `json:"unit_price"`
	DiscountedUnitPrice *decimal.Decimal `json:"discounted_unit_price"`
}

// SetPriceTiersRequest reemplaza todas las escalas del producto. Lista vacía = sin escalas.
type SetPriceTiersRequest struct {
	Tiers []PriceTierInput `json:"tiers" validate:"max=20,dive"`
}

// PriceTierResponse salida de una escala.
type PriceTierResponse struct {
	ID                  string           `json:"id"`
	MinQuantity         int              `json:"min_quantity"`
	UnitPrice           decimal.Decimal  `json:"unit_price"`
	DiscountedUnitPrice *decimal.Decimal `json:"discounted_unit_price,omitempty"`
}

// PriceQuoteResponse resultado de la calculadora de precio por cantidad.
type PriceQuoteResponse struct {
	ProductID       string             `json:"product_id"`
	Quantity        int                `json:"quantity"`
	UnitPrice       decimal.Decimal    `json:"unit_price"`
	TotalPrice      decimal.Decimal    `json:"total_price"`
	BaseUnitPrice   decimal.Decimal    `json:"base_unit_price"`
	Savings         decimal.Decimal    `json:"savings"`
	RawSavings      decimal.Decimal    `json:"raw_savings"`
	AppliedTier     *PriceTierResponse `json:"applied_tier,omitempty"`
	NextTier        *PriceTierResponse `json:"next_tier,omitempty"`
	UnitsToNextTier int                `json:"units_to_next_tier"`
	NextTierSavings decimal.Decimal    `json:"next_tier_savings"`
}
