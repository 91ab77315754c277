package entity

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo de un vendedor.
// Imágenes y escalas de precio viven en tablas propias (ProductImage, PriceTier).
type Product struct {
	ID              string
	UserID          string // dueño exclusivo
	Name            string
	Description     string
	Price           decimal.Decimal  // precio base
	DiscountedPrice *decimal.Decimal // precio promocional; nil si no aplica
	Sizes           []string
	Colors          []string
	Categories      []string // etiquetas libres; se reconcilian con user_product_categories
	VideoURL        string
	Attributes      json.RawMessage
	IsActive        bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
