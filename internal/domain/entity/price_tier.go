package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// PriceTier escala de precio por cantidad. MinQuantity es único por producto.
type PriceTier struct {
	ID                  string
	ProductID           string
	MinQuantity         int
	UnitPrice           decimal.Decimal
	DiscountedUnitPrice *decimal.Decimal // debe ser menor que UnitPrice cuando existe
	CreatedAt           time.Time
	UpdatedAt           time.Time
}
