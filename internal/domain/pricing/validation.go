package pricing

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Vitrine-api/internal/domain"
	"github.com/jhoicas/Vitrine-api/internal/domain/entity"
)

// ValidateTiers valida un conjunto de escalas al momento de captura.
// El cálculo asume datos ya validados por esta función.
func ValidateTiers(tiers []entity.PriceTier) error {
	seen := make(map[int]struct{}, len(tiers))
	for _, t := range tiers {
		if t.MinQuantity < 1 {
			return fmt.Errorf("%w: min_quantity debe ser >= 1", domain.ErrInvalidInput)
		}
		if _, ok := seen[t.MinQuantity]; ok {
			return fmt.Errorf("%w: min_quantity %d duplicado", domain.ErrInvalidInput, t.MinQuantity)
		}
		seen[t.MinQuantity] = struct{}{}
		if t.UnitPrice.LessThan(decimal.Zero) {
			return fmt.Errorf("%w: unit_price no puede ser negativo", domain.ErrInvalidInput)
		}
		if d := t.DiscountedUnitPrice; d != nil {
			if d.LessThan(decimal.Zero) || !d.LessThan(t.UnitPrice) {
				return fmt.Errorf("%w: discounted_unit_price debe ser menor que unit_price (min_quantity %d)",
					domain.ErrInvalidInput, t.MinQuantity)
			}
		}
	}
	return nil
}
