// Package pricing contiene el cálculo de precio por escalas de cantidad (servicio de dominio puro).
package pricing

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Vitrine-api/internal/domain/entity"
)

// Input datos de entrada del cálculo. Tiers puede venir desordenado; no se modifica.
type Input struct {
	Quantity            int
	Tiers               []entity.PriceTier
	BasePrice           decimal.Decimal
	BaseDiscountedPrice *decimal.Decimal
}

// Result resultado del cálculo para una cantidad.
type Result struct {
	Quantity      int
	UnitPrice     decimal.Decimal
	TotalPrice    decimal.Decimal
	BaseUnitPrice decimal.Decimal // precio base efectivo (con promoción si aplica)
	BaseTotal     decimal.Decimal
	// Savings nunca es negativo; RawSavings conserva el valor real para diagnóstico
	// (negativo cuando la escala sale más cara que el precio base).
	Savings         decimal.Decimal
	RawSavings      decimal.Decimal
	AppliedTier     *entity.PriceTier
	NextTier        *entity.PriceTier
	UnitsToNextTier int
	NextTierSavings decimal.Decimal
}

// Calculate determina precio unitario, total y ahorro para la cantidad pedida.
// Función total: cantidad <= 0 produce un resultado en cero, sin error.
func Calculate(in Input) Result {
	tiers := sortedTiers(in.Tiers)
	baseUnit := effectivePrice(in.BasePrice, in.BaseDiscountedPrice)
	qty := decimal.NewFromInt(int64(in.Quantity))

	res := Result{
		Quantity:        in.Quantity,
		UnitPrice:       baseUnit,
		BaseUnitPrice:   baseUnit,
		NextTierSavings: decimal.Zero,
	}

	// Escala aplicable: mayor min_quantity <= cantidad. La siguiente: primera por encima.
	for i := range tiers {
		t := tiers[i]
		if t.MinQuantity <= in.Quantity {
			res.AppliedTier = &t
			continue
		}
		res.NextTier = &t
		break
	}
	if res.AppliedTier != nil {
		res.UnitPrice = TierUnitPrice(*res.AppliedTier)
	}

	res.TotalPrice = res.UnitPrice.Mul(qty)
	res.BaseTotal = baseUnit.Mul(qty)
	res.RawSavings = res.BaseTotal.Sub(res.TotalPrice)
	res.Savings = nonNegative(res.RawSavings)

	if res.NextTier != nil {
		res.UnitsToNextTier = res.NextTier.MinQuantity - in.Quantity
		nextQty := decimal.NewFromInt(int64(res.NextTier.MinQuantity))
		atCurrent := res.UnitPrice.Mul(nextQty)
		atNext := TierUnitPrice(*res.NextTier).Mul(nextQty)
		res.NextTierSavings = nonNegative(atCurrent.Sub(atNext))
	}
	return res
}

// TierUnitPrice precio unitario efectivo de una escala: el descontado si es > 0 y menor que el unitario.
func TierUnitPrice(t entity.PriceTier) decimal.Decimal {
	return effectivePrice(t.UnitPrice, t.DiscountedUnitPrice)
}

func effectivePrice(price decimal.Decimal, discounted *decimal.Decimal) decimal.Decimal {
	if discounted != nil && discounted.GreaterThan(decimal.Zero) && discounted.LessThan(price) {
		return *discounted
	}
	return price
}

func sortedTiers(tiers []entity.PriceTier) []entity.PriceTier {
	out := make([]entity.PriceTier, len(tiers))
	copy(out, tiers)
	sort.SliceStable(out, func(i, j int) bool { return out[i].MinQuantity < out[j].MinQuantity })
	return out
}

func nonNegative(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}
