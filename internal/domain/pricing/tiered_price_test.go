package pricing_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Vitrine-api/internal/domain"
	"github.com/jhoicas/Vitrine-api/internal/domain/entity"
	"github.com/jhoicas/Vitrine-api/internal/domain/pricing"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

func dec(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func decPtr(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

func tier(minQty int, unit int64) entity.PriceTier {
	return entity.PriceTier{MinQuantity: minQty, UnitPrice: dec(unit)}
}

// escalas de referencia: 1+ = 100, 10+ = 90, 50+ = 80 (entregadas desordenadas a propósito)
func referenceTiers() []entity.PriceTier {
	return []entity.PriceTier{tier(50, 80), tier(1, 100), tier(10, 90)}
}

// ──────────────────────────────────────────────────────────────────────────────
// Escenarios
// ──────────────────────────────────────────────────────────────────────────────

func TestCalculate_Cantidad25UsaEscala10(t *testing.T) {
	res := pricing.Calculate(pricing.Input{Quantity: 25, Tiers: referenceTiers(), BasePrice: dec(100)})

	require.NotNil(t, res.AppliedTier)
	assert.Equal(t, 10, res.AppliedTier.MinQuantity)
	assert.True(t, res.UnitPrice.Equal(dec(90)), "unit price: %s", res.UnitPrice)
	assert.True(t, res.TotalPrice.Equal(dec(2250)), "total: %s", res.TotalPrice)
	assert.True(t, res.Savings.Equal(dec(250)), "savings: %s", res.Savings)

	require.NotNil(t, res.NextTier)
	assert.Equal(t, 50, res.NextTier.MinQuantity)
	assert.Equal(t, 25, res.UnitsToNextTier)
	// en 50 unidades: 50*90 - 50*80
	assert.True(t, res.NextTierSavings.Equal(dec(500)), "next tier savings: %s", res.NextTierSavings)
}

func TestCalculate_Cantidad5UsaPrimeraEscala(t *testing.T) {
	res := pricing.Calculate(pricing.Input{Quantity: 5, Tiers: referenceTiers(), BasePrice: dec(100)})

	require.NotNil(t, res.AppliedTier)
	assert.Equal(t, 1, res.AppliedTier.MinQuantity)
	assert.True(t, res.UnitPrice.Equal(dec(100)))
	assert.True(t, res.TotalPrice.Equal(dec(500)))
	assert.True(t, res.Savings.IsZero())
	assert.Equal(t, 5, res.UnitsToNextTier)
}

func TestCalculate_SinEscalasUsaPrecioBase(t *testing.T) {
	res := pricing.Calculate(pricing.Input{Quantity: 3, BasePrice: dec(40)})

	assert.Nil(t, res.AppliedTier)
	assert.Nil(t, res.NextTier)
	assert.True(t, res.UnitPrice.Equal(dec(40)))
	assert.True(t, res.TotalPrice.Equal(dec(120)))
	assert.Equal(t, 0, res.UnitsToNextTier)
	assert.True(t, res.NextTierSavings.IsZero())
}

func TestCalculate_CantidadDebajoDeLaMenorEscala(t *testing.T) {
	tiers := []entity.PriceTier{tier(10, 90), tier(20, 85)}
	res := pricing.Calculate(pricing.Input{Quantity: 4, Tiers: tiers, BasePrice: dec(100)})

	assert.Nil(t, res.AppliedTier, "ninguna escala califica")
	assert.True(t, res.UnitPrice.Equal(dec(100)))
	assert.Equal(t, 6, res.UnitsToNextTier)
}

func TestCalculate_PrecioBasePromocional(t *testing.T) {
	res := pricing.Calculate(pricing.Input{Quantity: 2, BasePrice: dec(100), BaseDiscountedPrice: decPtr(70)})
	assert.True(t, res.UnitPrice.Equal(dec(70)))
	assert.True(t, res.BaseUnitPrice.Equal(dec(70)))

	// promoción mayor o igual al precio base se ignora
	res = pricing.Calculate(pricing.Input{Quantity: 2, BasePrice: dec(100), BaseDiscountedPrice: decPtr(120)})
	assert.True(t, res.UnitPrice.Equal(dec(100)))

	// promoción en cero se ignora
	res = pricing.Calculate(pricing.Input{Quantity: 2, BasePrice: dec(100), BaseDiscountedPrice: decPtr(0)})
	assert.True(t, res.UnitPrice.Equal(dec(100)))
}

func TestCalculate_EscalaConPrecioDescontado(t *testing.T) {
	tiers := []entity.PriceTier{{MinQuantity: 10, UnitPrice: dec(90), DiscountedUnitPrice: decPtr(85)}}
	res := pricing.Calculate(pricing.Input{Quantity: 10, Tiers: tiers, BasePrice: dec(100)})
	assert.True(t, res.UnitPrice.Equal(dec(85)))
	assert.True(t, res.Savings.Equal(dec(150)))
}

// Escala más cara que el precio base promocional: ahorro visible en cero, valor crudo negativo.
func TestCalculate_AhorroNegativoSeReportaEnCero(t *testing.T) {
	tiers := []entity.PriceTier{tier(5, 95)}
	res := pricing.Calculate(pricing.Input{Quantity: 5, Tiers: tiers, BasePrice: dec(100), BaseDiscountedPrice: decPtr(90)})

	assert.True(t, res.Savings.IsZero())
	assert.True(t, res.RawSavings.Equal(dec(-25)), "raw: %s", res.RawSavings)
}

func TestCalculate_CantidadCeroNoFalla(t *testing.T) {
	res := pricing.Calculate(pricing.Input{Quantity: 0, Tiers: referenceTiers(), BasePrice: dec(100)})
	assert.True(t, res.TotalPrice.IsZero())
	assert.Nil(t, res.AppliedTier)
}

// ──────────────────────────────────────────────────────────────────────────────
// Propiedades
// ──────────────────────────────────────────────────────────────────────────────

// La escala aplicada es siempre la de mayor min_quantity <= q, y total = unitario * q.
func TestCalculate_PropiedadEscalaYTotal(t *testing.T) {
	tiers := referenceTiers()
	for q := 1; q <= 120; q++ {
		res := pricing.Calculate(pricing.Input{Quantity: q, Tiers: tiers, BasePrice: dec(100)})

		expectedMin := 0
		for _, tr := range tiers {
			if tr.MinQuantity <= q && tr.MinQuantity > expectedMin {
				expectedMin = tr.MinQuantity
			}
		}
		require.NotNil(t, res.AppliedTier, "q=%d", q)
		assert.Equal(t, expectedMin, res.AppliedTier.MinQuantity, "q=%d", q)
		assert.True(t, res.TotalPrice.Equal(res.UnitPrice.Mul(dec(int64(q)))), "q=%d", q)
	}
}

func TestCalculate_Determinista(t *testing.T) {
	in := pricing.Input{Quantity: 37, Tiers: referenceTiers(), BasePrice: dec(100), BaseDiscountedPrice: decPtr(99)}
	assert.Equal(t, pricing.Calculate(in), pricing.Calculate(in))
}

func TestCalculate_NoModificaLasEscalasDeEntrada(t *testing.T) {
	tiers := referenceTiers()
	_ = pricing.Calculate(pricing.Input{Quantity: 12, Tiers: tiers, BasePrice: dec(100)})
	assert.Equal(t, 50, tiers[0].MinQuantity)
}

// ──────────────────────────────────────────────────────────────────────────────
// ValidateTiers
// ──────────────────────────────────────────────────────────────────────────────

func TestValidateTiers(t *testing.T) {
	cases := []struct {
		name  string
		tiers []entity.PriceTier
		ok    bool
	}{
		{"válidas", referenceTiers(), true},
		{"vacías", nil, true},
		{"min_quantity cero", []entity.PriceTier{tier(0, 10)}, false},
		{"duplicadas", []entity.PriceTier{tier(5, 10), tier(5, 9)}, false},
		{"precio negativo", []entity.PriceTier{tier(5, -1)}, false},
		{"descuento mayor", []entity.PriceTier{{MinQuantity: 5, UnitPrice: dec(10), DiscountedUnitPrice: decPtr(10)}}, false},
		{"descuento menor", []entity.PriceTier{{MinQuantity: 5, UnitPrice: dec(10), DiscountedUnitPrice: decPtr(8)}}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := pricing.ValidateTiers(tc.tiers)
			if tc.ok {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}
