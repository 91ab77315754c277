package pdf_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Vitrine-api/internal/application/catalog"
	"github.com/jhoicas/Vitrine-api/internal/domain/entity"
	"github.com/jhoicas/Vitrine-api/internal/infrastructure/pdf"
)

func TestFormatBRL(t *testing.T) {
	cases := map[string]string{
		"0":       "R$ 0,00",
		"9.9":     "R$ 9,90",
		"1234.5":  "R$ 1.234,50",
		"1000000": "R$ 1.000.000,00",
		"-12.345": "-R$ 12,35",
		"999.999": "R$ 1.000,00",
	}
	for in, want := range cases {
		assert.Equal(t, want, pdf.FormatBRL(decimal.RequireFromString(in)), in)
	}
}

func TestGenerateCatalogPDF_GeneraDocumentoValido(t *testing.T) {
	promo := decimal.NewFromInt(80)
	tierPromo := decimal.NewFromInt(70)
	doc := catalog.Document{
		Store: &entity.User{ID: "u1", Name: "Ana", StoreName: "Ateliê Flor", StoreSlug: "atelie-flor", WhatsApp: "5511999990000"},
		Items: []catalog.Item{
			{
				Product: &entity.Product{ID: "p1", Name: "Vestido Midi", Price: decimal.NewFromInt(100), DiscountedPrice: &promo, Categories: []string{"vestidos"}},
				Tiers: []entity.PriceTier{
					{MinQuantity: 10, UnitPrice: decimal.NewFromInt(90)},
					{MinQuantity: 50, UnitPrice: decimal.NewFromInt(85), DiscountedUnitPrice: &tierPromo},
				},
			},
			{Product: &entity.Product{ID: "p2", Name: "Blusa", Price: decimal.NewFromInt(45)}},
		},
		GeneratedAt: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
	}

	out, err := pdf.NewMarotoPDFGenerator().GenerateCatalogPDF(context.Background(), doc)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestGenerateCatalogPDF_CatalogoVacio(t *testing.T) {
	doc := catalog.Document{Store: &entity.User{ID: "u1", Name: "Ana"}, GeneratedAt: time.Now()}

	out, err := pdf.NewMarotoPDFGenerator().GenerateCatalogPDF(context.Background(), doc)
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}

func TestGenerateCatalogPDF_SinTiendaEsError(t *testing.T) {
	_, err := pdf.NewMarotoPDFGenerator().GenerateCatalogPDF(context.Background(), catalog.Document{})
	assert.Error(t, err)
}
