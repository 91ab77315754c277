// Package pdf genera el catálogo imprimible de una vitrina.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Nombre de la tienda + slug  │  Fecha de emisión     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CONTACTO: WhatsApp / Bio                                    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Producto | Categorías | Precio | Promoción           │
//	│         └ escalas: a partir de N un. → precio unitario       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: total de productos + leyenda                        │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Vitrine-api/internal/application/catalog"
	"github.com/jhoicas/Vitrine-api/internal/domain/pricing"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 120, Green: 40, Blue: 90}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorAccent  = &props.Color{Red: 20, Green: 120, Blue: 60}
)

// ── Generator ─────────────────────────────────────────────────────────────────

var _ catalog.PDFGenerator = (*MarotoPDFGenerator)(nil)

// MarotoPDFGenerator implementa catalog.PDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// GenerateCatalogPDF genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateCatalogPDF(_ context.Context, doc catalog.Document) ([]byte, error) {
	if doc.Store == nil {
		return nil, fmt.Errorf("pdf: documento sin tienda")
	}
	storeName := nonEmpty(doc.Store.StoreName, doc.Store.Name)

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Catálogo "+storeName, true).
		WithAuthor(storeName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(doc, storeName))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(contactRow(doc))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, item := range doc.Items {
		m.AddRows(productRows(item)...)
	}

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow(len(doc.Items)))

	out, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return out.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: nombre de la tienda + slug (izq) y fecha de emisión (der).
func headerRow(doc catalog.Document, storeName string) core.Row {
	slug := "vitrine não publicada"
	if doc.Store.StoreSlug != "" {
		slug = "/loja/" + doc.Store.StoreSlug
	}
	return row.New(16).Add(
		col.New(8).Add(
			text.New(storeName, props.Text{
				Style: fontstyle.Bold, Size: 14, Color: colorPrimary, Top: 1,
			}),
			text.New(slug, props.Text{Size: 8, Top: 9, Color: colorGray}),
		),
		col.New(4).Add(
			text.New("CATÁLOGO", props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New("Emitido em "+doc.GeneratedAt.Format("02/01/2006"), props.Text{
				Size: 8, Align: align.Right, Top: 8, Color: colorGray,
			}),
		),
	)
}

// contactRow: WhatsApp y bio del vendedor.
func contactRow(doc catalog.Document) core.Row {
	return row.New(12).Add(
		col.New(12).Add(
			text.New("CONTATO", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("WhatsApp: %s   |   %s",
				nonEmpty(doc.Store.WhatsApp, "-"),
				nonEmpty(doc.Store.Bio, ""),
			), props.Text{Size: 8, Top: 7, Color: colorGray}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Produto", 5, align.Left),
		h("Categorias", 3, align.Left),
		h("Preço", 2, align.Right),
		h("Promoção", 2, align.Right),
	)
}

// productRows: fila principal del producto y una fila por escala de precio.
func productRows(item catalog.Item) []core.Row {
	p := item.Product
	promo := "-"
	if p.DiscountedPrice != nil {
		promo = formatBRL(*p.DiscountedPrice)
	}
	rows := []core.Row{
		row.New(7).Add(
			col.New(5).Add(text.New(p.Name, props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Left, Top: 1, Left: 1,
			})),
			col.New(3).Add(text.New(strings.Join(p.Categories, ", "), props.Text{
				Size: 7, Align: align.Left, Top: 1, Left: 1, Color: colorGray,
			})),
			col.New(2).Add(text.New(formatBRL(p.Price), props.Text{
				Size: 8, Align: align.Right, Top: 1, Right: 1,
			})),
			col.New(2).Add(text.New(promo, props.Text{
				Size: 8, Align: align.Right, Top: 1, Right: 1, Color: colorAccent,
			})),
		),
	}
	for _, t := range item.Tiers {
		rows = append(rows, row.New(5).Add(
			col.New(1),
			col.New(7).Add(text.New(fmt.Sprintf("a partir de %d un.", t.MinQuantity), props.Text{
				Size: 7, Top: 0.5, Color: colorGray,
			})),
			col.New(4).Add(text.New(formatBRL(pricing.TierUnitPrice(t))+" / un.", props.Text{
				Size: 7, Align: align.Right, Top: 0.5, Right: 1, Color: colorAccent,
			})),
		))
	}
	return rows
}

func footerRow(total int) core.Row {
	return row.New(10).Add(col.New(12).Add(
		text.New(fmt.Sprintf("%d produto(s). Preços sujeitos a alteração sem aviso prévio.", total), props.Text{
			Size: 7, Color: colorGray, Top: 2, Align: align.Center,
		}),
	))
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// formatBRL formatea en reales: 1234.5 → "R$ 1.234,50".
func formatBRL(d decimal.Decimal) string {
	s := d.Abs().StringFixed(2)
	intPart, frac, _ := strings.Cut(s, ".")
	out := "R$ " + formatThousands(intPart) + "," + frac
	if d.IsNegative() {
		return "-" + out
	}
	return out
}

// formatThousands inserta puntos de miles en un string numérico sin decimales.
// Ej: "25000" → "25.000", "1000000" → "1.000.000"
func formatThousands(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return string(buf)
}
