// Package feed serializa el catálogo público de una vitrina como feed RSS 2.0
// con la extensión de productos de Google Merchant (namespace g:).
package feed

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Vitrine-api/internal/application/catalog"
	"github.com/jhoicas/Vitrine-api/internal/domain/entity"
)

// NamespaceG namespace de los atributos de producto.
const NamespaceG = "http://base.google.com/ns/1.0"

const (
	currency           = "BRL"
	maxAdditionalImage = 10
)

var _ catalog.FeedEncoder = (*RSSEncoder)(nil)

// RSSEncoder implementa catalog.FeedEncoder.
type RSSEncoder struct{}

func NewRSSEncoder() *RSSEncoder { return &RSSEncoder{} }

// EncodeFeed arma <rss><channel> con un <item> por producto del documento.
func (e *RSSEncoder) EncodeFeed(doc catalog.Document) ([]byte, error) {
	if doc.Store == nil {
		return nil, fmt.Errorf("feed: documento sin tienda")
	}
	x := etree.NewDocument()
	x.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	rss := x.CreateElement("rss")
	rss.CreateAttr("version", "2.0")
	rss.CreateAttr("xmlns:g", NamespaceG)

	channel := rss.CreateElement("channel")
	channel.CreateElement("title").SetText(nonEmpty(doc.Store.StoreName, doc.Store.Name))
	channel.CreateElement("link").SetText(doc.BaseURL)
	channel.CreateElement("description").SetText(nonEmpty(doc.Store.Bio, "Catálogo de produtos"))
	if !doc.GeneratedAt.IsZero() {
		channel.CreateElement("lastBuildDate").SetText(doc.GeneratedAt.UTC().Format("Mon, 02 Jan 2006 15:04:05 -0700"))
	}

	for _, item := range doc.Items {
		if item.Product == nil {
			continue
		}
		writeItem(channel, doc.BaseURL, item)
	}

	x.Indent(2)
	var out bytes.Buffer
	if _, err := x.WriteTo(&out); err != nil {
		return nil, fmt.Errorf("feed: serializar: %w", err)
	}
	return out.Bytes(), nil
}

func writeItem(channel *etree.Element, baseURL string, item catalog.Item) {
	p := item.Product
	el := channel.CreateElement("item")
	g := func(tag, value string) {
		if value != "" {
			el.CreateElement("g:" + tag).SetText(value)
		}
	}

	g("id", p.ID)
	el.CreateElement("title").SetText(p.Name)
	el.CreateElement("link").SetText(baseURL + "/produto/" + p.ID)
	el.CreateElement("description").SetText(nonEmpty(p.Description, p.Name))
	g("price", money(p.Price))
	if p.DiscountedPrice != nil {
		g("sale_price", money(*p.DiscountedPrice))
	}
	g("availability", availability(p))
	g("condition", "new")

	featured, others := splitImages(item.Images)
	g("image_link", featured)
	for i, url := range others {
		if i == maxAdditionalImage {
			break
		}
		g("additional_image_link", url)
	}
	if len(p.Categories) > 0 {
		g("product_type", strings.Join(p.Categories, " > "))
	}
	if len(p.Sizes) > 0 {
		g("size", strings.Join(p.Sizes, "/"))
	}
	if len(p.Colors) > 0 {
		g("color", strings.Join(p.Colors, "/"))
	}
}

// splitImages separa la imagen destacada (o la primera) del resto de la galería.
func splitImages(images []*entity.ProductImage) (string, []string) {
	featured := -1
	for i, img := range images {
		if img.IsFeatured {
			featured = i
			break
		}
	}
	if featured < 0 && len(images) > 0 {
		featured = 0
	}
	if featured < 0 {
		return "", nil
	}
	others := make([]string, 0, len(images)-1)
	for i, img := range images {
		if i != featured {
			others = append(others, img.URL)
		}
	}
	return images[featured].URL, others
}

func availability(p *entity.Product) string {
	if p.IsActive {
		return "in stock"
	}
	return "out of stock"
}

// money formato exigido por el feed: "90.00 BRL".
func money(d decimal.Decimal) string {
	return d.StringFixed(2) + " " + currency
}

func nonEmpty(s, fallback string) string {
	if strings.TrimSpace(s) != "" {
		return s
	}
	return fallback
}
