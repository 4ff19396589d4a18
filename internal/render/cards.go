// Package render turns resolved products into the markup fragments injected
// into the catalog page. Fragments are self-contained and carry no document
// level indentation.
package render

import (
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"catalog_sync/internal/domain"
)

// PlaceholderCount is how many placeholder cards a placeholder category shows.
const PlaceholderCount = 6

// Card is the data one fragment is rendered from.
type Card struct {
	Product     domain.Product
	DisplayName string // defaults to Product.Name
	Position    int    // ranking number, ranking style only
}

func (c Card) name() string {
	if c.DisplayName != "" {
		return c.DisplayName
	}
	return c.Product.Name
}

// Render returns the fragment for one card in the given style. Unknown
// styles render as item cards.
func Render(style domain.CardStyle, c Card) string {
	switch style {
	case domain.CardRanking:
		return rankingItem(c)
	case domain.CardGridItem:
		return gridItem(c)
	case domain.CardProduct:
		return productCard(c)
	case domain.CardPlaceholder:
		return placeholder()
	default:
		return itemCard(c)
	}
}

// Products renders a category's products in the category's card style.
// Placeholder categories ignore products and yield PlaceholderCount cards.
func Products(style domain.CardStyle, products []domain.Product) []string {
	if style == domain.CardPlaceholder {
		return Placeholders(PlaceholderCount)
	}
	out := make([]string, 0, len(products))
	for _, p := range products {
		out = append(out, Render(style, Card{Product: p}))
	}
	return out
}

// Curated renders curated items, numbering ranking cards by their order.
func Curated(style domain.CardStyle, items []domain.CuratedItem) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, Render(style, Card{Product: it.Product, DisplayName: it.DisplayName, Position: it.Order}))
	}
	return out
}

func Placeholders(n int) []string {
	out := make([]string, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, placeholder())
	}
	return out
}

func esc(s string) string { return html.EscapeString(s) }

func rankingItem(c Card) string {
	p := c.Product
	return strings.Join([]string{
		`<div class="ranking-item">`,
		`  <div class="ranking-number">` + esc(strconv.Itoa(c.Position)) + `</div>`,
		`  <a class="ranking-link" href="` + esc(p.URL) + `" rel="noopener noreferrer" target="_blank">`,
		`    <div class="ranking-image">`,
		`    <img alt="` + esc(c.name()) + `" src="` + esc(p.Image) + `"/>`,
		`    </div>`,
		`    <div class="ranking-info">`,
		`    <div class="ranking-name">` + esc(c.name()) + `</div>`,
		`    <div class="ranking-price">` + esc(p.Price) + `</div>`,
		`    </div>`,
		`  </a>`,
		`</div>`,
	}, "\n")
}

func gridItem(c Card) string {
	p := c.Product
	return strings.Join([]string{
		`<a class="item-card" href="` + esc(p.URL) + `" rel="noopener noreferrer" target="_blank">`,
		`  <div class="item-image">`,
		`  <img alt="` + esc(c.name()) + `" src="` + esc(p.Image) + `"/>`,
		`  </div>`,
		`  <div class="item-info">`,
		`  <div class="item-name">` + esc(c.name()) + `</div>`,
		`  <div class="item-price">` + esc(p.Price) + `</div>`,
		`  </div>`,
		`</a>`,
	}, "\n")
}

func itemCard(c Card) string {
	p := c.Product
	return strings.Join([]string{
		`<a class="item-card" href="` + esc(p.URL) + `" rel="noopener noreferrer" target="_blank">`,
		`  <div class="item-image">`,
		`  <img alt="` + esc(c.name()) + `" src="` + esc(p.Image) + `"/>`,
		`  </div>`,
		`  <div class="item-info">`,
		`  <div class="item-price">` + esc(p.Price) + `</div>`,
		`  </div>`,
		`</a>`,
	}, "\n")
}

func productCard(c Card) string {
	p := c.Product
	return strings.Join([]string{
		`<a class="product-card" href="` + esc(p.URL) + `" target="_blank">`,
		`  <div class="product-image">`,
		`  <img alt="` + esc(c.name()) + `" src="` + esc(p.Image) + `"/>`,
		`  </div>`,
		`  <div class="product-info">`,
		`  <div class="product-price">` + esc(p.Price) + `</div>`,
		`  </div>`,
		`</a>`,
	}, "\n")
}

func placeholder() string {
	return strings.Join([]string{
		`<div class="product-card coming-soon-card">`,
		`  <div class="product-image">`,
		`  <div class="coming-soon-icon" aria-hidden="true">&#8987;</div>`,
		`  </div>`,
		`  <div class="product-info">`,
		`  <div class="coming-soon-label">Coming Soon</div>`,
		`  </div>`,
		`</div>`,
	}, "\n")
}
