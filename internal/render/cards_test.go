package render_test

import (
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalog_sync/internal/domain"
	"catalog_sync/internal/render"
)

func sample() domain.Product {
	return domain.Product{
		ASIN:       "B000X1",
		Name:       "Silver & Rose <Pendant>",
		Price:      "¥12,800",
		PriceValue: 12800,
		Image:      "https://img.example/p.jpg",
		URL:        "https://www.amazon.co.jp/dp/B000X1",
	}
}

func TestRender_Golden(t *testing.T) {
	tests := []struct {
		name       string
		style      domain.CardStyle
		card       render.Card
		goldenName string
	}{
		{"ranking", domain.CardRanking, render.Card{Product: sample(), DisplayName: "Rose \"No.1\"", Position: 1}, "ranking_item"},
		{"grid item", domain.CardGridItem, render.Card{Product: sample()}, "grid_item"},
		{"item card", domain.CardItem, render.Card{Product: sample()}, "item_card"},
		{"product card", domain.CardProduct, render.Card{Product: sample()}, "product_card"},
		{"placeholder", domain.CardPlaceholder, render.Card{}, "placeholder"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := goldie.New(t)
			g.Assert(t, tt.goldenName, []byte(render.Render(tt.style, tt.card)))
		})
	}
}

func TestRender_EscapesMarkupCharacters(t *testing.T) {
	out := render.Render(domain.CardItem, render.Card{Product: sample()})
	assert.NotContains(t, out, "<Pendant>")
	assert.Contains(t, out, "Silver &amp; Rose &lt;Pendant&gt;")
}

func TestRender_UnknownStyleFallsBackToItemCard(t *testing.T) {
	c := render.Card{Product: sample()}
	assert.Equal(t, render.Render(domain.CardItem, c), render.Render(domain.CardStyle("mystery"), c))
}

func TestProducts_PlaceholderIgnoresProducts(t *testing.T) {
	out := render.Products(domain.CardPlaceholder, []domain.Product{sample()})
	require.Len(t, out, render.PlaceholderCount)
	for _, f := range out {
		assert.True(t, strings.HasPrefix(f, `<div class="product-card coming-soon-card">`))
	}
}

func TestProducts_KeepsOrder(t *testing.T) {
	a, b := sample(), sample()
	b.URL = "https://www.amazon.co.jp/dp/B000X2"
	out := render.Products(domain.CardProduct, []domain.Product{a, b})
	require.Len(t, out, 2)
	assert.Contains(t, out[0], "/dp/B000X1")
	assert.Contains(t, out[1], "/dp/B000X2")
}

func TestCurated_NumbersRankingByOrder(t *testing.T) {
	items := []domain.CuratedItem{
		{Order: 1, DisplayName: "First", Product: sample()},
		{Order: 2, DisplayName: "", Product: sample()},
	}
	out := render.Curated(domain.CardRanking, items)
	require.Len(t, out, 2)
	assert.Contains(t, out[0], `<div class="ranking-number">1</div>`)
	assert.Contains(t, out[0], `<div class="ranking-name">First</div>`)
	assert.Contains(t, out[1], `<div class="ranking-number">2</div>`)
	assert.Contains(t, out[1], `<div class="ranking-name">Silver &amp; Rose &lt;Pendant&gt;</div>`)
}
