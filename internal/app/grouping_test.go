package app_test

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalog_sync/internal/app"
	"catalog_sync/internal/domain"
)

func prod(asin, image string, price int) domain.Product {
	return domain.Product{ASIN: asin, Image: image, PriceValue: price, Price: domain.FormatYen(price)}
}

func asins(ps []domain.Product) []string {
	out := make([]string, 0, len(ps))
	for _, p := range ps {
		out = append(out, p.ASIN)
	}
	return out
}

func TestGroupAndSort_Order(t *testing.T) {
	in := []domain.Product{
		prod("C", "https://img/red._AC_.jpg", 3000),
		prod("A", "https://img/blue._SX1_.jpg", 5000),
		prod("B", "https://img/red._SL2_.jpg", 3000),
		prod("D", "https://img/blue._SY3_.jpg", 1000),
		prod("E", "https://img/solo.jpg", 3000),
	}
	flat, groups := app.GroupAndSort(in)

	require.Len(t, groups, 3)
	assert.Equal(t, []string{"A", "D"}, asins(groups[0]))
	assert.Equal(t, []string{"B", "C"}, asins(groups[1]), "ties broken by ASIN")
	assert.Equal(t, []string{"E"}, asins(groups[2]), "equal top price, B sorts before E")
	assert.Equal(t, []string{"A", "D", "B", "C", "E"}, asins(flat))
}

func TestGroupAndSort_Empty(t *testing.T) {
	flat, groups := app.GroupAndSort(nil)
	assert.Empty(t, flat)
	assert.Empty(t, groups)
}

func TestGroupAndSort_Properties(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	for round := 0; round < 50; round++ {
		var in []domain.Product
		n := 1 + r.Intn(30)
		for i := 0; i < n; i++ {
			img := fmt.Sprintf("https://img/%d._V%d_.jpg", r.Intn(5), i)
			in = append(in, prod(fmt.Sprintf("P%03d", i), img, 100*r.Intn(20)))
		}
		r.Shuffle(len(in), func(i, j int) { in[i], in[j] = in[j], in[i] })

		flat, groups := app.GroupAndSort(in)
		require.Len(t, flat, n)

		var concat []domain.Product
		for gi, g := range groups {
			for i := 1; i < len(g); i++ {
				a, b := g[i-1], g[i]
				require.True(t, a.PriceValue > b.PriceValue || (a.PriceValue == b.PriceValue && a.ASIN < b.ASIN))
				require.Equal(t, g[0].ImageKey(), b.ImageKey())
			}
			if gi > 0 {
				prev := groups[gi-1][0]
				require.True(t, prev.PriceValue > g[0].PriceValue || (prev.PriceValue == g[0].PriceValue && prev.ASIN < g[0].ASIN))
			}
			concat = append(concat, g...)
		}
		require.Equal(t, flat, concat)

		again, _ := app.GroupAndSort(in)
		require.Equal(t, flat, again, "deterministic")
	}
}
