package app

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/rs/zerolog/log"

	"catalog_sync/internal/adapters/observability"
	"catalog_sync/internal/domain"
	"catalog_sync/internal/patch"
	"catalog_sync/internal/render"
)

// curatedRegion binds a curated section to the document region showing it.
type curatedRegion struct {
	section string
	style   domain.CardStyle
	loc     patch.Locator
}

var curatedRegions = []curatedRegion{
	{"ladies_ranking", domain.CardRanking, patch.ClassLocator{Class: "ranking-scroll", Occurrence: 1}},
	{"mens_ranking", domain.CardRanking, patch.ClassLocator{Class: "ranking-scroll", Occurrence: 2}},
	{"ladies_all", domain.CardGridItem, patch.ClassLocator{Class: "items-grid", Occurrence: 1}},
	{"mens_all", domain.CardGridItem, patch.ClassLocator{Class: "items-grid", Occurrence: 2}},
}

type Pipeline struct {
	records  domain.RecordSource
	curated  domain.CuratedSource
	enrich   *EnrichmentService
	outputs  domain.OutputSink
	document domain.Document
	notifier domain.Notifier
	now      func() time.Time
}

func NewPipeline(rs domain.RecordSource, cs domain.CuratedSource, e *EnrichmentService, out domain.OutputSink, doc domain.Document, n domain.Notifier) *Pipeline {
	return &Pipeline{records: rs, curated: cs, enrich: e, outputs: out, document: doc, notifier: n, now: time.Now}
}

type eligible struct {
	meta domain.CategoryMeta
	rec  domain.ProductRecord
}

// categoryOutput is what one category contributes to the side outputs and
// the page.
type categoryOutput struct {
	meta   domain.CategoryMeta
	flat   []domain.Product
	groups []domain.Group
	cards  []string
}

// Run executes one full update: load, enrich, build, write side outputs and
// patch the document. Region failures are logged and skipped; everything
// else that fails is returned.
func (p *Pipeline) Run(ctx context.Context, force []string) (domain.RunReport, error) {
	started := p.now()
	report := domain.RunReport{StartedAt: started, Categories: map[string]int{}, Curated: map[string]int{}}

	recs, err := p.records.Records(ctx)
	if err != nil {
		return report, fmt.Errorf("load records: %w", err)
	}
	report.Records = len(recs)
	if err := p.outputs.Write(ctx, domain.OutputRecords, recs); err != nil {
		return report, err
	}

	sections, err := p.curated.Sections(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("curated sections unavailable, continuing without them")
		sections = nil
	}

	valid := filterEligible(recs)
	report.Eligible = len(valid)

	cache, stats, err := p.enrich.Update(ctx, fetchTargets(valid, sections), force)
	report.Fetch = stats
	if err != nil {
		return report, fmt.Errorf("enrich: %w", err)
	}

	compiled := map[string][]domain.Product{}
	for _, v := range valid {
		prod, ok := BuildProduct(v.rec.ASIN, v.rec.Name, cache, v.rec.PriceExcel, "")
		observability.ObserveProduct(v.meta.Key, ok)
		if !ok {
			log.Debug().Str("asin", v.rec.ASIN).Str("category", v.meta.Key).Msg("product dropped, no price or image")
			continue
		}
		compiled[v.meta.Key] = append(compiled[v.meta.Key], prod)
	}
	prepared := PrepareCurated(sections, cache)

	cats := buildCategories(compiled)
	for _, c := range cats {
		report.Categories[c.meta.Key] = len(c.flat)
	}
	for k, items := range prepared {
		report.Curated[k] = len(items)
	}
	if err := p.writeSideOutputs(ctx, cats, prepared); err != nil {
		return report, err
	}

	original, err := p.document.Read(ctx)
	if err != nil {
		return report, fmt.Errorf("read document: %w", err)
	}
	doc := original
	for _, c := range cats {
		if len(c.cards) == 0 {
			continue
		}
		doc = p.apply(doc, patch.PageLocator{Page: c.meta.Page}, c.cards, &report)
	}
	for _, r := range curatedRegions {
		items := prepared[r.section]
		if len(items) == 0 {
			continue
		}
		doc = p.apply(doc, r.loc, render.Curated(r.style, items), &report)
	}
	doc = patch.EnsureSnippet(doc, render.PlaceholderCSS, render.PlaceholderAnchor)

	if doc != original {
		if err := p.document.Write(ctx, doc); err != nil {
			return report, fmt.Errorf("write document: %w", err)
		}
		report.DocumentChanged = true
	}
	report.DocumentDigest = PageDigest(doc)
	report.Duration = p.now().Sub(started)

	log.Info().
		Int("records", report.Records).
		Int("eligible", report.Eligible).
		Int("fetched", stats.Fetched).
		Int("regions_skipped", len(report.SkippedRegions())).
		Bool("document_changed", report.DocumentChanged).
		Str("document_digest", report.DocumentDigest).
		Msg("catalog run completed")

	if p.notifier != nil {
		if err := p.notifier.Notify(ctx, report); err != nil {
			log.Warn().Err(err).Msg("run summary not sent")
		}
	}
	return report, nil
}

// PageDigest fingerprints a page so runs can be compared without diffing it.
func PageDigest(text string) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(text))
}

// apply replaces one region, recording the outcome. On failure the document
// is returned unchanged.
func (p *Pipeline) apply(doc string, loc patch.Locator, cards []string, report *domain.RunReport) string {
	res := domain.RegionResult{Region: loc.String(), Cards: len(cards)}
	next, err := patch.ReplaceInner(doc, loc, cards)
	if err != nil {
		res.Err = err.Error()
		res.Cards = 0
		log.Warn().Str("region", res.Region).Err(err).Msg("region skipped")
	}
	observability.ObserveRegion(res.Region, err == nil)
	report.Regions = append(report.Regions, res)
	if err != nil {
		return doc
	}
	return next
}

// filterEligible keeps rows with a known category, stock above zero and an
// ASIN.
func filterEligible(recs []domain.ProductRecord) []eligible {
	out := make([]eligible, 0, len(recs))
	for _, r := range recs {
		meta, ok := domain.NormaliseCategory(r.CategoryRaw)
		if !ok {
			continue
		}
		if ParseStock(r.Stock) <= 0 {
			continue
		}
		r.ASIN = strings.TrimSpace(r.ASIN)
		if r.ASIN == "" {
			continue
		}
		out = append(out, eligible{meta: meta, rec: r})
	}
	return out
}

// fetchTargets lists every ASIN to enrich once, spreadsheet rows first, then
// curated entries by section name.
func fetchTargets(valid []eligible, sections map[string][]domain.CuratedEntry) []string {
	seen := map[string]struct{}{}
	var out []string
	add := func(asin string) {
		asin = strings.TrimSpace(asin)
		if asin == "" {
			return
		}
		if _, dup := seen[asin]; dup {
			return
		}
		seen[asin] = struct{}{}
		out = append(out, asin)
	}
	for _, v := range valid {
		add(v.rec.ASIN)
	}
	keys := make([]string, 0, len(sections))
	for k := range sections {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		for _, e := range sections[k] {
			add(e.ASIN)
		}
	}
	return out
}

// buildCategories ranks and renders every category. Placeholder categories
// always appear with empty lists and placeholder cards; other categories
// without products are left out entirely.
func buildCategories(compiled map[string][]domain.Product) []categoryOutput {
	var out []categoryOutput
	for _, meta := range domain.Categories() {
		if meta.Card == domain.CardPlaceholder {
			out = append(out, categoryOutput{
				meta:   meta,
				flat:   []domain.Product{},
				groups: []domain.Group{},
				cards:  render.Placeholders(render.PlaceholderCount),
			})
			continue
		}
		products := compiled[meta.Key]
		if len(products) == 0 {
			continue
		}
		flat, groups := GroupAndSort(products)
		style := domain.CardItem
		if meta.Card == domain.CardProduct {
			style = domain.CardProduct
		}
		out = append(out, categoryOutput{
			meta:   meta,
			flat:   flat,
			groups: groups,
			cards:  render.Products(style, flat),
		})
	}
	return out
}

func priceStatuses(products []domain.Product) []domain.PriceStatus {
	out := make([]domain.PriceStatus, 0, len(products))
	for _, p := range products {
		out = append(out, domain.PriceStatus{ASIN: p.ASIN, Price: p.Price, HasPrice: true, HasImage: true})
	}
	return out
}

func (p *Pipeline) writeSideOutputs(ctx context.Context, cats []categoryOutput, prepared map[string][]domain.CuratedItem) error {
	compiled := map[string][]domain.Product{}
	grouped := map[string][]domain.Group{}
	prices := map[string][]string{}
	status := map[string][]domain.PriceStatus{}

	for _, c := range cats {
		key := c.meta.Key
		compiled[key] = c.flat
		grouped[key] = c.groups
		list := make([]string, 0, len(c.flat))
		for _, prod := range c.flat {
			list = append(list, prod.Price)
		}
		prices[key] = list
		status[key] = priceStatuses(c.flat)
	}
	for key, items := range prepared {
		products := make([]domain.Product, 0, len(items))
		for _, it := range items {
			products = append(products, it.Product)
		}
		status["specified_"+key] = priceStatuses(products)
	}

	for _, o := range []struct {
		name string
		v    any
	}{
		{domain.OutputCompiled, compiled},
		{domain.OutputGrouped, grouped},
		{domain.OutputPriceList, prices},
		{domain.OutputPriceStatus, status},
	} {
		if err := p.outputs.Write(ctx, o.name, o.v); err != nil {
			return err
		}
	}
	return nil
}
