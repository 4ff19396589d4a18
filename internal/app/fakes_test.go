package app_test

import (
	"context"
	"errors"
	"sync"

	"catalog_sync/internal/domain"
)

var errFetch = errors.New("fetch failed")

type fakeFetcher struct {
	mu      sync.Mutex
	entries map[string]domain.CacheEntry
	calls   []string
}

func (f *fakeFetcher) Fetch(_ context.Context, asin string) (domain.CacheEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, asin)
	e, ok := f.entries[asin]
	if !ok {
		return domain.CacheEntry{}, errFetch
	}
	return e, nil
}

type fakeStore struct {
	m     domain.CacheMap
	saves int
	err   error
}

func (s *fakeStore) Load(context.Context) (domain.CacheMap, error) {
	if s.err != nil {
		return nil, s.err
	}
	out := domain.CacheMap{}
	for k, v := range s.m {
		out[k] = v
	}
	return out, nil
}

func (s *fakeStore) Save(_ context.Context, m domain.CacheMap) error {
	s.saves++
	s.m = m
	return nil
}

type fakeRecords struct {
	recs []domain.ProductRecord
	err  error
}

func (f fakeRecords) Records(context.Context) ([]domain.ProductRecord, error) { return f.recs, f.err }

type fakeCurated map[string][]domain.CuratedEntry

func (f fakeCurated) Sections(context.Context) (map[string][]domain.CuratedEntry, error) {
	return f, nil
}

type fakeOutputs struct {
	written map[string]any
}

func (f *fakeOutputs) Write(_ context.Context, name string, v any) error {
	if f.written == nil {
		f.written = map[string]any{}
	}
	f.written[name] = v
	return nil
}

type fakeDocument struct {
	text   string
	writes int
}

func (d *fakeDocument) Read(context.Context) (string, error) { return d.text, nil }

func (d *fakeDocument) Write(_ context.Context, text string) error {
	d.text = text
	d.writes++
	return nil
}

type fakeNotifier struct {
	reports []domain.RunReport
}

func (n *fakeNotifier) Notify(_ context.Context, r domain.RunReport) error {
	n.reports = append(n.reports, r)
	return nil
}

func ptrF(f float64) *float64 { return &f }
func ptrS(s string) *string   { return &s }
