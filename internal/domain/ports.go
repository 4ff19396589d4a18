package domain

import "context"

// Fetcher retrieves live enrichment for one ASIN. Any error means the
// entry must not be updated.
type Fetcher interface {
	Fetch(ctx context.Context, asin string) (CacheEntry, error)
}

// EntryStore persists the enrichment cache as a whole.
type EntryStore interface {
	Load(ctx context.Context) (CacheMap, error)
	Save(ctx context.Context, m CacheMap) error
}

// Notifier delivers the summary of a finished run.
type Notifier interface {
	Notify(ctx context.Context, r RunReport) error
}

// RecordSource yields the spreadsheet rows of one run.
type RecordSource interface {
	Records(ctx context.Context) ([]ProductRecord, error)
}

// CuratedSource yields the hand-picked sections keyed by section name.
type CuratedSource interface {
	Sections(ctx context.Context) (map[string][]CuratedEntry, error)
}

// OutputSink persists one named side output.
type OutputSink interface {
	Write(ctx context.Context, name string, v any) error
}

// Document is the page whose regions get rewritten.
type Document interface {
	Read(ctx context.Context) (string, error)
	Write(ctx context.Context, text string) error
}
