package domain

import "time"

// FetchStats counts what one enrichment pass did.
type FetchStats struct {
	Checked int `json:"checked"`
	Hits    int `json:"hits"`
	Fetched int `json:"fetched"`
	Failed  int `json:"failed"`
}

// RegionResult is the outcome of one document region replacement.
type RegionResult struct {
	Region string `json:"region"`
	Cards  int    `json:"cards"`
	Err    string `json:"error,omitempty"`
}

func (r RegionResult) OK() bool { return r.Err == "" }

// RunReport summarises one pipeline run.
type RunReport struct {
	StartedAt       time.Time      `json:"started_at"`
	Duration        time.Duration  `json:"duration"`
	Records         int            `json:"records"`
	Eligible        int            `json:"eligible"`
	Fetch           FetchStats     `json:"fetch"`
	Categories      map[string]int `json:"categories"`
	Curated         map[string]int `json:"curated"`
	Regions         []RegionResult `json:"regions"`
	DocumentChanged bool           `json:"document_changed"`
	DocumentDigest  string         `json:"document_digest"` // xxhash64 of the page after the run
}

// SkippedRegions returns the regions that could not be replaced.
func (r RunReport) SkippedRegions() []RegionResult {
	var out []RegionResult
	for _, reg := range r.Regions {
		if !reg.OK() {
			out = append(out, reg)
		}
	}
	return out
}
