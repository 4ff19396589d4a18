package app

import "time"

// SetClock pins the service clock in tests.
func (s *EnrichmentService) SetClock(now func() time.Time) { s.now = now }

// SetClock pins the pipeline clock in tests.
func (p *Pipeline) SetClock(now func() time.Time) { p.now = now }
