package domain

import "errors"

var (
	// ErrBadStatus is returned when the marketplace answers with a non-200 status.
	ErrBadStatus = errors.New("marketplace: unexpected status")

	// ErrNoImage is returned when no image could be resolved from a product page.
	ErrNoImage = errors.New("marketplace: no image found")

	// ErrRegionNotFound is returned when a document region marker is absent.
	ErrRegionNotFound = errors.New("region marker not found")

	// ErrUnbalanced is returned when a region's tags never close.
	ErrUnbalanced = errors.New("unbalanced tag structure")

	// ErrUnknownBackend is returned for an unsupported cache backend name.
	ErrUnknownBackend = errors.New("unknown cache backend")
)
