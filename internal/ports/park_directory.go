package ports

import (
	"context"
	"iter"
)

// Raw park record as received from the external directory.
//
// Fields are kept as the directory sends them; only the normalizer
// interprets them. Latitude and Longitude are nil when the directory
// omitted them and may hold non-numeric text.
type DirectoryRecord struct {
	ParkCode    *string
	FullName    *string
	Name        *string
	States      *string
	Latitude    *string
	Longitude   *string
	Description *string
	URL         *string
	Designation *string
}

// Contract for reading park records from the external directory.
type ParkDirectory interface {
	// Lazily yield every record for an uppercase region code, fetching pages
	// on demand. A failure is yielded once as a non-nil error and ends the sequence.
	FetchByRegion(ctx context.Context, regionCode string) iter.Seq2[DirectoryRecord, error]
}
