package directory

import (
	"context"
	"errors"
	"iter"
	"trailblazer-service/internal/ports"
)

// ErrMockDirectory is yielded by MockDirectory when FailAfter is set without Err.
var ErrMockDirectory = errors.New("mock directory failure")

// MockDirectory serves fixed records per region. When FailAfter is
// non-negative, Err (or ErrMockDirectory) is yielded after that many
// records of any region.
type MockDirectory struct {
	regions   map[string][]ports.DirectoryRecord
	Err       error
	FailAfter int
}

func NewMockDirectory(regions map[string][]ports.DirectoryRecord) *MockDirectory {
	return &MockDirectory{regions: regions, FailAfter: -1}
}

func (m *MockDirectory) FetchByRegion(ctx context.Context, regionCode string) iter.Seq2[ports.DirectoryRecord, error] {
	return func(yield func(ports.DirectoryRecord, error) bool) {
		for i, rec := range m.regions[regionCode] {
			if m.FailAfter >= 0 && i == m.FailAfter {
				err := m.Err
				if err == nil {
					err = ErrMockDirectory
				}
				yield(ports.DirectoryRecord{}, err)
				return
			}
			if err := ctx.Err(); err != nil {
				yield(ports.DirectoryRecord{}, err)
				return
			}
			if !yield(rec, nil) {
				return
			}
		}
	}
}
