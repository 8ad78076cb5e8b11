package services

import (
	"cmp"
	"context"
	"fmt"
	"math"
	"slices"
	"time"
	"trailblazer-service/internal/domain"
	"trailblazer-service/internal/platform/metrics"
	"trailblazer-service/internal/ports"
)

type NearbyQuery struct {
	// Nil lists every park in storage order.
	Center   *domain.Coordinates
	RadiusKm float64
	Limit    int
	Offset   int
}

// NearbyParks returns one page of parks within RadiusKm of Center, ordered by
// name. Distance only filters; it is not a sort key.
//
// Every located park is scanned on each call. Parks without coordinates
// never match a centered query.
func NearbyParks(ctx context.Context, repo ports.ParkRepository, q NearbyQuery) ([]*domain.Park, error) {
	if q.Limit < 0 {
		return nil, &domain.ValidationError{Field: "limit", Reason: "must not be negative"}
	}
	if q.Offset < 0 {
		return nil, &domain.ValidationError{Field: "offset", Reason: "must not be negative"}
	}

	if q.Center == nil {
		parks, err := repo.List(ctx, q.Offset, q.Limit)
		if err != nil {
			return nil, fmt.Errorf("nearby parks: list: %w", err)
		}
		return parks, nil
	}

	if math.IsNaN(q.RadiusKm) || q.RadiusKm < 0 {
		return nil, &domain.ValidationError{Field: "radius", Reason: "must be a non-negative number"}
	}

	start := time.Now()
	defer func() {
		metrics.NearbyQueryDurationMs.Observe(float64(time.Since(start).Microseconds()) / 1000)
	}()

	located, err := repo.ListLocated(ctx)
	if err != nil {
		return nil, fmt.Errorf("nearby parks: list located: %w", err)
	}
	metrics.NearbyScannedParks.Observe(float64(len(located)))

	center := *q.Center
	within := make([]*domain.Park, 0, len(located))
	for _, p := range located {
		if p.Location == nil {
			continue
		}
		if domain.DistanceKm(center, *p.Location) <= q.RadiusKm {
			within = append(within, p)
		}
	}

	slices.SortFunc(within, func(a, b *domain.Park) int {
		if c := cmp.Compare(a.Name, b.Name); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})

	return page(within, q.Offset, q.Limit), nil
}

// page returns the [offset, offset+limit) window of parks, clamped to its length.
func page(parks []*domain.Park, offset, limit int) []*domain.Park {
	if offset >= len(parks) {
		return []*domain.Park{}
	}
	end := len(parks)
	if limit < end-offset {
		end = offset + limit
	}
	return parks[offset:end]
}

// GetPark returns the park with the given id or an error wrapping domain.ErrNotFound.
func GetPark(ctx context.Context, repo ports.ParkRepository, id int64) (*domain.Park, error) {
	p, err := repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get park id=%d: %w", id, err)
	}
	return p, nil
}
