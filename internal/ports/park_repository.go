package ports

import (
	"context"
	"trailblazer-service/internal/domain"
)

// Port: a boundary for persisting and retrieving Park entities.
//
// Each call is one logical unit of work with its own commit; implementations
// must not hold a transaction across calls.
type ParkRepository interface {
	// Return the park with the given external code, or domain.ErrNotFound.
	FindByExternalCode(ctx context.Context, externalCode string) (*domain.Park, error)
	// Return the park with the given internal id, or domain.ErrNotFound.
	FindByID(ctx context.Context, id int64) (*domain.Park, error)
	// Insert a new park and return its storage-assigned id.
	// A duplicate external code yields an error wrapping domain.ErrStoreConflict.
	Insert(ctx context.Context, park *domain.Park) (int64, error)
	// Overwrite the mutable attributes of the park identified by park.ID.
	Update(ctx context.Context, park *domain.Park) error
	// Return parks in storage order (ascending id) after skipping offset rows.
	List(ctx context.Context, offset, limit int) ([]*domain.Park, error)
	// Return every park that has both coordinates.
	ListLocated(ctx context.Context) ([]*domain.Park, error)
}
