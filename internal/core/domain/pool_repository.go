package domain

import "context"

// PoolRepository is the abstraction for any kind of database intended to
// persist the pool deployment catalog.
type PoolRepository interface {
	// AddPool adds a new pool to the catalog.
	AddPool(ctx context.Context, pool *Pool) error
	// GetPoolByAddress returns the pool deployed at the given address.
	GetPoolByAddress(ctx context.Context, address string) (*Pool, error)
	// GetPoolByMints returns the pool trading the given pair, in either
	// orientation.
	GetPoolByMints(ctx context.Context, mintA, mintB string) (*Pool, error)
	// GetAllPools returns the whole catalog.
	GetAllPools(ctx context.Context) ([]Pool, error)
	// UpdatePool commits changes to a pool in a transactional way through the
	// closure function.
	UpdatePool(
		ctx context.Context,
		address string, updateFn func(p *Pool) (*Pool, error),
	) error
	// DeletePool removes a pool from the catalog.
	DeletePool(ctx context.Context, address string) error
}
