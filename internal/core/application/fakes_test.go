package application

import (
	"context"

	"github.com/oraswap-network/oraswap-daemon/internal/core/domain"
	"github.com/oraswap-network/oraswap-daemon/pkg/pricing"
)

type inMemoryPoolRepository struct {
	pools map[string]*domain.Pool
}

func newInMemoryPoolRepository(pools ...*domain.Pool) domain.PoolRepository {
	byAddress := make(map[string]*domain.Pool)
	for _, pool := range pools {
		byAddress[pool.Address] = pool
	}
	return &inMemoryPoolRepository{pools: byAddress}
}

func (r *inMemoryPoolRepository) AddPool(
	_ context.Context, pool *domain.Pool,
) error {
	if _, ok := r.pools[pool.Address]; ok {
		return domain.ErrPoolAlreadyExists
	}
	r.pools[pool.Address] = pool
	return nil
}

func (r *inMemoryPoolRepository) GetPoolByAddress(
	_ context.Context, address string,
) (*domain.Pool, error) {
	pool, ok := r.pools[address]
	if !ok {
		return nil, domain.ErrPoolNotFound
	}
	return pool, nil
}

func (r *inMemoryPoolRepository) GetPoolByMints(
	_ context.Context, mintA, mintB string,
) (*domain.Pool, error) {
	for _, pool := range r.pools {
		if pool.HasMints(mintA, mintB) {
			return pool, nil
		}
	}
	return nil, domain.ErrPoolNotFound
}

func (r *inMemoryPoolRepository) GetAllPools(
	_ context.Context,
) ([]domain.Pool, error) {
	pools := make([]domain.Pool, 0, len(r.pools))
	for _, pool := range r.pools {
		pools = append(pools, *pool)
	}
	return pools, nil
}

func (r *inMemoryPoolRepository) UpdatePool(
	ctx context.Context, address string,
	updateFn func(*domain.Pool) (*domain.Pool, error),
) error {
	pool, err := r.GetPoolByAddress(ctx, address)
	if err != nil {
		return err
	}
	updated, err := updateFn(pool)
	if err != nil {
		return err
	}
	r.pools[address] = updated
	return nil
}

func (r *inMemoryPoolRepository) DeletePool(
	_ context.Context, address string,
) error {
	delete(r.pools, address)
	return nil
}

type staticOracleSource struct {
	prices map[string]pricing.OraclePrice
}

func newStaticOracleSource(
	prices map[string]pricing.OraclePrice,
) *staticOracleSource {
	return &staticOracleSource{prices: prices}
}

func (s *staticOracleSource) LatestPrice(
	feedID string,
) (pricing.OraclePrice, bool) {
	price, ok := s.prices[feedID]
	return price, ok
}

func (s *staticOracleSource) Start() error { return nil }
func (s *staticOracleSource) Stop()        {}
