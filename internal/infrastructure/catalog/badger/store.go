package catalogstore

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/dgraph-io/badger/v3"
	"github.com/dgraph-io/badger/v3/options"
	log "github.com/sirupsen/logrus"
	"github.com/timshannon/badgerhold/v4"

	"github.com/oraswap-network/oraswap-daemon/internal/core/domain"
)

type poolStore struct {
	store *badgerhold.Store
}

// NewPoolRepository opens the pool catalog under baseDbDir. An empty dir
// opens an in-memory store, used by tests.
func NewPoolRepository(
	baseDbDir string, logger badger.Logger,
) (domain.PoolRepository, error) {
	var catalogDir string
	if len(baseDbDir) > 0 {
		catalogDir = filepath.Join(baseDbDir, "catalog")
	}

	store, err := createDb(catalogDir, logger)
	if err != nil {
		return nil, fmt.Errorf("opening catalog db: %w", err)
	}
	return &poolStore{store}, nil
}

func (p *poolStore) AddPool(ctx context.Context, pool *domain.Pool) error {
	query := badgerhold.Where("Base.Mint").Eq(pool.Base.Mint).
		And("Quote.Mint").Eq(pool.Quote.Mint)

	existing, err := p.findPool(ctx, query)
	if err != nil {
		return err
	}
	if existing != nil {
		return domain.ErrPoolAlreadyExists
	}

	if err := p.store.Insert(pool.Address, pool); err != nil {
		if err == badgerhold.ErrKeyExists {
			return domain.ErrPoolAlreadyExists
		}
		return err
	}

	return nil
}

func (p *poolStore) GetPoolByAddress(
	ctx context.Context, address string,
) (*domain.Pool, error) {
	var pool domain.Pool
	if err := p.store.Get(address, &pool); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, domain.ErrPoolNotFound
		}
		return nil, err
	}

	return &pool, nil
}

func (p *poolStore) GetPoolByMints(
	ctx context.Context, mintA, mintB string,
) (*domain.Pool, error) {
	query := badgerhold.Where("Base.Mint").Eq(mintA).
		And("Quote.Mint").Eq(mintB).
		Or(badgerhold.Where("Base.Mint").Eq(mintB).
			And("Quote.Mint").Eq(mintA))

	pool, err := p.findPool(ctx, query)
	if err != nil {
		return nil, err
	}
	if pool == nil {
		return nil, domain.ErrPoolNotFound
	}

	return pool, nil
}

func (p *poolStore) GetAllPools(ctx context.Context) ([]domain.Pool, error) {
	var pools []domain.Pool
	if err := p.store.Find(&pools, nil); err != nil {
		return nil, err
	}

	return pools, nil
}

func (p *poolStore) UpdatePool(
	ctx context.Context, address string,
	updateFn func(*domain.Pool) (*domain.Pool, error),
) error {
	pool, err := p.GetPoolByAddress(ctx, address)
	if err != nil {
		return err
	}

	updatedPool, err := updateFn(pool)
	if err != nil {
		return err
	}

	return p.store.Update(address, updatedPool)
}

func (p *poolStore) DeletePool(ctx context.Context, address string) error {
	if err := p.store.Delete(address, domain.Pool{}); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil
		}
		return err
	}
	return nil
}

func (p *poolStore) Close() {
	p.store.Close()
}

func (p *poolStore) findPool(
	ctx context.Context, query *badgerhold.Query,
) (*domain.Pool, error) {
	var pools []domain.Pool
	if err := p.store.Find(&pools, query); err != nil {
		return nil, err
	}

	if len(pools) == 0 {
		return nil, nil
	}

	return &pools[0], nil
}

func createDb(dbDir string, logger badger.Logger) (*badgerhold.Store, error) {
	isInMemory := len(dbDir) <= 0

	opts := badger.DefaultOptions(dbDir)
	opts.Logger = logger

	if isInMemory {
		opts.InMemory = true
	} else {
		opts.Compression = options.ZSTD
	}

	db, err := badgerhold.Open(badgerhold.Options{
		Encoder:          badgerhold.DefaultEncode,
		Decoder:          badgerhold.DefaultDecode,
		SequenceBandwith: 100,
		Options:          opts,
	})
	if err != nil {
		return nil, err
	}

	if !isInMemory {
		ticker := time.NewTicker(30 * time.Minute)

		go func() {
			for {
				<-ticker.C
				if err := db.Badger().RunValueLogGC(0.5); err != nil &&
					err != badger.ErrNoRewrite {
					log.Error(err)
				}
			}
		}()
	}

	return db, nil
}
