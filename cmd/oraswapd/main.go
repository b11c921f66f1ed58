package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/oraswap-network/oraswap-daemon/internal/config"
	"github.com/oraswap-network/oraswap-daemon/internal/core/application"
	"github.com/oraswap-network/oraswap-daemon/internal/core/domain"
	catalogstore "github.com/oraswap-network/oraswap-daemon/internal/infrastructure/catalog/badger"
	"github.com/oraswap-network/oraswap-daemon/internal/infrastructure/oracle"
	"github.com/oraswap-network/oraswap-daemon/pkg/oraclefeed"
	mockfeeder "github.com/oraswap-network/oraswap-daemon/pkg/oraclefeed/mock"
	pythfeeder "github.com/oraswap-network/oraswap-daemon/pkg/oraclefeed/pyth"
	pythhttpfeeder "github.com/oraswap-network/oraswap-daemon/pkg/oraclefeed/pythhttp"
	"github.com/oraswap-network/oraswap-daemon/pkg/stats"
)

func main() {
	if err := config.InitConfig(); err != nil {
		log.WithError(err).Fatal("invalid configuration")
	}
	log.SetLevel(log.Level(config.GetInt(config.LogLevelKey)))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	poolRepository, err := catalogstore.NewPoolRepository(
		filepath.Join(config.GetDatadir(), config.DbLocation), nil,
	)
	if err != nil {
		log.WithError(err).Fatal("cannot open pool catalog")
	}

	feeder, err := newOracleFeeder()
	if err != nil {
		log.WithError(err).Fatal("cannot create oracle feeder")
	}

	if err := subscribePoolFeeds(ctx, poolRepository, feeder); err != nil {
		log.WithError(err).Fatal("cannot subscribe oracle feeds")
	}

	oracleSource := oracle.NewSource(feeder)
	tradeSvc := application.NewTradeService(poolRepository, oracleSource)

	statsInterval := time.Duration(config.GetInt(config.StatsIntervalKey)) * time.Second
	if config.GetBool(config.EnableProfilerKey) {
		stats.EnableStatistics(
			ctx, statsInterval,
			filepath.Join(config.GetDatadir(), config.ProfilerLocation),
		)
	}

	go watchQuotes(
		ctx, tradeSvc, poolRepository, statsInterval,
		config.GetFloat(config.PriceSlippageKey),
	)

	g, _ := errgroup.WithContext(ctx)
	g.Go(oracleSource.Start)

	log.Debug("daemon started")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)
	<-sigChan

	log.Debug("shutting down")
	oracleSource.Stop()
	cancel()

	if err := g.Wait(); err != nil {
		log.WithError(err).Error("oracle feeder exited with error")
	}

	log.Debug("exiting")
}

func newOracleFeeder() (oraclefeed.OracleFeeder, error) {
	interval := config.GetInt(config.OracleIntervalKey)

	switch oracleType := config.GetString(config.OracleTypeKey); oracleType {
	case config.OracleTypePyth:
		return pythfeeder.NewService(interval)
	case config.OracleTypePythHTTP:
		return pythhttpfeeder.NewService(interval)
	case config.OracleTypeMock:
		return mockfeeder.NewService(
			nil, time.Duration(interval)*time.Millisecond,
		), nil
	default:
		return nil, fmt.Errorf("unknown oracle type %s", oracleType)
	}
}

// subscribePoolFeeds subscribes the feeder to the oracle feeds of every
// pool in the catalog.
func subscribePoolFeeds(
	ctx context.Context,
	poolRepository domain.PoolRepository,
	feeder oraclefeed.OracleFeeder,
) error {
	pools, err := poolRepository.GetAllPools(ctx)
	if err != nil {
		return err
	}

	feedIDs := make([]string, 0, 2*len(pools))
	seen := make(map[string]struct{})
	for _, pool := range pools {
		for _, id := range []string{pool.Base.FeedID, pool.Quote.FeedID} {
			if id == "" {
				continue
			}
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			feedIDs = append(feedIDs, id)
		}
	}

	if len(feedIDs) == 0 {
		return nil
	}
	return feeder.SubscribeFeeds(feedIDs)
}

// watchQuotes periodically previews a reference unit trade on every pool to
// surface stale oracle feeds and drained pools in the logs.
func watchQuotes(
	ctx context.Context,
	tradeSvc application.TradeService,
	poolRepository domain.PoolRepository,
	interval time.Duration,
	slippagePct float64,
) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			pools, err := poolRepository.GetAllPools(ctx)
			if err != nil {
				log.WithError(err).Warn("cannot list pools")
				continue
			}

			for _, pool := range pools {
				preview, err := tradeSvc.PreviewSwapOut(
					ctx, pool.Address, pool.Base.Mint, pool.Quote.Mint,
					"1", slippagePct,
				)
				if err != nil {
					log.WithError(err).Warnf("pool %s: preview failed", pool.Name)
					continue
				}
				if preview.AmountOut == "" {
					log.Warnf("pool %s: no oracle price available", pool.Name)
					continue
				}
				if preview.InsufficientLiquidity {
					log.Warnf("pool %s: insufficient liquidity", pool.Name)
					continue
				}
				log.Debugf("pool %s: 1 %s -> %s %s",
					pool.Name, pool.Base.Symbol, preview.AmountOut, pool.Quote.Symbol,
				)
			}
		}
	}
}
