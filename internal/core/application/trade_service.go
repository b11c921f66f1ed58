package application

import (
	"context"

	log "github.com/sirupsen/logrus"

	"github.com/oraswap-network/oraswap-daemon/internal/core/domain"
	"github.com/oraswap-network/oraswap-daemon/internal/core/ports"
	"github.com/oraswap-network/oraswap-daemon/pkg/pricing"
)

type TradeService interface {
	ListPools(ctx context.Context) ([]PoolDetails, error)
	PreviewSwapOut(
		ctx context.Context,
		poolAddress, fromMint, toMint, amountIn string,
		maxSlippagePct float64,
	) (*pricing.SwapResult, error)
	PreviewSwapIn(
		ctx context.Context,
		poolAddress, fromMint, toMint, amountOut string,
		maxSlippagePct float64,
	) (*pricing.SwapResult, error)
}

type tradeService struct {
	poolRepository domain.PoolRepository
	oracleSource   ports.OracleSource
}

func NewTradeService(
	poolRepository domain.PoolRepository,
	oracleSource ports.OracleSource,
) TradeService {
	return &tradeService{
		poolRepository: poolRepository,
		oracleSource:   oracleSource,
	}
}

func (t *tradeService) ListPools(ctx context.Context) ([]PoolDetails, error) {
	pools, err := t.poolRepository.GetAllPools(ctx)
	if err != nil {
		return nil, err
	}

	details := make([]PoolDetails, 0, len(pools))
	for _, pool := range pools {
		details = append(details, PoolDetails{
			Address:   pool.Address,
			Name:      pool.Name,
			SwapType:  pool.SwapType.String(),
			BaseMint:  pool.Base.Mint,
			QuoteMint: pool.Quote.Mint,
		})
	}

	return details, nil
}

// PreviewSwapOut quotes the output for selling amountIn of the from token.
// A missing oracle price is not an error: the preview comes back empty and
// the caller displays it as "no quote available".
func (t *tradeService) PreviewSwapOut(
	ctx context.Context,
	poolAddress, fromMint, toMint, amountIn string,
	maxSlippagePct float64,
) (*pricing.SwapResult, error) {
	pool, err := t.poolRepository.GetPoolByAddress(ctx, poolAddress)
	if err != nil {
		return nil, err
	}

	market := t.marketPriceFor(pool)

	res, err := pricing.SwapOut(
		pool.Info(), fromMint, toMint, amountIn, maxSlippagePct, market,
	)
	if err != nil {
		log.WithError(err).WithField("pool", pool.Name).
			Debug("swap-out preview failed")
		return nil, err
	}

	quotesServed.WithLabelValues(pool.Name, "swap-out").Inc()
	return res, nil
}

// PreviewSwapIn quotes the input required to receive amountOut of the to
// token. Unlike PreviewSwapOut a missing oracle price is an error here, the
// inverse quote has no meaningful empty rendering.
func (t *tradeService) PreviewSwapIn(
	ctx context.Context,
	poolAddress, fromMint, toMint, amountOut string,
	maxSlippagePct float64,
) (*pricing.SwapResult, error) {
	pool, err := t.poolRepository.GetPoolByAddress(ctx, poolAddress)
	if err != nil {
		return nil, err
	}

	market := t.marketPriceFor(pool)

	res, err := pricing.SwapIn(
		pool.Info(), fromMint, toMint, amountOut, maxSlippagePct, market,
	)
	if err != nil {
		log.WithError(err).WithField("pool", pool.Name).
			Debug("swap-in preview failed")
		return nil, err
	}

	quotesServed.WithLabelValues(pool.Name, "swap-in").Inc()
	return res, nil
}

// marketPriceFor assembles the mid/low/high triple from the two oracle legs
// of the pool. A pool without feed ids, ie. a pure stable pair, is priced at
// the unit mid price. Missing feed data yields the undefined triple.
func (t *tradeService) marketPriceFor(pool *domain.Pool) pricing.MarketPrice {
	if pool.Base.FeedID == "" && pool.Quote.FeedID == "" {
		one := pricing.OraclePrice{Price: decimalOne}
		return pricing.NewMarketPrice(one, one)
	}

	basePrice, ok := t.oracleSource.LatestPrice(pool.Base.FeedID)
	if !ok {
		return pricing.MarketPrice{}
	}
	quotePrice, ok := t.oracleSource.LatestPrice(pool.Quote.FeedID)
	if !ok {
		return pricing.MarketPrice{}
	}

	return pricing.NewMarketPrice(basePrice, quotePrice)
}
