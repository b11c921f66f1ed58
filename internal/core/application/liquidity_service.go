package application

import (
	"context"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"github.com/oraswap-network/oraswap-daemon/internal/core/domain"
	"github.com/oraswap-network/oraswap-daemon/internal/core/ports"
	"github.com/oraswap-network/oraswap-daemon/pkg/mathutil"
	"github.com/oraswap-network/oraswap-daemon/pkg/pricing"
)

type LiquidityService interface {
	PreviewWithdrawal(
		ctx context.Context, req WithdrawalPreviewRequest,
	) (*pricing.WithdrawalAmounts, error)
	PreviewDeposit(
		ctx context.Context, req DepositPreviewRequest,
	) (*pricing.DepositShares, error)
}

type liquidityService struct {
	poolRepository domain.PoolRepository
	oracleSource   ports.OracleSource
}

func NewLiquidityService(
	poolRepository domain.PoolRepository,
	oracleSource ports.OracleSource,
) LiquidityService {
	return &liquidityService{
		poolRepository: poolRepository,
		oracleSource:   oracleSource,
	}
}

// PreviewWithdrawal splits redeeming the requested shares into per-token
// amounts, net of the pool withdraw fee.
func (l *liquidityService) PreviewWithdrawal(
	ctx context.Context, req WithdrawalPreviewRequest,
) (*pricing.WithdrawalAmounts, error) {
	pool, err := l.poolRepository.GetPoolByAddress(ctx, req.PoolAddress)
	if err != nil {
		return nil, err
	}

	basePrice, quotePrice, err := l.tokenPrices(pool)
	if err != nil {
		return nil, err
	}

	amounts, err := pricing.WithdrawalFromShares(
		pricing.ShareSide{
			Share:    req.BaseShare,
			Decimals: pool.Base.Decimals,
			Price:    basePrice,
		},
		pricing.ShareSide{
			Share:    req.QuoteShare,
			Decimals: pool.Quote.Decimals,
			Price:    quotePrice,
		},
		pool.State,
	)
	if err != nil {
		log.WithError(err).WithField("pool", pool.Name).
			Debug("withdrawal preview failed")
		return nil, err
	}

	return l.lessWithdrawFee(pool, amounts)
}

// PreviewDeposit returns the slippage-protected lower bound of shares
// minted for the deposit.
func (l *liquidityService) PreviewDeposit(
	ctx context.Context, req DepositPreviewRequest,
) (*pricing.DepositShares, error) {
	pool, err := l.poolRepository.GetPoolByAddress(ctx, req.PoolAddress)
	if err != nil {
		return nil, err
	}

	minCoefficient := decimalOne
	if req.MinCoefficient != "" {
		minCoefficient, err = decimal.NewFromString(req.MinCoefficient)
		if err != nil {
			return nil, pricing.ErrInvalidAmount
		}
	}

	market := l.marketPriceFor(pool)

	shares, err := pricing.MinSharesForDeposit(
		pool.Info(), req.BaseAmount, req.QuoteAmount, market, minCoefficient,
	)
	if err != nil {
		log.WithError(err).WithField("pool", pool.Name).
			Debug("deposit preview failed")
		return nil, err
	}

	return shares, nil
}

func (l *liquidityService) marketPriceFor(pool *domain.Pool) pricing.MarketPrice {
	basePrice, quotePrice, err := l.oracleLegs(pool)
	if err != nil {
		return pricing.MarketPrice{}
	}
	return pricing.NewMarketPrice(basePrice, quotePrice)
}

// tokenPrices returns the human-scale oracle price of each token, used to
// value the share/TVL ratio of a withdrawal.
func (l *liquidityService) tokenPrices(
	pool *domain.Pool,
) (base, quote decimal.Decimal, err error) {
	basePrice, quotePrice, err := l.oracleLegs(pool)
	if err != nil {
		return
	}
	return basePrice.Price, quotePrice.Price, nil
}

func (l *liquidityService) oracleLegs(
	pool *domain.Pool,
) (base, quote pricing.OraclePrice, err error) {
	if pool.Base.FeedID == "" && pool.Quote.FeedID == "" {
		one := pricing.OraclePrice{Price: decimalOne}
		return one, one, nil
	}

	basePrice, ok := l.oracleSource.LatestPrice(pool.Base.FeedID)
	if !ok {
		return base, quote, pricing.ErrOracleUnavailable
	}
	quotePrice, ok := l.oracleSource.LatestPrice(pool.Quote.FeedID)
	if !ok {
		return base, quote, pricing.ErrOracleUnavailable
	}

	return basePrice, quotePrice, nil
}

func (l *liquidityService) lessWithdrawFee(
	pool *domain.Pool, amounts *pricing.WithdrawalAmounts,
) (*pricing.WithdrawalAmounts, error) {
	fee := pool.Config.WithdrawFee
	if fee.IsZero() {
		return amounts, nil
	}

	baseAmount, err := decimal.NewFromString(amounts.BaseAmount)
	if err != nil {
		return nil, err
	}
	quoteAmount, err := decimal.NewFromString(amounts.QuoteAmount)
	if err != nil {
		return nil, err
	}

	baseNet, _ := mathutil.LessFee(baseAmount, fee)
	quoteNet, _ := mathutil.LessFee(quoteAmount, fee)

	return &pricing.WithdrawalAmounts{
		BaseAmount:  baseNet.RoundFloor(int32(pool.Base.Decimals)).String(),
		QuoteAmount: quoteNet.RoundFloor(int32(pool.Quote.Decimals)).String(),
	}, nil
}
