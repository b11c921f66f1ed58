package domain

import (
	"github.com/mr-tron/base58"

	"github.com/oraswap-network/oraswap-daemon/pkg/mathutil"
	"github.com/oraswap-network/oraswap-daemon/pkg/pricing"
)

// Token describes one leg of a pool: the SPL mint address, the token
// decimals and the oracle feed its price is read from. The feed id is empty
// for stable pools priced without an oracle leg.
type Token struct {
	Symbol   string
	Mint     string
	Decimals uint8
	FeedID   string
}

// Pool is a deployed pool account together with everything the quote engine
// needs to price against it.
type Pool struct {
	Address  string
	Name     string
	SwapType pricing.SwapType
	Base     Token
	Quote    Token
	State    pricing.PoolState
	Config   pricing.SwapConfig
}

// NewPool returns a validated pool. Mints and address must be valid base58
// strings, the pair must be distinct, fees must be proper fractions and a
// stable pool needs a slope in (0, 1e18].
func NewPool(
	address string, swapType pricing.SwapType,
	base, quote Token, config pricing.SwapConfig,
) (*Pool, error) {
	if err := validateAddress(address); err != nil {
		return nil, ErrInvalidPoolAddress
	}
	if err := validateAddress(base.Mint); err != nil {
		return nil, ErrInvalidBaseMint
	}
	if err := validateAddress(quote.Mint); err != nil {
		return nil, ErrInvalidQuoteMint
	}
	if base.Mint == quote.Mint {
		return nil, ErrPoolSameMints
	}

	switch swapType {
	case pricing.NormalSwap:
	case pricing.StableSwap:
		if config.Slope == 0 || config.Slope > wad {
			return nil, ErrInvalidSlope
		}
	default:
		return nil, ErrInvalidSwapType
	}

	for _, fee := range []struct {
		frac mathutil.Fraction
		err  error
	}{
		{config.TradeFee, ErrInvalidTradeFee},
		{config.AdminTradeFee, ErrInvalidTradeFee},
		{config.WithdrawFee, ErrInvalidWithdrawFee},
		{config.AdminWithdrawFee, ErrInvalidWithdrawFee},
	} {
		if !fee.frac.IsZero() && !fee.frac.Valid() {
			return nil, fee.err
		}
	}
	if config.MinReserveLimitPct >= 100 {
		return nil, ErrInvalidReserveLimit
	}

	return &Pool{
		Address:  address,
		Name:     base.Symbol + "/" + quote.Symbol,
		SwapType: swapType,
		Base:     base,
		Quote:    quote,
		Config:   config,
	}, nil
}

const wad = 1_000_000_000_000_000_000

// Info projects the pool onto the descriptor the pricing core consumes.
func (p *Pool) Info() pricing.PoolInfo {
	return pricing.PoolInfo{
		SwapType:          p.SwapType,
		ConfigKey:         p.Address,
		MintBase:          p.Base.Mint,
		MintQuote:         p.Quote.Mint,
		MintBaseDecimals:  p.Base.Decimals,
		MintQuoteDecimals: p.Quote.Decimals,
		State:             p.State,
		Config:            p.Config,
	}
}

// HasMints reports whether the pool trades exactly the given pair, in either
// orientation.
func (p *Pool) HasMints(mintA, mintB string) bool {
	return (p.Base.Mint == mintA && p.Quote.Mint == mintB) ||
		(p.Base.Mint == mintB && p.Quote.Mint == mintA)
}

// UpdateState replaces the reserves and supplies snapshot.
func (p *Pool) UpdateState(state pricing.PoolState) {
	p.State = state
}

func validateAddress(addr string) error {
	if len(addr) < 32 || len(addr) > 44 {
		return ErrInvalidPoolAddress
	}
	buf, err := base58.Decode(addr)
	if err != nil {
		return err
	}
	if len(buf) != 32 {
		return ErrInvalidPoolAddress
	}
	return nil
}
