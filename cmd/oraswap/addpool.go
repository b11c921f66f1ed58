package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/oraswap-network/oraswap-daemon/internal/core/domain"
	"github.com/oraswap-network/oraswap-daemon/pkg/mathutil"
	"github.com/oraswap-network/oraswap-daemon/pkg/pricing"
)

var addpool = cli.Command{
	Name:   "addpool",
	Usage:  "add a pool to the catalog",
	Action: addPoolAction,
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "address",
			Usage:    "base58 address of the pool account",
			Required: true,
		},
		&cli.StringFlag{
			Name:  "type",
			Usage: "curve family: normal or stable",
			Value: "normal",
		},
		&cli.StringFlag{
			Name:     "base-mint",
			Required: true,
		},
		&cli.StringFlag{
			Name:     "quote-mint",
			Required: true,
		},
		&cli.StringFlag{
			Name:  "base-symbol",
			Value: "BASE",
		},
		&cli.StringFlag{
			Name:  "quote-symbol",
			Value: "QUOTE",
		},
		&cli.UintFlag{
			Name:  "base-decimals",
			Value: 9,
		},
		&cli.UintFlag{
			Name:  "quote-decimals",
			Value: 6,
		},
		&cli.StringFlag{
			Name:  "base-feed",
			Usage: "oracle feed id of the base token",
		},
		&cli.StringFlag{
			Name:  "quote-feed",
			Usage: "oracle feed id of the quote token",
		},
		&cli.Uint64Flag{
			Name:  "slope",
			Usage: "stable curve slope scaled by 1e18",
		},
		&cli.Uint64Flag{
			Name:  "trade-fee-bps",
			Usage: "trade fee in basis points",
		},
		&cli.Uint64Flag{
			Name:  "min-reserve-pct",
			Usage: "minimum reserve limit percentage",
			Value: 50,
		},
		&cli.Uint64Flag{
			Name:  "base-reserve",
			Usage: "current base reserve at on-chain scale",
		},
		&cli.Uint64Flag{
			Name:  "quote-reserve",
			Usage: "current quote reserve at on-chain scale",
		},
		&cli.Uint64Flag{
			Name:  "target-base-reserve",
			Usage: "rebalance target of the base reserve",
		},
		&cli.Uint64Flag{
			Name:  "target-quote-reserve",
			Usage: "rebalance target of the quote reserve",
		},
		&cli.Uint64Flag{
			Name:  "base-supply",
			Usage: "outstanding base-side share supply",
		},
		&cli.Uint64Flag{
			Name:  "quote-supply",
			Usage: "outstanding quote-side share supply",
		},
	},
}

func addPoolAction(ctx *cli.Context) error {
	swapType := pricing.NormalSwap
	if ctx.String("type") == "stable" {
		swapType = pricing.StableSwap
	}

	config := pricing.SwapConfig{
		Slope:              ctx.Uint64("slope"),
		MinReserveLimitPct: ctx.Uint64("min-reserve-pct"),
	}
	if bps := ctx.Uint64("trade-fee-bps"); bps > 0 {
		config.TradeFee = mathutil.Fraction{Num: bps, Den: 10000}
	}

	pool, err := domain.NewPool(
		ctx.String("address"),
		swapType,
		domain.Token{
			Symbol:   ctx.String("base-symbol"),
			Mint:     ctx.String("base-mint"),
			Decimals: uint8(ctx.Uint("base-decimals")),
			FeedID:   ctx.String("base-feed"),
		},
		domain.Token{
			Symbol:   ctx.String("quote-symbol"),
			Mint:     ctx.String("quote-mint"),
			Decimals: uint8(ctx.Uint("quote-decimals")),
			FeedID:   ctx.String("quote-feed"),
		},
		config,
	)
	if err != nil {
		return err
	}
	pool.UpdateState(stateFromFlags(ctx))

	poolRepository, err := getPoolRepository()
	if err != nil {
		return err
	}

	if err := poolRepository.AddPool(context.Background(), pool); err != nil {
		return err
	}

	fmt.Printf("pool %s added at %s\n", pool.Name, pool.Address)
	return nil
}

func stateFromFlags(ctx *cli.Context) pricing.PoolState {
	return pricing.PoolState{
		BaseReserve:        ctx.Uint64("base-reserve"),
		QuoteReserve:       ctx.Uint64("quote-reserve"),
		TargetBaseReserve:  ctx.Uint64("target-base-reserve"),
		TargetQuoteReserve: ctx.Uint64("target-quote-reserve"),
		BaseSupply:         ctx.Uint64("base-supply"),
		QuoteSupply:        ctx.Uint64("quote-supply"),
	}
}
