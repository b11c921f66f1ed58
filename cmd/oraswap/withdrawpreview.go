package main

import (
	"context"

	"github.com/urfave/cli/v2"

	"github.com/oraswap-network/oraswap-daemon/internal/core/application"
)

var withdrawpreview = cli.Command{
	Name:   "withdrawpreview",
	Usage:  "preview the per-token amounts of redeeming pool shares",
	Action: withdrawPreviewAction,
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "pool",
			Usage: "pool address, defaults to the one in the local state",
		},
		&cli.Uint64Flag{
			Name:  "base-share",
			Usage: "base-side shares being redeemed",
		},
		&cli.Uint64Flag{
			Name:  "quote-share",
			Usage: "quote-side shares being redeemed",
		},
	},
}

func withdrawPreviewAction(ctx *cli.Context) error {
	poolAddress := ctx.String("pool")
	if poolAddress == "" {
		var err error
		poolAddress, err = getPoolFromState()
		if err != nil {
			return err
		}
	}

	poolRepository, err := getPoolRepository()
	if err != nil {
		return err
	}
	oracleSource, err := getOracleSource()
	if err != nil {
		return err
	}

	liquiditySvc := application.NewLiquidityService(poolRepository, oracleSource)

	amounts, err := liquiditySvc.PreviewWithdrawal(
		context.Background(), application.WithdrawalPreviewRequest{
			PoolAddress: poolAddress,
			BaseShare:   ctx.Uint64("base-share"),
			QuoteShare:  ctx.Uint64("quote-share"),
		},
	)
	if err != nil {
		return err
	}

	printRespJSON(amounts)
	return nil
}
