package main

import (
	"context"

	"github.com/urfave/cli/v2"

	"github.com/oraswap-network/oraswap-daemon/internal/core/application"
)

var depositpreview = cli.Command{
	Name:   "depositpreview",
	Usage:  "preview the minimum shares minted for a deposit",
	Action: depositPreviewAction,
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "pool",
			Usage: "pool address, defaults to the one in the local state",
		},
		&cli.StringFlag{
			Name:  "base-amount",
			Value: "0",
		},
		&cli.StringFlag{
			Name:  "quote-amount",
			Value: "0",
		},
		&cli.StringFlag{
			Name:  "min-coefficient",
			Usage: "scale factor in (0, 1] for the minted-share lower bound",
		},
	},
}

func depositPreviewAction(ctx *cli.Context) error {
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

	shares, err := liquiditySvc.PreviewDeposit(
		context.Background(), application.DepositPreviewRequest{
			PoolAddress:    poolAddress,
			BaseAmount:     ctx.String("base-amount"),
			QuoteAmount:    ctx.String("quote-amount"),
			MinCoefficient: ctx.String("min-coefficient"),
		},
	)
	if err != nil {
		return err
	}

	printRespJSON(shares)
	return nil
}
