package main

import (
	"context"

	"github.com/urfave/cli/v2"

	"github.com/oraswap-network/oraswap-daemon/internal/core/application"
)

var quotein = cli.Command{
	Name:   "quotein",
	Usage:  "preview the input required to receive a given output amount",
	Action: quoteInAction,
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "pool",
			Usage: "pool address, defaults to the one in the local state",
		},
		&cli.StringFlag{
			Name:     "from",
			Usage:    "mint of the token being sold",
			Required: true,
		},
		&cli.StringFlag{
			Name:     "to",
			Usage:    "mint of the token being bought",
			Required: true,
		},
		&cli.StringFlag{
			Name:     "amount",
			Usage:    "human-scale amount to receive",
			Required: true,
		},
		&cli.Float64Flag{
			Name:  "slippage",
			Usage: "max slippage percentage, defaults to the local state value",
		},
	},
}

func quoteInAction(ctx *cli.Context) error {
	poolAddress := ctx.String("pool")
	if poolAddress == "" {
		var err error
		poolAddress, err = getPoolFromState()
		if err != nil {
			return err
		}
	}

	slippage := ctx.Float64("slippage")
	if !ctx.IsSet("slippage") {
		slippage = getSlippageFromState()
	}

	poolRepository, err := getPoolRepository()
	if err != nil {
		return err
	}
	oracleSource, err := getOracleSource()
	if err != nil {
		return err
	}

	tradeSvc := application.NewTradeService(poolRepository, oracleSource)

	preview, err := tradeSvc.PreviewSwapIn(
		context.Background(),
		poolAddress, ctx.String("from"), ctx.String("to"),
		ctx.String("amount"), slippage,
	)
	if err != nil {
		return err
	}

	printRespJSON(preview)
	return nil
}
