package main

import (
	"context"
	"fmt"

	"github.com/mr-tron/base58"
	"github.com/shopspring/decimal"
	"github.com/urfave/cli/v2"

	"github.com/oraswap-network/oraswap-daemon/internal/core/application"
	"github.com/oraswap-network/oraswap-daemon/internal/core/ports"
	"github.com/oraswap-network/oraswap-daemon/internal/infrastructure/txbuilder"
	"github.com/oraswap-network/oraswap-daemon/pkg/pricing"
)

var swaptx = cli.Command{
	Name:   "swaptx",
	Usage:  "quote a swap and serialize the unsigned instruction",
	Action: swapTxAction,
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "pool",
			Usage: "pool address, defaults to the one in the local state",
		},
		&cli.StringFlag{
			Name:     "wallet",
			Usage:    "base58 address of the trader wallet",
			Required: true,
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
			Usage:    "human-scale amount being sold",
			Required: true,
		},
		&cli.Float64Flag{
			Name:  "slippage",
			Usage: "max slippage percentage, defaults to the local state value",
		},
	},
}

func swapTxAction(ctx *cli.Context) error {
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

	pool, err := poolRepository.GetPoolByAddress(
		context.Background(), poolAddress,
	)
	if err != nil {
		return err
	}

	tradeSvc := application.NewTradeService(poolRepository, oracleSource)

	preview, err := tradeSvc.PreviewSwapOut(
		context.Background(),
		poolAddress, ctx.String("from"), ctx.String("to"),
		ctx.String("amount"), slippage,
	)
	if err != nil {
		return err
	}
	if preview.AmountOut == "" {
		return fmt.Errorf("no oracle price available for pool %s", pool.Name)
	}
	if preview.InsufficientLiquidity {
		return fmt.Errorf("insufficient liquidity in pool %s", pool.Name)
	}

	fromDecimals, toDecimals := pool.Base.Decimals, pool.Quote.Decimals
	if ctx.String("from") == pool.Quote.Mint {
		fromDecimals, toDecimals = pool.Quote.Decimals, pool.Base.Decimals
	}

	amountIn, err := scaledUint64(preview.AmountIn, fromDecimals)
	if err != nil {
		return err
	}
	minAmountOut, err := scaledUint64(preview.AmountOutWithSlippage, toDecimals)
	if err != nil {
		return err
	}

	rawTx, err := txbuilder.NewTxBuilder().BuildSwapTx(ports.SwapTxRequest{
		PoolAddress:  poolAddress,
		TraderWallet: ctx.String("wallet"),
		FromMint:     ctx.String("from"),
		ToMint:       ctx.String("to"),
		AmountIn:     amountIn,
		MinAmountOut: minAmountOut,
	})
	if err != nil {
		return err
	}

	printRespJSON(struct {
		Preview *pricing.SwapResult `json:"preview"`
		RawTx   string              `json:"rawTx"`
	}{
		Preview: preview,
		RawTx:   base58.Encode(rawTx),
	})
	return nil
}

func scaledUint64(amount string, decimals uint8) (uint64, error) {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return 0, err
	}
	scaled := d.Shift(int32(decimals)).RoundFloor(0)
	if !scaled.BigInt().IsUint64() {
		return 0, fmt.Errorf("amount %s overflows u64 at scale %d", amount, decimals)
	}
	return scaled.BigInt().Uint64(), nil
}
