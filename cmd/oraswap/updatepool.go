package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/oraswap-network/oraswap-daemon/internal/core/domain"
)

var updatepool = cli.Command{
	Name:   "updatepool",
	Usage:  "replace the reserves and supplies snapshot of a pool",
	Action: updatePoolAction,
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "pool",
			Usage: "pool address, defaults to the one in the local state",
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

func updatePoolAction(ctx *cli.Context) error {
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

	state := stateFromFlags(ctx)
	if err := poolRepository.UpdatePool(
		context.Background(), poolAddress,
		func(pool *domain.Pool) (*domain.Pool, error) {
			pool.UpdateState(state)
			return pool, nil
		},
	); err != nil {
		return err
	}

	fmt.Printf("pool %s state updated\n", poolAddress)
	return nil
}
