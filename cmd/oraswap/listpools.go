package main

import (
	"context"

	"github.com/urfave/cli/v2"

	"github.com/oraswap-network/oraswap-daemon/internal/core/application"
)

var listpools = cli.Command{
	Name:   "listpools",
	Usage:  "list all pools of the catalog",
	Action: listPoolsAction,
}

func listPoolsAction(ctx *cli.Context) error {
	poolRepository, err := getPoolRepository()
	if err != nil {
		return err
	}

	oracleSource, err := getOracleSource()
	if err != nil {
		return err
	}

	tradeSvc := application.NewTradeService(poolRepository, oracleSource)

	pools, err := tradeSvc.ListPools(context.Background())
	if err != nil {
		return err
	}

	printRespJSON(pools)
	return nil
}
