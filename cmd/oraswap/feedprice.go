package main

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/urfave/cli/v2"
)

var feedprice = cli.Command{
	Name:      "feedprice",
	Usage:     "pin an oracle price in the local state, used by the preview commands",
	ArgsUsage: "<feed-id> <price> [confidence]",
	Action:    feedPriceAction,
}

func feedPriceAction(ctx *cli.Context) error {
	if ctx.NArg() < 2 {
		return &invalidUsageError{ctx, "feedprice"}
	}

	feedID := ctx.Args().Get(0)
	priceStr := ctx.Args().Get(1)
	confStr := ctx.Args().Get(2)

	price, err := decimal.NewFromString(priceStr)
	if err != nil || price.Sign() <= 0 {
		return fmt.Errorf("price must be a positive decimal")
	}

	value := price.String()
	if confStr != "" {
		conf, err := decimal.NewFromString(confStr)
		if err != nil || conf.Sign() < 0 {
			return fmt.Errorf("confidence must be a non-negative decimal")
		}
		value += "," + conf.String()
	}

	if err := setState(map[string]string{"feed:" + feedID: value}); err != nil {
		return err
	}

	fmt.Printf("feed %s pinned at %s\n", feedID, value)
	return nil
}
