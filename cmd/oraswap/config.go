package main

import (
	"errors"
	"fmt"

	"github.com/urfave/cli/v2"
)

var (
	datadirFlag = cli.StringFlag{
		Name:  "datadir",
		Usage: "data directory of the oraswapd daemon",
		Value: defaultDataDir(),
	}

	slippageFlag = cli.StringFlag{
		Name:  "slippage",
		Usage: "default max slippage percentage applied to quotes",
		Value: "0.05",
	}
)

var configCmd = cli.Command{
	Name:   "config",
	Usage:  "Print local configuration of the oraswap CLI",
	Action: configAction,
	Subcommands: []*cli.Command{
		{
			Name:   "set",
			Usage:  "set a <key> <value> in the local state",
			Action: configSetAction,
		},
		{
			Name:   "init",
			Usage:  "initialize the local state with flags",
			Action: configInitAction,
			Flags: []cli.Flag{
				&datadirFlag,
				&slippageFlag,
			},
		},
	},
}

func configAction(ctx *cli.Context) error {
	state, err := getState()
	if err != nil {
		return err
	}

	for key, value := range state {
		fmt.Println(key + ": " + value)
	}

	return nil
}

func configInitAction(c *cli.Context) error {
	return setState(map[string]string{
		"datadir":  c.String("datadir"),
		"slippage": c.String("slippage"),
	})
}

func configSetAction(c *cli.Context) error {
	if c.NArg() < 2 {
		return errors.New("key and value are missing")
	}

	key := c.Args().Get(0)
	value := c.Args().Get(1)

	if err := setState(map[string]string{key: value}); err != nil {
		return err
	}

	fmt.Printf("%s %s has been set\n", key, value)

	return nil
}

func getPoolFromState() (string, error) {
	state, err := getState()
	if err != nil {
		return "", err
	}
	pool, ok := state["pool"]
	if !ok {
		return "", errors.New("set pool address with `config set pool`")
	}

	return pool, nil
}

func getSlippageFromState() float64 {
	state, err := getState()
	if err != nil {
		return 0
	}
	slippage, ok := state["slippage"]
	if !ok {
		return 0
	}

	var pct float64
	if _, err := fmt.Sscanf(slippage, "%f", &pct); err != nil {
		return 0
	}
	return pct
}
