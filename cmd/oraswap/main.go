package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/ioutil"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/urfave/cli/v2"

	"github.com/oraswap-network/oraswap-daemon/internal/core/domain"
	"github.com/oraswap-network/oraswap-daemon/internal/core/ports"
	catalogstore "github.com/oraswap-network/oraswap-daemon/internal/infrastructure/catalog/badger"
	"github.com/oraswap-network/oraswap-daemon/pkg/pricing"
)

var (
	oraswapDataDir = defaultDataDir()
	statePath      = path.Join(oraswapDataDir, "state.json")
)

func main() {
	app := cli.NewApp()

	app.Version = "0.1.0"
	app.Name = "oraswap operator CLI"
	app.Usage = "Command line interface for oraswapd daemon operators"
	app.Commands = append(
		app.Commands,
		&configCmd,
		&listpools,
		&addpool,
		&updatepool,
		&quote,
		&quotein,
		&swaptx,
		&depositpreview,
		&withdrawpreview,
		&feedprice,
	)

	err := app.Run(os.Args)
	if err != nil {
		fatal(err)
	}
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".oraswap-operator"
	}
	return filepath.Join(home, ".oraswap-operator")
}

func getState() (map[string]string, error) {
	data := map[string]string{}

	file, err := ioutil.ReadFile(statePath)
	if err != nil {
		return nil, errors.New("get config state error: try 'config init'")
	}
	json.Unmarshal(file, &data)

	return data, nil
}

func setState(data map[string]string) error {
	if _, err := os.Stat(oraswapDataDir); os.IsNotExist(err) {
		os.Mkdir(oraswapDataDir, os.ModeDir|0755)
	}

	file, err := os.OpenFile(statePath, os.O_RDONLY|os.O_CREATE, 0644)
	if err != nil {
		return err
	}
	if err := file.Close(); err != nil {
		return err
	}

	currentData, err := getState()
	if err != nil {
		return err
	}

	mergedData := merge(currentData, data)

	jsonString, err := json.Marshal(mergedData)
	if err != nil {
		return err
	}
	if err := ioutil.WriteFile(statePath, jsonString, 0755); err != nil {
		return fmt.Errorf("writing to file: %w", err)
	}

	return nil
}

func merge(maps ...map[string]string) map[string]string {
	merged := make(map[string]string, 0)
	for _, m := range maps {
		for k, v := range m {
			merged[k] = v
		}
	}
	return merged
}

func printRespJSON(resp interface{}) {
	jsonStr, err := json.MarshalIndent(resp, "", "\t")
	if err != nil {
		fmt.Println("unable to encode response: ", err)
		return
	}

	fmt.Println(string(jsonStr))
}

func getPoolRepository() (domain.PoolRepository, error) {
	state, err := getState()
	if err != nil {
		return nil, err
	}
	datadir, ok := state["datadir"]
	if !ok {
		return nil, errors.New("set datadir with `config set datadir`")
	}

	return catalogstore.NewPoolRepository(filepath.Join(datadir, "db"), nil)
}

// stateOracleSource serves prices pinned in the local state with the
// feedprice command.
type stateOracleSource struct {
	prices map[string]pricing.OraclePrice
}

func getOracleSource() (ports.OracleSource, error) {
	state, err := getState()
	if err != nil {
		return nil, err
	}

	prices := make(map[string]pricing.OraclePrice)
	for key, value := range state {
		if !strings.HasPrefix(key, "feed:") {
			continue
		}
		feedID := strings.TrimPrefix(key, "feed:")

		parts := strings.Split(value, ",")
		price, err := decimal.NewFromString(parts[0])
		if err != nil {
			continue
		}
		conf := decimal.Zero
		if len(parts) > 1 {
			conf, _ = decimal.NewFromString(parts[1])
		}
		prices[feedID] = pricing.OraclePrice{Price: price, Confidence: conf}
	}

	return &stateOracleSource{prices: prices}, nil
}

func (s *stateOracleSource) LatestPrice(
	feedID string,
) (pricing.OraclePrice, bool) {
	price, ok := s.prices[feedID]
	return price, ok
}

func (s *stateOracleSource) Start() error { return nil }
func (s *stateOracleSource) Stop()        {}

type invalidUsageError struct {
	ctx     *cli.Context
	command string
}

func (e *invalidUsageError) Error() string {
	return fmt.Sprintf("invalid usage of command %s", e.command)
}

func fatal(err error) {
	var e *invalidUsageError
	if errors.As(err, &e) {
		_ = cli.ShowCommandHelp(e.ctx, e.command)
	} else {
		_, _ = fmt.Fprintf(os.Stderr, "[oraswap] %v\n", err)
	}
	os.Exit(1)
}
