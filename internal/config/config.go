package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

const (
	// DatadirKey is the local data directory to store the internal state of
	// the daemon.
	DatadirKey = "DATADIR"
	// LogLevelKey are the different logging levels. For reference on the
	// values https://godoc.org/github.com/sirupsen/logrus#Level
	LogLevelKey = "LOG_LEVEL"
	// OracleTypeKey selects the oracle feeder implementation: pyth (websocket
	// stream), pythhttp (REST poller) or mock.
	OracleTypeKey = "ORACLE_TYPE"
	// OracleIntervalKey is the feeder interval in milliseconds: the batching
	// tick of the streaming feeder, the poll period of the HTTP one.
	OracleIntervalKey = "ORACLE_INTERVAL"
	// PriceSlippageKey is the default slippage percentage applied to quotes
	// when the caller does not pass one.
	PriceSlippageKey = "PRICE_SLIPPAGE"
	// StatsIntervalKey defines interval in seconds for printing basic daemon
	// statistics.
	StatsIntervalKey = "STATS_INTERVAL"
	// EnableProfilerKey enables the periodic stats dump used to investigate
	// performance issues.
	EnableProfilerKey = "ENABLE_PROFILER"

	DbLocation       = "db"
	ProfilerLocation = "stats"

	// OracleTypePyth ...
	OracleTypePyth = "pyth"
	// OracleTypePythHTTP ...
	OracleTypePythHTTP = "pythhttp"
	// OracleTypeMock ...
	OracleTypeMock = "mock"
)

var vip *viper.Viper

var defaultDatadir = func() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".oraswap-daemon"
	}
	return filepath.Join(home, ".oraswap-daemon")
}()

func InitConfig() error {
	vip = viper.New()
	vip.SetEnvPrefix("ORASWAP")
	vip.AutomaticEnv()

	vip.SetDefault(DatadirKey, defaultDatadir)
	vip.SetDefault(LogLevelKey, 4)
	vip.SetDefault(OracleTypeKey, OracleTypePyth)
	vip.SetDefault(OracleIntervalKey, 1000)
	vip.SetDefault(PriceSlippageKey, 0.05)
	vip.SetDefault(StatsIntervalKey, 600)
	vip.SetDefault(EnableProfilerKey, false)

	if err := validate(); err != nil {
		return fmt.Errorf("error while validating config: %s", err)
	}

	if err := initDatadir(); err != nil {
		return fmt.Errorf("error while creating datadir: %s", err)
	}

	return nil
}

func GetString(key string) string {
	return vip.GetString(key)
}

func GetInt(key string) int {
	return vip.GetInt(key)
}

func GetFloat(key string) float64 {
	return vip.GetFloat64(key)
}

func GetDuration(key string) time.Duration {
	return vip.GetDuration(key)
}

func GetBool(key string) bool {
	return vip.GetBool(key)
}

func GetDatadir() string {
	return GetString(DatadirKey)
}

func validate() error {
	datadir := GetString(DatadirKey)
	if len(datadir) <= 0 {
		return fmt.Errorf("missing datadir")
	}

	switch oracleType := GetString(OracleTypeKey); oracleType {
	case OracleTypePyth, OracleTypePythHTTP, OracleTypeMock:
	default:
		return fmt.Errorf("unknown oracle type %s", oracleType)
	}

	if GetInt(OracleIntervalKey) <= 0 {
		return fmt.Errorf("%s must be positive", OracleIntervalKey)
	}

	slippage := GetFloat(PriceSlippageKey)
	if slippage < 0 || slippage >= 100 {
		return fmt.Errorf("%s must be in [0, 100)", PriceSlippageKey)
	}

	return nil
}

func initDatadir() error {
	datadir := GetDatadir()
	if err := makeDirectoryIfNotExists(filepath.Join(datadir, DbLocation)); err != nil {
		return err
	}

	profilerEnabled := GetBool(EnableProfilerKey)
	if profilerEnabled {
		if err := makeDirectoryIfNotExists(filepath.Join(datadir, ProfilerLocation)); err != nil {
			return err
		}
	}
	return nil
}

func makeDirectoryIfNotExists(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return os.MkdirAll(path, os.ModeDir|0755)
	}
	return nil
}
