package config

import (
	"os"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	postgres_wrapper "github.com/tradecore/exchange/pkg/infra/postgres"
	redis_wrapper "github.com/tradecore/exchange/pkg/infra/redis"
	"github.com/tradecore/exchange/pkg/kafkafeed"
)

type ExchangeConfig struct {
	PriceBandPercent   string `yaml:"price_band_percent"`
	CleanupIntervalSec int    `yaml:"cleanup_interval_sec"`
}

type AppConfig struct {
	ServiceName string                           `yaml:"service_name"`
	Exchange    *ExchangeConfig                  `yaml:"exchange"`
	TradesDB    *postgres_wrapper.PostgresConfig `yaml:"trades_db"`
	Redis       *redis_wrapper.RedisConfig       `yaml:"redis"`
	TradeFeed   *kafkafeed.FeedConfig            `yaml:"trade_feed"`
}

// Load load config from file and environment variables.
func Load(filePath string) (*AppConfig, error) {
	if len(filePath) == 0 {
		filePath = os.Getenv("CONFIG_FILE")
	}

	fields := []interface{}{
		"func",
		"config.readFromFile",
		"filePath",
		filePath,
	}

	sugar := zap.S().With(fields...)

	sugar.Debug("Load config...")
	zap.S().Debugf("CONFIG_FILE=%v", filePath)

	configBytes, err := os.ReadFile(filePath)
	if err != nil {
		sugar.Error("Failed to load config file")
		return nil, err
	}
	configBytes = []byte(os.ExpandEnv(string(configBytes)))

	cfg := &AppConfig{}

	err = yaml.Unmarshal(configBytes, cfg)
	if err != nil {
		sugar.Error("Failed to parse config file")
		return nil, err
	}

	zap.S().Debugf("config: %+v", cfg)

	return cfg, nil
}
