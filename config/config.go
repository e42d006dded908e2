package config

import (
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

type MarketConfig struct {
	Symbol        string  `yaml:"symbol"`
	InitialPrice  float64 `yaml:"initial_price"`
	OrdersPerSide int     `yaml:"orders_per_side"`
}

type AppConfig struct {
	ServiceName string         `yaml:"service_name"`
	LogLevel    string         `yaml:"log_level"`
	Seed        int64          `yaml:"seed"`
	Prompt      bool           `yaml:"prompt"`
	Markets     []MarketConfig `yaml:"markets"`
}

// Load load config from file and environment variables.
func Load(filePath string) (*AppConfig, error) {
	// optional .env for local runs
	_ = godotenv.Load()

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
