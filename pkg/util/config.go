package util

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// ReadConfig loads ./data/config.yaml, if present, and layers environment
// variable overrides on top. A missing config file is not an error — every
// key below has a default.
func ReadConfig() error {
	viper.SetConfigName("config")
	viper.AddConfigPath("./data/")
	viper.AutomaticEnv()

	viper.SetDefault("API_PORT", 6060)
	viper.SetDefault("API_TIMEOUT", 30*time.Second)
	viper.SetDefault("WORKER_POOL_SIZE", 8)
	viper.SetDefault("SNAP_K", 5)
	viper.SetDefault("ASTAR_BIDIRECTIONAL", false)
	viper.SetDefault("PLANNER_VARIANT", "tiered")
	viper.SetDefault("OVERPASS_FETCH_TIMEOUT", 60*time.Second)
	viper.SetDefault("OVERPASS_ENDPOINT", "https://overpass-api.de/api/interpreter")
	viper.SetDefault("RATE_LIMIT_RPS", 20)
	viper.SetDefault("USE_RATE_LIMIT", false)

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("fatal error config file: %w", err)
		}
	}
	return nil
}
