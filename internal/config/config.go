package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration for the srscan CLI. The core load and
// query APIs take their parameters explicitly; config only feeds the
// command-line layer.
type Config struct {
	Data  DataConfig
	Log   LogConfig
	Stats StatsConfig
}

type DataConfig struct {
	Path          string // CSV path; .gz/.zst/.lz4 are decompressed on the fly
	ExpectedRows  int    // pre-size for the record store
	SampleRecords int    // sample rows printed per demo query
}

type LogConfig struct {
	Level  string
	Format string
}

type StatsConfig struct {
	TopComplaints int // size of the ranked complaint-type list
}

// Load loads configuration from defaults, an optional srscan.toml, and
// SRSCAN_* environment variables.
func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetEnvPrefix("SRSCAN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetConfigName("srscan")
	v.SetConfigType("toml")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.srscan/")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	cfg := &Config{
		Data: DataConfig{
			Path:          v.GetString("data.path"),
			ExpectedRows:  v.GetInt("data.expected_rows"),
			SampleRecords: v.GetInt("data.sample_records"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
		},
		Stats: StatsConfig{
			TopComplaints: v.GetInt("stats.top_complaints"),
		},
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	// Data defaults — the full 2010-2019 export is ~11M rows
	v.SetDefault("data.path", "311_2010_2019_full.csv")
	v.SetDefault("data.expected_rows", 12_000_000)
	v.SetDefault("data.sample_records", 5)

	// Log defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	// Stats defaults
	v.SetDefault("stats.top_complaints", 10)
}
