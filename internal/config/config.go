package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application level configuration aggregated from env/config files.
type Config struct {
	Server struct {
		Addr         string
		ErrorDetails bool
	}
	Log struct {
		Level  string
		Format string
	}
	Warehouse struct {
		Driver string
		DSN    string
		Table  string
		Pooled bool
	}
}

// Load reads configuration from environment variables and optional config files.
// A missing connection string is not an error here; the warehouse connector
// rejects it when it is built.
func Load() (Config, error) {
	// .env never overrides variables that are already set
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("SNOWCONNECT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("server.addr", "0.0.0.0:8080")
	v.SetDefault("server.errordetails", false)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("warehouse.driver", "snowflake")
	v.SetDefault("warehouse.dsn", "")
	v.SetDefault("warehouse.table", "my_app_db.main_schema.users")
	v.SetDefault("warehouse.pooled", false)

	v.SetConfigName("config")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return cfg, nil
}
