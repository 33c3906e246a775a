// Package sitecfg loads runtime configuration from a YAML file and the
// environment. Environment variables use the SITESMITH_ prefix with
// underscores for nesting, e.g. SITESMITH_SERVER_ADDRESS.
package sitecfg

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Export   ExportConfig   `mapstructure:"export"`
	Logger   LoggerConfig   `mapstructure:"logger"`
}

type ServerConfig struct {
	Address      string `mapstructure:"address"`
	ReadTimeout  string `mapstructure:"read_timeout"`
	WriteTimeout string `mapstructure:"write_timeout"`
}

type DatabaseConfig struct {
	// URL is a lib/pq connection string. Empty selects the in-memory store.
	URL string `mapstructure:"url"`
}

type ExportConfig struct {
	Dir      string `mapstructure:"dir"`
	S3Bucket string `mapstructure:"s3_bucket"`
	S3Prefix string `mapstructure:"s3_prefix"`
	S3Region string `mapstructure:"s3_region"`
}

type LoggerConfig struct {
	Level       string `mapstructure:"level"`
	Development bool   `mapstructure:"development"`
}

// Load reads configuration from path (optional; "" skips the file) and the
// environment, with production-safe defaults.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("server.address", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("database.url", "")
	v.SetDefault("export.dir", "dist")
	v.SetDefault("export.s3_bucket", "")
	v.SetDefault("export.s3_prefix", "")
	v.SetDefault("export.s3_region", "us-east-1")
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.development", false)

	v.SetEnvPrefix("SITESMITH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	} else {
		v.SetConfigName("sitesmith")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		// A missing default config file is fine; env and defaults apply.
		_ = v.ReadInConfig()
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &cfg, nil
}
