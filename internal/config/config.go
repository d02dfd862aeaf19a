package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Log       LogConfig       `mapstructure:"log"`
	Host      HostConfig      `mapstructure:"host"`
	ACF       ACFConfig       `mapstructure:"acf"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Connector ConnectorConfig `mapstructure:"connector"`
	Output    OutputConfig    `mapstructure:"output"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // text or json
}

// HostConfig describes the WordPress installation
type HostConfig struct {
	AdminURL    string   `mapstructure:"admin_url"`
	Multisite   bool     `mapstructure:"multisite"`
	TablePrefix string   `mapstructure:"table_prefix"`
	PostTypes   []string `mapstructure:"post_types"` // Registered in code, invisible to the database
}

// ACFConfig holds definition discovery settings
type ACFConfig struct {
	LocalJSONDir    string `mapstructure:"local_json_dir"`
	CollectDatabase bool   `mapstructure:"collect_database"`
	WatchDebounceMs int    `mapstructure:"watch_debounce_ms"`
}

// DatabaseConfig holds WordPress MySQL connection details
type DatabaseConfig struct {
	Host                string `mapstructure:"host"`
	Port                int    `mapstructure:"port"`
	Name                string `mapstructure:"name"`
	User                string `mapstructure:"user"`
	Password            string `mapstructure:"password"`
	MaxQueriesPerSecond int    `mapstructure:"max_queries_per_second"`
}

// RedisConfig holds Redis connection details for rule publishing
type RedisConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	Host      string `mapstructure:"host"`
	Port      int    `mapstructure:"port"`
	Password  string `mapstructure:"password"`
	Database  int    `mapstructure:"database"`
	KeyPrefix string `mapstructure:"key_prefix"`
}

// ConnectorConfig holds the translation connector endpoint
type ConnectorConfig struct {
	Enabled              bool   `mapstructure:"enabled"`
	BaseURL              string `mapstructure:"base_url"`
	Token                string `mapstructure:"token"`
	Timeout              int    `mapstructure:"timeout"`
	MaxRetries           int    `mapstructure:"max_retries"`
	MaxRequestsPerSecond int    `mapstructure:"max_requests_per_second"`
}

// OutputConfig holds file output settings
type OutputConfig struct {
	File string `mapstructure:"file"`
}

// Load loads configuration from a YAML file with environment variable overrides.
// An empty path looks for config.yaml in the current directory.
func Load(path string) (*Config, error) {
	v := viper.New()
	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("config file %s: %w", path, err)
		}
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	setDefaults(v)

	v.SetEnvPrefix("ACFL")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate reports settings that cannot work together.
func (c *Config) Validate() error {
	if c.ACF.LocalJSONDir == "" && !c.ACF.CollectDatabase {
		return errors.New("no definition source: set acf.local_json_dir or enable acf.collect_database")
	}
	if c.Connector.Enabled && c.Connector.BaseURL == "" {
		return errors.New("connector.base_url is required when the connector publisher is enabled")
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("host.admin_url", "http://localhost/wp-admin/")
	v.SetDefault("host.multisite", true)
	v.SetDefault("host.table_prefix", "wp_")
	v.SetDefault("host.post_types", []string{"acf-field", "acf-field-group"})

	v.SetDefault("acf.local_json_dir", "./acf-json")
	v.SetDefault("acf.collect_database", true)
	v.SetDefault("acf.watch_debounce_ms", 500)

	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 3306)
	v.SetDefault("database.name", "wordpress")
	v.SetDefault("database.user", "wordpress")
	v.SetDefault("database.password", "wordpress")
	v.SetDefault("database.max_queries_per_second", 50)

	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.database", 0)
	v.SetDefault("redis.key_prefix", "acfl:")

	v.SetDefault("connector.enabled", false)
	v.SetDefault("connector.base_url", "")
	v.SetDefault("connector.token", "")
	v.SetDefault("connector.timeout", 30)
	v.SetDefault("connector.max_retries", 3)
	v.SetDefault("connector.max_requests_per_second", 5)

	v.SetDefault("output.file", "")
}
