package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/spf13/viper"
)

// CliConfig is the configuration of the rsa-cli binary
type CliConfig struct {
	Logger   LoggerSettings   `mapstructure:"logger"`
	Engine   EngineSettings   `mapstructure:"engine"`
	Database DatabaseSettings `mapstructure:"database"`
}

// Validate validates every section of the configuration
func (c *CliConfig) Validate() error {
	if err := c.Logger.Validate(); err != nil {
		return err
	}
	if err := c.Engine.Validate(); err != nil {
		return err
	}
	return c.Database.Validate()
}

// InitializeCliConfig loads the configuration from path. A missing file falls back to
// defaults; environment variables such as RSA_ENGINE_KEY_BITS override file values.
func InitializeCliConfig(path string) (*CliConfig, error) {
	v := viper.New()
	setCliDefaults(v)

	v.SetEnvPrefix("RSA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil && !isMissingConfig(err) {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	var cfg CliConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setCliDefaults(v *viper.Viper) {
	v.SetDefault("logger.log_level", LogLevelInfo)
	v.SetDefault("logger.log_type", LogTypeConsole)
	v.SetDefault("logger.file_path", "")
	v.SetDefault("logger.max_size", 0)
	v.SetDefault("logger.max_backups", 0)
	v.SetDefault("logger.max_age", 0)

	v.SetDefault("engine.key_bits", DefaultKeyBits)
	v.SetDefault("engine.miller_rabin_rounds", DefaultMillerRabinRounds)

	v.SetDefault("database.type", SqliteDbType)
	v.SetDefault("database.dsn", "rsa_keystore.db")
	v.SetDefault("database.name", "rsa_keystore")
}

func isMissingConfig(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	if errors.As(err, &notFound) {
		return true
	}
	var pathErr *fs.PathError
	return errors.As(err, &pathErr)
}
