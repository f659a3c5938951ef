package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/rowjay/bell-schedule/internal/cryptoutil"
)

const (
	envPrefix = "BELLS"
	appDir    = "bells"

	DefaultDayTypeURL = "https://hcpss.space/api/calendar/dayType"
)

// Load reads configuration from a file (optionally encrypted), env vars, and defaults.
func Load(path string) (*Config, error) {
	vp := viper.New()
	vp.SetEnvPrefix(envPrefix)
	vp.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	vp.AutomaticEnv()

	setDefaults(vp)

	resolved, err := resolveConfigPath(path)
	if err != nil {
		return nil, err
	}

	if resolved != "" {
		data, readErr := os.ReadFile(resolved)
		if readErr != nil {
			return nil, fmt.Errorf("read config: %w", readErr)
		}
		if isEncryptedPath(resolved) {
			vp.SetConfigType(configTypeFromPath(resolved))
			key := os.Getenv("BELLS_CONFIG_KEY")
			if key == "" {
				key = vp.GetString("global.config_passphrase")
			}
			if key == "" {
				return nil, errors.New("config file is encrypted but BELLS_CONFIG_KEY is not set")
			}
			plain, decErr := decryptConfig(data, key)
			if decErr != nil {
				return nil, fmt.Errorf("decrypt config: %w", decErr)
			}
			if err := vp.ReadConfig(bytes.NewReader(plain)); err != nil {
				return nil, fmt.Errorf("parse config: %w", err)
			}
		} else {
			vp.SetConfigFile(resolved)
			if err := vp.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	var cfg Config
	if err := vp.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	expandEnv(&cfg)
	applyPostLoadDefaults(&cfg)
	return &cfg, nil
}

func resolveConfigPath(path string) (string, error) {
	if path != "" {
		return path, nil
	}
	if envPath := os.Getenv("BELLS_CONFIG"); envPath != "" {
		return envPath, nil
	}

	candidates := []string{"bells.yaml", "bells.yml", "bells.toml", "bells.json"}
	for _, c := range candidates {
		if _, err := os.Stat(c); err == nil {
			return c, nil
		}
	}

	configDir, err := os.UserConfigDir()
	if err == nil {
		base := filepath.Join(configDir, appDir)
		for _, c := range append(candidates, "bells.yaml.enc", "bells.yml.enc", "bells.toml.enc") {
			p := filepath.Join(base, c)
			if _, err := os.Stat(p); err == nil {
				return p, nil
			}
		}
	}

	return "", nil
}

func isEncryptedPath(path string) bool {
	return strings.HasSuffix(path, ".enc") || strings.HasSuffix(path, ".encrypted")
}

func configTypeFromPath(path string) string {
	trimmed := strings.TrimSuffix(strings.TrimSuffix(path, ".enc"), ".encrypted")
	switch filepath.Ext(trimmed) {
	case ".toml":
		return "toml"
	case ".json":
		return "json"
	default:
		return "yaml"
	}
}

// DefaultStateDir is where file and sqlite state live unless configured.
func DefaultStateDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, appDir)
	}
	return "."
}

func setDefaults(vp *viper.Viper) {
	vp.SetDefault("global.log_level", "info")
	vp.SetDefault("global.log_format", "console")
	vp.SetDefault("global.operation_timeout", "30s")
	vp.SetDefault("global.log_file.max_size_mb", 10)
	vp.SetDefault("global.log_file.max_backups", 5)
	vp.SetDefault("global.log_file.max_age_days", 30)
	vp.SetDefault("state.backend", "file")
	vp.SetDefault("state.file.path", filepath.Join(DefaultStateDir(), "state.json"))
	vp.SetDefault("state.sqlite.path", filepath.Join(DefaultStateDir(), "state.db"))
	vp.SetDefault("state.redis.addr", "localhost:6379")
	vp.SetDefault("state.redis.prefix", "bells:")
	vp.SetDefault("state.s3.prefix", "bells")
	vp.SetDefault("state.state_key", "")
	vp.SetDefault("daytype.url", DefaultDayTypeURL)
	vp.SetDefault("daytype.timeout", "0s")
}

func applyPostLoadDefaults(cfg *Config) {
	if cfg.Global.OperationTimeout == 0 {
		cfg.Global.OperationTimeout = 30 * time.Second
	}
	if cfg.DayType.URL == "" {
		cfg.DayType.URL = DefaultDayTypeURL
	}
	cfg.State.Backend = strings.ToLower(cfg.State.Backend)
	if cfg.State.StateKey == "" {
		cfg.State.StateKey = os.Getenv("BELLS_STATE_KEY")
	}
}

func expandEnv(cfg *Config) {
	cfg.State.File.Path = os.ExpandEnv(cfg.State.File.Path)
	cfg.State.SQLite.Path = os.ExpandEnv(cfg.State.SQLite.Path)
	cfg.State.Redis.Password = os.ExpandEnv(cfg.State.Redis.Password)
	cfg.State.S3.AccessKey = os.ExpandEnv(cfg.State.S3.AccessKey)
	cfg.State.S3.SecretKey = os.ExpandEnv(cfg.State.S3.SecretKey)
	cfg.State.S3.SessionToken = os.ExpandEnv(cfg.State.S3.SessionToken)
	cfg.State.StateKey = os.ExpandEnv(cfg.State.StateKey)
	cfg.DayType.URL = os.ExpandEnv(cfg.DayType.URL)
}

func decryptConfig(ciphertext []byte, key string) ([]byte, error) {
	parsed, err := cryptoutil.ParseKey(key)
	if err != nil {
		return nil, err
	}
	return cryptoutil.DecryptConfig(ciphertext, parsed)
}
