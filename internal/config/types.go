package config

import "time"

// Config is the root configuration schema.
type Config struct {
	Global  GlobalConfig  `mapstructure:"global"`
	State   StateConfig   `mapstructure:"state"`
	DayType DayTypeConfig `mapstructure:"daytype"`
}

type GlobalConfig struct {
	LogLevel         string        `mapstructure:"log_level"`
	LogFormat        string        `mapstructure:"log_format"` // json or console
	LogFile          LogFileConfig `mapstructure:"log_file"`
	OperationTimeout time.Duration `mapstructure:"operation_timeout"`
	ConfigPassphrase string        `mapstructure:"config_passphrase"` // optional; may come from env
}

// LogFileConfig enables a rotating log file next to stdout. Empty Path
// disables it.
type LogFileConfig struct {
	Path       string `mapstructure:"path"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
	Compress   bool   `mapstructure:"compress"`
}

type StateConfig struct {
	Backend  string      `mapstructure:"backend"` // file, sqlite, redis, s3, memory
	File     FileState   `mapstructure:"file"`
	SQLite   SQLiteState `mapstructure:"sqlite"`
	Redis    RedisState  `mapstructure:"redis"`
	S3       S3State     `mapstructure:"s3"`
	StateKey string      `mapstructure:"state_key"` // encrypts state exports
}

type FileState struct {
	Path     string `mapstructure:"path"`
	LockPath string `mapstructure:"lock_path"`
}

type SQLiteState struct {
	Path string `mapstructure:"path"`
}

type RedisState struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	Prefix   string `mapstructure:"prefix"`
}

type S3State struct {
	Endpoint        string `mapstructure:"endpoint"`
	Region          string `mapstructure:"region"`
	Bucket          string `mapstructure:"bucket"`
	Prefix          string `mapstructure:"prefix"`
	AccessKey       string `mapstructure:"access_key"`
	SecretKey       string `mapstructure:"secret_key"`
	SessionToken    string `mapstructure:"session_token"`
	UseSSL          bool   `mapstructure:"use_ssl"`
	ForcePathStyle  bool   `mapstructure:"force_path_style"`
	TLSInsecureSkip bool   `mapstructure:"tls_insecure_skip"`
}

type DayTypeConfig struct {
	URL     string        `mapstructure:"url"`
	Timeout time.Duration `mapstructure:"timeout"` // 0 leaves it to the transport
}
