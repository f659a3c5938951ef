package state

import (
	"fmt"

	"github.com/rowjay/bell-schedule/internal/config"
)

// New opens the configured backend.
func New(cfg config.StateConfig) (Store, error) {
	switch cfg.Backend {
	case "file", "":
		if cfg.File.Path == "" {
			return nil, fmt.Errorf("state file path is required")
		}
		return NewFile(cfg.File.Path, cfg.File.LockPath), nil
	case "sqlite", "sqlite3":
		if cfg.SQLite.Path == "" {
			return nil, fmt.Errorf("state sqlite path is required")
		}
		return NewSQLite(cfg.SQLite.Path)
	case "redis":
		if cfg.Redis.Addr == "" {
			return nil, fmt.Errorf("redis addr is required")
		}
		return NewRedis(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, cfg.Redis.Prefix), nil
	case "s3":
		if cfg.S3.Endpoint == "" || cfg.S3.Bucket == "" {
			return nil, fmt.Errorf("s3 endpoint and bucket are required")
		}
		return NewS3(S3Options{
			Endpoint:        cfg.S3.Endpoint,
			Region:          cfg.S3.Region,
			Bucket:          cfg.S3.Bucket,
			Prefix:          cfg.S3.Prefix,
			AccessKey:       cfg.S3.AccessKey,
			SecretKey:       cfg.S3.SecretKey,
			SessionToken:    cfg.S3.SessionToken,
			UseSSL:          cfg.S3.UseSSL,
			ForcePathStyle:  cfg.S3.ForcePathStyle,
			TLSInsecureSkip: cfg.S3.TLSInsecureSkip,
		})
	case "memory":
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("unsupported state backend: %s", cfg.Backend)
	}
}
