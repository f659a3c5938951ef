package state

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/goccy/go-json"

	"github.com/rowjay/bell-schedule/internal/lock"
)

// File stores all values in one JSON object on disk. Writes take a flock so
// concurrent bells processes never interleave a read-modify-write.
type File struct {
	Path     string
	LockPath string
}

func NewFile(path, lockPath string) *File {
	if lockPath == "" {
		lockPath = path + ".lock"
	}
	return &File{Path: path, LockPath: lockPath}
}

func (f *File) Get(ctx context.Context, key string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	values, err := f.read()
	if err != nil {
		return "", err
	}
	return values[key], nil
}

func (f *File) Set(ctx context.Context, key, value string) error {
	if err := os.MkdirAll(filepath.Dir(f.Path), 0o750); err != nil {
		return fmt.Errorf("create directories: %w", err)
	}
	guard, err := lock.Acquire(ctx, f.LockPath)
	if err != nil {
		return err
	}
	defer guard.Release()

	values, err := f.read()
	if err != nil {
		return err
	}
	values[key] = value
	return f.write(values)
}

func (f *File) Ping(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := f.read()
	return err
}

func (f *File) Close() error { return nil }

func (f *File) read() (map[string]string, error) {
	values := map[string]string{}
	data, err := os.ReadFile(f.Path)
	if errors.Is(err, os.ErrNotExist) {
		return values, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read state: %w", err)
	}
	if len(data) == 0 {
		return values, nil
	}
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("decode state %s: %w", f.Path, err)
	}
	return values, nil
}

func (f *File) write(values map[string]string) error {
	payload, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(f.Path), filepath.Base(f.Path)+".*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(payload); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), f.Path)
}
