package state

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rowjay/bell-schedule/internal/config"
)

func exerciseStore(t *testing.T, store Store) {
	t.Helper()
	ctx := context.Background()

	require.NoError(t, store.Ping(ctx))

	got, err := store.Get(ctx, "middle-times-grade")
	require.NoError(t, err)
	assert.Empty(t, got, "missing key reads as empty")

	require.NoError(t, store.Set(ctx, "middle-times-grade", "2"))
	require.NoError(t, store.Set(ctx, "high-times-day", "1"))
	require.NoError(t, store.Set(ctx, "middle-times-grade", "1"))

	got, err = store.Get(ctx, "middle-times-grade")
	require.NoError(t, err)
	assert.Equal(t, "1", got)

	got, err = store.Get(ctx, "high-times-day")
	require.NoError(t, err)
	assert.Equal(t, "1", got)
}

func TestMemory(t *testing.T) {
	exerciseStore(t, NewMemory())
}

func TestFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "state.json")
	store := NewFile(path, "")
	exerciseStore(t, store)

	reopened := NewFile(path, "")
	got, err := reopened.Get(context.Background(), "high-times-day")
	require.NoError(t, err)
	assert.Equal(t, "1", got)
}

func TestFileRejectsCorruptState(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))
	_, err := NewFile(path, "").Get(context.Background(), "high-times-day")
	assert.Error(t, err)
}

func TestSQLite(t *testing.T) {
	store, err := NewSQLite(filepath.Join(t.TempDir(), "state.db"))
	require.NoError(t, err)
	defer store.Close()
	exerciseStore(t, store)
}

func TestFactory(t *testing.T) {
	store, err := New(config.StateConfig{Backend: "memory"})
	require.NoError(t, err)
	assert.IsType(t, &Memory{}, store)

	store, err = New(config.StateConfig{Backend: "file", File: config.FileState{Path: filepath.Join(t.TempDir(), "s.json")}})
	require.NoError(t, err)
	assert.IsType(t, &File{}, store)

	_, err = New(config.StateConfig{Backend: "s3"})
	assert.Error(t, err)

	_, err = New(config.StateConfig{Backend: "etcd"})
	assert.Error(t, err)
}

func TestRedis(t *testing.T) {
	addr := os.Getenv("BELLS_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("BELLS_TEST_REDIS_ADDR not set")
	}
	store := NewRedis(addr, "", 0, "bells-test:"+t.TempDir()+":")
	defer store.Close()
	exerciseStore(t, store)
}

func TestFactoryRedisNeedsAddr(t *testing.T) {
	_, err := New(config.StateConfig{Backend: "redis"})
	assert.Error(t, err)

	store, err := New(config.StateConfig{Backend: "redis", Redis: config.RedisState{Addr: "localhost:0"}})
	require.NoError(t, err)
	assert.IsType(t, &Redis{}, store)
	require.NoError(t, store.Close())
}
