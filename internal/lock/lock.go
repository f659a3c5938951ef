package lock

import (
	"context"
	"fmt"
	"time"

	"github.com/gofrs/flock"
)

const retryDelay = 25 * time.Millisecond

type Lock struct {
	file *flock.Flock
}

// Acquire blocks until the filesystem lock at path is held or ctx ends.
func Acquire(ctx context.Context, path string) (*Lock, error) {
	if path == "" {
		return nil, fmt.Errorf("lock path is empty")
	}
	lock := flock.New(path)
	ok, err := lock.TryLockContext(ctx, retryDelay)
	if err != nil {
		return nil, fmt.Errorf("acquire lock %s: %w", path, err)
	}
	if !ok {
		return nil, fmt.Errorf("another bells process holds %s", path)
	}
	return &Lock{file: lock}, nil
}

// Release frees the lock.
func (l *Lock) Release() error {
	if l == nil || l.file == nil {
		return nil
	}
	return l.file.Unlock()
}
