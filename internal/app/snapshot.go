package app

import (
	"context"
	"fmt"
	"io"
	"slices"
	"strconv"
	"time"

	"github.com/goccy/go-json"

	"github.com/rowjay/bell-schedule/internal/compress"
	"github.com/rowjay/bell-schedule/internal/cryptoutil"
	"github.com/rowjay/bell-schedule/internal/selection"
	"github.com/rowjay/bell-schedule/internal/version"
)

const snapshotVersion = 1

// Snapshot is the exported form of every stored selection.
type Snapshot struct {
	Version     int               `json:"version"`
	CreatedAt   time.Time         `json:"created_at"`
	ToolVersion string            `json:"tool_version"`
	Values      map[string]string `json:"values"`
}

type SnapshotOptions struct {
	Compression string
	Encrypt     bool
}

func (a *App) stateKey() ([]byte, error) {
	if a.Cfg.State.StateKey == "" {
		return nil, fmt.Errorf("encryption requested but state.state_key is empty")
	}
	return cryptoutil.ParseKey(a.Cfg.State.StateKey)
}

// ExportState writes the selections to w, compressed and then encrypted as
// requested.
func (a *App) ExportState(ctx context.Context, w io.Writer, opts SnapshotOptions) (*Snapshot, error) {
	values, err := a.Selections(ctx)
	if err != nil {
		return nil, err
	}
	snap := &Snapshot{
		Version:     snapshotVersion,
		CreatedAt:   time.Now().UTC(),
		ToolVersion: version.Version,
		Values:      values,
	}

	writer := w
	var closers []io.Closer
	if opts.Encrypt {
		key, err := a.stateKey()
		if err != nil {
			return nil, err
		}
		encWriter, err := cryptoutil.EncryptWriter(writer, key)
		if err != nil {
			return nil, err
		}
		writer = encWriter
		closers = append(closers, encWriter)
	}
	compWriter, err := compress.WrapWriter(opts.Compression, writer)
	if err != nil {
		return nil, err
	}
	closers = append(closers, compWriter)

	enc := json.NewEncoder(compWriter)
	enc.SetIndent("", "  ")
	if err := enc.Encode(snap); err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	for i := len(closers) - 1; i >= 0; i-- {
		if err := closers[i].Close(); err != nil {
			return nil, err
		}
	}
	a.Log.Info().Int("keys", len(values)).Str("compression", opts.Compression).Bool("encrypted", opts.Encrypt).Msg("state exported")
	return snap, nil
}

// ImportState reads a snapshot written by ExportState and stores its values.
// Nothing is written unless every value is a known key holding an integer.
func (a *App) ImportState(ctx context.Context, r io.Reader, opts SnapshotOptions) (*Snapshot, error) {
	payload := r
	if opts.Encrypt {
		key, err := a.stateKey()
		if err != nil {
			return nil, err
		}
		payload, err = cryptoutil.DecryptReader(payload, key)
		if err != nil {
			return nil, err
		}
	}
	compReader, err := compress.WrapReader(opts.Compression, payload)
	if err != nil {
		return nil, err
	}
	defer compReader.Close()

	var snap Snapshot
	if err := json.NewDecoder(compReader).Decode(&snap); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	if snap.Version != snapshotVersion {
		return nil, fmt.Errorf("unsupported snapshot version %d", snap.Version)
	}
	for key, v := range snap.Values {
		if !slices.Contains(selection.Keys, key) {
			return nil, fmt.Errorf("snapshot has unknown key %q", key)
		}
		if v == "" {
			continue
		}
		if _, err := strconv.Atoi(v); err != nil {
			return nil, fmt.Errorf("snapshot value for %s is not an integer: %q", key, v)
		}
	}
	for _, key := range selection.Keys {
		v, ok := snap.Values[key]
		if !ok || v == "" {
			continue
		}
		if err := a.Store.Set(ctx, key, v); err != nil {
			return nil, fmt.Errorf("write %s: %w", key, err)
		}
	}
	a.Log.Info().Int("keys", len(snap.Values)).Time("created_at", snap.CreatedAt).Msg("state imported")
	return &snap, nil
}
