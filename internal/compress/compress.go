// Package compress wraps state snapshots in gzip or zstd.
package compress

import (
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/klauspost/compress/zstd"
)

const (
	TypeNone = "none"
	TypeGzip = "gzip"
	TypeZstd = "zstd"
)

var ErrUnsupported = errors.New("unsupported compression")

type codec struct {
	exts   []string
	writer func(io.Writer) (io.WriteCloser, error)
	reader func(io.Reader) (io.ReadCloser, error)
}

var codecs = map[string]codec{
	TypeNone: {
		writer: func(w io.Writer) (io.WriteCloser, error) { return nopWriteCloser{w}, nil },
		reader: func(r io.Reader) (io.ReadCloser, error) { return io.NopCloser(r), nil },
	},
	TypeGzip: {
		exts:   []string{".gz"},
		writer: func(w io.Writer) (io.WriteCloser, error) { return gzip.NewWriter(w), nil },
		reader: func(r io.Reader) (io.ReadCloser, error) { return gzip.NewReader(r) },
	},
	TypeZstd: {
		exts: []string{".zst", ".zstd"},
		writer: func(w io.Writer) (io.WriteCloser, error) {
			return zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedBetterCompression))
		},
		reader: func(r io.Reader) (io.ReadCloser, error) {
			dec, err := zstd.NewReader(r)
			if err != nil {
				return nil, err
			}
			return dec.IOReadCloser(), nil
		},
	},
}

func lookup(kind string) (codec, error) {
	if kind == "" {
		kind = TypeNone
	}
	c, ok := codecs[kind]
	if !ok {
		return codec{}, fmt.Errorf("%w: %s", ErrUnsupported, kind)
	}
	return c, nil
}

// FromPath guesses the compression from a file name, ignoring a trailing
// ".enc".
func FromPath(path string) string {
	path = strings.TrimSuffix(path, ".enc")
	for kind, c := range codecs {
		for _, ext := range c.exts {
			if strings.HasSuffix(path, ext) {
				return kind
			}
		}
	}
	return TypeNone
}

// WrapWriter compresses into w. Close flushes but does not close w.
func WrapWriter(kind string, w io.Writer) (io.WriteCloser, error) {
	c, err := lookup(kind)
	if err != nil {
		return nil, err
	}
	return c.writer(w)
}

func WrapReader(kind string, r io.Reader) (io.ReadCloser, error) {
	c, err := lookup(kind)
	if err != nil {
		return nil, err
	}
	return c.reader(r)
}

type nopWriteCloser struct{ io.Writer }

func (n nopWriteCloser) Close() error { return nil }
