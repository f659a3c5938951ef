// Package cryptoutil seals config files and state snapshots.
package cryptoutil

import (
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
)

// KeySize is the only accepted key length: AES-256 for configs and DARE for
// snapshots.
const KeySize = 32

var (
	ErrEmptyKey  = errors.New("encryption key is empty")
	ErrKeyLength = errors.New("encryption key must be 32 bytes")
)

// ParseKey decodes a key written as "base64:...", "hex:..." or a bare
// value, which is tried as base64 first and then as hex.
func ParseKey(key string) ([]byte, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, ErrEmptyKey
	}

	var (
		data []byte
		err  error
	)
	if rest, ok := strings.CutPrefix(key, "base64:"); ok {
		data, err = base64.StdEncoding.DecodeString(rest)
	} else if rest, ok := strings.CutPrefix(key, "hex:"); ok {
		data, err = hex.DecodeString(rest)
	} else if data, err = base64.StdEncoding.DecodeString(key); err != nil {
		data, err = hex.DecodeString(key)
	}
	if err != nil {
		return nil, fmt.Errorf("decode key: %w", err)
	}
	if len(data) != KeySize {
		return nil, fmt.Errorf("%w: got %d", ErrKeyLength, len(data))
	}
	return data, nil
}
