package cryptoutil

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/binary"
	"errors"
	"io"

	"github.com/minio/sio"
)

const (
	configMagic   = "BEL1"
	configVersion = uint16(1)
	nonceSize     = 12
	headerSize    = len(configMagic) + 2 + nonceSize
)

var ErrBadHeader = errors.New("not an encrypted bells config")

// EncryptWriter wraps w in a DARE (sio) stream; Close flushes the last package.
func EncryptWriter(w io.Writer, key []byte) (io.WriteCloser, error) {
	return sio.EncryptWriter(w, sio.Config{Key: key})
}

// DecryptReader reverses EncryptWriter.
func DecryptReader(r io.Reader, key []byte) (io.Reader, error) {
	return sio.DecryptReader(r, sio.Config{Key: key})
}

// EncryptConfig seals a whole config file with AES-GCM behind a short
// magic+version+nonce header.
func EncryptConfig(plain, key []byte) ([]byte, error) {
	aead, err := newGCM(key)
	if err != nil {
		return nil, err
	}
	out := make([]byte, headerSize, headerSize+len(plain)+aead.Overhead())
	copy(out, configMagic)
	binary.BigEndian.PutUint16(out[len(configMagic):], configVersion)
	nonce := make([]byte, nonceSize)
	if _, err := rand.Read(nonce); err != nil {
		return nil, err
	}
	copy(out[len(configMagic)+2:], nonce)
	return aead.Seal(out, nonce, plain, nil), nil
}

// DecryptConfig opens a payload produced by EncryptConfig.
func DecryptConfig(ciphertext, key []byte) ([]byte, error) {
	if len(ciphertext) < headerSize || string(ciphertext[:len(configMagic)]) != configMagic {
		return nil, ErrBadHeader
	}
	if v := binary.BigEndian.Uint16(ciphertext[len(configMagic):]); v != configVersion {
		return nil, errors.New("unsupported encrypted config version")
	}
	aead, err := newGCM(key)
	if err != nil {
		return nil, err
	}
	nonce := ciphertext[len(configMagic)+2 : headerSize]
	return aead.Open(nil, nonce, ciphertext[headerSize:], nil)
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}
