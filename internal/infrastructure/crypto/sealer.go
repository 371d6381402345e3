package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
)

const tagSize = 16

var errShortTag = errors.New("crypto: authentication tag has wrong length")

// Sealer encrypts record documents with AES-GCM. Ciphertext, nonce and
// authentication tag are returned separately, the way vault rows store them.
type Sealer struct {
	aead cipher.AEAD
}

// NewSealer builds a Sealer for a 16, 24 or 32 byte AES key.
func NewSealer(key []byte) (*Sealer, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("crypto: %w", err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("crypto: %w", err)
	}
	return &Sealer{aead: aead}, nil
}

func (s *Sealer) Seal(plaintext []byte) (ciphertext, nonce, tag []byte, err error) {
	nonce = make([]byte, s.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, nil, nil, fmt.Errorf("crypto: nonce: %w", err)
	}
	sealed := s.aead.Seal(nil, nonce, plaintext, nil)
	split := len(sealed) - tagSize
	return sealed[:split:split], nonce, sealed[split:], nil
}

func (s *Sealer) Open(ciphertext, nonce, tag []byte) ([]byte, error) {
	if len(tag) != tagSize {
		return nil, errShortTag
	}
	if len(nonce) != s.aead.NonceSize() {
		return nil, fmt.Errorf("crypto: nonce has wrong length %d", len(nonce))
	}
	full := make([]byte, 0, len(ciphertext)+len(tag))
	full = append(full, ciphertext...)
	full = append(full, tag...)
	return s.aead.Open(nil, nonce, full, nil)
}
