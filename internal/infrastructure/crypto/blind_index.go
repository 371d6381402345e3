package crypto

import (
	"crypto/hmac"
	"crypto/sha256"
)

// BlindIndexer computes HMAC-SHA256 blind indexes so records can be found
// by an exact plaintext value without storing that value.
type BlindIndexer struct {
	key []byte
}

func NewBlindIndexer(key []byte) *BlindIndexer {
	k := make([]byte, len(key))
	copy(k, key)
	return &BlindIndexer{key: k}
}

// Index returns the 32-byte keyed hash of value.
func (b *BlindIndexer) Index(value string) []byte {
	mac := hmac.New(sha256.New, b.key)
	_, _ = mac.Write([]byte(value))
	return mac.Sum(nil)
}
