package crypto

import (
	"encoding/hex"
	"fmt"
	"strings"
)

// ParseHexKey decodes hex-encoded key material. An empty key is an error.
func ParseHexKey(name, s string) ([]byte, error) {
	key, err := hex.DecodeString(strings.TrimSpace(s))
	if err != nil {
		return nil, fmt.Errorf("%s: invalid hex: %w", name, err)
	}
	if len(key) == 0 {
		return nil, fmt.Errorf("%s: key is empty", name)
	}
	return key, nil
}
