package utils

import (
	"crypto/rand"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
)

const shortIDBytes = 8

// NewShortID returns a random URL-safe identifier. The base58 alphabet has no
// "-", so the id never breaks "{type}-{shortId}" tokens.
func NewShortID() (string, error) {
	buf := make([]byte, shortIDBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", errors.Wrap(err, "read random bytes")
	}
	return base58.Encode(buf), nil
}
