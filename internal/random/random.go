// Package random generates identifiers for in-memory database names and CSP nonces.
package random

import (
	"crypto/rand"
	"math/big"
)

var alphabet = []rune("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ")

// Letters returns n random ASCII letters from a cryptographic source.
func Letters(n uint) (string, error) {
	letters := make([]rune, n)
	max := big.NewInt(int64(len(alphabet)))
	for i := range letters {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		letters[i] = alphabet[idx.Int64()]
	}
	return string(letters), nil
}
