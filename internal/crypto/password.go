package crypto

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// DefaultPasswordLength is the length used when generating passwords for new
// entries.
const DefaultPasswordLength = 20

const passwordAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ" +
	"abcdefghijklmnopqrstuvwxyz" +
	"0123456789" +
	"!@#$&*-_=+"

// GeneratePassword returns a random password of the given length drawn from
// the printable alphabet. Uses rejection-free uniform sampling via
// crypto/rand.Int.
func GeneratePassword(length int) (string, error) {
	if length <= 0 {
		length = DefaultPasswordLength
	}
	max := big.NewInt(int64(len(passwordAlphabet)))
	out := make([]byte, length)
	for i := range out {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("failed to generate password: %w", err)
		}
		out[i] = passwordAlphabet[n.Int64()]
	}
	return string(out), nil
}
