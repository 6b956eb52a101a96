package ledger

import (
	"crypto/rand"
	"math/big"
	"strings"
)

const (
	// CodeLength is the number of characters in a group code.
	CodeLength = 5
	// CodeAlphabet is the set of characters group codes are drawn from.
	CodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	// DefaultMaxCodeAttempts bounds how many codes are tried before giving up.
	DefaultMaxCodeAttempts = 10
)

// CodeGenerator returns a candidate group code.
type CodeGenerator func() (string, error)

// RandomCode draws CodeLength characters uniformly from CodeAlphabet.
func RandomCode() (string, error) {
	var b strings.Builder
	b.Grow(CodeLength)
	max := big.NewInt(int64(len(CodeAlphabet)))
	for range CodeLength {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		b.WriteByte(CodeAlphabet[n.Int64()])
	}
	return b.String(), nil
}

// NormalizeCode trims and uppercases user input.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// ValidCode reports whether code has the shape of a group code.
func ValidCode(code string) bool {
	if len(code) != CodeLength {
		return false
	}
	for i := 0; i < len(code); i++ {
		if strings.IndexByte(CodeAlphabet, code[i]) < 0 {
			return false
		}
	}
	return true
}
