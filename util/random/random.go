// Package random generates random identifiers and secrets.
package random

import (
	"crypto/rand"
	"math/big"
)

const alphanumeric = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

var alphabetLen = big.NewInt(int64(len(alphanumeric)))

// Seq returns a random alphanumeric string of length n drawn from crypto/rand.
func Seq(n int) string {
	b := make([]byte, n)
	for i := range b {
		idx, err := rand.Int(rand.Reader, alphabetLen)
		if err != nil {
			panic("crypto/rand failed: " + err.Error())
		}
		b[i] = alphanumeric[idx.Int64()]
	}
	return string(b)
}
