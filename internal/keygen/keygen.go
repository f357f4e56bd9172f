package keygen

import (
	"crypto/rand"
	"fmt"
)

// Alphabet is the character set for generated keys. It excludes visually
// ambiguous characters (0/O, 1/I/l, 6/b, ...).
const Alphabet = "ABCDEFGHJKMNPQRSTWXYZabcdefhijkmnprstwxyz2345678"

// DefaultLength is the length of generated short keys.
const DefaultLength = 6

// Generator produces random short keys drawn from a curated alphabet
// using a cryptographically strong random source.
type Generator struct {
	alphabet string
	length   int
}

// New returns a Generator with the default alphabet and length.
func New() *Generator {
	return &Generator{
		alphabet: Alphabet,
		length:   DefaultLength,
	}
}

// WithLength sets the generated key length.
func (g *Generator) WithLength(n int) *Generator {
	g.length = n
	return g
}

// NewKey returns a fresh random key. Uniqueness against the store is the
// caller's concern.
func (g *Generator) NewKey() (string, error) {
	buf := make([]byte, g.length)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}

	for i, b := range buf {
		buf[i] = g.alphabet[int(b)%len(g.alphabet)]
	}
	return string(buf), nil
}
