// Package roomcode generates the short codes players share to join a room.
package roomcode

import (
	"crypto/rand"
	"math/big"
)

// Codes are 6 uppercase alphanumeric characters.
const (
	Length   = 6
	alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// RandSource interface for dependency injection of randomness.
type RandSource interface {
	IntN(n int) int
}

// Generator produces room codes with configurable randomness.
type Generator struct {
	randSource RandSource
}

// NewGenerator creates a generator. A nil RandSource falls back to
// crypto/rand for production use.
func NewGenerator(randSource RandSource) *Generator {
	return &Generator{randSource: randSource}
}

// Generate returns a fresh code for which taken reports false. Codes are
// drawn independently of any existing code, so collisions with live rooms
// are resolved by redrawing.
func (g *Generator) Generate(taken func(string) bool) string {
	for {
		code := g.draw()
		if taken == nil || !taken(code) {
			return code
		}
	}
}

func (g *Generator) draw() string {
	buf := make([]byte, Length)
	for i := range buf {
		buf[i] = alphabet[g.intn(len(alphabet))]
	}
	return string(buf)
}

func (g *Generator) intn(n int) int {
	if g.randSource != nil {
		return g.randSource.IntN(n)
	}
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		panic("failed to generate random room code: " + err.Error())
	}
	return int(v.Int64())
}

// Valid checks that a code has the right length and alphabet.
func Valid(code string) bool {
	if len(code) != Length {
		return false
	}
	for i := 0; i < len(code); i++ {
		c := code[i]
		if (c < 'A' || c > 'Z') && (c < '0' || c > '9') {
			return false
		}
	}
	return true
}
