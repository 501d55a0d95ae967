// Package runid generates sortable identifiers for play sessions and
// simulation runs. IDs are UUIDv7 values written as 26 characters of
// Crockford base32, so they sort by creation time.
package runid

import (
	"crypto/rand"
	"fmt"
	"strings"

	"github.com/coder/quartz"
)

// Length of an encoded ID
const Length = 26

const alphabet = "0123456789abcdefghjkmnpqrstvwxyz"

// Source supplies the random bits. *rand.Rand from math/rand/v2 satisfies
// it; a nil Source uses crypto/rand.
type Source interface {
	IntN(n int) int
}

// Generator creates IDs from a clock and a random source
type Generator struct {
	clock quartz.Clock
	rng   Source
}

// NewGenerator returns a generator. A nil clock uses the real clock.
func NewGenerator(clock quartz.Clock, rng Source) *Generator {
	if clock == nil {
		clock = quartz.NewReal()
	}
	return &Generator{clock: clock, rng: rng}
}

// New returns an ID from the real clock and crypto/rand
func New() string {
	return NewGenerator(nil, nil).New()
}

// New returns the next ID
func (g *Generator) New() string {
	var id [16]byte

	ms := uint64(g.clock.Now().UnixMilli())
	for i := 0; i < 6; i++ {
		id[i] = byte(ms >> (40 - 8*i))
	}

	if g.rng != nil {
		for i := 6; i < 16; i++ {
			id[i] = byte(g.rng.IntN(256))
		}
	} else if _, err := rand.Read(id[6:]); err != nil {
		panic("runid: reading random bytes: " + err.Error())
	}

	id[6] = (id[6] & 0x0f) | 0x70 // version 7
	id[8] = (id[8] & 0x3f) | 0x80 // RFC 4122 variant

	return encode(id)
}

// encode writes the 128 bits as 26 five-bit groups, most significant first.
// The leading group carries only three bits.
func encode(id [16]byte) string {
	out := make([]byte, Length)

	var acc uint32
	bits := 2 // pad so 130 bits divide evenly into groups of five
	pos := 0
	for _, b := range id {
		acc = acc<<8 | uint32(b)
		bits += 8
		for bits >= 5 {
			bits -= 5
			out[pos] = alphabet[(acc>>bits)&0x1f]
			pos++
		}
	}
	return string(out)
}

// Validate checks that id is a well-formed encoded ID
func Validate(id string) error {
	if len(id) != Length {
		return fmt.Errorf("run ID must be exactly %d characters, got %d", Length, len(id))
	}
	if id[0] > '7' {
		return fmt.Errorf("run ID first character must be 0-7, got %c", id[0])
	}
	for i, c := range id {
		if !strings.ContainsRune(alphabet, c) {
			return fmt.Errorf("invalid character %c at position %d", c, i)
		}
	}
	return nil
}
