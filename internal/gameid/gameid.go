// Package gameid produces sortable identifiers for sessions and hands: a
// UUIDv7 encoded as a 26-character lowercase base32 string in the TypeID
// layout.
package gameid

import (
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
)

// Base32 alphabet used by TypeID (Crockford's base32)
const alphabet = "0123456789abcdefghjkmnpqrstvwxyz"

// Length is the size of an encoded ID
const Length = 26

// Generator handles ID generation with configurable randomness
type Generator struct {
	rand io.Reader
}

// NewGenerator creates a new generator. A nil reader uses crypto/rand.
func NewGenerator(rand io.Reader) *Generator {
	return &Generator{rand: rand}
}

// Generate creates a new ID using the default generator
func Generate() string {
	return NewGenerator(nil).Generate()
}

// Generate creates a new ID using the generator's random source
func (g *Generator) Generate() string {
	var (
		id  uuid.UUID
		err error
	)
	if g.rand != nil {
		id, err = uuid.NewV7FromReader(g.rand)
	} else {
		id, err = uuid.NewV7()
	}
	if err != nil {
		panic("failed to generate random bytes: " + err.Error())
	}
	return Encode(id)
}

// Encode formats a UUID as a 26-character base32 string. The 128 bits are
// left-padded with two zero bits to fill 130.
func Encode(id uuid.UUID) string {
	var b strings.Builder
	b.Grow(Length)
	for i := range Length {
		var value byte
		for j := range 5 {
			value = value<<1 | bit(id, i*5+j-2)
		}
		b.WriteByte(alphabet[value])
	}
	return b.String()
}

// Decode parses an encoded ID back into its UUID
func Decode(s string) (uuid.UUID, error) {
	var id uuid.UUID
	if err := Validate(s); err != nil {
		return id, err
	}
	for i := range Length {
		value := byte(strings.IndexByte(alphabet, s[i]))
		for j := range 5 {
			pos := i*5 + j - 2
			if pos < 0 {
				continue
			}
			if value&(1<<(4-j)) != 0 {
				id[pos/8] |= 1 << (7 - pos%8)
			}
		}
	}
	return id, nil
}

// bit returns the bit at pos counting from the most significant, or zero for
// the padding positions before the first byte.
func bit(id uuid.UUID, pos int) byte {
	if pos < 0 {
		return 0
	}
	return (id[pos/8] >> (7 - pos%8)) & 1
}

// Validate checks if an ID is valid (26 characters, valid base32)
func Validate(id string) error {
	if len(id) != Length {
		return fmt.Errorf("game ID must be exactly %d characters, got %d", Length, len(id))
	}

	// Check first character doesn't exceed 7 (to ensure it represents ≤ 128 bits)
	if id[0] > '7' {
		return fmt.Errorf("game ID first character must be 0-7, got %c", id[0])
	}

	for i, char := range id {
		if !strings.ContainsRune(alphabet, char) {
			return fmt.Errorf("invalid character %c at position %d", char, i)
		}
	}

	return nil
}
