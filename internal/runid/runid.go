// Package runid generates sortable identifiers for simulation runs.
//
// An ID is a UUIDv7 (48-bit millisecond timestamp followed by random bits)
// rendered as 26 characters of lowercase Crockford base32, so IDs sort by
// creation time as plain strings.
package runid

import (
	"crypto/rand"
	"encoding/base32"
	"fmt"
	"io"
	"strings"

	"github.com/coder/quartz"
)

// Length is the number of characters in an ID
const Length = 26

const alphabet = "0123456789abcdefghjkmnpqrstvwxyz"

var encoding = base32.NewEncoding(alphabet).WithPadding(base32.NoPadding)

// Generator creates run IDs from a clock and a source of random bytes
type Generator struct {
	clock  quartz.Clock
	random io.Reader
}

// NewGenerator creates a generator. A nil clock uses the real clock and a
// nil random reader uses crypto/rand.
func NewGenerator(clock quartz.Clock, random io.Reader) *Generator {
	if clock == nil {
		clock = quartz.NewReal()
	}
	if random == nil {
		random = rand.Reader
	}
	return &Generator{clock: clock, random: random}
}

// Generate creates a new run ID with the real clock
func Generate() string {
	return NewGenerator(nil, nil).Generate()
}

// Generate creates a new run ID
func (g *Generator) Generate() string {
	var uuid [16]byte

	now := g.clock.Now().UnixMilli()
	uuid[0] = byte(now >> 40)
	uuid[1] = byte(now >> 32)
	uuid[2] = byte(now >> 24)
	uuid[3] = byte(now >> 16)
	uuid[4] = byte(now >> 8)
	uuid[5] = byte(now)

	if _, err := io.ReadFull(g.random, uuid[6:]); err != nil {
		panic("failed to generate random bytes: " + err.Error())
	}

	// Version 7, variant 10
	uuid[6] = (uuid[6] & 0x0f) | 0x70
	uuid[8] = (uuid[8] & 0x3f) | 0x80

	return encoding.EncodeToString(uuid[:])
}

// Validate checks that id is a well formed run ID
func Validate(id string) error {
	if len(id) != Length {
		return fmt.Errorf("run ID must be exactly %d characters, got %d", Length, len(id))
	}
	if i := strings.IndexFunc(id, func(r rune) bool { return !strings.ContainsRune(alphabet, r) }); i >= 0 {
		return fmt.Errorf("invalid character %c at position %d", id[i], i)
	}

	uuid, err := encoding.DecodeString(id)
	if err != nil {
		return fmt.Errorf("run ID is not valid base32: %w", err)
	}
	if len(uuid) != 16 {
		return fmt.Errorf("run ID decodes to %d bytes, want 16", len(uuid))
	}
	if uuid[6]>>4 != 7 {
		return fmt.Errorf("run ID has version %d, want 7", uuid[6]>>4)
	}
	return nil
}
