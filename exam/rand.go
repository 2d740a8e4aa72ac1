package exam

import (
	"strings"
	"unicode/utf16"

	"golang.org/x/text/unicode/norm"
)

// The hash and generator below decide every printed answer key. Changing
// either one makes previously printed rows impossible to grade again.

// Hash is a 32-bit polynomial rolling hash over the UTF-16 code units of s:
// h = h*31 + unit, wrapping. Characters outside the Basic Multilingual Plane
// contribute both surrogate halves.
func Hash(s string) uint32 {
	var h uint32
	for _, r := range s {
		if r >= 0x10000 {
			hi, lo := utf16.EncodeRune(r)
			h = h*31 + uint32(hi)
			h = h*31 + uint32(lo)
			continue
		}
		h = h*31 + uint32(r)
	}
	return h
}

// NormalizeSeed trims s and converts it to Unicode NFC, so that a seed typed
// with combining accents hashes the same as its precomposed spelling.
// Apply it where operator input enters; Hash itself never normalizes.
func NormalizeSeed(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

// Rand is a small deterministic generator (mulberry32). Each call advances
// the state by a fixed odd increment and mixes it with shifts, xors and
// multiplies. It is not safe for concurrent use and not suitable for
// anything security related.
type Rand struct {
	state uint32
}

// NewRand returns a generator seeded with seed.
func NewRand(seed uint32) *Rand {
	return &Rand{state: seed}
}

// Uint32 returns the next 32-bit output.
func (r *Rand) Uint32() uint32 {
	r.state += 0x6D2B79F5
	t := r.state
	t = (t ^ t>>15) * (t | 1)
	t ^= t + (t^t>>7)*(t|61)
	return t ^ t>>14
}

// Float64 returns the next output mapped to [0, 1).
func (r *Rand) Float64() float64 {
	return float64(r.Uint32()) / (1 << 32)
}

// Intn returns an int in [0, n) as floor(Float64() * n). n must be positive.
func (r *Rand) Intn(n int) int {
	return int(r.Float64() * float64(n))
}
