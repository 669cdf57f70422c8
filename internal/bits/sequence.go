package bits

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
)

// MaxReadWidth is the widest field a single Read can return.
const MaxReadWidth = 64

var ErrInvalidDigit = errors.New("genome digit must be 0 or 1")

// Sequence is an immutable, 0-indexed run of bits. Bit 0 is the first bit of
// the genome and the most significant bit of any field read starting there.
type Sequence struct {
	words []uint64
	n     int
}

func Parse(raw string) (Sequence, error) {
	var b Builder
	for i, r := range raw {
		switch r {
		case '0':
			b.appendBit(0)
		case '1':
			b.appendBit(1)
		case ' ', '\t', '\n', '\r', '_':
		default:
			return Sequence{}, fmt.Errorf("position %d (%q): %w", i, r, ErrInvalidDigit)
		}
	}
	return b.Sequence(), nil
}

func MustParse(raw string) Sequence {
	seq, err := Parse(raw)
	if err != nil {
		panic(err)
	}
	return seq
}

// FromUint returns the low width bits of value, most significant first.
func FromUint(value uint64, width int) Sequence {
	var b Builder
	b.AppendUint(value, width)
	return b.Sequence()
}

func Random(rng *rand.Rand, n int) Sequence {
	var b Builder
	for i := 0; i < n; i++ {
		b.appendBit(uint64(rng.IntN(2)))
	}
	return b.Sequence()
}

func (s Sequence) Len() int {
	return s.n
}

// At returns the bit at i, or 0 when i is outside the sequence.
func (s Sequence) At(i int) uint64 {
	if i < 0 || i >= s.n {
		return 0
	}
	return (s.words[i/64] >> (63 - uint(i%64))) & 1
}

// Read returns width bits starting at offset as an unsigned value and the
// number of bits consumed. A window that would run past the end yields
// (0, 0); the caller decides what a zero-width read means.
func (s Sequence) Read(offset, width int) (uint64, int) {
	if width <= 0 || width > MaxReadWidth || offset < 0 || offset >= s.n || offset+width > s.n {
		return 0, 0
	}
	var v uint64
	for i := offset; i < offset+width; i++ {
		v = v<<1 | s.At(i)
	}
	return v, width
}

// Slice copies bits [from, to). Bounds are clamped to the sequence.
func (s Sequence) Slice(from, to int) Sequence {
	from = clamp(from, 0, s.n)
	to = clamp(to, from, s.n)
	var b Builder
	for i := from; i < to; i++ {
		b.appendBit(s.At(i))
	}
	return b.Sequence()
}

func Concat(parts ...Sequence) Sequence {
	var b Builder
	for _, p := range parts {
		b.AppendSequence(p)
	}
	return b.Sequence()
}

// WithSentinel returns the sequence with a single leading 1 bit.
func (s Sequence) WithSentinel() Sequence {
	var b Builder
	b.appendBit(1)
	b.AppendSequence(s)
	return b.Sequence()
}

func (s Sequence) Equal(other Sequence) bool {
	if s.n != other.n {
		return false
	}
	for i := 0; i < s.n; i++ {
		if s.At(i) != other.At(i) {
			return false
		}
	}
	return true
}

func (s Sequence) String() string {
	var sb strings.Builder
	sb.Grow(s.n)
	for i := 0; i < s.n; i++ {
		if s.At(i) == 1 {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}

// MarshalBinary packs the sentinel-prefixed sequence big-endian into the
// fewest bytes, left padded with zeros. The sentinel keeps leading zero bits
// of the genome recoverable.
func (s Sequence) MarshalBinary() ([]byte, error) {
	withSentinel := s.WithSentinel()
	total := withSentinel.Len()
	out := make([]byte, (total+7)/8)
	pad := len(out)*8 - total
	for i := 0; i < total; i++ {
		if withSentinel.At(i) == 1 {
			pos := pad + i
			out[pos/8] |= 1 << (7 - uint(pos%8))
		}
	}
	return out, nil
}

func (s *Sequence) UnmarshalBinary(data []byte) error {
	first := -1
	for i := 0; i < len(data)*8; i++ {
		if data[i/8]>>(7-uint(i%8))&1 == 1 {
			first = i
			break
		}
	}
	if first < 0 {
		return errors.New("packed genome has no sentinel bit")
	}
	var b Builder
	for i := first + 1; i < len(data)*8; i++ {
		b.appendBit(uint64(data[i/8] >> (7 - uint(i%8)) & 1))
	}
	*s = b.Sequence()
	return nil
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
