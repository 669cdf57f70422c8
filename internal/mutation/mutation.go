// Package mutation produces offspring genomes. Operators plug in behind
// Strategy; only uniform bit flipping is defined.
package mutation

import (
	"math/rand/v2"

	"github.com/appengine-ltd/organa/internal/bits"
	"github.com/appengine-ltd/organa/internal/genome"
	"github.com/appengine-ltd/organa/internal/phenotype"
	"github.com/appengine-ltd/organa/internal/rng"
)

// DefaultRate is the per-bit flip probability used when none is given.
const DefaultRate = 0.01

type Strategy interface {
	Mutate(g bits.Sequence) bits.Sequence
}

type StrategyFunc func(bits.Sequence) bits.Sequence

func (f StrategyFunc) Mutate(g bits.Sequence) bits.Sequence {
	return f(g)
}

// BitFlip flips every bit independently with probability Rate. Opcodes
// are not protected, so a flip can create or destroy structures. A nil RNG
// falls back to a stream seeded with 0.
type BitFlip struct {
	Rate float64
	RNG  *rand.Rand
}

func (m BitFlip) Mutate(g bits.Sequence) bits.Sequence {
	if m.Rate <= 0 {
		return g.Slice(0, g.Len())
	}
	r := m.RNG
	if r == nil {
		r = rng.New(0)
	}
	var b bits.Builder
	for i := 0; i < g.Len(); i++ {
		bit := g.At(i)
		if r.Float64() < m.Rate {
			bit ^= 1
		}
		b.AppendUint(bit, 1)
	}
	return b.Sequence()
}

// FlipAt returns g with bit i inverted. Out of range indexes return g.
func FlipAt(g bits.Sequence, i int) bits.Sequence {
	if i < 0 || i >= g.Len() {
		return g
	}
	var b bits.Builder
	b.AppendSequence(g.Slice(0, i))
	b.AppendUint(g.At(i)^1, 1)
	b.AppendSequence(g.Slice(i+1, g.Len()))
	return b.Sequence()
}

// IncrementFrame adds delta to frame read as an unsigned integer, wrapping
// within the frame's width: 11111+1 is 00000 and 00000-1 is 11111.
func IncrementFrame(frame bits.Sequence, delta int64) bits.Sequence {
	width := frame.Len()
	if width == 0 || width > bits.MaxReadWidth {
		return frame
	}
	v, _ := frame.Read(0, width)
	v += uint64(delta)
	if width < 64 {
		v &= 1<<uint(width) - 1
	}
	return bits.FromUint(v, width)
}

// Offspring writes the parent's genome back out, mutates it and decodes
// the result into a new organism.
func Offspring(parent *phenotype.Organism, s Strategy, d *genome.Decoder) (*phenotype.Organism, bits.Sequence) {
	child := s.Mutate(genome.Reconstruct(parent))
	return d.Decode(child), child
}
