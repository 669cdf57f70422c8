package bits

// Builder accumulates bits in order. The zero value is ready to use.
type Builder struct {
	words []uint64
	n     int
}

func (b *Builder) appendBit(bit uint64) {
	if b.n%64 == 0 {
		b.words = append(b.words, 0)
	}
	if bit&1 == 1 {
		b.words[b.n/64] |= 1 << (63 - uint(b.n%64))
	}
	b.n++
}

// AppendUint appends the low width bits of value, most significant first.
// Widths outside 1..64 append nothing.
func (b *Builder) AppendUint(value uint64, width int) {
	if width <= 0 || width > MaxReadWidth {
		return
	}
	for i := width - 1; i >= 0; i-- {
		b.appendBit(value >> uint(i))
	}
}

func (b *Builder) AppendSequence(s Sequence) {
	for i := 0; i < s.n; i++ {
		b.appendBit(s.At(i))
	}
}

func (b *Builder) Len() int {
	return b.n
}

// Sequence returns a copy of the bits appended so far.
func (b *Builder) Sequence() Sequence {
	words := make([]uint64, len(b.words))
	copy(words, b.words)
	return Sequence{words: words, n: b.n}
}

func (b *Builder) Reset() {
	b.words = b.words[:0]
	b.n = 0
}
