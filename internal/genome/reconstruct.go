package genome

import (
	"github.com/appengine-ltd/organa/internal/bits"
	"github.com/appengine-ltd/organa/internal/phenotype"
	"github.com/appengine-ltd/organa/internal/segment"
)

// Reconstruct writes the organism back out as the exact genome it was
// decoded from, without the sentinel.
func Reconstruct(org *phenotype.Organism) bits.Sequence {
	if org == nil {
		return bits.Sequence{}
	}
	return org.Genome().Bits()
}

// Span returns the bits that built one structure: its opcode, fields and
// the noncoding run that followed it.
func Span(org *phenotype.Organism, idx int) bits.Sequence {
	if org == nil {
		return bits.Sequence{}
	}
	return org.Genome().StructureBits(idx)
}

// Layout reports the node index of every organ and gene in decode order,
// starting with the head.
func Layout(org *phenotype.Organism) []int {
	out := []int{segment.Head}
	if org == nil {
		return out
	}
	for _, organ := range org.Organs() {
		out = append(out, organ.Segment())
		for _, g := range organ.Genes() {
			out = append(out, g.Segment())
		}
	}
	return out
}
