package segment

import (
	"testing"

	"github.com/appengine-ltd/organa/internal/bits"
)

func TestNewChainHasHeadOnly(t *testing.T) {
	c := NewChain()
	if c.Len() != 1 {
		t.Fatalf("expected head node only, got %d nodes", c.Len())
	}
	if c.Node(Head).Next != End {
		t.Fatalf("head of an empty chain must terminate")
	}
	if c.Bits().Len() != 0 {
		t.Fatalf("empty chain must have no bits")
	}
}

func TestChainConcatenatesInLinkOrder(t *testing.T) {
	c := NewChain()
	c.Node(Head).Noncoding = bits.MustParse("01")

	first := c.Append()
	c.Node(first).Start = bits.MustParse("11111")
	c.Node(first).Params = bits.MustParse("0000100101")

	second := c.Append()
	c.Node(second).Start = bits.MustParse("11010")
	c.Node(second).Noncoding = bits.MustParse("000")

	if c.Node(Head).Next != first || c.Node(first).Next != second || c.Node(second).Next != End {
		t.Fatalf("nodes are not linked in append order")
	}
	want := "01" + "11111" + "0000100101" + "11010" + "000"
	if got := c.Bits().String(); got != want {
		t.Fatalf("Bits()=%q want=%q", got, want)
	}
	if got := c.StructureBits(first).String(); got != "111110000100101" {
		t.Fatalf("StructureBits(first)=%q", got)
	}
}

func TestWalkStops(t *testing.T) {
	c := NewChain()
	c.Append()
	c.Append()
	visited := 0
	c.Walk(func(idx int, _ *Node) bool {
		visited++
		return idx < 1
	})
	if visited != 2 {
		t.Fatalf("expected walk to stop after 2 nodes, visited %d", visited)
	}
}

func TestNodeOutOfRange(t *testing.T) {
	c := NewChain()
	if c.Node(5) != nil || c.Node(-1) != nil {
		t.Fatalf("expected nil for out of range nodes")
	}
	if c.StructureBits(9).Len() != 0 {
		t.Fatalf("expected empty bits for missing node")
	}
	var nilChain *Chain
	if nilChain.Len() != 0 || nilChain.Bits().Len() != 0 {
		t.Fatalf("nil chain must behave as empty")
	}
}
