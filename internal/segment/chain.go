// Package segment records which genome bits built which structure so a
// decoded organism can be written back out bit for bit.
package segment

import "github.com/appengine-ltd/organa/internal/bits"

// Head is the index of the node holding the bits before the first structure.
const Head = 0

// End marks the last node of a chain.
const End = -1

// Node owns the three spans of one structure: the opcode that started it,
// the parameter bits read to build it, and the noncoding bits up to the next
// recognised opcode.
type Node struct {
	Start     bits.Sequence
	Params    bits.Sequence
	Noncoding bits.Sequence
	Next      int
}

func (n Node) Bits() bits.Sequence {
	return bits.Concat(n.Start, n.Params, n.Noncoding)
}

// Chain is a singly linked list of nodes stored in an arena. Structures refer
// to their node by index, so the chain never points back at them.
type Chain struct {
	nodes []Node
	tail  int
}

func NewChain() *Chain {
	return &Chain{
		nodes: []Node{{Next: End}},
		tail:  Head,
	}
}

// Append links a fresh node after the current tail and returns its index.
func (c *Chain) Append() int {
	idx := len(c.nodes)
	c.nodes = append(c.nodes, Node{Next: End})
	c.nodes[c.tail].Next = idx
	c.tail = idx
	return idx
}

// Node returns the node at idx, or nil when idx is not in the arena.
func (c *Chain) Node(idx int) *Node {
	if c == nil || idx < 0 || idx >= len(c.nodes) {
		return nil
	}
	return &c.nodes[idx]
}

func (c *Chain) Len() int {
	if c == nil {
		return 0
	}
	return len(c.nodes)
}

// Walk visits nodes in link order from the head until fn returns false.
func (c *Chain) Walk(fn func(idx int, n *Node) bool) {
	if c == nil {
		return
	}
	for idx := Head; idx != End; idx = c.nodes[idx].Next {
		if !fn(idx, &c.nodes[idx]) {
			return
		}
	}
}

func (c *Chain) StructureBits(idx int) bits.Sequence {
	n := c.Node(idx)
	if n == nil {
		return bits.Sequence{}
	}
	return n.Bits()
}

// Bits concatenates start, params and noncoding of every node in order.
func (c *Chain) Bits() bits.Sequence {
	var b bits.Builder
	c.Walk(func(_ int, n *Node) bool {
		b.AppendSequence(n.Start)
		b.AppendSequence(n.Params)
		b.AppendSequence(n.Noncoding)
		return true
	})
	return b.Sequence()
}
