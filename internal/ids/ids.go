// Package ids hands out identifiers for organisms, organs and genes. The
// decoder takes a Generator instead of calling a global.
package ids

import (
	"fmt"
	"math/rand/v2"
	"sync"

	"github.com/google/uuid"
)

type Generator interface {
	NewID() string
}

// UUID issues random version 4 UUIDs.
type UUID struct{}

func (UUID) NewID() string {
	return uuid.New().String()
}

// Counter issues prefix-1, prefix-2, ... and is safe for concurrent use.
type Counter struct {
	Prefix string

	mu   sync.Mutex
	next uint64
}

func NewCounter(prefix string) *Counter {
	return &Counter{Prefix: prefix}
}

func (c *Counter) NewID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.next++
	if c.Prefix == "" {
		return fmt.Sprintf("%d", c.next)
	}
	return fmt.Sprintf("%s-%d", c.Prefix, c.next)
}

const alphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// DefaultRandomLength matches the ten character ids organisms carried when
// they were exported as plain text.
const DefaultRandomLength = 10

// Random draws fixed-length alphanumeric ids from a seeded generator, so a
// seeded run names its structures the same way every time.
type Random struct {
	Length int

	mu  sync.Mutex
	rng *rand.Rand
}

func NewRandom(rng *rand.Rand) *Random {
	return &Random{Length: DefaultRandomLength, rng: rng}
}

func (r *Random) NewID() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := r.Length
	if n <= 0 {
		n = DefaultRandomLength
	}
	out := make([]byte, n)
	for i := range out {
		out[i] = alphabet[r.rng.IntN(len(alphabet))]
	}
	return string(out)
}
