package id

import (
	"fmt"
	"sync"
)

// Generator creates opaque IDs for engine entities.
type Generator interface {
	NewID(prefix string) string
}

// SequenceGenerator issues deterministic per-prefix sequential IDs so that a
// reseeded league reproduces identical entity identifiers.
type SequenceGenerator struct {
	mu   sync.Mutex
	next map[string]int
}

func NewSequenceGenerator() *SequenceGenerator {
	return &SequenceGenerator{next: make(map[string]int)}
}

func (g *SequenceGenerator) NewID(prefix string) string {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.next[prefix]++
	return fmt.Sprintf("%s-%04d", prefix, g.next[prefix])
}

// Reset clears every sequence, used when a league is rebuilt from a seed.
func (g *SequenceGenerator) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.next = make(map[string]int)
}
