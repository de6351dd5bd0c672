package catalog

import (
	"fmt"
	"math/rand"
)

var ErrEmptyCatalog = fmt.Errorf("message catalog is empty")

// Entry is one congratulatory message with its accompanying GIF.
type Entry struct {
	Text     string
	ImageURL string
}

// Catalog is a fixed, ordered list of announcement messages. Stored
// notification histories reference entries by position, so entries must
// never be removed or reordered without rewriting those histories.
type Catalog struct {
	entries []Entry
}

func New(entries []Entry) *Catalog {
	return &Catalog{entries: entries}
}

// Default returns the built-in announcement catalog.
func Default() *Catalog {
	return New(defaultEntries)
}

func (c *Catalog) Size() int {
	return len(c.entries)
}

// Entry returns the entry at the given index.
func (c *Catalog) Entry(index int) (Entry, error) {
	if index < 0 || index >= len(c.entries) {
		return Entry{}, fmt.Errorf("catalog index %d out of range [0, %d)", index, len(c.entries))
	}
	return c.entries[index], nil
}

// Pick chooses the next catalog index for a member with the given send
// history. Entries never sent are exhausted first; after full coverage the
// least-frequently-sent entries are preferred. Ties break uniformly at
// random, which keeps the long-run distribution even without repeating the
// same message many days in a row.
func (c *Catalog) Pick(history []int) (int, error) {
	if len(c.entries) == 0 {
		return 0, ErrEmptyCatalog
	}

	counts := make([]int, len(c.entries))
	for _, idx := range history {
		if idx >= 0 && idx < len(counts) {
			counts[idx]++
		}
	}

	minCount := counts[0]
	for _, n := range counts[1:] {
		if n < minCount {
			minCount = n
		}
	}

	candidates := make([]int, 0, len(counts))
	for idx, n := range counts {
		if n == minCount {
			candidates = append(candidates, idx)
		}
	}

	return candidates[rand.Intn(len(candidates))], nil
}
