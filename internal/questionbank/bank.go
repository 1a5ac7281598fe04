// Package questionbank selects assessment items from the static per-type
// catalogs.
package questionbank

import (
	"fmt"
	"math/rand/v2"
	"sync"

	"github.com/nexosr/career-engine/internal/apperr"
	"github.com/nexosr/career-engine/internal/model"
)

// DefaultCount is the number of items drawn for a test.
const DefaultCount = 15

// Bank draws random samples from the catalogs. The catalogs themselves are
// read-only; the mutex only guards the RNG.
type Bank struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// New creates a Bank drawing from rng.
func New(rng *rand.Rand) *Bank {
	return &Bank{rng: rng}
}

// NewSeeded creates a Bank whose draws are reproducible for a given seed.
func NewSeeded(seed uint64) *Bank {
	return New(rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)))
}

// Types lists the test types the bank can serve.
func (b *Bank) Types() []model.TestType {
	return append([]model.TestType(nil), model.TestTypes...)
}

// Size returns the catalog size for testType, or 0 if unknown.
func (b *Bank) Size(testType model.TestType) int {
	return len(catalogs[testType])
}

// Select returns count distinct items of testType in random order. Items are
// deep copies, so callers may keep them as a session snapshot.
func (b *Bank) Select(testType model.TestType, count int) ([]model.Item, error) {
	catalog, ok := catalogs[testType]
	if !ok {
		return nil, apperr.Withf(apperr.CodeUnknownTestType, "unknown test type %q", testType)
	}
	if count < 0 || count > len(catalog) {
		return nil, fmt.Errorf("questionbank: cannot draw %d items from %d %s items", count, len(catalog), testType)
	}

	// Partial Fisher-Yates over an index slice keeps the catalog untouched.
	idx := make([]int, len(catalog))
	for i := range idx {
		idx[i] = i
	}

	b.mu.Lock()
	for i := 0; i < count; i++ {
		j := i + b.rng.IntN(len(idx)-i)
		idx[i], idx[j] = idx[j], idx[i]
	}
	b.mu.Unlock()

	out := make([]model.Item, count)
	for i := 0; i < count; i++ {
		out[i] = catalog[idx[i]].Clone()
	}
	return out, nil
}
