package key

import (
	"sync"

	"github.com/google/uuid"

	"github.com/roach88/bundlecore/internal/resource"
)

// Generator produces new logical resource ids.
type Generator interface {
	Generate() string
}

// UUIDv7Generator generates time-sortable UUIDv7 resource ids.
//
// Thread-safety: UUIDv7Generator is stateless and safe for concurrent use.
type UUIDv7Generator struct{}

// Generate returns a new hyphenated UUIDv7.
//
// Panics if UUID generation fails (should never happen in practice).
func (g UUIDv7Generator) Generate() string {
	return uuid.Must(uuid.NewV7()).String()
}

// FixedGenerator returns predetermined ids in order, for tests.
//
// Thread-safety: FixedGenerator is safe for concurrent use via internal mutex.
type FixedGenerator struct {
	mu  sync.Mutex
	ids []string
	idx int
}

// NewFixedGenerator creates a generator that returns ids in order.
func NewFixedGenerator(ids ...string) *FixedGenerator {
	return &FixedGenerator{ids: ids}
}

// Generate returns the next predetermined id.
//
// Panics once all ids have been consumed; a test that needs more ids than it
// provided is a broken test.
func (g *FixedGenerator) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.idx >= len(g.ids) {
		panic("key: FixedGenerator exhausted")
	}
	id := g.ids[g.idx]
	g.idx++
	return id
}

// Assign gives res a new id from gen if it has none, and returns the
// resulting identity. Resources that already carry an id are left alone.
func Assign(res *resource.Resource, gen Generator) (Key, error) {
	if res == nil {
		return Key{}, invalidIdentity(Key{}, "cannot assign identity to a nil resource")
	}
	if res.TypeName == "" {
		return Key{}, invalidIdentity(Key{}, "resource has no type")
	}
	if res.ID == "" {
		res.ID = normalize(gen.Generate())
	}
	return ExtractFrom(res), nil
}
