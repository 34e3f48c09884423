// Package idx generates the sortable identifiers used for accounts, roles and
// request correlation.
package idx

import (
	"crypto/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

type ID string

var (
	once sync.Once
	gen  *generator
)

// generator hands out ULIDs from a monotonic entropy source. The source is not
// safe for concurrent use so every draw happens under mu.
type generator struct {
	mu      sync.Mutex
	entropy *ulid.MonotonicEntropy
}

func (g *generator) at(t time.Time) ID {
	g.mu.Lock()
	defer g.mu.Unlock()

	return ID(ulid.MustNew(ulid.Timestamp(t), g.entropy).String())
}

func setup() {
	gen = &generator{entropy: ulid.Monotonic(rand.Reader, 0)}
}

// New returns a ULID stamped with the current UTC time.
func New() ID {
	return NewAt(time.Now().UTC())
}

// NewAt returns a ULID stamped with t. Handy for deterministic fixtures.
func NewAt(t time.Time) ID {
	once.Do(setup)
	return gen.at(t)
}

func (id ID) String() string { return string(id) }
