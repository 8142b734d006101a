package inventory

import (
	"math/rand/v2"
	"time"
)

// idGenerator produces numeric identifiers for new charging points: a
// seconds-resolution unix timestamp prefix followed by a six-digit random
// suffix. The seen set guarantees a generator never hands out the same id
// twice, which keeps one run collision-free even within a single second.
type idGenerator struct {
	seen   map[int64]struct{}
	now    func() time.Time
	suffix func() int64
}

func newIDGenerator() *idGenerator {
	return &idGenerator{
		seen: make(map[int64]struct{}),
		now:  time.Now,
		suffix: func() int64 {
			return rand.Int64N(900000) + 100000
		},
	}
}

func (g *idGenerator) next() int64 {
	for {
		// Equivalent to concatenating the timestamp with a 6-digit suffix.
		id := g.now().Unix()*1_000_000 + g.suffix()
		if _, dup := g.seen[id]; dup {
			continue
		}
		g.seen[id] = struct{}{}
		return id
	}
}
