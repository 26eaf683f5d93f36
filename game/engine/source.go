package engine

import (
	"math/rand"
	"time"
)

// PieceSource supplies the kind of each newly drawn piece.
type PieceSource interface {
	Next() Kind
}

// RandomSource draws kinds uniformly at random.
type RandomSource struct {
	rng *rand.Rand
}

// NewRandomSource creates a uniform source. A zero seed seeds from the clock.
func NewRandomSource(seed int64) *RandomSource {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &RandomSource{rng: rand.New(rand.NewSource(seed))}
}

// Next returns a uniformly chosen kind.
func (s *RandomSource) Next() Kind {
	return Kind(s.rng.Intn(KindCount)) + KindI
}

// SequenceSource replays a fixed list of kinds, cycling when exhausted.
type SequenceSource struct {
	kinds []Kind
	pos   int
}

// NewSequenceSource creates a source that cycles through kinds. An empty list yields KindO forever.
func NewSequenceSource(kinds ...Kind) *SequenceSource {
	return &SequenceSource{kinds: kinds}
}

// Next returns the next kind in the sequence.
func (s *SequenceSource) Next() Kind {
	if len(s.kinds) == 0 {
		return KindO
	}
	k := s.kinds[s.pos%len(s.kinds)]
	s.pos++
	return k
}
