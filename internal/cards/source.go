package cards

import (
	"math/rand"
	"strings"
	"time"
)

// Source produces deck token streams: 104 characters encoding a random
// permutation of the 52 distinct cards. The server treats a Source as a
// black box; a failure to produce a deck is fatal to the process.
type Source interface {
	NextDeck() (string, error)
}

// RandomSource is the default Source, backed by math/rand.
type RandomSource struct {
	rng *rand.Rand
}

// NewRandomSource seeds from the wall clock.
func NewRandomSource() *RandomSource {
	return NewSeededSource(time.Now().UnixNano())
}

// NewSeededSource produces a deterministic deck sequence, for tests.
func NewSeededSource(seed int64) *RandomSource {
	return &RandomSource{rng: rand.New(rand.NewSource(seed))}
}

func (s *RandomSource) NextDeck() (string, error) {
	deck := make([]Card, 0, 52)
	for _, suit := range Suits {
		for _, rank := range Ranks {
			deck = append(deck, Card{Rank: rank, Suit: suit})
		}
	}
	s.rng.Shuffle(len(deck), func(i, j int) {
		deck[i], deck[j] = deck[j], deck[i]
	})

	var b strings.Builder
	b.Grow(DeckChars)
	for _, c := range deck {
		b.WriteString(c.String())
	}
	return b.String(), nil
}
