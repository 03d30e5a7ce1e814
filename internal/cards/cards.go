package cards

import (
	"errors"
	"fmt"
)

type Suit byte

const (
	Spades   Suit = 'S'
	Clubs    Suit = 'C'
	Diamonds Suit = 'D'
	Hearts   Suit = 'H'
)

var suitOrder = map[Suit]int{
	Spades:   0,
	Clubs:    1,
	Diamonds: 2,
	Hearts:   3,
}

func (s Suit) Valid() bool {
	_, ok := suitOrder[s]
	return ok
}

// Order gives a deterministic suit ordering for display grouping.
// It carries no gameplay meaning.
func (s Suit) Order() int {
	return suitOrder[s]
}

func (s Suit) String() string {
	return string(byte(s))
}

type Rank byte

// RankValue converts a rank character into its comparable value,
// 2 lowest through Ace (14) highest. Returns 0 for invalid ranks.
func (r Rank) Value() int {
	if r >= '2' && r <= '9' {
		return int(r - '0')
	}
	switch r {
	case 'T':
		return 10
	case 'J':
		return 11
	case 'Q':
		return 12
	case 'K':
		return 13
	case 'A':
		return 14
	}
	return 0
}

func (r Rank) Valid() bool {
	return r.Value() != 0
}

// Card is an immutable rank/suit pair. Equality is exact (rank, suit) match.
type Card struct {
	Rank Rank
	Suit Suit
}

var ErrBadToken = errors.New("malformed card token")

// Parse decodes a 2-character token, rank first then suit (e.g. "AS").
func Parse(token string) (Card, error) {
	if len(token) != 2 {
		return Card{}, ErrBadToken
	}
	c := Card{Rank: Rank(token[0]), Suit: Suit(token[1])}
	if !c.Rank.Valid() || !c.Suit.Valid() {
		return Card{}, ErrBadToken
	}
	return c, nil
}

func (c Card) String() string {
	return string([]byte{byte(c.Rank), byte(c.Suit)})
}

// Beats reports whether c wins over other given the suit led this trick.
// Only cards of the led suit can win; there are no trumps.
func (c Card) Beats(other Card, lead Suit) bool {
	if c.Suit != lead {
		return false
	}
	if other.Suit != lead {
		return true
	}
	return c.Rank.Value() > other.Rank.Value()
}

// HandSize is the authoritative per-seat hand size: 13 tricks of 4 plays
// consume exactly the 52-card deck.
const HandSize = 13

// DeckChars is the length of a deck token stream: 52 cards, 2 chars each.
const DeckChars = 104

// Deal partitions a 104-character deck stream into four 13-card hands.
// Hand p takes the character pairs at offsets p*2, p*2+8, p*2+16, ...,
// i.e. consecutive cards go to consecutive seats round-robin. The four
// hands always partition the 52 distinct cards exactly.
func Deal(deck string) ([4][]Card, error) {
	var hands [4][]Card
	if len(deck) != DeckChars {
		return hands, fmt.Errorf("deck stream is %d chars, want %d", len(deck), DeckChars)
	}

	seen := make(map[Card]bool, 52)
	for p := 0; p < 4; p++ {
		hand := make([]Card, 0, HandSize)
		for off := p * 2; off < DeckChars; off += 8 {
			card, err := Parse(deck[off : off+2])
			if err != nil {
				return hands, fmt.Errorf("deck stream at offset %d: %w", off, err)
			}
			if seen[card] {
				return hands, fmt.Errorf("deck stream repeats card %s", card)
			}
			seen[card] = true
			hand = append(hand, card)
		}
		hands[p] = hand
	}
	return hands, nil
}

// Ranks and Suits list the full alphabets in deck order.
var (
	Ranks = []Rank{'2', '3', '4', '5', '6', '7', '8', '9', 'T', 'J', 'Q', 'K', 'A'}
	Suits = []Suit{Spades, Clubs, Diamonds, Hearts}
)
