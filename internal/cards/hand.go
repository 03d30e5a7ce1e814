package cards

// Hand is a seat's remaining cards, owned by a single referee for the
// lifetime of one game. It is not safe for concurrent use.
type Hand struct {
	cards map[Card]bool
}

func NewHand(dealt []Card) *Hand {
	h := &Hand{cards: make(map[Card]bool, len(dealt))}
	for _, c := range dealt {
		h.cards[c] = true
	}
	return h
}

func (h *Hand) Contains(c Card) bool {
	return h.cards[c]
}

// HasSuit reports whether any remaining card is of suit s. Used to
// enforce follow-suit: a seat holding the led suit must play it.
func (h *Hand) HasSuit(s Suit) bool {
	for c := range h.cards {
		if c.Suit == s {
			return true
		}
	}
	return false
}

// Remove takes c out of the hand. Returns false if c was not present,
// so an accepted play can never be replayed.
func (h *Hand) Remove(c Card) bool {
	if !h.cards[c] {
		return false
	}
	delete(h.cards, c)
	return true
}

func (h *Hand) Count() int {
	return len(h.cards)
}

// Cards returns the remaining cards in no particular order.
func (h *Hand) Cards() []Card {
	out := make([]Card, 0, len(h.cards))
	for c := range h.cards {
		out = append(out, c)
	}
	return out
}
