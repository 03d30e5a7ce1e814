package rats

import "rats-server/internal/cards"

// PlayedCard records one card together with the seat that played it.
type PlayedCard struct {
	Seat int
	Card cards.Card
}

// Trick holds the plays of the current trick. The first card added fixes
// the lead suit for the rest of the trick.
type Trick struct {
	Plays []PlayedCard
	Lead  cards.Suit
}

func NewTrick() *Trick {
	return &Trick{Plays: make([]PlayedCard, 0, 4)}
}

func (t *Trick) Add(seat int, card cards.Card) {
	if len(t.Plays) == 0 {
		t.Lead = card.Suit
	}
	t.Plays = append(t.Plays, PlayedCard{Seat: seat, Card: card})
}

func (t *Trick) Complete() bool {
	return len(t.Plays) == 4
}

// Winner returns the seat holding the highest card of the led suit.
// If no play matched the lead (unreachable under follow-suit enforcement)
// the trick's leader wins.
func (t *Trick) Winner() int {
	if len(t.Plays) == 0 {
		return -1
	}
	winner := t.Plays[0]
	for _, p := range t.Plays[1:] {
		if p.Card.Beats(winner.Card, t.Lead) {
			winner = p
		}
	}
	return winner.Seat
}
