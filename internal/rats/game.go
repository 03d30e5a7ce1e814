package rats

import (
	"errors"
	"sort"

	"rats-server/internal/cards"
)

// Tricks is the number of tricks in a full game.
const Tricks = 13

type Team int

const (
	TeamA Team = iota
	TeamB
)

func (t Team) String() string {
	if t == TeamA {
		return "Team A"
	}
	return "Team B"
}

// SeatTeam derives team membership from a seat number: seats 0 and 2 are
// Team A, seats 1 and 3 are Team B.
func SeatTeam(seat int) Team {
	return Team(seat % 2)
}

// Reseat fixes the permanent seat numbering for a game: ascending by
// player name, ties broken by join order. The input order is join order,
// so a stable sort gives the tie-break for free. The result is identical
// for any arrival order of the same four players.
func Reseat(names []string) []int {
	order := make([]int, len(names))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return names[order[a]] < names[order[b]]
	})
	return order
}

var (
	ErrNotInHand      = errors.New("card not in hand")
	ErrMustFollowSuit = errors.New("must follow the led suit")
	ErrNotYourTurn    = errors.New("seat played out of turn")
	ErrGameOver       = errors.New("game already finished")
)

// Game is the trick-taking state machine for one four-seat game. It owns
// the four server-authoritative hands and is driven by a single referee;
// it is not safe for concurrent use.
type Game struct {
	hands      [4]*cards.Hand
	leader     int
	trick      *Trick
	tricksDone int
	tricksWon  [2]int
}

func NewGame(hands [4][]cards.Card) *Game {
	g := &Game{trick: NewTrick()}
	for i := 0; i < 4; i++ {
		g.hands[i] = cards.NewHand(hands[i])
	}
	return g
}

// Leader is the seat that leads the current trick: seat 0 for the first
// trick, then the winner of the previous trick.
func (g *Game) Leader() int {
	return g.leader
}

// Turn is the seat expected to play next within the current trick.
func (g *Game) Turn() int {
	return (g.leader + len(g.trick.Plays)) % 4
}

// LeadSuit reports the suit led this trick, valid once the leader has played.
func (g *Game) LeadSuit() (cards.Suit, bool) {
	if len(g.trick.Plays) == 0 {
		return 0, false
	}
	return g.trick.Lead, true
}

func (g *Game) Hand(seat int) *cards.Hand {
	return g.hands[seat]
}

// Play validates and applies one card token from seat. A rejected play
// leaves the game state untouched; the caller re-prompts the same seat.
func (g *Game) Play(seat int, token string) (cards.Card, error) {
	if g.Finished() {
		return cards.Card{}, ErrGameOver
	}
	if seat != g.Turn() {
		return cards.Card{}, ErrNotYourTurn
	}

	card, err := cards.Parse(token)
	if err != nil {
		return cards.Card{}, err
	}
	hand := g.hands[seat]
	if !hand.Contains(card) {
		return cards.Card{}, ErrNotInHand
	}
	if lead, led := g.LeadSuit(); led && card.Suit != lead && hand.HasSuit(lead) {
		return cards.Card{}, ErrMustFollowSuit
	}

	hand.Remove(card)
	g.trick.Add(seat, card)
	return card, nil
}

// TrickComplete reports whether all four seats have played this trick.
func (g *Game) TrickComplete() bool {
	return g.trick.Complete()
}

// ResolveTrick scores the completed trick, credits the winning team, and
// makes the winner the next leader. Returns the winning seat.
func (g *Game) ResolveTrick() int {
	winner := g.trick.Winner()
	g.tricksWon[SeatTeam(winner)]++
	g.tricksDone++
	g.leader = winner
	g.trick = NewTrick()
	return winner
}

func (g *Game) TricksPlayed() int {
	return g.tricksDone
}

func (g *Game) Finished() bool {
	return g.tricksDone == Tricks
}

// Tally returns the trick counts for Team A and Team B.
func (g *Game) Tally() (int, int) {
	return g.tricksWon[TeamA], g.tricksWon[TeamB]
}

// Winner returns the winning team after a finished game. draw is true
// when both teams took the same number of tricks, which cannot happen in
// a 13-trick game but is reported distinctly rather than guessed at.
func (g *Game) Winner() (winner Team, draw bool) {
	a, b := g.Tally()
	switch {
	case a > b:
		return TeamA, false
	case b > a:
		return TeamB, false
	default:
		return TeamA, true
	}
}
